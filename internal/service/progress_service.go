package service

import (
	"context"
	"math"
	"time"

	"math_edu_backend/internal/model"
	"math_edu_backend/internal/repository"
	"math_edu_backend/internal/util"
	"math_edu_backend/pkg/monitoring"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type ProgressService struct {
	ProgressRepo *repository.ProgressRepository
	ProfileRepo  *repository.ProfileRepository
	Lessons      *LessonService
	Events       EventPublisher
}

func NewProgressService(progressRepo *repository.ProgressRepository, profileRepo *repository.ProfileRepository, lessons *LessonService, events EventPublisher) *ProgressService {
	return &ProgressService{
		ProgressRepo: progressRepo,
		ProfileRepo:  profileRepo,
		Lessons:      lessons,
		Events:       events,
	}
}

// MarkCompleted 标记课程完成，重复调用只刷新完成时间
func (s *ProgressService) MarkCompleted(ctx context.Context, studentID, lessonID string) (*model.StudentProgress, error) {
	lesson, err := s.Lessons.Get(lessonID)
	if err != nil {
		return nil, err
	}

	progress, err := s.ProgressRepo.MarkCompleted(studentID, lessonID, time.Now())
	if err != nil {
		return nil, errors.Wrap(err, "mark lesson completed")
	}
	monitoring.LessonCompletions.Inc()

	if s.Events != nil {
		s.Events.Publish(ctx, EventLessonCompleted, map[string]interface{}{
			"studentId":   studentID,
			"lessonId":    lessonID,
			"lessonTitle": lesson.Title,
		})
	}
	return progress, nil
}

// LessonProgress 没有记录时返回未完成的空进度
func (s *ProgressService) LessonProgress(studentID, lessonID string) (*model.StudentProgress, error) {
	if _, err := s.Lessons.Get(lessonID); err != nil {
		return nil, err
	}
	progress, err := s.ProgressRepo.FindByStudentAndLesson(studentID, lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.StudentProgress{StudentID: studentID, LessonID: lessonID}, nil
		}
		return nil, errors.Wrap(err, "find progress")
	}
	return progress, nil
}

// Dashboard 学生首页：课程列表和完成百分比（四舍五入）
func (s *ProgressService) Dashboard(ctx context.Context, studentID string) (*model.StudentDashboard, error) {
	profile, err := s.ProfileRepo.FindByID(studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProfileNotFound
		}
		return nil, errors.Wrap(err, "find profile")
	}

	lessons, err := s.Lessons.ListForStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	completed := 0
	for _, l := range lessons {
		if l.Completed {
			completed++
		}
	}

	return &model.StudentDashboard{
		Profile:         profile,
		Lessons:         lessons,
		CompletedCount:  completed,
		TotalLessons:    len(lessons),
		ProgressPercent: Percent(int64(completed), int64(len(lessons))),
	}, nil
}

// Percent 整数百分比，分母为 0 时返回 0
func Percent(part, total int64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) * 100 / float64(total)))
}
