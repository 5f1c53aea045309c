package service

import (
	"math"

	"math_edu_backend/internal/model"
	"math_edu_backend/internal/repository"
	"math_edu_backend/internal/util"

	"github.com/pkg/errors"
)

type AnalyticsService struct {
	ProfileRepo    *repository.ProfileRepository
	LessonRepo     *repository.LessonRepository
	HomeworkRepo   *repository.HomeworkRepository
	ProgressRepo   *repository.ProgressRepository
	SubmissionRepo *repository.SubmissionRepository
	GradeRepo      *repository.GradeRepository
	AttendanceRepo *repository.AttendanceRepository
}

func NewAnalyticsService(
	profileRepo *repository.ProfileRepository,
	lessonRepo *repository.LessonRepository,
	homeworkRepo *repository.HomeworkRepository,
	progressRepo *repository.ProgressRepository,
	submissionRepo *repository.SubmissionRepository,
	gradeRepo *repository.GradeRepository,
	attendanceRepo *repository.AttendanceRepository,
) *AnalyticsService {
	return &AnalyticsService{
		ProfileRepo:    profileRepo,
		LessonRepo:     lessonRepo,
		HomeworkRepo:   homeworkRepo,
		ProgressRepo:   progressRepo,
		SubmissionRepo: submissionRepo,
		GradeRepo:      gradeRepo,
		AttendanceRepo: attendanceRepo,
	}
}

// Overview 管理端统计，出勤率按 date（默认今天）计算
func (s *AnalyticsService) Overview(date string) (*model.AnalyticsOverview, error) {
	day, err := util.ParseDate(date)
	if err != nil {
		return nil, err
	}

	o := &model.AnalyticsOverview{AttendanceDate: day}
	if o.TotalStudents, err = s.ProfileRepo.CountByRole(model.RoleStudent); err != nil {
		return nil, errors.Wrap(err, "count students")
	}
	if o.TotalLessons, err = s.LessonRepo.Count(); err != nil {
		return nil, errors.Wrap(err, "count lessons")
	}
	if o.TotalHomework, err = s.HomeworkRepo.Count(); err != nil {
		return nil, errors.Wrap(err, "count homework")
	}
	if o.Completions, err = s.ProgressRepo.CountCompleted(); err != nil {
		return nil, errors.Wrap(err, "count completions")
	}
	if o.Submissions, err = s.SubmissionRepo.Count(); err != nil {
		return nil, errors.Wrap(err, "count submissions")
	}
	if o.GradedSubmissions, err = s.GradeRepo.Count(); err != nil {
		return nil, errors.Wrap(err, "count grades")
	}
	avg, err := s.GradeRepo.AverageScore()
	if err != nil {
		return nil, errors.Wrap(err, "average score")
	}
	o.AverageScore = round1(avg)

	o.CompletionRate = rate(o.Completions, o.TotalStudents*o.TotalLessons)

	if o.AttendanceByStatus, err = s.AttendanceRepo.CountByStatus(day); err != nil {
		return nil, errors.Wrap(err, "count attendance")
	}
	var marked int64
	for _, n := range o.AttendanceByStatus {
		marked += n
	}
	o.AttendanceRate = rate(o.AttendanceByStatus[string(model.AttendancePresent)], marked)
	return o, nil
}

func (s *AnalyticsService) LessonCompletion() ([]model.LessonCompletionStat, error) {
	stats, err := s.ProgressRepo.CompletionByLesson()
	if err != nil {
		return nil, errors.Wrap(err, "lesson completion")
	}
	return stats, nil
}

// rate 百分比保留一位小数
func rate(part, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return round1(float64(part) * 100 / float64(total))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
