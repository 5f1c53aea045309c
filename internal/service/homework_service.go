package service

import (
	"context"
	"io"
	"strings"
	"time"

	"math_edu_backend/internal/config"
	"math_edu_backend/internal/model"
	"math_edu_backend/internal/repository"
	"math_edu_backend/internal/util"
	"math_edu_backend/pkg/logger"
	"math_edu_backend/pkg/monitoring"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HomeworkInput 管理端布置作业
type HomeworkInput struct {
	LessonID    string
	Title       string
	Description string
	DueDate     time.Time
}

type HomeworkService struct {
	HomeworkRepo   *repository.HomeworkRepository
	SubmissionRepo *repository.SubmissionRepository
	GradeRepo      *repository.GradeRepository
	ProfileRepo    *repository.ProfileRepository
	Lessons        *LessonService
	Storage        *StorageService
	Events         EventPublisher
	MaxUploadBytes int64
}

func NewHomeworkService(
	homeworkRepo *repository.HomeworkRepository,
	submissionRepo *repository.SubmissionRepository,
	gradeRepo *repository.GradeRepository,
	profileRepo *repository.ProfileRepository,
	lessons *LessonService,
	storage *StorageService,
	events EventPublisher,
	cfg *config.StorageConfig,
) *HomeworkService {
	return &HomeworkService{
		HomeworkRepo:   homeworkRepo,
		SubmissionRepo: submissionRepo,
		GradeRepo:      gradeRepo,
		ProfileRepo:    profileRepo,
		Lessons:        lessons,
		Storage:        storage,
		Events:         events,
		MaxUploadBytes: cfg.MaxUploadMB << 20,
	}
}

func (s *HomeworkService) Get(id string) (*model.Homework, error) {
	hw, err := s.HomeworkRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrHomeworkNotFound
		}
		return nil, errors.Wrap(err, "find homework")
	}
	return hw, nil
}

func (s *HomeworkService) List(lessonID string) ([]model.Homework, error) {
	list, err := s.HomeworkRepo.List(lessonID)
	if err != nil {
		return nil, errors.Wrap(err, "list homework")
	}
	return list, nil
}

func (s *HomeworkService) Create(in HomeworkInput) (*model.Homework, error) {
	lesson, err := s.Lessons.Get(in.LessonID)
	if err != nil {
		return nil, err
	}
	hw := &model.Homework{
		LessonID:    lesson.ID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		DueDate:     in.DueDate,
	}
	if err := s.HomeworkRepo.Create(hw); err != nil {
		return nil, errors.Wrap(err, "create homework")
	}
	hw.Lesson = lesson
	return hw, nil
}

func (s *HomeworkService) Update(id string, in HomeworkInput) (*model.Homework, error) {
	hw, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if in.LessonID != "" && in.LessonID != hw.LessonID {
		lesson, err := s.Lessons.Get(in.LessonID)
		if err != nil {
			return nil, err
		}
		hw.LessonID = lesson.ID
		hw.Lesson = lesson
	}
	hw.Title = strings.TrimSpace(in.Title)
	hw.Description = in.Description
	hw.DueDate = in.DueDate
	if err := s.HomeworkRepo.Update(hw); err != nil {
		return nil, errors.Wrap(err, "update homework")
	}
	return hw, nil
}

func (s *HomeworkService) Delete(id string) error {
	if err := s.HomeworkRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrHomeworkNotFound
		}
		return errors.Wrap(err, "delete homework")
	}
	return nil
}

// Detail 学生作业页：作业及所属课程、本人提交和成绩、是否已过截止时间
func (s *HomeworkService) Detail(studentID, homeworkID string) (*model.HomeworkDetail, error) {
	hw, err := s.Get(homeworkID)
	if err != nil {
		return nil, err
	}
	detail := &model.HomeworkDetail{Homework: hw, Overdue: hw.IsOverdue(time.Now())}

	sub, err := s.findSubmission(homeworkID, studentID)
	if err != nil {
		return nil, err
	}
	if sub != nil {
		detail.Submission = sub
		detail.Grade = sub.Grade
	}
	return detail, nil
}

func (s *HomeworkService) findSubmission(homeworkID, studentID string) (*model.HomeworkSubmission, error) {
	sub, err := s.SubmissionRepo.FindByHomeworkAndStudent(homeworkID, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find submission")
	}
	return sub, nil
}

// Submit 提交文字答案；空白内容拒绝，已有附件保留。截止后仍可提交，由 Overdue 标记
func (s *HomeworkService) Submit(ctx context.Context, studentID, homeworkID, text string) (*model.HomeworkSubmission, error) {
	if strings.TrimSpace(text) == "" {
		return nil, util.ErrEmptySubmission
	}
	hw, err := s.Get(homeworkID)
	if err != nil {
		return nil, err
	}
	existing, err := s.findSubmission(homeworkID, studentID)
	if err != nil {
		return nil, err
	}

	sub := &model.HomeworkSubmission{
		HomeworkID:     homeworkID,
		StudentID:      studentID,
		SubmissionText: text,
		SubmittedAt:    time.Now(),
	}
	if existing != nil {
		sub.FileURL = existing.FileURL
	}
	return s.save(ctx, hw, sub, "text")
}

// UploadAttachment 校验大小、扩展名和内容类型后存储附件，已有文字答案保留
func (s *HomeworkService) UploadAttachment(ctx context.Context, studentID, homeworkID, filename string, size int64, file io.ReadSeeker) (*model.HomeworkSubmission, error) {
	if s.MaxUploadBytes > 0 && size > s.MaxUploadBytes {
		return nil, util.ErrFileTooLarge
	}
	if !util.HasAllowedExtension(filename, util.AllowedHomeworkExtensions) {
		return nil, util.ErrUnsupportedFileType
	}
	contentType, err := util.SniffContentType(file, util.AllowedHomeworkMimeTypes)
	if err != nil {
		return nil, err
	}

	hw, err := s.Get(homeworkID)
	if err != nil {
		return nil, err
	}
	existing, err := s.findSubmission(homeworkID, studentID)
	if err != nil {
		return nil, err
	}

	key := SubmissionKey(homeworkID, studentID, filename, model.GenerateUUID())
	url, err := s.Storage.Upload(ctx, key, file, size, contentType)
	if err != nil {
		return nil, err
	}

	sub := &model.HomeworkSubmission{
		HomeworkID:  homeworkID,
		StudentID:   studentID,
		FileURL:     url,
		SubmittedAt: time.Now(),
	}
	if existing != nil {
		sub.SubmissionText = existing.SubmissionText
	}
	return s.save(ctx, hw, sub, "file")
}

func (s *HomeworkService) save(ctx context.Context, hw *model.Homework, sub *model.HomeworkSubmission, kind string) (*model.HomeworkSubmission, error) {
	saved, err := s.SubmissionRepo.Upsert(sub)
	if err != nil {
		return nil, errors.Wrap(err, "save submission")
	}
	monitoring.HomeworkSubmissions.WithLabelValues(kind).Inc()
	logger.Log.Info("Homework submitted",
		zap.String("homeworkId", hw.ID),
		zap.String("studentId", sub.StudentID),
		zap.String("kind", kind),
	)

	if s.Events != nil {
		s.Events.Publish(ctx, EventSubmissionCreated, map[string]interface{}{
			"submissionId":  saved.ID,
			"homeworkId":    hw.ID,
			"homeworkTitle": hw.Title,
			"studentId":     sub.StudentID,
			"overdue":       hw.IsOverdue(saved.SubmittedAt),
		})
	}
	return saved, nil
}

// ListSubmissions 管理端按课程、学生或作业筛选提交
func (s *HomeworkService) ListSubmissions(filter repository.SubmissionFilter) ([]model.HomeworkSubmission, error) {
	list, err := s.SubmissionRepo.List(filter)
	if err != nil {
		return nil, errors.Wrap(err, "list submissions")
	}
	return list, nil
}

// Grade 评分 0..100，重新评分覆盖原成绩
func (s *HomeworkService) Grade(ctx context.Context, graderID, submissionID string, score int, feedback string) (*model.Grade, error) {
	if score < model.MinScore || score > model.MaxScore {
		return nil, util.ErrInvalidScore
	}
	sub, err := s.SubmissionRepo.FindByID(submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubmissionNotFound
		}
		return nil, errors.Wrap(err, "find submission")
	}

	grade, err := s.GradeRepo.Upsert(&model.Grade{
		SubmissionID: sub.ID,
		Score:        score,
		Feedback:     strings.TrimSpace(feedback),
		GradedBy:     graderID,
		GradedAt:     time.Now(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "save grade")
	}
	monitoring.GradesRecorded.Inc()

	if s.Events != nil {
		s.Events.Publish(ctx, EventSubmissionGraded, map[string]interface{}{
			"submissionId": sub.ID,
			"homeworkId":   sub.HomeworkID,
			"studentId":    sub.StudentID,
			"score":        grade.Score,
		})
	}
	return grade, nil
}
