package repository

import (
	"math_edu_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

// SubmissionFilter 管理端筛选条件，空字段不参与过滤
type SubmissionFilter struct {
	LessonID   string
	StudentID  string
	HomeworkID string
}

// Upsert 以 (homework_id, student_id) 为键，重复提交覆盖内容和提交时间
func (r *SubmissionRepository) Upsert(sub *model.HomeworkSubmission) (*model.HomeworkSubmission, error) {
	err := r.DB.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "homework_id"}, {Name: "student_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"submission_text": sub.SubmissionText,
			"file_url":        sub.FileURL,
			"submitted_at":    sub.SubmittedAt,
			"updated_at":      sub.SubmittedAt,
			"deleted_at":      nil,
		}),
	}).Create(sub).Error
	if err != nil {
		return nil, err
	}
	return r.FindByHomeworkAndStudent(sub.HomeworkID, sub.StudentID)
}

func (r *SubmissionRepository) FindByID(id string) (*model.HomeworkSubmission, error) {
	var sub model.HomeworkSubmission
	err := r.DB.Preload("Homework").Preload("Student").Preload("Grade").
		Where("id = ?", id).First(&sub).Error
	return &sub, err
}

func (r *SubmissionRepository) FindByHomeworkAndStudent(homeworkID, studentID string) (*model.HomeworkSubmission, error) {
	var sub model.HomeworkSubmission
	err := r.DB.Preload("Grade").
		Where("homework_id = ? AND student_id = ?", homeworkID, studentID).
		First(&sub).Error
	return &sub, err
}

func (r *SubmissionRepository) List(filter SubmissionFilter) ([]model.HomeworkSubmission, error) {
	var list []model.HomeworkSubmission
	query := r.DB.Model(&model.HomeworkSubmission{}).
		Preload("Homework").Preload("Homework.Lesson").Preload("Student").Preload("Grade").
		Order("homework_submissions.submitted_at DESC")
	if filter.LessonID != "" {
		query = query.
			Joins("JOIN homework ON homework.id = homework_submissions.homework_id AND homework.deleted_at IS NULL").
			Where("homework.lesson_id = ?", filter.LessonID)
	}
	if filter.StudentID != "" {
		query = query.Where("homework_submissions.student_id = ?", filter.StudentID)
	}
	if filter.HomeworkID != "" {
		query = query.Where("homework_submissions.homework_id = ?", filter.HomeworkID)
	}
	err := query.Find(&list).Error
	return list, err
}

func (r *SubmissionRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.HomeworkSubmission{}).Count(&count).Error
	return count, err
}
