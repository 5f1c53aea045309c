package repository

import (
	"math_edu_backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// MarkCompleted 以 (student_id, lesson_id) 为键 upsert，重复调用结果不变
func (r *ProgressRepository) MarkCompleted(studentID, lessonID string, at time.Time) (*model.StudentProgress, error) {
	progress := &model.StudentProgress{
		StudentID:   studentID,
		LessonID:    lessonID,
		Completed:   true,
		CompletedAt: &at,
	}
	err := r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "student_id"}, {Name: "lesson_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"completed":    true,
			"completed_at": at,
			"updated_at":   at,
			"deleted_at":   nil,
		}),
	}).Create(progress).Error
	if err != nil {
		return nil, err
	}
	// 冲突时数据库中保留原有 id，重新读取
	return r.FindByStudentAndLesson(studentID, lessonID)
}

func (r *ProgressRepository) FindByStudentAndLesson(studentID, lessonID string) (*model.StudentProgress, error) {
	var progress model.StudentProgress
	err := r.DB.Where("student_id = ? AND lesson_id = ?", studentID, lessonID).First(&progress).Error
	return &progress, err
}

func (r *ProgressRepository) ListByStudent(studentID string) ([]model.StudentProgress, error) {
	var progress []model.StudentProgress
	err := r.DB.Where("student_id = ?", studentID).Find(&progress).Error
	return progress, err
}

// CountCompleted 全部学生的完成记录数
func (r *ProgressRepository) CountCompleted() (int64, error) {
	var count int64
	err := r.DB.Model(&model.StudentProgress{}).Where("completed = ?", true).Count(&count).Error
	return count, err
}

// CompletionByLesson 每节课的完成人数，没有完成记录的课程计 0
func (r *ProgressRepository) CompletionByLesson() ([]model.LessonCompletionStat, error) {
	var stats []model.LessonCompletionStat
	err := r.DB.Model(&model.Lesson{}).
		Select("lessons.id AS lesson_id, lessons.title, lessons.lesson_order, COUNT(student_progress.id) AS completed").
		Joins("LEFT JOIN student_progress ON student_progress.lesson_id = lessons.id AND student_progress.completed = ? AND student_progress.deleted_at IS NULL", true).
		Group("lessons.id, lessons.title, lessons.lesson_order").
		Order("lessons.lesson_order ASC").
		Scan(&stats).Error
	return stats, err
}
