package repository

import (
	"math_edu_backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttendanceRepository struct {
	DB *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{DB: db}
}

// Upsert 以 (student_id, date) 为键，同一天重复点名覆盖状态
func (r *AttendanceRepository) Upsert(a *model.Attendance) (*model.Attendance, error) {
	err := r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "student_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"status":     a.Status,
			"marked_by":  a.MarkedBy,
			"updated_at": time.Now(),
			"deleted_at": nil,
		}),
	}).Create(a).Error
	if err != nil {
		return nil, err
	}
	var saved model.Attendance
	err = r.DB.Where("student_id = ? AND date = ?", a.StudentID, a.Date).First(&saved).Error
	return &saved, err
}

func (r *AttendanceRepository) ListByDate(date string) ([]model.Attendance, error) {
	var list []model.Attendance
	err := r.DB.Where("date = ?", date).Find(&list).Error
	return list, err
}

func (r *AttendanceRepository) ListByStudent(studentID string) ([]model.Attendance, error) {
	var list []model.Attendance
	err := r.DB.Where("student_id = ?", studentID).Order("date DESC").Find(&list).Error
	return list, err
}

// CountByStatus 某天各状态人数
func (r *AttendanceRepository) CountByStatus(date string) (map[string]int64, error) {
	var rows []struct {
		Status string
		Total  int64
	}
	err := r.DB.Model(&model.Attendance{}).
		Select("status, COUNT(*) AS total").
		Where("date = ?", date).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Total
	}
	return out, nil
}
