package model

import (
	"time"
)

// StudentProgress 每个学生每节课一行
// swagger:model StudentProgress
type StudentProgress struct {
	Base
	StudentID   string     `gorm:"type:varchar(36);not null;uniqueIndex:idx_progress_student_lesson" json:"studentId"`
	LessonID    string     `gorm:"type:varchar(36);not null;uniqueIndex:idx_progress_student_lesson;index" json:"lessonId"`
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

func (StudentProgress) TableName() string {
	return "student_progress"
}
