package model

import (
	"time"
)

// swagger:model Homework
type Homework struct {
	Base
	LessonID    string    `gorm:"type:varchar(36);not null;index" json:"lessonId"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	DueDate     time.Time `gorm:"not null;index" json:"dueDate"`
	Lesson      *Lesson   `gorm:"foreignKey:LessonID" json:"lesson,omitempty"`
}

func (Homework) TableName() string {
	return "homework"
}

// IsOverdue 截止时间已过
func (h *Homework) IsOverdue(now time.Time) bool {
	return now.After(h.DueDate)
}
