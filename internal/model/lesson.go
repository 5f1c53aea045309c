package model

import (
	"gorm.io/datatypes"
)

// Lesson 课程，AnimationConfig 是该课程可视化组件的初始参数
// swagger:model Lesson
type Lesson struct {
	Base
	Title           string            `gorm:"size:200;not null" json:"title"`
	Content         string            `gorm:"type:text" json:"content"`
	AnimationType   string            `gorm:"size:50;index" json:"animationType"`
	AnimationConfig datatypes.JSONMap `gorm:"type:json" json:"animationConfig" swaggertype:"object"`
	VideoURL        string            `gorm:"size:500" json:"videoUrl,omitempty"`
	LessonOrder     int               `gorm:"not null;default:0;index" json:"lessonOrder"`
}

func (Lesson) TableName() string {
	return "lessons"
}
