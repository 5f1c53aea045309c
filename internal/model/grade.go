package model

import (
	"time"
)

const (
	MinScore = 0
	MaxScore = 100
)

// swagger:model Grade
type Grade struct {
	Base
	SubmissionID string    `gorm:"type:varchar(36);not null;uniqueIndex" json:"submissionId"`
	Score        int       `gorm:"not null" json:"score"`
	Feedback     string    `gorm:"type:text" json:"feedback,omitempty"`
	GradedBy     string    `gorm:"type:varchar(36)" json:"gradedBy,omitempty"`
	GradedAt     time.Time `gorm:"not null" json:"gradedAt"`
}

func (Grade) TableName() string {
	return "grades"
}
