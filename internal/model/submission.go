package model

import (
	"time"
)

// HomeworkSubmission 每个学生每份作业仅一份，重复提交覆盖
// swagger:model HomeworkSubmission
type HomeworkSubmission struct {
	Base
	HomeworkID     string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_submission_homework_student" json:"homeworkId"`
	StudentID      string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_submission_homework_student;index" json:"studentId"`
	SubmissionText string    `gorm:"type:text" json:"submissionText,omitempty"`
	FileURL        string    `gorm:"size:500" json:"fileUrl,omitempty"`
	SubmittedAt    time.Time `gorm:"not null" json:"submittedAt"`
	Homework       *Homework `gorm:"foreignKey:HomeworkID" json:"homework,omitempty"`
	Student        *Profile  `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Grade          *Grade    `gorm:"foreignKey:SubmissionID" json:"grade,omitempty"`
}

func (HomeworkSubmission) TableName() string {
	return "homework_submissions"
}
