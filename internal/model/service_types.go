package model

import (
	"time"

	"math_edu_backend/internal/animation"
)

// Session 登录态：身份、资料以及前端的落地页
type Session struct {
	Token       string    `json:"token,omitempty"`
	ExpiresAt   time.Time `json:"expiresAt,omitempty"`
	User        *User     `json:"user"`
	Profile     *Profile  `json:"profile"`
	LandingPath string    `json:"landingPath"`
}

// LessonSummary 课程列表项
type LessonSummary struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Excerpt       string `json:"excerpt"`
	AnimationType string `json:"animationType"`
	LessonOrder   int    `json:"lessonOrder"`
	HasVideo      bool   `json:"hasVideo"`
	Completed     bool   `json:"completed"`
}

// LessonDetail 课程详情页数据
type LessonDetail struct {
	Lesson        *Lesson           `json:"lesson"`
	ContentHTML   string            `json:"contentHtml"`
	Visualization *animation.Result `json:"visualization"`
	Completed     bool              `json:"completed"`
	Homework      []Homework        `json:"homework"`
}

// StudentDashboard 学生首页
type StudentDashboard struct {
	Profile         *Profile        `json:"profile"`
	Lessons         []LessonSummary `json:"lessons"`
	CompletedCount  int             `json:"completedCount"`
	TotalLessons    int             `json:"totalLessons"`
	ProgressPercent int             `json:"progressPercent"`
}

// HomeworkDetail 学生作业页：作业、课程、自己的提交和评分
type HomeworkDetail struct {
	Homework   *Homework           `json:"homework"`
	Submission *HomeworkSubmission `json:"submission,omitempty"`
	Grade      *Grade              `json:"grade,omitempty"`
	Overdue    bool                `json:"overdue"`
}

// AttendanceEntry 某天的点名表中的一行，未点名时 Status 为空
type AttendanceEntry struct {
	Student *Profile         `json:"student"`
	Date    string           `json:"date"`
	Status  AttendanceStatus `json:"status,omitempty"`
	Marked  bool             `json:"marked"`
}
