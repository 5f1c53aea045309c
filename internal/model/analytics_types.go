package model

// AnalyticsOverview 管理端统计
type AnalyticsOverview struct {
	TotalStudents      int64            `json:"totalStudents"`
	TotalLessons       int64            `json:"totalLessons"`
	TotalHomework      int64            `json:"totalHomework"`
	Completions        int64            `json:"completions"`
	CompletionRate     float64          `json:"completionRate"` // 完成数 / (学生数 × 课程数) × 100
	Submissions        int64            `json:"submissions"`
	GradedSubmissions  int64            `json:"gradedSubmissions"`
	AverageScore       float64          `json:"averageScore"`
	AttendanceDate     string           `json:"attendanceDate"`
	AttendanceRate     float64          `json:"attendanceRate"` // 出勤 / 已点名
	AttendanceByStatus map[string]int64 `json:"attendanceByStatus"`
}

// LessonCompletionStat 单节课完成情况
type LessonCompletionStat struct {
	LessonID    string `json:"lessonId"`
	Title       string `json:"title"`
	LessonOrder int    `json:"lessonOrder"`
	Completed   int64  `json:"completed"`
}
