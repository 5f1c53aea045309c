package model

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceExcused AttendanceStatus = "excused"
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceExcused:
		return true
	}
	return false
}

// Attendance 每个学生每天一行，Date 格式为 YYYY-MM-DD
// swagger:model Attendance
type Attendance struct {
	Base
	StudentID string           `gorm:"type:varchar(36);not null;uniqueIndex:idx_attendance_student_date" json:"studentId"`
	Date      string           `gorm:"size:10;not null;uniqueIndex:idx_attendance_student_date;index" json:"date"`
	Status    AttendanceStatus `gorm:"size:10;not null" json:"status"`
	MarkedBy  string           `gorm:"type:varchar(36)" json:"markedBy,omitempty"`
}

func (Attendance) TableName() string {
	return "attendance"
}
