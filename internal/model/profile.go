package model

// Profile 与 User 共用主键
// swagger:model Profile
type Profile struct {
	Base
	Role       UserRole `gorm:"size:20;not null;default:'student';index" json:"role"`
	FullName   string   `gorm:"size:100;not null" json:"fullName"`
	GradeLevel int      `gorm:"not null;default:0" json:"gradeLevel"`
}

func (Profile) TableName() string {
	return "profiles"
}
