package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base 所有表共用的主键与时间戳；主键为 UUID 字符串，删除为软删除
type Base struct {
	ID        string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate 调用方未指定 ID 时补一个
func (b *Base) BeforeCreate(*gorm.DB) error {
	if b.ID == "" {
		b.ID = GenerateUUID()
	}
	return nil
}

func GenerateUUID() string {
	return uuid.NewString()
}

// IsUUID 路径参数校验，避免无效 id 打到数据库
func IsUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
