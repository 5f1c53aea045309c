package repository

import (
	"math_edu_backend/internal/model"

	"gorm.io/gorm"
)

type ProfileRepository struct {
	DB *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

func (r *ProfileRepository) FindByID(id string) (*model.Profile, error) {
	var profile model.Profile
	err := r.DB.Where("id = ?", id).First(&profile).Error
	return &profile, err
}

// ListByRole 按姓名排序
func (r *ProfileRepository) ListByRole(role model.UserRole) ([]model.Profile, error) {
	var profiles []model.Profile
	err := r.DB.Where("role = ?", role).Order("full_name ASC").Find(&profiles).Error
	return profiles, err
}

func (r *ProfileRepository) CountByRole(role model.UserRole) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Profile{}).Where("role = ?", role).Count(&count).Error
	return count, err
}

func (r *ProfileRepository) Update(profile *model.Profile) error {
	return r.DB.Save(profile).Error
}
