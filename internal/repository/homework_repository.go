package repository

import (
	"math_edu_backend/internal/model"

	"gorm.io/gorm"
)

type HomeworkRepository struct {
	DB *gorm.DB
}

func NewHomeworkRepository(db *gorm.DB) *HomeworkRepository {
	return &HomeworkRepository{DB: db}
}

func (r *HomeworkRepository) Create(hw *model.Homework) error {
	return r.DB.Create(hw).Error
}

func (r *HomeworkRepository) FindByID(id string) (*model.Homework, error) {
	var hw model.Homework
	err := r.DB.Preload("Lesson").Where("id = ?", id).First(&hw).Error
	return &hw, err
}

// List lessonID 为空时返回全部作业，按截止时间升序
func (r *HomeworkRepository) List(lessonID string) ([]model.Homework, error) {
	var list []model.Homework
	query := r.DB.Preload("Lesson").Order("due_date ASC")
	if lessonID != "" {
		query = query.Where("lesson_id = ?", lessonID)
	}
	err := query.Find(&list).Error
	return list, err
}

func (r *HomeworkRepository) Update(hw *model.Homework) error {
	return r.DB.Omit("Lesson").Save(hw).Error
}

func (r *HomeworkRepository) Delete(id string) error {
	res := r.DB.Where("id = ?", id).Delete(&model.Homework{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *HomeworkRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Homework{}).Count(&count).Error
	return count, err
}
