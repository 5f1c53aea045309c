package repository

import (
	"database/sql"
	"math_edu_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GradeRepository struct {
	DB *gorm.DB
}

func NewGradeRepository(db *gorm.DB) *GradeRepository {
	return &GradeRepository{DB: db}
}

// Upsert 每份提交只有一个成绩，重新评分覆盖原成绩
func (r *GradeRepository) Upsert(grade *model.Grade) (*model.Grade, error) {
	err := r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "submission_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"score":      grade.Score,
			"feedback":   grade.Feedback,
			"graded_by":  grade.GradedBy,
			"graded_at":  grade.GradedAt,
			"updated_at": grade.GradedAt,
			"deleted_at": nil,
		}),
	}).Create(grade).Error
	if err != nil {
		return nil, err
	}
	return r.FindBySubmission(grade.SubmissionID)
}

func (r *GradeRepository) FindBySubmission(submissionID string) (*model.Grade, error) {
	var grade model.Grade
	err := r.DB.Where("submission_id = ?", submissionID).First(&grade).Error
	return &grade, err
}

func (r *GradeRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Grade{}).Count(&count).Error
	return count, err
}

// AverageScore 没有成绩时为 0
func (r *GradeRepository) AverageScore() (float64, error) {
	var avg sql.NullFloat64
	if err := r.DB.Model(&model.Grade{}).Select("AVG(score)").Row().Scan(&avg); err != nil {
		return 0, err
	}
	return avg.Float64, nil
}
