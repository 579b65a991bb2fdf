package repository

import (
	"context"

	"quiz_scoring_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// QuestionSource 按 ID 批量取题
type QuestionSource interface {
	GetByIDs(ctx context.Context, ids []string) ([]model.Question, error)
}

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

// GetByIDs 按 sort_order、id 排序返回；没有匹配时返回空切片
func (r *QuestionRepository) GetByIDs(ctx context.Context, ids []string) ([]model.Question, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var qs []model.Question
	err := r.DB.WithContext(ctx).
		Where("id IN ?", ids).
		Order("sort_order asc, id asc").
		Find(&qs).Error
	return qs, err
}

// Upsert 按主键写入题目，已存在则覆盖
func (r *QuestionRepository) Upsert(ctx context.Context, qs []model.Question) error {
	if len(qs) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&qs).Error
}
