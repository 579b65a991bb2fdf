package repository

import (
	"context"

	"quiz_scoring_backend/internal/model"

	"gorm.io/gorm"
)

type AnswerRecordRepository struct {
	DB *gorm.DB
}

func NewAnswerRecordRepository(db *gorm.DB) *AnswerRecordRepository {
	return &AnswerRecordRepository{DB: db}
}

// Insert 单条写入，各记录互不依赖
func (r *AnswerRecordRepository) Insert(ctx context.Context, record *model.AnswerRecord) error {
	return r.DB.WithContext(ctx).Create(record).Error
}

func (r *AnswerRecordRepository) ListBySubmission(ctx context.Context, submissionID string) ([]model.AnswerRecord, error) {
	var records []model.AnswerRecord
	err := r.DB.WithContext(ctx).
		Where("submission_id = ?", submissionID).
		Order("created_at asc, question_id asc").
		Find(&records).Error
	return records, err
}

func (r *AnswerRecordRepository) ListByUser(ctx context.Context, userID string, page, limit int) ([]model.AnswerRecord, int64, error) {
	var total int64
	query := r.DB.WithContext(ctx).Model(&model.AnswerRecord{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []model.AnswerRecord
	offset := (page - 1) * limit
	err := query.Order("created_at desc, question_id asc").Offset(offset).Limit(limit).Find(&records).Error
	return records, total, err
}
