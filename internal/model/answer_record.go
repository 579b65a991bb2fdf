package model

import "quiz_scoring_backend/internal/scoring"

// AnswerRecord 作答审计记录，每次提交每题一行，写入后不再修改
type AnswerRecord struct {
	UUIDBase
	SubmissionID string  `gorm:"size:36;not null;index;uniqueIndex:idx_submission_question" json:"submissionId"`
	SubmittedAt  string  `gorm:"size:32;not null" json:"timestamp"`
	UserID       string  `gorm:"size:64;not null;index" json:"userId"`
	QuestionID   string  `gorm:"size:64;not null;uniqueIndex:idx_submission_question" json:"questionId"`
	InputAnswer  string  `gorm:"type:text" json:"inputAnswer"`
	Accuracy     float64 `gorm:"not null;default:0" json:"accuracy"`
}

func (AnswerRecord) TableName() string {
	return "quiz_answer_records"
}

func NewAnswerRecord(r scoring.AnswerRecord) *AnswerRecord {
	return &AnswerRecord{
		SubmissionID: r.SubmissionID,
		SubmittedAt:  r.Timestamp,
		UserID:       r.UserID,
		QuestionID:   r.QuestionID,
		InputAnswer:  r.InputAnswer,
		Accuracy:     r.Accuracy,
	}
}
