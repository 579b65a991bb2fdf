package model

import (
	"time"

	"quiz_scoring_backend/internal/scoring"

	"gorm.io/gorm"
)

// Question 题库中的题目
type Question struct {
	ID           string         `gorm:"primaryKey;size:64" json:"id" yaml:"id"`
	QuestionType string         `gorm:"size:50;not null" json:"questionType" yaml:"type"` // single_choice, fill_blank, short_answer, calculation
	Content      string         `gorm:"type:text" json:"content" yaml:"content"`
	Answer       string         `gorm:"type:text" json:"answer" yaml:"answer"`
	Difficulty   int            `gorm:"default:1" json:"difficulty" yaml:"difficulty"`
	SortOrder    int            `gorm:"default:0;index" json:"sortOrder" yaml:"order"`
	CreatedAt    time.Time      `json:"createdAt" yaml:"-"`
	UpdatedAt    time.Time      `json:"updatedAt" yaml:"-"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-" yaml:"-"`
}

func (Question) TableName() string {
	return "quiz_questions"
}

// ToScoring 转换为评分使用的题目视图
func (q Question) ToScoring() scoring.Question {
	return scoring.Question{
		ID:            q.ID,
		Type:          scoring.ParseQuestionType(q.QuestionType),
		CorrectAnswer: q.Answer,
		Difficulty:    q.Difficulty,
	}
}
