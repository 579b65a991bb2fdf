package repository

import (
	"context"
	"fmt"
	"os"
	"sort"

	"quiz_scoring_backend/internal/model"

	"gopkg.in/yaml.v3"
)

// QuestionBank YAML 题库文件格式
type QuestionBank struct {
	Questions []model.Question `yaml:"questions"`
}

// LoadQuestionBank 读取 YAML 题库，ID 不能为空或重复
func LoadQuestionBank(path string) ([]model.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var bank QuestionBank
	if err := yaml.Unmarshal(data, &bank); err != nil {
		return nil, fmt.Errorf("parse question bank %s: %w", path, err)
	}

	seen := make(map[string]bool, len(bank.Questions))
	for i, q := range bank.Questions {
		if q.ID == "" {
			return nil, fmt.Errorf("question bank %s: question #%d has no id", path, i+1)
		}
		if seen[q.ID] {
			return nil, fmt.Errorf("question bank %s: duplicate id %q", path, q.ID)
		}
		seen[q.ID] = true
	}
	return bank.Questions, nil
}

// MemoryQuestionRepository 内存题库，用于文件题库和离线评分
type MemoryQuestionRepository struct {
	questions []model.Question
	index     map[string]int
}

func NewMemoryQuestionRepository(qs []model.Question) *MemoryQuestionRepository {
	sorted := make([]model.Question, len(qs))
	copy(sorted, qs)
	sortQuestions(sorted)

	index := make(map[string]int, len(sorted))
	for i, q := range sorted {
		index[q.ID] = i
	}
	return &MemoryQuestionRepository{questions: sorted, index: index}
}

func NewFileQuestionRepository(path string) (*MemoryQuestionRepository, error) {
	qs, err := LoadQuestionBank(path)
	if err != nil {
		return nil, err
	}
	return NewMemoryQuestionRepository(qs), nil
}

func (r *MemoryQuestionRepository) GetByIDs(ctx context.Context, ids []string) ([]model.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 按题库中的位置取题，保持与数据库相同的排序
	positions := make([]int, 0, len(ids))
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		i, ok := r.index[id]
		if !ok || seen[i] {
			continue
		}
		seen[i] = true
		positions = append(positions, i)
	}
	sort.Ints(positions)

	out := make([]model.Question, 0, len(positions))
	for _, i := range positions {
		out = append(out, r.questions[i])
	}
	return out, nil
}

func (r *MemoryQuestionRepository) Len() int {
	return len(r.questions)
}
