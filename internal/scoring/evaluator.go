package scoring

import "github.com/sourcegraph/conc/iter"

// EvaluationResult 单题评分结果
type EvaluationResult struct {
	QuestionID   string       `json:"questionId"`
	Type         QuestionType `json:"type"`
	IsCorrect    bool         `json:"isCorrect"`
	Accuracy     float64      `json:"accuracy"`
	BaseScore    int          `json:"baseScore"`
	AwardedScore int          `json:"awardedScore"`
}

// EvaluateQuestion 对单题评分，纯函数
func EvaluateQuestion(q Question, submitted string) EvaluationResult {
	m := MatcherFor(q.Type).Match(submitted, q.CorrectAnswer)
	base := BaseScore(q.Type, q.Difficulty)
	return EvaluationResult{
		QuestionID:   q.ID,
		Type:         q.Type,
		IsCorrect:    m.IsCorrect,
		Accuracy:     m.Accuracy,
		BaseScore:    base,
		AwardedScore: AwardedScore(q.Type, base, m),
	}
}

// Evaluator 批量评分。各题互不依赖，Workers 控制并发度（<=0 时取 GOMAXPROCS）
type Evaluator struct {
	Workers int
}

// Evaluate 结果顺序与 questions 一致；answers 中没有的题目按空答案处理
func (e Evaluator) Evaluate(questions []Question, answers map[string]string) ([]EvaluationResult, error) {
	if len(answers) == 0 {
		return nil, ErrInvalidInput
	}
	if len(questions) == 0 {
		return nil, ErrNotFound
	}

	workers := e.Workers
	if workers < 0 {
		workers = 0
	}
	mapper := iter.Mapper[Question, EvaluationResult]{MaxGoroutines: workers}
	return mapper.Map(questions, func(q *Question) EvaluationResult {
		return EvaluateQuestion(*q, answers[q.ID])
	}), nil
}
