package scoring

// Outcome 一次提交的完整评分产出
type Outcome struct {
	Summary SubmissionSummary  `json:"summary"`
	Results []EvaluationResult `json:"results"`
	Records []AnswerRecord     `json:"records"`
}

// Engine 评分 → 汇总 → 生成审计记录，不做任何 I/O
type Engine struct {
	Evaluator Evaluator
	Records   RecordBuilder
}

func NewEngine(workers int) *Engine {
	return &Engine{Evaluator: Evaluator{Workers: workers}}
}

// Evaluate 失败时不返回任何部分结果
func (e *Engine) Evaluate(questions []Question, answers map[string]string, userID string) (*Outcome, error) {
	results, err := e.Evaluator.Evaluate(questions, answers)
	if err != nil {
		return nil, err
	}

	summary, records := e.Records.Build(userID, Aggregate(results), results, answers)
	return &Outcome{
		Summary: summary,
		Results: results,
		Records: records,
	}, nil
}
