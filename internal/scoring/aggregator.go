package scoring

// Tally 一次提交的汇总统计
type Tally struct {
	TotalQuestions  int `json:"totalQuestions"`
	CorrectCount    int `json:"correctCount"`
	WrongCount      int `json:"wrongCount"`
	TotalScore      int `json:"totalScore"`
	PercentageScore int `json:"percentageScore"`
}

func Aggregate(results []EvaluationResult) Tally {
	t := Tally{TotalQuestions: len(results)}
	for _, r := range results {
		if r.IsCorrect {
			t.CorrectCount++
		}
		t.TotalScore += r.AwardedScore
	}
	t.WrongCount = t.TotalQuestions - t.CorrectCount
	t.PercentageScore = Percentage(t.CorrectCount, t.TotalQuestions)
	return t
}

// Percentage 正确率百分比，四舍五入到整数
func Percentage(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return roundHalfUp(float64(correct*100) / float64(total))
}
