package scoring

import "math"

var typeMultipliers = map[QuestionType]int{
	SingleChoice: 2,
	FillBlank:    3,
	ShortAnswer:  5,
	Calculation:  10,
}

// NormalizeDifficulty 难度缺省或非正数时按 1 处理
func NormalizeDifficulty(difficulty int) int {
	if difficulty <= 0 {
		return 1
	}
	return difficulty
}

// BaseScore 题目满分 = 题型系数 × 难度，未知题型系数为 1
func BaseScore(t QuestionType, difficulty int) int {
	m, ok := typeMultipliers[t]
	if !ok {
		m = 1
	}
	return m * NormalizeDifficulty(difficulty)
}

// AwardedScore 实际得分。判错得 0；部分分题型按 round(满分×准确率)，其余得满分
func AwardedScore(t QuestionType, base int, m Match) int {
	if !m.IsCorrect {
		return 0
	}
	if !t.PartialCredit() {
		return base
	}
	return roundHalfUp(float64(base) * m.Accuracy)
}

func roundHalfUp(v float64) int {
	if v <= 0 {
		return 0
	}
	return int(math.Floor(v + 0.5))
}
