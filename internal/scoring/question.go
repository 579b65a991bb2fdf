package scoring

import (
	"fmt"
	"strings"
)

// QuestionType 题型，封闭枚举；无法识别的题型统一落到 Unknown
type QuestionType int

const (
	Unknown QuestionType = iota
	SingleChoice
	FillBlank
	ShortAnswer
	Calculation
)

var questionTypeNames = map[QuestionType]string{
	Unknown:      "unknown",
	SingleChoice: "single_choice",
	FillBlank:    "fill_blank",
	ShortAnswer:  "short_answer",
	Calculation:  "calculation",
}

// 题库中常见的中文题型名称
var questionTypeAliases = map[string]QuestionType{
	"单选题": SingleChoice,
	"选择题": SingleChoice,
	"填空题": FillBlank,
	"简答题": ShortAnswer,
	"计算题": Calculation,
}

// ParseQuestionType 解析题型字符串，大小写、连字符与下划线均可
func ParseQuestionType(s string) QuestionType {
	key := strings.TrimSpace(s)
	if t, ok := questionTypeAliases[key]; ok {
		return t
	}
	key = strings.ReplaceAll(strings.ToLower(key), "-", "_")
	for t, name := range questionTypeNames {
		if name == key {
			return t
		}
	}
	return Unknown
}

func (t QuestionType) String() string {
	if name, ok := questionTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("QuestionType(%d)", int(t))
}

func (t QuestionType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *QuestionType) UnmarshalText(text []byte) error {
	*t = ParseQuestionType(string(text))
	return nil
}

// PartialCredit 是否按准确率给部分分
func (t QuestionType) PartialCredit() bool {
	switch t {
	case FillBlank, ShortAnswer, Calculation:
		return true
	default:
		return false
	}
}

// Question 评分时使用的题目视图，评分期间不可变
type Question struct {
	ID            string       `json:"id"`
	Type          QuestionType `json:"type"`
	CorrectAnswer string       `json:"correctAnswer"`
	Difficulty    int          `json:"difficulty"`
}
