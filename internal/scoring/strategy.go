package scoring

import "strings"

const (
	// 填空题准确率达到该值即判对
	FillBlankPassRatio = 0.5
	// 简答/计算题准确率需超过该值才判对
	KeywordPassRatio = 0.3
)

// Match 单题匹配结果
type Match struct {
	Accuracy  float64
	IsCorrect bool
}

// Matcher 比对提交答案与标准答案
type Matcher interface {
	Match(submitted, correct string) Match
}

// MatcherFor 按题型选择匹配策略
func MatcherFor(t QuestionType) Matcher {
	switch t {
	case SingleChoice:
		return exactMatcher{}
	case FillBlank:
		return blankMatcher{}
	case ShortAnswer, Calculation:
		return keywordLineMatcher{}
	default:
		return exactMatcher{}
	}
}

// exactMatcher 完全相等（区分大小写），没有部分分
type exactMatcher struct{}

func (exactMatcher) Match(submitted, correct string) Match {
	if submitted == correct {
		return Match{Accuracy: 1, IsCorrect: true}
	}
	return Match{}
}

// blankMatcher 填空题：提交的每个词只要与某个标准词互相包含即算命中
type blankMatcher struct{}

func (blankMatcher) Match(submitted, correct string) Match {
	if strings.TrimSpace(submitted) == "" || strings.TrimSpace(correct) == "" {
		return Match{}
	}

	want := splitBlanks(correct)
	got := splitBlanks(submitted)

	matched := 0
	for _, g := range got {
		for _, w := range want {
			if strings.Contains(w, g) || strings.Contains(g, w) {
				matched++
				break
			}
		}
	}

	acc := ratio(matched, len(want))
	return Match{Accuracy: acc, IsCorrect: acc >= FillBlankPassRatio}
}

// keywordLineMatcher 简答/计算题：标准答案每行视为一个得分点，
// 该行任一关键词出现在提交内容中即得分
type keywordLineMatcher struct{}

func (keywordLineMatcher) Match(submitted, correct string) Match {
	if strings.TrimSpace(submitted) == "" || strings.TrimSpace(correct) == "" {
		return Match{}
	}

	lines := answerLines(correct)
	matched := 0
	for _, line := range lines {
		for _, kw := range lineKeywords(line) {
			if strings.Contains(submitted, kw) {
				matched++
				break
			}
		}
	}

	acc := ratio(matched, len(lines))
	return Match{Accuracy: acc, IsCorrect: acc > KeywordPassRatio}
}

// ratio 返回 n/d，限制在 [0,1]
func ratio(n, d int) float64 {
	if d <= 0 || n <= 0 {
		return 0
	}
	if n >= d {
		return 1
	}
	return float64(n) / float64(d)
}
