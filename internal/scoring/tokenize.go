package scoring

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

func isBlankSeparator(r rune) bool {
	switch r {
	case ',', '，', '、':
		return true
	}
	return unicode.IsSpace(r)
}

func isKeywordSeparator(r rune) bool {
	switch r {
	case ',', '，', ':', '：', '、', '。', ';', '；':
		return true
	}
	return unicode.IsSpace(r)
}

// splitBlanks 按逗号（半角/全角）、顿号和空白切分填空答案
func splitBlanks(s string) []string {
	return strings.FieldsFunc(s, isBlankSeparator)
}

// answerLines 标准答案按行切分，空行不计入
func answerLines(s string) []string {
	raw := strings.Split(s, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// lineKeywords 提取一行中的关键词，单字符词丢弃
func lineKeywords(line string) []string {
	fields := strings.FieldsFunc(line, isKeywordSeparator)
	keywords := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) > 1 {
			keywords = append(keywords, f)
		}
	}
	return keywords
}
