package scoring

import (
	"time"

	"github.com/google/uuid"
)

// TimestampLayout ISO-8601，UTC，毫秒精度
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

type SubmissionSummary struct {
	SubmissionID string `json:"submissionId"`
	UserID       string `json:"userId"`
	Timestamp    string `json:"timestamp"`
	Tally
}

// AnswerRecord 每题一条的审计记录，生成后不再修改
type AnswerRecord struct {
	SubmissionID string  `json:"submissionId"`
	Timestamp    string  `json:"timestamp"`
	UserID       string  `json:"userId"`
	QuestionID   string  `json:"questionId"`
	InputAnswer  string  `json:"inputAnswer"`
	Accuracy     float64 `json:"accuracy"`
}

// RecordBuilder 为一批结果生成提交 ID 与时间戳；字段为空时使用 uuid 与当前时间
type RecordBuilder struct {
	NewID func() string
	Now   func() time.Time
}

func (b RecordBuilder) newID() string {
	if b.NewID != nil {
		return b.NewID()
	}
	return uuid.NewString()
}

func (b RecordBuilder) now() time.Time {
	if b.Now != nil {
		return b.Now()
	}
	return time.Now()
}

// Build 同一批记录共享一个提交 ID 和时间戳
func (b RecordBuilder) Build(userID string, tally Tally, results []EvaluationResult, answers map[string]string) (SubmissionSummary, []AnswerRecord) {
	summary := SubmissionSummary{
		SubmissionID: b.newID(),
		UserID:       userID,
		Timestamp:    b.now().UTC().Format(TimestampLayout),
		Tally:        tally,
	}

	records := make([]AnswerRecord, 0, len(results))
	for _, r := range results {
		records = append(records, AnswerRecord{
			SubmissionID: summary.SubmissionID,
			Timestamp:    summary.Timestamp,
			UserID:       userID,
			QuestionID:   r.QuestionID,
			InputAnswer:  answers[r.QuestionID],
			Accuracy:     r.Accuracy,
		})
	}
	return summary, records
}
