package scoring

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput       = errors.New("no answers submitted")
	ErrNotFound           = errors.New("no questions found for submitted ids")
	ErrCatalogUnavailable = errors.New("question catalog unavailable")
)

// PersistenceFailure 单条作答记录写入失败；只收集，不影响已计算的成绩
type PersistenceFailure struct {
	SubmissionID string `json:"submissionId"`
	QuestionID   string `json:"questionId"`
	Reason       string `json:"reason"`
}

func (f PersistenceFailure) Error() string {
	return fmt.Sprintf("persist answer record %s/%s: %s", f.SubmissionID, f.QuestionID, f.Reason)
}
