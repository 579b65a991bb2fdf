package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedEngine() *Engine {
	e := NewEngine(2)
	e.Records = RecordBuilder{
		NewID: func() string { return "fixed" },
		Now:   func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
	}
	return e
}

func TestEngineSingleChoiceScenario(t *testing.T) {
	questions := []Question{{ID: "q1", Type: SingleChoice, CorrectAnswer: "B", Difficulty: 3}}

	out, err := fixedEngine().Evaluate(questions, map[string]string{"q1": "B"}, "u1")
	require.NoError(t, err)

	require.Len(t, out.Results, 1)
	assert.True(t, out.Results[0].IsCorrect)
	assert.Equal(t, 1.0, out.Results[0].Accuracy)
	assert.Equal(t, 6, out.Results[0].AwardedScore)

	assert.Equal(t, "fixed", out.Summary.SubmissionID)
	assert.Equal(t, "2026-01-02T03:04:05.000Z", out.Summary.Timestamp)
	assert.Equal(t, 6, out.Summary.TotalScore)
	assert.Equal(t, 100, out.Summary.PercentageScore)
	require.Len(t, out.Records, 1)
	assert.Equal(t, "B", out.Records[0].InputAnswer)
}

func TestEngineErrorsReturnNoOutcome(t *testing.T) {
	out, err := fixedEngine().Evaluate(nil, map[string]string{"q1": "B"}, "u1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, out)

	out, err = fixedEngine().Evaluate(sampleQuestions(), nil, "u1")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, out)
}

func TestEngineSummaryInvariants(t *testing.T) {
	answers := map[string]string{"q1": "A", "q2": "万有引力", "q3": "惯性 加速度", "q4": "", "q5": "对"}

	out, err := fixedEngine().Evaluate(sampleQuestions(), answers, "u1")
	require.NoError(t, err)

	s := out.Summary
	assert.Equal(t, len(sampleQuestions()), s.TotalQuestions)
	assert.Equal(t, s.TotalQuestions, s.CorrectCount+s.WrongCount)
	assert.Equal(t, Percentage(s.CorrectCount, s.TotalQuestions), s.PercentageScore)
	assert.Len(t, out.Records, s.TotalQuestions)
}
