package scoring

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuestionType(t *testing.T) {
	tests := []struct {
		in   string
		want QuestionType
	}{
		{"single_choice", SingleChoice},
		{"single-choice", SingleChoice},
		{" Fill_Blank ", FillBlank},
		{"short_answer", ShortAnswer},
		{"calculation", Calculation},
		{"填空题", FillBlank},
		{"计算题", Calculation},
		{"essay", Unknown},
		{"", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseQuestionType(tt.in))
		})
	}
}

func TestQuestionTypeJSON(t *testing.T) {
	data, err := json.Marshal(Question{ID: "q1", Type: ShortAnswer})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"short_answer"`)

	var q Question
	require.NoError(t, json.Unmarshal([]byte(`{"id":"q2","type":"fill-blank"}`), &q))
	assert.Equal(t, FillBlank, q.Type)
}

func TestPartialCredit(t *testing.T) {
	assert.False(t, SingleChoice.PartialCredit())
	assert.False(t, Unknown.PartialCredit())
	assert.True(t, FillBlank.PartialCredit())
	assert.True(t, ShortAnswer.PartialCredit())
	assert.True(t, Calculation.PartialCredit())
}
