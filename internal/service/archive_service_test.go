package service

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"quiz_scoring_backend/internal/config"
	"quiz_scoring_backend/internal/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveKey(t *testing.T) {
	key := ArchiveKey(scoring.SubmissionSummary{SubmissionID: "abc", Timestamp: "2026-03-09T10:00:00.000Z"})
	assert.Equal(t, "submissions/2026/03/09/abc.json", key)

	key = ArchiveKey(scoring.SubmissionSummary{SubmissionID: "abc", Timestamp: "yesterday"})
	assert.Equal(t, "submissions/unknown/abc.json", key)
}

func TestNewArchiveServiceNone(t *testing.T) {
	svc, err := NewArchiveService(&config.StorageConfig{Type: "none"})
	require.NoError(t, err)
	assert.Nil(t, svc)
}

func TestLocalArchive(t *testing.T) {
	root := t.TempDir()
	svc, err := NewArchiveService(&config.StorageConfig{Type: "local", LocalPath: root})
	require.NoError(t, err)
	require.NotNil(t, svc)

	result := &SubmitResult{
		Summary: scoring.SubmissionSummary{
			SubmissionID: "sub-1",
			UserID:       "u1",
			Timestamp:    "2026-03-09T10:00:00.000Z",
			Tally:        scoring.Tally{TotalQuestions: 1, CorrectCount: 1, TotalScore: 6, PercentageScore: 100},
		},
		Failures: []scoring.PersistenceFailure{{SubmissionID: "sub-1", QuestionID: "q1", Reason: "timeout"}},
		Partial:  true,
	}

	location, err := svc.ArchiveSubmission(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "submissions", "2026", "03", "09", "sub-1.json"), location)

	data, err := os.ReadFile(location)
	require.NoError(t, err)

	var got SubmitResult
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "sub-1", got.Summary.SubmissionID)
	assert.True(t, got.Partial)
	require.Len(t, got.Failures, 1)
	assert.Equal(t, "q1", got.Failures[0].QuestionID)
}

func TestNewArchiveServiceUnknownType(t *testing.T) {
	_, err := NewArchiveService(&config.StorageConfig{Type: "s3"})
	assert.Error(t, err)
}
