package app

import (
	"os"
	"path/filepath"
	"testing"

	"quiz_scoring_backend/internal/config"
	"quiz_scoring_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitServicesArchive(t *testing.T) {
	repos := &repositories{
		catalog: repository.NewMemoryQuestionRepository(nil),
		records: repository.NewAnswerRecordRepository(nil),
	}
	a := &App{}

	cfg := &config.Config{Storage: config.StorageConfig{Type: "none"}}
	s, err := a.initServices(repos, cfg)
	require.NoError(t, err)
	assert.True(t, s.quiz.Archive == nil, "archive interface must be untyped nil")

	cfg.Storage = config.StorageConfig{Type: "local", LocalPath: t.TempDir()}
	s, err = a.initServices(repos, cfg)
	require.NoError(t, err)
	assert.NotNil(t, s.quiz.Archive)

	cfg.Storage = config.StorageConfig{Type: "s3"}
	_, err = a.initServices(repos, cfg)
	assert.Error(t, err)
}

func TestNewCatalogFromFile(t *testing.T) {
	bank := filepath.Join(t.TempDir(), "questions.yaml")
	require.NoError(t, os.WriteFile(bank, []byte("questions:\n  - id: q1\n    type: single_choice\n    answer: B\n"), 0644))

	cfg := &config.Config{Catalog: config.CatalogConfig{Source: "file", File: bank}}
	catalog, err := NewCatalog(cfg, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &repository.MemoryQuestionRepository{}, catalog)

	cfg.Catalog.File = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = NewCatalog(cfg, nil, nil)
	assert.Error(t, err)
}
