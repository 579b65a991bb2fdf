package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"quiz_scoring_backend/internal/model"
	"quiz_scoring_backend/internal/scoring"
	"quiz_scoring_backend/pkg/logger"
	"quiz_scoring_backend/pkg/monitoring"
	"quiz_scoring_backend/pkg/tracing"

	"github.com/sourcegraph/conc"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// QuestionCatalog 题库查询
type QuestionCatalog interface {
	GetByIDs(ctx context.Context, ids []string) ([]model.Question, error)
}

// AnswerStore 作答记录写入，每条记录单独调用
type AnswerStore interface {
	Insert(ctx context.Context, record *model.AnswerRecord) error
}

// AnswerHistory 作答记录查询
type AnswerHistory interface {
	ListBySubmission(ctx context.Context, submissionID string) ([]model.AnswerRecord, error)
	ListByUser(ctx context.Context, userID string, page, limit int) ([]model.AnswerRecord, int64, error)
}

// Archiver 提交归档，可选
type Archiver interface {
	ArchiveSubmission(ctx context.Context, result *SubmitResult) (string, error)
}

type QuizService struct {
	Catalog QuestionCatalog
	Store   AnswerStore
	History AnswerHistory
	Archive Archiver
	Engine  *scoring.Engine
}

func NewQuizService(catalog QuestionCatalog, store AnswerStore, history AnswerHistory, archive Archiver, engine *scoring.Engine) *QuizService {
	if engine == nil {
		engine = scoring.NewEngine(0)
	}
	return &QuizService{
		Catalog: catalog,
		Store:   store,
		History: history,
		Archive: archive,
		Engine:  engine,
	}
}

// SubmitResult 成绩总是完整的；Failures 非空时 Partial 为 true，需要对账或补写
type SubmitResult struct {
	Summary  scoring.SubmissionSummary    `json:"summary"`
	Results  []scoring.EvaluationResult   `json:"results"`
	Records  []scoring.AnswerRecord       `json:"records"`
	Failures []scoring.PersistenceFailure `json:"failures"`
	Partial  bool                         `json:"partial"`
}

// Submit 查题 → 评分 → 并发写入作答记录（全部结束后返回）→ 归档
func (s *QuizService) Submit(ctx context.Context, userID string, answers map[string]string) (*SubmitResult, error) {
	outcome, err := s.Preview(ctx, userID, answers)
	if err != nil {
		monitoring.SubmissionCounter.WithLabelValues(outcomeOf(err)).Inc()
		return nil, err
	}

	result := &SubmitResult{
		Summary: outcome.Summary,
		Results: outcome.Results,
		Records: outcome.Records,
	}
	result.Failures = s.persist(ctx, outcome.Records)
	result.Partial = len(result.Failures) > 0

	if s.Archive != nil {
		if location, err := s.Archive.ArchiveSubmission(ctx, result); err != nil {
			logger.Log.Warn("submission archive failed",
				zap.String("submissionId", result.Summary.SubmissionID),
				zap.Error(err),
			)
		} else {
			logger.Log.Debug("submission archived",
				zap.String("submissionId", result.Summary.SubmissionID),
				zap.String("location", location),
			)
		}
	}

	outcomeLabel := monitoring.OutcomeScored
	if result.Partial {
		outcomeLabel = monitoring.OutcomePartial
	}
	monitoring.SubmissionCounter.WithLabelValues(outcomeLabel).Inc()
	monitoring.PercentageScore.Observe(float64(result.Summary.PercentageScore))

	logger.Log.Info("submission scored",
		zap.String("submissionId", result.Summary.SubmissionID),
		zap.String("userId", userID),
		zap.Int("questions", result.Summary.TotalQuestions),
		zap.Int("correct", result.Summary.CorrectCount),
		zap.Int("totalScore", result.Summary.TotalScore),
		zap.Int("percentage", result.Summary.PercentageScore),
		zap.Int("persistFailures", len(result.Failures)),
	)

	return result, nil
}

// Preview 只评分不落库，evaluate 命令和 Submit 共用
func (s *QuizService) Preview(ctx context.Context, userID string, answers map[string]string) (*scoring.Outcome, error) {
	if len(answers) == 0 {
		return nil, scoring.ErrInvalidInput
	}

	questions, err := s.lookup(ctx, answerIDs(answers))
	if err != nil {
		logger.Log.Error("question catalog lookup failed",
			zap.String("userId", userID),
			zap.Int("answers", len(answers)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", scoring.ErrCatalogUnavailable, err)
	}

	outcome, err := s.Engine.Evaluate(questions, answers, userID)
	if err != nil {
		logger.Log.Info("submission rejected",
			zap.String("userId", userID),
			zap.Error(err),
		)
		return nil, err
	}
	return outcome, nil
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, scoring.ErrInvalidInput):
		return monitoring.OutcomeInvalid
	case errors.Is(err, scoring.ErrNotFound):
		return monitoring.OutcomeNotFound
	default:
		return monitoring.OutcomeCatalogError
	}
}

func (s *QuizService) lookup(ctx context.Context, ids []string) ([]scoring.Question, error) {
	ctx, span := tracing.StartSpan(ctx, "quiz.catalog.lookup", attribute.Int("quiz.question_ids", len(ids)))
	defer span.End()

	rows, err := s.Catalog.GetByIDs(ctx, ids)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	questions := make([]scoring.Question, len(rows))
	for i, q := range rows {
		questions[i] = q.ToScoring()
	}
	return questions, nil
}

// persist 每条记录一个协程，等待全部结束；失败逐条收集，不提前返回
func (s *QuizService) persist(ctx context.Context, records []scoring.AnswerRecord) []scoring.PersistenceFailure {
	ctx, span := tracing.StartSpan(ctx, "quiz.records.persist", attribute.Int("quiz.records", len(records)))
	defer span.End()

	slots := make([]*scoring.PersistenceFailure, len(records))
	var wg conc.WaitGroup
	for i := range records {
		i := i
		wg.Go(func() {
			slots[i] = s.insert(ctx, records[i])
		})
	}
	wg.Wait()

	var failures []scoring.PersistenceFailure
	for _, f := range slots {
		if f == nil {
			continue
		}
		failures = append(failures, *f)
		monitoring.RecordFailureCounter.Inc()
		logger.Log.Warn("answer record not persisted",
			zap.String("submissionId", f.SubmissionID),
			zap.String("questionId", f.QuestionID),
			zap.String("reason", f.Reason),
		)
	}
	if len(failures) > 0 {
		span.SetAttributes(attribute.Int("quiz.records_failed", len(failures)))
	}
	return failures
}

func (s *QuizService) insert(ctx context.Context, rec scoring.AnswerRecord) (failure *scoring.PersistenceFailure) {
	defer func() {
		if r := recover(); r != nil {
			failure = &scoring.PersistenceFailure{
				SubmissionID: rec.SubmissionID,
				QuestionID:   rec.QuestionID,
				Reason:       fmt.Sprintf("panic: %v", r),
			}
		}
	}()

	if err := s.Store.Insert(ctx, model.NewAnswerRecord(rec)); err != nil {
		return &scoring.PersistenceFailure{
			SubmissionID: rec.SubmissionID,
			QuestionID:   rec.QuestionID,
			Reason:       err.Error(),
		}
	}
	return nil
}

func (s *QuizService) SubmissionRecords(ctx context.Context, submissionID string) ([]model.AnswerRecord, error) {
	return s.History.ListBySubmission(ctx, submissionID)
}

func (s *QuizService) UserRecords(ctx context.Context, userID string, page, limit int) ([]model.AnswerRecord, int64, error) {
	return s.History.ListByUser(ctx, userID, page, limit)
}

// answerIDs 去重后排序，保证查询参数稳定
func answerIDs(answers map[string]string) []string {
	ids := make([]string, 0, len(answers))
	for id := range answers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
