package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"quiz_scoring_backend/internal/model"
	"quiz_scoring_backend/internal/scoring"
	"quiz_scoring_backend/internal/service"
	"quiz_scoring_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubQuizService struct {
	result  *service.SubmitResult
	err     error
	records []model.AnswerRecord
	total   int64

	gotUser  string
	gotPage  int
	gotLimit int
}

func (s *stubQuizService) Submit(ctx context.Context, userID string, answers map[string]string) (*service.SubmitResult, error) {
	s.gotUser = userID
	return s.result, s.err
}

func (s *stubQuizService) SubmissionRecords(ctx context.Context, submissionID string) ([]model.AnswerRecord, error) {
	return s.records, s.err
}

func (s *stubQuizService) UserRecords(ctx context.Context, userID string, page, limit int) ([]model.AnswerRecord, int64, error) {
	s.gotUser, s.gotPage, s.gotLimit = userID, page, limit
	return s.records, s.total, s.err
}

func newQuizRouter(svc QuizService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	c := NewQuizController(svc)
	r.POST("/api/quiz/submissions", c.Submit)
	r.GET("/api/quiz/submissions/:id/records", c.SubmissionRecords)
	r.GET("/api/quiz/users/:userId/records", c.UserRecords)
	return r
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSubmitStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		body string
		err  error
		code int
	}{
		{name: "bad json", body: `{"userId":`, code: http.StatusBadRequest},
		{name: "missing user", body: `{"answers":{"q1":"A"}}`, code: http.StatusBadRequest},
		{name: "empty answers", body: `{"userId":"u1","answers":{}}`, err: scoring.ErrInvalidInput, code: http.StatusBadRequest},
		{name: "not found", body: `{"userId":"u1","answers":{"x":"A"}}`, err: scoring.ErrNotFound, code: http.StatusNotFound},
		{name: "catalog down", body: `{"userId":"u1","answers":{"q1":"A"}}`, err: fmt.Errorf("%w: dial tcp", scoring.ErrCatalogUnavailable), code: http.StatusServiceUnavailable},
		{name: "unexpected", body: `{"userId":"u1","answers":{"q1":"A"}}`, err: errors.New("boom"), code: http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(newQuizRouter(&stubQuizService{err: tc.err}), http.MethodPost, "/api/quiz/submissions", tc.body)
			assert.Equal(t, tc.code, w.Code)
		})
	}
}

func TestSubmitPartialStillOK(t *testing.T) {
	svc := &stubQuizService{result: &service.SubmitResult{
		Summary:  scoring.SubmissionSummary{SubmissionID: "s1", UserID: "u1", Tally: scoring.Tally{TotalQuestions: 2, TotalScore: 6}},
		Failures: []scoring.PersistenceFailure{{SubmissionID: "s1", QuestionID: "q2", Reason: "timeout"}},
		Partial:  true,
	}}

	w := doJSON(newQuizRouter(svc), http.MethodPost, "/api/quiz/submissions", `{"userId":" u1 ","answers":{"q1":"B","q2":"x"}}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", svc.gotUser)

	var body struct {
		Code int                  `json:"code"`
		Data service.SubmitResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusOK, body.Code)
	assert.True(t, body.Data.Partial)
	assert.Equal(t, 6, body.Data.Summary.TotalScore)
	require.Len(t, body.Data.Failures, 1)
	assert.Equal(t, "q2", body.Data.Failures[0].QuestionID)
}

func TestSubmissionRecords(t *testing.T) {
	w := doJSON(newQuizRouter(&stubQuizService{}), http.MethodGet, "/api/quiz/submissions/s1/records", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	svc := &stubQuizService{records: []model.AnswerRecord{{SubmissionID: "s1", QuestionID: "q1", Accuracy: 1}}}
	w = doJSON(newQuizRouter(svc), http.MethodGet, "/api/quiz/submissions/s1/records", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"questionId":"q1"`)
}

func TestUserRecordsPagination(t *testing.T) {
	svc := &stubQuizService{total: 0}
	w := doJSON(newQuizRouter(svc), http.MethodGet, "/api/quiz/users/u9/records?page=2&limit=500", "")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "u9", svc.gotUser)
	assert.Equal(t, 2, svc.gotPage)
	assert.Equal(t, 100, svc.gotLimit)
	assert.Contains(t, w.Body.String(), `"list":[]`)
}

func TestUserRecordsHugePage(t *testing.T) {
	svc := &stubQuizService{}
	w := doJSON(newQuizRouter(svc), http.MethodGet, "/api/quiz/users/u9/records?page=9223372036854775807", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, util.MaxPage, svc.gotPage)
	assert.Equal(t, util.DefaultLimit, svc.gotLimit)
}
