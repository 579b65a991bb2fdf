package controller

import (
	"context"
	"errors"
	"strings"

	"quiz_scoring_backend/internal/model"
	"quiz_scoring_backend/internal/scoring"
	"quiz_scoring_backend/internal/service"
	"quiz_scoring_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// QuizService 控制器依赖的评分服务
type QuizService interface {
	Submit(ctx context.Context, userID string, answers map[string]string) (*service.SubmitResult, error)
	SubmissionRecords(ctx context.Context, submissionID string) ([]model.AnswerRecord, error)
	UserRecords(ctx context.Context, userID string, page, limit int) ([]model.AnswerRecord, int64, error)
}

type QuizController struct {
	Service QuizService
}

func NewQuizController(svc QuizService) *QuizController {
	return &QuizController{Service: svc}
}

// SubmitRequest 提交答卷
type SubmitRequest struct {
	UserID  string            `json:"userId" example:"u-1001"`
	Answers map[string]string `json:"answers"`
}

// @Summary 提交答卷并评分
// @Description 评分后逐题写入作答记录；部分记录写入失败时仍返回完整成绩，partial 为 true
// @Tags 测验评分
// @Accept json
// @Produce json
// @Param body body SubmitRequest true "答卷"
// @Success 200 {object} util.Response{data=service.SubmitResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /api/quiz/submissions [post]
func (c *QuizController) Submit(ctx *gin.Context) {
	var req SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	req.UserID = strings.TrimSpace(req.UserID)
	if req.UserID == "" {
		util.BadRequest(ctx, util.ErrUserIDRequired.Error())
		return
	}

	result, err := c.Service.Submit(ctx.Request.Context(), req.UserID, req.Answers)
	switch {
	case err == nil:
		util.Success(ctx, result)
	case errors.Is(err, scoring.ErrInvalidInput):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, scoring.ErrNotFound):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, scoring.ErrCatalogUnavailable):
		util.ServiceUnavailable(ctx, scoring.ErrCatalogUnavailable.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// @Summary 查询一次提交的作答记录
// @Tags 测验评分
// @Produce json
// @Param id path string true "提交ID"
// @Success 200 {object} util.Response{data=[]model.AnswerRecord}
// @Failure 404 {object} util.Response
// @Router /api/quiz/submissions/{id}/records [get]
func (c *QuizController) SubmissionRecords(ctx *gin.Context) {
	records, err := c.Service.SubmissionRecords(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if len(records) == 0 {
		util.NotFound(ctx, util.ErrSubmissionNotFound.Error())
		return
	}
	util.Success(ctx, records)
}

// @Summary 分页查询用户的作答记录
// @Tags 测验评分
// @Produce json
// @Param userId path string true "用户ID"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/quiz/users/{userId}/records [get]
func (c *QuizController) UserRecords(ctx *gin.Context) {
	page, limit := util.ParsePagination(ctx.Query("page"), ctx.Query("limit"))

	records, total, err := c.Service.UserRecords(ctx.Request.Context(), ctx.Param("userId"), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if records == nil {
		records = []model.AnswerRecord{}
	}
	util.Success(ctx, util.PageResponse{
		List:  records,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}
