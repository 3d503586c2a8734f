package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/selimdilsadercan/foritu-web-sub000/backend/internal/service"
	"github.com/selimdilsadercan/foritu-web-sub000/backend/pkg/response"
)

// EvaluationHandler 评估模块 HTTP 处理器
type EvaluationHandler struct {
	evalSvc service.EvaluationService
}

// NewEvaluationHandler 创建 EvaluationHandler
func NewEvaluationHandler(evalSvc service.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{evalSvc: evalSvc}
}

// Overlay 方案叠加评估
// GET /api/v1/evaluation/overlay?semester=xxx
func (h *EvaluationHandler) Overlay(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	semester := c.Query("semester")
	if semester == "" {
		response.BadRequest(c, 40001, "semester 不能为空")
		return
	}

	resp, err := h.evalSvc.Overlay(c.Request.Context(), userID, semester)
	if err != nil {
		h.handleEvaluationError(c, err)
		return
	}
	response.OK(c, resp)
}

// Progress 学业进度汇总
// GET /api/v1/evaluation/progress?semester=xxx
func (h *EvaluationHandler) Progress(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	semester := c.Query("semester")
	if semester == "" {
		response.BadRequest(c, 40001, "semester 不能为空")
		return
	}

	resp, err := h.evalSvc.Progress(c.Request.Context(), userID, semester)
	if err != nil {
		h.handleEvaluationError(c, err)
		return
	}
	response.OK(c, resp)
}

// CheckCourse 单门课程先修详情
// GET /api/v1/evaluation/courses/:code?semester=xxx
func (h *EvaluationHandler) CheckCourse(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	semester := c.Query("semester")
	if semester == "" {
		response.BadRequest(c, 40001, "semester 不能为空")
		return
	}

	resp, err := h.evalSvc.CheckCourse(c.Request.Context(), userID, c.Param("code"), semester)
	if err != nil {
		h.handleEvaluationError(c, err)
		return
	}
	response.OK(c, resp)
}

func (h *EvaluationHandler) handleEvaluationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoPlanSelected):
		response.NotFound(c, 40101, "尚未选定培养方案")
	case errors.Is(err, service.ErrUnknownCourse):
		response.NotFound(c, 40102, "课程未收录")
	default:
		response.InternalError(c)
	}
}
