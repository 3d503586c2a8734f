package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/selimdilsadercan/foritu-web-sub000/backend/internal/dto"
	"github.com/selimdilsadercan/foritu-web-sub000/backend/internal/service"
	apperrors "github.com/selimdilsadercan/foritu-web-sub000/backend/pkg/errors"
	"github.com/selimdilsadercan/foritu-web-sub000/backend/pkg/response"
)

// PlanHandler 培养方案模块 HTTP 处理器
type PlanHandler struct {
	planSvc service.PlanService
}

// NewPlanHandler 创建 PlanHandler
func NewPlanHandler(planSvc service.PlanService) *PlanHandler {
	return &PlanHandler{planSvc: planSvc}
}

// Catalog 可选模板目录
// GET /api/v1/plan/catalog
func (h *PlanHandler) Catalog(c *gin.Context) {
	response.OK(c, h.planSvc.Catalog(c.Request.Context()))
}

// Select 选定一个模板作为培养方案
// POST /api/v1/plan
func (h *PlanHandler) Select(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SelectPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 30001, "请求参数错误: "+err.Error())
		return
	}

	resp, err := h.planSvc.Select(c.Request.Context(), userID, &req)
	if err != nil {
		h.handlePlanError(c, err)
		return
	}
	response.OK(c, resp)
}

// Get 读取培养方案
// GET /api/v1/plan
func (h *PlanHandler) Get(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	resp, err := h.planSvc.Get(c.Request.Context(), userID)
	if err != nil {
		h.handlePlanError(c, err)
		return
	}
	response.OK(c, resp)
}

// Delete 清除培养方案
// DELETE /api/v1/plan
func (h *PlanHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.planSvc.Delete(c.Request.Context(), userID); err != nil {
		h.handlePlanError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *PlanHandler) handlePlanError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTemplateNotFound):
		response.NotFound(c, 30101, "培养方案模板不存在")
	case errors.Is(err, apperrors.ErrStoreFailure):
		response.BadGateway(c, 51001, apperrors.ErrStoreFailure.Error())
	default:
		response.InternalError(c)
	}
}
