package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/selimdilsadercan/foritu-web-sub000/backend/internal/service"
	"github.com/selimdilsadercan/foritu-web-sub000/backend/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportProgress 导出学业进度报告
// GET /api/v1/export/progress?semester=xxx
func (h *ExportHandler) ExportProgress(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	semester := c.Query("semester")
	if semester == "" {
		response.BadRequest(c, 40001, "semester 不能为空")
		return
	}

	buf, filename, err := h.exportSvc.ExportProgress(c.Request.Context(), userID, semester)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportNoTranscript):
		response.NotFound(c, 20101, "成绩单不存在，无可导出内容")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}
