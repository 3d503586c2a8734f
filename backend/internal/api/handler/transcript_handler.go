package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/selimdilsadercan/foritu-web-sub000/backend/internal/dto"
	"github.com/selimdilsadercan/foritu-web-sub000/backend/internal/parser"
	"github.com/selimdilsadercan/foritu-web-sub000/backend/internal/service"
	apperrors "github.com/selimdilsadercan/foritu-web-sub000/backend/pkg/errors"
	"github.com/selimdilsadercan/foritu-web-sub000/backend/pkg/response"
)

// TranscriptHandler 成绩单模块 HTTP 处理器
type TranscriptHandler struct {
	transcriptSvc service.TranscriptService
}

// NewTranscriptHandler 创建 TranscriptHandler
func NewTranscriptHandler(transcriptSvc service.TranscriptService) *TranscriptHandler {
	return &TranscriptHandler{transcriptSvc: transcriptSvc}
}

// Get 读取成绩单
// GET /api/v1/transcript
func (h *TranscriptHandler) Get(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	resp, err := h.transcriptSvc.Get(c.Request.Context(), userID)
	if err != nil {
		h.handleTranscriptError(c, err)
		return
	}
	response.OK(c, resp)
}

// Upload 上传成绩单 PDF 并整体替换现有记录
// POST /api/v1/transcript/upload (multipart, 字段名 file)
func (h *TranscriptHandler) Upload(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, 20002, "缺少上传文件")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, 20002, "无法读取上传文件")
		return
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		response.BadRequest(c, 20002, "无法读取上传文件")
		return
	}

	resp, err := h.transcriptSvc.Upload(c.Request.Context(), userID, fileBytes)
	if err != nil {
		h.handleTranscriptError(c, err)
		return
	}
	response.OK(c, resp)
}

// AddAttempt 手动添加选课记录
// POST /api/v1/transcript/attempts
func (h *TranscriptHandler) AddAttempt(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.AddAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 20001, "请求参数错误: "+err.Error())
		return
	}

	att, err := h.transcriptSvc.AddAttempt(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleTranscriptError(c, err)
		return
	}
	response.Created(c, att)
}

// DeleteAttempt 删除一条选课记录
// DELETE /api/v1/transcript/attempts/:id
func (h *TranscriptHandler) DeleteAttempt(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.transcriptSvc.DeleteAttempt(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.handleTranscriptError(c, err)
		return
	}
	response.OK(c, nil)
}

// SetGrade 修改一条记录的成绩
// PUT /api/v1/transcript/attempts/:id/grade
func (h *TranscriptHandler) SetGrade(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SetGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 20001, "请求参数错误: "+err.Error())
		return
	}

	if err := h.transcriptSvc.SetGrade(c.Request.Context(), userID, c.Param("id"), req.Grade); err != nil {
		h.handleTranscriptError(c, err)
		return
	}
	response.OK(c, nil)
}

// SetSession 为一条记录选定上课场次
// PUT /api/v1/transcript/attempts/:id/session
func (h *TranscriptHandler) SetSession(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SetSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 20001, "请求参数错误: "+err.Error())
		return
	}

	if err := h.transcriptSvc.SetSession(c.Request.Context(), userID, c.Param("id"), req.LessonID); err != nil {
		h.handleTranscriptError(c, err)
		return
	}
	response.OK(c, nil)
}

// CheckDirty 比较客户端工作副本与持久化快照
// POST /api/v1/transcript/dirty
func (h *TranscriptHandler) CheckDirty(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.DirtyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 20001, "请求参数错误: "+err.Error())
		return
	}

	dirty, err := h.transcriptSvc.CheckDirty(c.Request.Context(), userID, req.Rows)
	if err != nil {
		h.handleTranscriptError(c, err)
		return
	}
	response.OK(c, dto.DirtyResponse{Dirty: dirty})
}

// Delete 删除整份成绩单
// DELETE /api/v1/transcript
func (h *TranscriptHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.transcriptSvc.Delete(c.Request.Context(), userID); err != nil {
		h.handleTranscriptError(c, err)
		return
	}
	response.OK(c, nil)
}

// handleTranscriptError 成绩单模块错误 → HTTP 响应映射
func (h *TranscriptHandler) handleTranscriptError(c *gin.Context, err error) {
	var parseErr *parser.ParseError

	switch {
	case errors.Is(err, service.ErrTranscriptNotFound):
		response.NotFound(c, 20101, "成绩单不存在")
	case errors.Is(err, service.ErrAttemptNotFound):
		response.NotFound(c, 20102, "选课记录不存在")
	case errors.Is(err, service.ErrAttemptFinalized):
		response.BadRequest(c, 20103, "成绩已确定的记录不允许删除")
	case errors.Is(err, service.ErrInvalidGrade):
		response.BadRequest(c, 20104, "无法识别的成绩值")
	case errors.Is(err, service.ErrInvalidSemester):
		response.BadRequest(c, 20105, "无法识别的学期标签")
	case errors.Is(err, service.ErrLessonNotFound):
		response.NotFound(c, 20106, "开课场次不存在")
	case errors.Is(err, service.ErrLessonMismatch):
		response.BadRequest(c, 20107, "场次与课程代码不匹配")
	case errors.As(err, &parseErr):
		// 解析服务拒绝的内容，消息原样透传
		response.UnprocessableEntity(c, 52001, parseErr.Message)
	case errors.Is(err, parser.ErrUnavailable):
		response.BadGateway(c, 52002, parser.ErrUnavailable.Error())
	case errors.Is(err, apperrors.ErrStoreFailure):
		response.BadGateway(c, 51001, apperrors.ErrStoreFailure.Error())
	default:
		response.InternalError(c)
	}
}
