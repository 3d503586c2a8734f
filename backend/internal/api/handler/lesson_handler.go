package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/selimdilsadercan/foritu-web-sub000/backend/internal/service"
	"github.com/selimdilsadercan/foritu-web-sub000/backend/pkg/response"
)

// LessonHandler 开课/场次模块 HTTP 处理器
type LessonHandler struct {
	lessonSvc service.LessonService
}

// NewLessonHandler 创建 LessonHandler
func NewLessonHandler(lessonSvc service.LessonService) *LessonHandler {
	return &LessonHandler{lessonSvc: lessonSvc}
}

// List 某课程的全部开课场次
// GET /api/v1/lessons?course=xxx
func (h *LessonHandler) List(c *gin.Context) {
	course := c.Query("course")
	if course == "" {
		response.BadRequest(c, 20001, "course 不能为空")
		return
	}

	lessons, err := h.lessonSvc.ListLessons(c.Request.Context(), course)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, lessons)
}

// Selected 用户已选场次明细
// GET /api/v1/lessons/selected
func (h *LessonHandler) Selected(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	selected, err := h.lessonSvc.SelectedLessons(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, selected)
}

// ExportICS 已选场次导出为 iCalendar
// GET /api/v1/lessons/export/ics
func (h *LessonHandler) ExportICS(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	buf, filename, err := h.lessonSvc.ExportICS(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNoSelectedLessons) {
			response.BadRequest(c, 20108, "尚未选定任何上课场次")
			return
		}
		response.InternalError(c)
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}
