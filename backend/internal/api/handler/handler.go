package handler

import "github.com/selimdilsadercan/foritu-web-sub000/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Transcript *TranscriptHandler
	Plan       *PlanHandler
	Evaluation *EvaluationHandler
	Lesson     *LessonHandler
	Export     *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Transcript: NewTranscriptHandler(svc.Transcript),
		Plan:       NewPlanHandler(svc.Plan),
		Evaluation: NewEvaluationHandler(svc.Evaluation),
		Lesson:     NewLessonHandler(svc.Lesson),
		Export:     NewExportHandler(svc.Export),
	}
}
