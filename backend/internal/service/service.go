package service

import (
	"go.uber.org/zap"

	"github.com/selimdilsadercan/foritu-web-sub000/backend/config"
	"github.com/selimdilsadercan/foritu-web-sub000/backend/internal/catalog"
	"github.com/selimdilsadercan/foritu-web-sub000/backend/internal/repository"
	"github.com/selimdilsadercan/foritu-web-sub000/backend/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Transcript TranscriptService
	Plan       PlanService
	Evaluation EvaluationService
	Lesson     LessonService
	Export     ExportService
}

// NewService 创建 Service 聚合
// rdb 允许为 nil：Redis 不可用时缓存与限流降级，核心功能不受影响
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	cat *catalog.Catalog,
	parserClient Parser,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	transcript := NewTranscriptService(repo, cat, parserClient, rdb, logger)
	plan := NewPlanService(repo, cat, rdb, logger)
	evaluation := NewEvaluationService(cfg, repo, cat, rdb, logger)
	lesson := NewLessonService(repo, cat, logger)
	export := NewExportService(repo, cat, logger)

	return &Service{
		Transcript: transcript,
		Plan:       plan,
		Evaluation: evaluation,
		Lesson:     lesson,
		Export:     export,
	}
}
