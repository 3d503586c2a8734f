package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/selimdilsadercan/foritu-web-sub000/backend/internal/catalog"
	"github.com/selimdilsadercan/foritu-web-sub000/backend/internal/dto"
	"github.com/selimdilsadercan/foritu-web-sub000/backend/internal/model"
	"github.com/selimdilsadercan/foritu-web-sub000/backend/internal/repository"
	apperrors "github.com/selimdilsadercan/foritu-web-sub000/backend/pkg/errors"
	"github.com/selimdilsadercan/foritu-web-sub000/backend/pkg/redis"
)

// ── 培养方案模块业务错误 ──

var (
	ErrTemplateNotFound = errors.New("培养方案模板不存在")
)

// PlanService 培养方案业务接口
//
// 设计说明：
//   - 模板目录为只读嵌入数据，按 学院 → 专业 → 学制版本 三级组织
//   - 选定即原样复制模板内容：学期顺序与槽位顺序与模板一致，
//     后续模板数据更新不影响已选定的方案
type PlanService interface {
	// Catalog 返回可选模板目录树
	Catalog(ctx context.Context) []dto.PlanCatalogFaculty

	// Select 选定一个模板作为用户的培养方案
	Select(ctx context.Context, userID string, req *dto.SelectPlanRequest) (*dto.PlanResponse, error)

	// Get 读取用户的培养方案；未选定时 found=false 而非报错
	Get(ctx context.Context, userID string) (*dto.PlanResponse, error)

	// Delete 清除用户的培养方案
	Delete(ctx context.Context, userID string) error
}

type planService struct {
	repo   *repository.Repository
	cat    *catalog.Catalog
	rdb    *redis.Client
	logger *zap.Logger
}

// NewPlanService 创建 PlanService 实例
func NewPlanService(repo *repository.Repository, cat *catalog.Catalog, rdb *redis.Client, logger *zap.Logger) PlanService {
	return &planService{repo: repo, cat: cat, rdb: rdb, logger: logger}
}

func (s *planService) Catalog(_ context.Context) []dto.PlanCatalogFaculty {
	faculties := make([]dto.PlanCatalogFaculty, 0, len(s.cat.Faculties))
	for _, f := range s.cat.Faculties {
		entry := dto.PlanCatalogFaculty{Faculty: f.Faculty}
		for _, p := range f.Programs {
			program := dto.PlanCatalogProgram{Program: p.Program}
			for _, per := range p.Periods {
				program.Periods = append(program.Periods, dto.PlanCatalogPeriod{Period: per.Period})
			}
			entry.Programs = append(entry.Programs, program)
		}
		faculties = append(faculties, entry)
	}
	return faculties
}

func (s *planService) Select(ctx context.Context, userID string, req *dto.SelectPlanRequest) (*dto.PlanResponse, error) {
	semesters, ok := s.cat.Template(req.Faculty, req.Program, req.Period)
	if !ok {
		return nil, ErrTemplateNotFound
	}

	plan := &model.Plan{
		UserID:    userID,
		Faculty:   req.Faculty,
		Program:   req.Program,
		Period:    req.Period,
		Semesters: model.PlanSemesters(semesters),
	}
	if err := s.repo.Plan.Put(ctx, plan); err != nil {
		s.logger.Error("写入培养方案失败", zap.Error(err))
		return nil, apperrors.ErrStoreFailure
	}

	if s.rdb != nil {
		s.rdb.InvalidateEval(ctx, userID)
	}

	s.logger.Info("培养方案已选定",
		zap.String("user_id", userID),
		zap.String("program", req.Program),
		zap.String("period", req.Period),
	)

	return &dto.PlanResponse{
		Faculty:   plan.Faculty,
		Program:   plan.Program,
		Period:    plan.Period,
		Semesters: semesters,
		Found:     true,
	}, nil
}

func (s *planService) Get(ctx context.Context, userID string) (*dto.PlanResponse, error) {
	plan, err := s.repo.Plan.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.PlanResponse{Found: false}, nil
		}
		s.logger.Error("查询培养方案失败", zap.Error(err))
		return nil, err
	}

	return &dto.PlanResponse{
		Faculty:   plan.Faculty,
		Program:   plan.Program,
		Period:    plan.Period,
		Semesters: plan.Semesters,
		Found:     true,
	}, nil
}

func (s *planService) Delete(ctx context.Context, userID string) error {
	if err := s.repo.Plan.Delete(ctx, userID); err != nil {
		s.logger.Error("删除培养方案失败", zap.Error(err))
		return apperrors.ErrStoreFailure
	}
	if s.rdb != nil {
		s.rdb.InvalidateEval(ctx, userID)
	}
	return nil
}
