package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/selimdilsadercan/foritu-web-sub000/backend/config"
	"github.com/selimdilsadercan/foritu-web-sub000/backend/internal/catalog"
	"github.com/selimdilsadercan/foritu-web-sub000/backend/internal/dto"
	"github.com/selimdilsadercan/foritu-web-sub000/backend/internal/planning"
	"github.com/selimdilsadercan/foritu-web-sub000/backend/internal/repository"
	"github.com/selimdilsadercan/foritu-web-sub000/backend/pkg/redis"
)

// ── 评估模块业务错误 ──

var (
	ErrNoPlanSelected = errors.New("尚未选定培养方案")
	ErrUnknownCourse  = errors.New("课程未收录")
)

// EvaluationService 评估业务接口
//
// 设计说明：
//   - 评估是纯函数：成绩单 + 方案 + 选定学期 → 结果，本身无状态
//   - 缓存键包含成绩单版本号与方案更新时间，数据变更后旧键
//     自然失效，进程内缓存无需主动清理；Redis 侧由写路径调用
//     InvalidateEval 兜底清除
//   - 评估只看选定学期及之前的记录：未来学期的选课在时间
//     过滤后不可见
type EvaluationService interface {
	// Overlay 将成绩单叠加到培养方案，得到每个槽位的展示状态
	Overlay(ctx context.Context, userID, selectedSemester string) (*dto.OverlayResponse, error)

	// Progress 截至选定学期的学业进度汇总
	Progress(ctx context.Context, userID, selectedSemester string) (*dto.ProgressResponse, error)

	// CheckCourse 单门课程在选定学期时点的先修满足详情
	CheckCourse(ctx context.Context, userID, courseCode, selectedSemester string) (*dto.CourseCheckResponse, error)
}

type evaluationService struct {
	repo   *repository.Repository
	cat    *catalog.Catalog
	rdb    *redis.Client
	local  *gocache.Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewEvaluationService 创建 EvaluationService 实例
func NewEvaluationService(cfg *config.Config, repo *repository.Repository, cat *catalog.Catalog, rdb *redis.Client, logger *zap.Logger) EvaluationService {
	ttl := cfg.Cache.EvalTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &evaluationService{
		repo:   repo,
		cat:    cat,
		rdb:    rdb,
		local:  gocache.New(ttl, 2*ttl),
		ttl:    ttl,
		logger: logger,
	}
}

// ═══════════════════════════════════════════════════════════
// Overlay — 方案叠加评估
// ═══════════════════════════════════════════════════════════
//
// 每个槽位的状态判定：
//   - 固定课程槽位：等价解析找记录 → 最新一次选课的有效成绩
//     决定 passed / failed / active / assumed；无记录时按先修
//     满足与否给出 planned / locked
//   - 选修槽位：贪心分配结果决定 assigned 课程，状态判定同上；
//     无分配为 unassigned

func (s *evaluationService) Overlay(ctx context.Context, userID, selected string) (*dto.OverlayResponse, error) {
	rows, version, err := s.loadRows(ctx, userID)
	if err != nil {
		return nil, err
	}

	plan, err := s.repo.Plan.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoPlanSelected
		}
		s.logger.Error("查询培养方案失败", zap.Error(err))
		return nil, err
	}

	key := fmt.Sprintf("%s:%d:%d:overlay:%s", userID, version, plan.UpdatedAt.UnixNano(), selected)

	if cached, ok := s.local.Get(key); ok {
		return cached.(*dto.OverlayResponse), nil
	}
	if s.rdb != nil {
		if payload, ok := s.rdb.GetEval(ctx, key); ok {
			var resp dto.OverlayResponse
			if err := json.Unmarshal([]byte(payload), &resp); err == nil {
				s.local.Set(key, &resp, gocache.DefaultExpiration)
				return &resp, nil
			}
		}
	}

	resp := s.computeOverlay(rows, plan.Semesters, selected)
	s.store(ctx, key, resp)
	return resp, nil
}

func (s *evaluationService) computeOverlay(rows []planning.Attempt, planSemesters [][]planning.PlanSlot, selected string) *dto.OverlayResponse {
	visible := planning.FilterUpTo(rows, selected)
	assignment := planning.AssignElectives(planSemesters, visible)

	semesters := make([][]dto.SlotOverlay, 0, len(planSemesters))
	for _, slots := range planSemesters {
		overlays := make([]dto.SlotOverlay, 0, len(slots))
		for _, slot := range slots {
			switch slot.Kind {
			case planning.SlotKindCourse:
				overlays = append(overlays, s.courseOverlay(slot, visible, selected))
			case planning.SlotKindElective:
				overlays = append(overlays, s.electiveOverlay(slot, assignment, selected))
			}
		}
		semesters = append(semesters, overlays)
	}

	return &dto.OverlayResponse{SelectedSemester: selected, Semesters: semesters}
}

func (s *evaluationService) courseOverlay(slot planning.PlanSlot, visible []planning.Attempt, selected string) dto.SlotOverlay {
	ov := dto.SlotOverlay{
		Kind:     slot.Kind,
		Code:     slot.Code,
		Name:     slot.Name,
		Category: slot.Category,
	}
	if course := s.cat.Course(slot.Code); course != nil {
		ov.Credits = course.Credits
		if ov.Name == "" {
			ov.Name = course.Name
		}
	}

	resolved := planning.Resolve(slot.Code, visible, s.cat.Equivalences, nil)
	if resolved == nil {
		groups := s.cat.Prerequisites(slot.Code)
		ov.PrereqGroups = s.prereqDetail(groups, visible, selected)
		if planning.HasUnsatisfiedPrereqs(groups, visible, selected, s.cat.Equivalences) {
			ov.Status = dto.SlotStatusLocked
		} else {
			ov.Status = dto.SlotStatusPlanned
		}
		return ov
	}

	latest := planning.LatestAttempt(visible, resolved.Code)
	if latest == nil {
		latest = resolved
	}
	applyAttemptStatus(&ov, *latest, selected)
	return ov
}

func (s *evaluationService) electiveOverlay(slot planning.PlanSlot, assignment *planning.ElectiveAssignment, selected string) dto.SlotOverlay {
	ov := dto.SlotOverlay{
		Kind:     slot.Kind,
		Name:     slot.Name,
		Category: slot.Category,
	}

	assigned := assignment.AssignedCourseFor(slot.Name)
	if assigned == nil {
		ov.Status = dto.SlotStatusUnassigned
		return ov
	}

	ov.AssignedCode = assigned.Code
	if course := s.cat.Course(assigned.Code); course != nil {
		ov.Credits = course.Credits
	}
	applyAttemptStatus(&ov, *assigned, selected)
	return ov
}

// applyAttemptStatus 由一条记录的有效成绩推导槽位状态
func applyAttemptStatus(ov *dto.SlotOverlay, att planning.Attempt, selected string) {
	eff := planning.EffectiveGrade(att, selected)
	ov.EffectiveGrade = eff
	ov.Speculative = planning.HasMarker(eff)

	switch {
	case eff == planning.GradePlanned:
		ov.Status = dto.SlotStatusActive
	case eff == planning.GradeAssumedPassed && att.Grade == planning.GradePlanned:
		ov.Status = dto.SlotStatusAssumed
	case planning.IsPassing(eff):
		ov.Status = dto.SlotStatusPassed
	default:
		ov.Status = dto.SlotStatusFailed
	}
}

// prereqDetail 展开先修组的逐课程满足详情
// 组内其余课程作为等价解析的排除列表：一条记录不能同时
// 替身组内两门课程
func (s *evaluationService) prereqDetail(groups []planning.PrereqGroup, visible []planning.Attempt, selected string) []dto.PrereqGroupResult {
	results := make([]dto.PrereqGroupResult, 0, len(groups))
	for _, g := range groups {
		gr := dto.PrereqGroupResult{
			Group:     g.Group,
			Satisfied: planning.IsGroupSatisfied(g, visible, selected, s.cat.Equivalences),
		}
		for i, c := range g.Courses {
			siblings := make([]string, 0, len(g.Courses)-1)
			for j, other := range g.Courses {
				if j != i {
					siblings = append(siblings, other.Code)
				}
			}
			gr.Courses = append(gr.Courses, dto.PrereqCourseResult{
				Code:      c.Code,
				Min:       c.Min,
				Satisfied: planning.IsSatisfied(c.Code, c.Min, visible, selected, s.cat.Equivalences, siblings),
			})
		}
		results = append(results, gr)
	}
	return results
}

// ═══════════════════════════════════════════════════════════
// Progress — 学业进度汇总
// ═══════════════════════════════════════════════════════════

func (s *evaluationService) Progress(ctx context.Context, userID, selected string) (*dto.ProgressResponse, error) {
	rows, version, err := s.loadRows(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s:%d:progress:%s", userID, version, selected)
	if cached, ok := s.local.Get(key); ok {
		return cached.(*dto.ProgressResponse), nil
	}
	if s.rdb != nil {
		if payload, ok := s.rdb.GetEval(ctx, key); ok {
			var resp dto.ProgressResponse
			if err := json.Unmarshal([]byte(payload), &resp); err == nil {
				s.local.Set(key, &resp, gocache.DefaultExpiration)
				return &resp, nil
			}
		}
	}

	p := planning.ComputeProgress(rows, selected)
	resp := &dto.ProgressResponse{
		TotalCredits:  p.TotalCredits,
		GPA:           p.GPA,
		ClassStanding: p.ClassStanding,
		PassedCourses: p.PassedCourses,
	}
	s.store(ctx, key, resp)
	return resp, nil
}

// ═══════════════════════════════════════════════════════════
// CheckCourse — 单门课程先修详情
// ═══════════════════════════════════════════════════════════

func (s *evaluationService) CheckCourse(ctx context.Context, userID, courseCode, selected string) (*dto.CourseCheckResponse, error) {
	course := s.cat.Course(courseCode)
	if course == nil {
		return nil, ErrUnknownCourse
	}

	rows, _, err := s.loadRows(ctx, userID)
	if err != nil {
		return nil, err
	}
	visible := planning.FilterUpTo(rows, selected)
	groups := course.Prerequisites

	return &dto.CourseCheckResponse{
		Code:         courseCode,
		Satisfied:    !planning.HasUnsatisfiedPrereqs(groups, visible, selected, s.cat.Equivalences),
		PrereqGroups: s.prereqDetail(groups, visible, selected),
	}, nil
}

// ── 内部辅助 ──

// loadRows 读取成绩单记录；不存在视为空成绩单（版本 0）
func (s *evaluationService) loadRows(ctx context.Context, userID string) ([]planning.Attempt, int, error) {
	t, err := s.repo.Transcript.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, nil
		}
		s.logger.Error("查询成绩单失败", zap.Error(err))
		return nil, 0, err
	}
	return t.Rows, t.Version, nil
}

// store 写入进程内缓存并镜像到 Redis
func (s *evaluationService) store(ctx context.Context, key string, v interface{}) {
	s.local.Set(key, v, gocache.DefaultExpiration)
	if s.rdb != nil {
		if payload, err := json.Marshal(v); err == nil {
			s.rdb.SetEval(ctx, key, string(payload), s.ttl)
		}
	}
}
