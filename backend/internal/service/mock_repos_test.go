package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/selimdilsadercan/foritu-web-sub000/backend/config"
	"github.com/selimdilsadercan/foritu-web-sub000/backend/internal/catalog"
	"github.com/selimdilsadercan/foritu-web-sub000/backend/internal/model"
	"github.com/selimdilsadercan/foritu-web-sub000/backend/internal/planning"
	"github.com/selimdilsadercan/foritu-web-sub000/backend/internal/repository"
)

// ── Mock TranscriptRepository ──

type mockTranscriptRepo struct {
	transcripts map[string]*model.Transcript
	failPut     bool
}

func newMockTranscriptRepo() *mockTranscriptRepo {
	return &mockTranscriptRepo{transcripts: make(map[string]*model.Transcript)}
}

func (m *mockTranscriptRepo) Get(_ context.Context, userID string) (*model.Transcript, error) {
	if t, ok := m.transcripts[userID]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTranscriptRepo) Put(_ context.Context, t *model.Transcript) error {
	if m.failPut {
		return gorm.ErrInvalidDB
	}
	cp := *t
	cp.UpdatedAt = time.Now()
	m.transcripts[t.UserID] = &cp
	return nil
}

func (m *mockTranscriptRepo) Delete(_ context.Context, userID string) error {
	delete(m.transcripts, userID)
	return nil
}

// ── Mock PlanRepository ──

type mockPlanRepo struct {
	plans map[string]*model.Plan
}

func newMockPlanRepo() *mockPlanRepo {
	return &mockPlanRepo{plans: make(map[string]*model.Plan)}
}

func (m *mockPlanRepo) Get(_ context.Context, userID string) (*model.Plan, error) {
	if p, ok := m.plans[userID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPlanRepo) Put(_ context.Context, p *model.Plan) error {
	cp := *p
	cp.UpdatedAt = time.Now()
	m.plans[p.UserID] = &cp
	return nil
}

func (m *mockPlanRepo) Delete(_ context.Context, userID string) error {
	delete(m.plans, userID)
	return nil
}

// ── Mock Parser ──

type mockParser struct {
	attempts []planning.Attempt
	err      error
}

func (m *mockParser) Parse(_ context.Context, _ []byte) ([]planning.Attempt, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.attempts, nil
}

// ── 测试装配 ──

// testCatalog 加载嵌入参考数据（测试与生产共用同一份数据）
func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Load(zap.NewNop())
	if err != nil {
		t.Fatalf("加载参考数据失败: %v", err)
	}
	return cat
}

func testRepository(transcriptRepo *mockTranscriptRepo, planRepo *mockPlanRepo) *repository.Repository {
	return &repository.Repository{
		Transcript: transcriptRepo,
		Plan:       planRepo,
	}
}

func testConfig() *config.Config {
	return &config.Config{
		Cache: config.CacheConfig{EvalTTL: time.Minute},
	}
}

// seedTranscript 预置一份成绩单
func seedTranscript(repo *mockTranscriptRepo, userID string, rows []planning.Attempt) {
	repo.transcripts[userID] = &model.Transcript{
		UserID:  userID,
		Rows:    model.AttemptRows(rows),
		Version: 1,
	}
}

// seedPlan 预置一份从模板复制的培养方案
func seedPlan(t *testing.T, repo *mockPlanRepo, cat *catalog.Catalog, userID string) {
	t.Helper()
	semesters, ok := cat.Template("Bilgisayar ve Bilişim Fakültesi", "Bilgisayar Mühendisliği", "2021 Sonrası")
	if !ok {
		t.Fatal("测试模板不存在")
	}
	repo.plans[userID] = &model.Plan{
		UserID:    userID,
		Faculty:   "Bilgisayar ve Bilişim Fakültesi",
		Program:   "Bilgisayar Mühendisliği",
		Period:    "2021 Sonrası",
		Semesters: model.PlanSemesters(semesters),
		BaseModel: model.BaseModel{UpdatedAt: time.Now()},
	}
}
