package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/selimdilsadercan/foritu-web-sub000/backend/internal/dto"
)

func newPlanServiceForTest(t *testing.T, planRepo *mockPlanRepo) PlanService {
	t.Helper()
	return NewPlanService(
		testRepository(newMockTranscriptRepo(), planRepo),
		testCatalog(t),
		nil,
		zap.NewNop(),
	)
}

func TestPlanCatalog_Tree(t *testing.T) {
	svc := newPlanServiceForTest(t, newMockPlanRepo())

	faculties := svc.Catalog(context.Background())
	if len(faculties) == 0 {
		t.Fatal("模板目录不应为空")
	}

	var found bool
	for _, f := range faculties {
		if f.Faculty != "Bilgisayar ve Bilişim Fakültesi" {
			continue
		}
		for _, p := range f.Programs {
			if p.Program == "Bilgisayar Mühendisliği" && len(p.Periods) > 0 {
				found = true
			}
		}
	}
	if !found {
		t.Error("目录中应包含 Bilgisayar Mühendisliği 及其学制版本")
	}
}

func TestSelectPlan_CopiesTemplate(t *testing.T) {
	repo := newMockPlanRepo()
	svc := newPlanServiceForTest(t, repo)

	resp, err := svc.Select(context.Background(), "u1", &dto.SelectPlanRequest{
		Faculty: "Bilgisayar ve Bilişim Fakültesi",
		Program: "Bilgisayar Mühendisliği",
		Period:  "2021 Sonrası",
	})
	if err != nil {
		t.Fatalf("选定模板失败: %v", err)
	}
	if !resp.Found {
		t.Error("期望 found=true")
	}
	if len(resp.Semesters) != 8 {
		t.Errorf("模板应有 8 个学期，实际 %d", len(resp.Semesters))
	}

	stored := repo.plans["u1"]
	if stored == nil {
		t.Fatal("方案应持久化")
	}
	if len(stored.Semesters) != len(resp.Semesters) {
		t.Error("持久化内容应与模板一致")
	}
}

func TestSelectPlan_TemplateNotFound(t *testing.T) {
	svc := newPlanServiceForTest(t, newMockPlanRepo())

	_, err := svc.Select(context.Background(), "u1", &dto.SelectPlanRequest{
		Faculty: "Bilgisayar ve Bilişim Fakültesi",
		Program: "Bilgisayar Mühendisliği",
		Period:  "1990 Öncesi",
	})
	if !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("期望 ErrTemplateNotFound，实际: %v", err)
	}
}

func TestGetPlan_NotFound(t *testing.T) {
	svc := newPlanServiceForTest(t, newMockPlanRepo())

	resp, err := svc.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("未选定方案不应报错: %v", err)
	}
	if resp.Found {
		t.Error("期望 found=false")
	}
}

func TestDeletePlan(t *testing.T) {
	repo := newMockPlanRepo()
	cat := testCatalog(t)
	seedPlan(t, repo, cat, "u1")
	svc := newPlanServiceForTest(t, repo)

	if err := svc.Delete(context.Background(), "u1"); err != nil {
		t.Fatalf("删除方案失败: %v", err)
	}
	if _, ok := repo.plans["u1"]; ok {
		t.Error("方案应被删除")
	}
}
