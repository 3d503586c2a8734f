package dto

import "github.com/selimdilsadercan/foritu-web-sub000/backend/internal/planning"

// ── 培养方案模块 ──

// SelectPlanRequest 选定培养方案模板请求
type SelectPlanRequest struct {
	Faculty string `json:"faculty" binding:"required"`
	Program string `json:"program" binding:"required"`
	Period  string `json:"period" binding:"required"`
}

// PlanResponse 培养方案响应
type PlanResponse struct {
	Faculty   string                `json:"faculty,omitempty"`
	Program   string                `json:"program,omitempty"`
	Period    string                `json:"period,omitempty"`
	Semesters [][]planning.PlanSlot `json:"semesters,omitempty"`
	Found     bool                  `json:"found"`
}

// PlanCatalogPeriod 模板目录：学制版本
type PlanCatalogPeriod struct {
	Period string `json:"period"`
}

// PlanCatalogProgram 模板目录：专业
type PlanCatalogProgram struct {
	Program string              `json:"program"`
	Periods []PlanCatalogPeriod `json:"periods"`
}

// PlanCatalogFaculty 模板目录：学院
type PlanCatalogFaculty struct {
	Faculty  string               `json:"faculty"`
	Programs []PlanCatalogProgram `json:"programs"`
}
