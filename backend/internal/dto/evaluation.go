package dto

// ── 评估模块 ──

// 槽位状态
const (
	SlotStatusPassed     = "passed"     // 已通过
	SlotStatusFailed     = "failed"     // 最新一次不及格
	SlotStatusActive     = "active"     // 选定学期正在修读
	SlotStatusAssumed    = "assumed"    // 过去学期推定通过
	SlotStatusLocked     = "locked"     // 先修未满足
	SlotStatusPlanned    = "planned"    // 未修读，先修已满足
	SlotStatusUnassigned = "unassigned" // 选修槽位未分配
)

// PrereqCourseResult 单门先修课程的评估结果
type PrereqCourseResult struct {
	Code      string `json:"code"`
	Min       string `json:"min"`
	Satisfied bool   `json:"satisfied"`
}

// PrereqGroupResult 先修组的评估结果
type PrereqGroupResult struct {
	Group     int                  `json:"group"`
	Satisfied bool                 `json:"satisfied"`
	Courses   []PrereqCourseResult `json:"courses"`
}

// SlotOverlay 培养方案槽位叠加成绩单后的展示状态
type SlotOverlay struct {
	Kind           string              `json:"kind"`
	Code           string              `json:"code,omitempty"`
	Name           string              `json:"name,omitempty"`
	Category       string              `json:"category,omitempty"`
	Credits        string              `json:"credits,omitempty"`
	Status         string              `json:"status"`
	EffectiveGrade string              `json:"effective_grade,omitempty"`
	Speculative    bool                `json:"speculative,omitempty"`
	AssignedCode   string              `json:"assigned_code,omitempty"` // 选修槽位被分配的课程代码
	PrereqGroups   []PrereqGroupResult `json:"prereq_groups,omitempty"`
}

// OverlayResponse 方案叠加评估响应
type OverlayResponse struct {
	SelectedSemester string          `json:"selected_semester"`
	Semesters        [][]SlotOverlay `json:"semesters"`
}

// ProgressResponse 学业进度响应
type ProgressResponse struct {
	TotalCredits  float64 `json:"total_credits"`
	GPA           float64 `json:"gpa"`
	ClassStanding int     `json:"class_standing"`
	PassedCourses int     `json:"passed_courses"`
}

// CourseCheckResponse 单门课程先修详情响应
type CourseCheckResponse struct {
	Code         string              `json:"code"`
	Satisfied    bool                `json:"satisfied"`
	PrereqGroups []PrereqGroupResult `json:"prereq_groups"`
}
