package planning

// Attempt 成绩单中的一次选课记录
// 同一课程代码可在多个学期重复出现（重修），记录永不去重；
// "最新一次选课"由学期排序决定，与数组插入顺序无关。
type Attempt struct {
	ID        string `json:"id,omitempty"`
	Semester  string `json:"semester"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Credits   string `json:"credits"`
	Grade     string `json:"grade"`
	SessionID string `json:"session_id,omitempty"`
}

// ── 培养方案槽位（带判别字段的联合类型）──

const (
	SlotKindCourse   = "course"
	SlotKindElective = "elective"
)

// PlanSlot 培养方案中的一个槽位：固定课程或选修类别
// Kind 为判别字段，所有消费方必须对其做穷尽 switch。
type PlanSlot struct {
	Kind     string   `json:"kind"` // course | elective
	Code     string   `json:"code,omitempty"`
	Name     string   `json:"name,omitempty"`
	Category string   `json:"category,omitempty"`
	Options  []string `json:"options,omitempty"`
}

// ── 先修课程 ──

// PrereqCourse 先修组内的一门课程及其最低成绩要求
type PrereqCourse struct {
	Code string `json:"code"`
	Min  string `json:"min"`
}

// PrereqGroup 先修组：组内任一课程达标即组满足（组内 OR，组间 AND）
type PrereqGroup struct {
	Group   int            `json:"group"`
	Courses []PrereqCourse `json:"courses"`
}

// EquivalenceTable 课程等价表：代码 → 可互换的替代代码列表
// 数据源不保证对称，解析时必须双向查找。
type EquivalenceTable map[string][]string
