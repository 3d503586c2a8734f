package planning

import "testing"

func TestIsSatisfied_ByGrade(t *testing.T) {
	transcript := []Attempt{
		{Semester: "2023-2024 Güz Dönemi", Code: "MAT101", Grade: "CC"},
	}
	selected := "2024-2025 Güz Dönemi"

	if !IsSatisfied("MAT101", "DD", transcript, selected, nil, nil) {
		t.Error("CC 应满足最低 DD 的先修要求")
	}
	if !IsSatisfied("MAT101", "CC", transcript, selected, nil, nil) {
		t.Error("CC 应满足最低 CC 的先修要求")
	}
	if IsSatisfied("MAT101", "BB", transcript, selected, nil, nil) {
		t.Error("CC 不应满足最低 BB 的先修要求")
	}
}

func TestIsSatisfied_Unresolved(t *testing.T) {
	transcript := []Attempt{{Semester: "2023-2024 Güz Dönemi", Code: "MAT101", Grade: "AA"}}
	if IsSatisfied("BIO101", "DD", transcript, "2024-2025 Güz Dönemi", nil, nil) {
		t.Error("从未修读的课程先修不满足")
	}
}

func TestIsSatisfied_RetakeLatestWins(t *testing.T) {
	// 先挂后过：取最新一次记录
	transcript := []Attempt{
		{Semester: "2023-2024 Güz Dönemi", Code: "MAT101", Grade: "FF"},
		{Semester: "2023-2024 Bahar Dönemi", Code: "MAT101", Grade: "CB"},
	}
	if !IsSatisfied("MAT101", "DD", transcript, "2024-2025 Güz Dönemi", nil, nil) {
		t.Error("重修通过后先修应满足")
	}

	// 先过后挂（重修失败）：同样取最新一次
	transcript = []Attempt{
		{Semester: "2023-2024 Güz Dönemi", Code: "MAT101", Grade: "CB"},
		{Semester: "2023-2024 Bahar Dönemi", Code: "MAT101", Grade: "FF"},
	}
	if IsSatisfied("MAT101", "DD", transcript, "2024-2025 Güz Dönemi", nil, nil) {
		t.Error("最新一次不及格时先修不应满足")
	}
}

func TestIsSatisfied_InProgress(t *testing.T) {
	transcript := []Attempt{
		{Semester: "2024-2025 Güz Dönemi", Code: "MAT101", Grade: GradePlanned},
	}
	// 正在选定学期修读：不满足
	if IsSatisfied("MAT101", "DD", transcript, "2024-2025 Güz Dönemi", nil, nil) {
		t.Error("选定学期正在修读的课程先修不应满足")
	}
	// 选定学期在其之后：推定通过（CC 等级）
	if !IsSatisfied("MAT101", "CC", transcript, "2024-2025 Bahar Dönemi", nil, nil) {
		t.Error("过去学期的 \"--\" 应推定通过并满足 CC 要求")
	}
	if IsSatisfied("MAT101", "BB", transcript, "2024-2025 Bahar Dönemi", nil, nil) {
		t.Error("推定通过不应满足 BB 要求")
	}
}

// 场景 C：成绩单无 FIZ101，等价表映射 FIZ101 → FIZ101E，
// 成绩单含 FIZ101E (CB) → 组满足
func TestIsGroupSatisfied_ViaEquivalence(t *testing.T) {
	transcript := []Attempt{
		{Semester: "2023-2024 Güz Dönemi", Code: "FIZ101E", Grade: "CB"},
	}
	table := EquivalenceTable{"FIZ101": {"FIZ101E"}}
	group := PrereqGroup{Group: 1, Courses: []PrereqCourse{{Code: "FIZ101", Min: "DD"}}}

	if !IsGroupSatisfied(group, transcript, "2024-2025 Güz Dönemi", table) {
		t.Error("等价课程达标时先修组应满足")
	}
}

func TestIsGroupSatisfied_EmptyGroup(t *testing.T) {
	// 空组上的 OR 为假：空课程列表的组恒不满足
	group := PrereqGroup{Group: 1}
	if IsGroupSatisfied(group, nil, "2024-2025 Güz Dönemi", nil) {
		t.Error("空先修组应恒不满足")
	}
}

func TestIsGroupSatisfied_SiblingExclusion(t *testing.T) {
	// 组内兄弟课程不得通过等价表互相满足：
	// PHY101 解析时排除兄弟 PHY102，等价表映射失效；
	// PHY102 自身成绩 CC 低于其最低要求 BA，同样不满足。
	transcript := []Attempt{{Semester: "2023-2024 Güz Dönemi", Code: "PHY102", Grade: "CC"}}
	table := EquivalenceTable{"PHY101": {"PHY102"}}
	group := PrereqGroup{Group: 1, Courses: []PrereqCourse{
		{Code: "PHY101", Min: "DD"},
		{Code: "PHY102", Min: "BA"},
	}}
	if IsGroupSatisfied(group, transcript, "2024-2025 Güz Dönemi", table) {
		t.Error("兄弟课程排除后组不应借等价表自满足")
	}
}

func TestHasUnsatisfiedPrereqs(t *testing.T) {
	transcript := []Attempt{
		{Semester: "2023-2024 Güz Dönemi", Code: "MAT101", Grade: "CC"},
	}
	selected := "2024-2025 Güz Dönemi"

	// 无先修组：空集上的 AND 为真 → 不存在未满足先修
	if HasUnsatisfiedPrereqs(nil, transcript, selected, nil) {
		t.Error("无先修组的课程不存在未满足先修")
	}

	groups := []PrereqGroup{
		{Group: 1, Courses: []PrereqCourse{{Code: "MAT101", Min: "DD"}}},
		{Group: 2, Courses: []PrereqCourse{{Code: "FIZ101", Min: "DD"}}},
	}
	// 组间 AND：第二组不满足 → 存在未满足先修
	if !HasUnsatisfiedPrereqs(groups, transcript, selected, nil) {
		t.Error("任一组不满足时应报告存在未满足先修")
	}
}

func TestLatestAttempt_TieKeepsArrayOrder(t *testing.T) {
	transcript := []Attempt{
		{Semester: "2023-2024 Güz Dönemi", Code: "MAT101", Grade: "FF"},
		{Semester: "2023-2024 Güz Dönemi", Code: "MAT101", Grade: "CC"},
	}
	att := LatestAttempt(transcript, "MAT101")
	if att == nil || att.Grade != "FF" {
		t.Errorf("排序值相等时应按数组顺序取先出现者，实际=%+v", att)
	}
}
