package planning

import "testing"

func TestResolve_ExactMatchWins(t *testing.T) {
	transcript := []Attempt{
		{Code: "FIZ101E", Grade: "AA"},
		{Code: "FIZ101", Grade: "CC"},
	}
	table := EquivalenceTable{"FIZ101": {"FIZ101E"}}

	// 精确匹配必须短路等价表查找，否则陈旧映射会掩盖真实重修
	att := Resolve("FIZ101", transcript, table, nil)
	if att == nil || att.Code != "FIZ101" {
		t.Fatalf("精确匹配应优先，实际=%+v", att)
	}
}

func TestResolve_SpaceInsensitive(t *testing.T) {
	transcript := []Attempt{{Code: "MAT 101", Grade: "BB"}}
	att := Resolve("MAT101", transcript, nil, nil)
	if att == nil || att.Code != "MAT 101" {
		t.Fatalf("应忽略代码内部空格匹配，实际=%+v", att)
	}
}

func TestResolve_ForwardEquivalence(t *testing.T) {
	transcript := []Attempt{{Code: "FIZ101E", Grade: "CB"}}
	table := EquivalenceTable{"FIZ101": {"FIZ101E"}}
	att := Resolve("FIZ101", transcript, table, nil)
	if att == nil || att.Code != "FIZ101E" {
		t.Fatalf("正向等价查找失败，实际=%+v", att)
	}
}

func TestResolve_ForwardEquivalence_Excluded(t *testing.T) {
	// 排除同组兄弟课程后不应匹配（此处用不带后缀关系的代码，
	// 避免步骤 6 的后缀启发兜底命中）
	transcript := []Attempt{{Code: "PHY101", Grade: "CB"}}
	table := EquivalenceTable{"FIZ101": {"PHY101"}}
	if att := Resolve("FIZ101", transcript, table, []string{"PHY101"}); att != nil {
		t.Errorf("排除代码不应被正向查找匹配，实际=%+v", att)
	}
}

func TestResolve_ReverseEquivalence(t *testing.T) {
	transcript := []Attempt{{Code: "FIZ101", Grade: "BB"}}
	table := EquivalenceTable{"FIZ101": {"FIZ101E"}}
	// 目标出现在 FIZ101 的替代列表中 → 尝试键本身
	att := Resolve("FIZ101E", transcript, table, nil)
	if att == nil || att.Code != "FIZ101" {
		t.Fatalf("反向等价查找失败，实际=%+v", att)
	}
}

func TestResolve_SuffixHeuristic(t *testing.T) {
	// 去后缀方向
	transcript := []Attempt{{Code: "KIM101", Grade: "CC"}}
	att := Resolve("KIM101E", transcript, nil, nil)
	if att == nil || att.Code != "KIM101" {
		t.Fatalf("去后缀启发失败，实际=%+v", att)
	}

	// 加后缀方向
	transcript = []Attempt{{Code: "KIM101E", Grade: "CC"}}
	att = Resolve("KIM101", transcript, nil, nil)
	if att == nil || att.Code != "KIM101E" {
		t.Fatalf("加后缀启发失败，实际=%+v", att)
	}
}

func TestResolve_NoMatch(t *testing.T) {
	transcript := []Attempt{{Code: "MAT101", Grade: "AA"}}
	if att := Resolve("BIO101", transcript, nil, nil); att != nil {
		t.Errorf("无匹配时应返回 nil，实际=%+v", att)
	}
	if att := Resolve("BIO101", nil, nil, nil); att != nil {
		t.Errorf("空成绩单应返回 nil，实际=%+v", att)
	}
}
