package planning

import "testing"

func TestOrder_Chronology(t *testing.T) {
	cases := []struct {
		earlier, later string
	}{
		{"2023-2024 Güz Dönemi", "2023-2024 Bahar Dönemi"},
		{"2023-2024 Bahar Dönemi", "2023-2024 Yaz Dönemi"},
		{"2023-2024 Yaz Dönemi", "2024-2025 Güz Dönemi"},
		{"2020-2021 Güz Dönemi", "2024-2025 Güz Dönemi"},
	}
	for _, c := range cases {
		if Order(c.earlier) >= Order(c.later) {
			t.Errorf("%q 应早于 %q: %d vs %d", c.earlier, c.later, Order(c.earlier), Order(c.later))
		}
	}
}

func TestOrder_SameYearSameTerm(t *testing.T) {
	// 同学年同学期的标签排序值必须相等（后缀差异不影响）
	if Order("2023-2024 Güz Dönemi") != Order("2023-2024 Güz Dönemi ") {
		t.Error("相同学年学期的标签排序值应相等")
	}
}

func TestOrder_Unrecognized(t *testing.T) {
	if Order("bilinmeyen") != 0 {
		t.Errorf("无法识别的标签排序值应为 0，实际=%d", Order("bilinmeyen"))
	}
	// 学期名无法识别：仅年份部分生效
	if Order("2023-2024 Kış Dönemi") != 20230 {
		t.Errorf("未知学期名序号应为 0，实际=%d", Order("2023-2024 Kış Dönemi"))
	}
	// 年份无法解析：仅学期序号生效
	if Order("xxxx-yyyy Güz Dönemi") != 1 {
		t.Errorf("未知年份应按 0 处理，实际=%d", Order("xxxx-yyyy Güz Dönemi"))
	}
}

func TestTemplateLabel(t *testing.T) {
	if !IsTemplateLabel("3. Dönem") {
		t.Error("\"3. Dönem\" 应识别为模板学期标签")
	}
	if IsTemplateLabel("2023-2024 Güz Dönemi") {
		t.Error("日历标签不应识别为模板标签")
	}
	if TemplateOrder("5. Dönem") != 5 {
		t.Errorf("模板标签按序号排序，期望 5，实际=%d", TemplateOrder("5. Dönem"))
	}
}

func TestAfter_CrossScale(t *testing.T) {
	// 模板刻度与日历刻度不可比较
	if After("3. Dönem", "2023-2024 Güz Dönemi") {
		t.Error("跨刻度比较应返回 false")
	}
	if After("2023-2024 Güz Dönemi", "3. Dönem") {
		t.Error("跨刻度比较应返回 false")
	}
}

func TestAfter_SameScale(t *testing.T) {
	if !After("2024-2025 Güz Dönemi", "2023-2024 Bahar Dönemi") {
		t.Error("2024-2025 Güz 应晚于 2023-2024 Bahar")
	}
	if After("2023-2024 Güz Dönemi", "2023-2024 Güz Dönemi") {
		t.Error("相同学期不应互为先后")
	}
	if !After("4. Dönem", "2. Dönem") {
		t.Error("模板学期应按序号比较")
	}
}

func TestFilterUpTo(t *testing.T) {
	transcript := []Attempt{
		{Semester: "2023-2024 Güz Dönemi", Code: "MAT101"},
		{Semester: "2024-2025 Güz Dönemi", Code: "MAT201"},
		{Semester: "2023-2024 Bahar Dönemi", Code: "FIZ101"},
	}
	got := FilterUpTo(transcript, "2023-2024 Bahar Dönemi")
	if len(got) != 2 {
		t.Fatalf("期望过滤后 2 条记录，实际=%d", len(got))
	}
	if got[0].Code != "MAT101" || got[1].Code != "FIZ101" {
		t.Errorf("过滤应保持数组顺序: %+v", got)
	}
}
