package planning

import "testing"

func TestComputeProgress_Empty(t *testing.T) {
	p := ComputeProgress(nil, "2023-2024 Güz Dönemi")
	if p.TotalCredits != 0 || p.GPA != 0 || p.ClassStanding != 1 || p.PassedCourses != 0 {
		t.Errorf("空成绩单应返回全零进度（一年级），实际=%+v", p)
	}
}

func TestComputeProgress_UnknownSemester(t *testing.T) {
	transcript := []Attempt{
		{Semester: "2023-2024 Güz Dönemi", Code: "MAT101", Credits: "4", Grade: "AA"},
	}
	p := ComputeProgress(transcript, "2050-2051 Güz Dönemi")
	if p.TotalCredits != 0 || p.GPA != 0 || p.PassedCourses != 0 {
		t.Errorf("选定学期不在成绩单中应返回全零进度，实际=%+v", p)
	}
}

// 场景 A：单门 AA 4 学分
func TestComputeProgress_SingleCourse(t *testing.T) {
	transcript := []Attempt{
		{Semester: "2023-2024 Güz Dönemi", Code: "MAT101", Credits: "4", Grade: "AA"},
	}
	p := ComputeProgress(transcript, "2023-2024 Güz Dönemi")
	if p.TotalCredits != 4 {
		t.Errorf("期望总学分 4，实际=%v", p.TotalCredits)
	}
	if p.GPA != 4.00 {
		t.Errorf("期望 GPA 4.00，实际=%v", p.GPA)
	}
	if p.PassedCourses != 1 {
		t.Errorf("期望通过课程数 1，实际=%d", p.PassedCourses)
	}
	if p.ClassStanding != 1 {
		t.Errorf("4 学分应为一年级，实际=%d", p.ClassStanding)
	}
}

// 场景 B：重修 —— 仅最新一次计入学分与 GPA
func TestComputeProgress_RetakeLatestWins(t *testing.T) {
	transcript := []Attempt{
		{Semester: "2023-2024 Güz Dönemi", Code: "MAT101", Credits: "4", Grade: "FF"},
		{Semester: "2023-2024 Bahar Dönemi", Code: "MAT101", Credits: "4", Grade: "CC"},
	}
	p := ComputeProgress(transcript, "2023-2024 Bahar Dönemi")
	if p.TotalCredits != 4 {
		t.Errorf("重修课程只计最新学分，期望 4，实际=%v", p.TotalCredits)
	}
	if p.GPA != 2.00 {
		t.Errorf("期望 GPA 2.00，实际=%v", p.GPA)
	}
	if p.PassedCourses != 1 {
		t.Errorf("期望通过课程数 1，实际=%d", p.PassedCourses)
	}
}

func TestComputeProgress_GPADenominatorExcludesUnmapped(t *testing.T) {
	transcript := []Attempt{
		{Semester: "2023-2024 Güz Dönemi", Code: "MAT101", Credits: "4", Grade: "AA"},
		// "--" 与表外成绩不进入 GPA 分母
		{Semester: "2023-2024 Güz Dönemi", Code: "FIZ101", Credits: "3", Grade: GradePlanned},
		{Semester: "2023-2024 Güz Dönemi", Code: "KIM101", Credits: "3", Grade: "??"},
	}
	p := ComputeProgress(transcript, "2023-2024 Güz Dönemi")
	if p.GPA != 4.00 {
		t.Errorf("GPA 分母应只含绩点表内成绩，期望 4.00，实际=%v", p.GPA)
	}
}

func TestComputeProgress_AssumedPassCredits(t *testing.T) {
	// 过去学期的 "--" 推定通过：学分计入总学分但不入 GPA
	transcript := []Attempt{
		{Semester: "2023-2024 Güz Dönemi", Code: "MAT101", Credits: "4", Grade: GradePlanned},
		{Semester: "2023-2024 Bahar Dönemi", Code: "FIZ101", Credits: "3", Grade: "BB"},
	}
	p := ComputeProgress(transcript, "2023-2024 Bahar Dönemi")
	if p.TotalCredits != 7 {
		t.Errorf("推定通过学分应计入总学分，期望 7，实际=%v", p.TotalCredits)
	}
	if p.GPA != 3.00 {
		t.Errorf("推定通过不应影响 GPA，期望 3.00，实际=%v", p.GPA)
	}
	if p.PassedCourses != 2 {
		t.Errorf("期望通过课程数 2，实际=%d", p.PassedCourses)
	}
}

func TestComputeProgress_MalformedCredits(t *testing.T) {
	transcript := []Attempt{
		{Semester: "2023-2024 Güz Dönemi", Code: "MAT101", Credits: "bozuk", Grade: "AA"},
		{Semester: "2023-2024 Güz Dönemi", Code: "FIZ101", Credits: "3,5", Grade: "BB"},
	}
	p := ComputeProgress(transcript, "2023-2024 Güz Dönemi")
	// 无法解析的学分按 0；逗号小数点容忍
	if p.TotalCredits != 3.5 {
		t.Errorf("期望总学分 3.5，实际=%v", p.TotalCredits)
	}
	if p.GPA != 3.00 {
		// MAT101 学分 0 → 对加权 GPA 无贡献
		t.Errorf("期望 GPA 3.00，实际=%v", p.GPA)
	}
}

func TestClassStanding_Thresholds(t *testing.T) {
	cases := []struct {
		credits float64
		want    int
	}{
		{0, 1}, {29.9, 1}, {30, 2}, {59.9, 2}, {60, 3}, {94.9, 3}, {95, 4}, {160, 4},
	}
	for _, c := range cases {
		if got := classStanding(c.credits); got != c.want {
			t.Errorf("classStanding(%v)=%d 期望 %d", c.credits, got, c.want)
		}
	}
}

func TestComputeProgress_ExcludesFutureSemesters(t *testing.T) {
	transcript := []Attempt{
		{Semester: "2023-2024 Güz Dönemi", Code: "MAT101", Credits: "4", Grade: "AA"},
		{Semester: "2024-2025 Güz Dönemi", Code: "MAT201", Credits: "4", Grade: "AA"},
	}
	p := ComputeProgress(transcript, "2023-2024 Güz Dönemi")
	if p.TotalCredits != 4 || p.PassedCourses != 1 {
		t.Errorf("未来学期的记录不应计入，实际=%+v", p)
	}
}
