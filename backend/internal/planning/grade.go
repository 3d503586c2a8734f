package planning

// ── 成绩语义 ──────────────────────────────────────────────
//
// 标准成绩等级由低到高：FF FD VF DD DD+ DC DC+ CC CC+ CB CB+
// BB BB+ BA BA+ AA BL。哨兵值 "--" 表示"计划中/修读中"，
// 既非及格也非不及格。成绩后可带推测标记 "*"（视为已通过、
// 尚未最终确定）；等级比较前必须剥离标记，但标记本身的区分
// 保留给展示状态使用。
// ─────────────────────────────────────────────────────────

const (
	// GradePlanned 计划中/修读中的哨兵成绩
	GradePlanned = "--"
	// SpeculativeMarker 推测标记：视为已通过、尚未最终确定
	SpeculativeMarker = "*"
	// GradeAssumedPassed 假定通过成绩：过去学期仍为 "--" 的记录
	// 在比较时等同于 CC，标记保留推测语义
	GradeAssumedPassed = "CC" + SpeculativeMarker
)

// 成绩等级表，由低到高
var gradeScale = []string{
	"FF", "FD", "VF", "DD", "DD+", "DC", "DC+", "CC", "CC+",
	"CB", "CB+", "BB", "BB+", "BA", "BA+", "AA", "BL",
}

var gradeRank = func() map[string]int {
	m := make(map[string]int, len(gradeScale))
	for i, g := range gradeScale {
		m[g] = i
	}
	return m
}()

// 成绩 → 绩点；表外成绩不计入 GPA（其学分也不进入 GPA 分母）
var gradePoint = map[string]float64{
	"AA": 4.00, "BA+": 3.75, "BA": 3.50, "BB+": 3.25, "BB": 3.00,
	"CB+": 2.75, "CB": 2.50, "CC+": 2.25, "CC": 2.00, "DC+": 1.75,
	"DC": 1.50, "DD+": 1.25, "DD": 1.00, "FD": 0.50, "FF": 0.00,
	"VF": 0.00, "BL": 0.00,
}

// StripMarker 剥离成绩末尾的推测标记
func StripMarker(grade string) string {
	if len(grade) > 0 && grade[len(grade)-1:] == SpeculativeMarker {
		return grade[:len(grade)-1]
	}
	return grade
}

// HasMarker 判断成绩是否带推测标记
func HasMarker(grade string) bool {
	return len(grade) > 0 && grade[len(grade)-1:] == SpeculativeMarker
}

// Rank 成绩在标准等级表中的序号（剥离标记后查表），表外成绩为 -1
func Rank(grade string) int {
	if r, ok := gradeRank[StripMarker(grade)]; ok {
		return r
	}
	return -1
}

// IsPassing 判断成绩是否及格：DD 及以上与 BL 及格，FF/FD/VF 不及格，
// "--" 既非及格也非不及格
func IsPassing(grade string) bool {
	g := StripMarker(grade)
	if g == "BL" {
		return true
	}
	r, ok := gradeRank[g]
	return ok && r >= gradeRank["DD"]
}

// GradePoint 成绩对应的绩点；表外成绩（含 "--"）返回 ok=false
func GradePoint(grade string) (float64, bool) {
	p, ok := gradePoint[StripMarker(grade)]
	return p, ok
}

// EffectiveGrade 计算某条选课记录在选定学期时点上的有效成绩
//   - 已有具体成绩：原样返回；
//   - 成绩为 "--" 且记录就在选定学期：返回 "--"（正在修读）；
//   - 成绩为 "--" 且记录在选定学期之前：返回假定通过成绩（比较时等同 CC）；
//   - 其余情况返回 "--"。
func EffectiveGrade(att Attempt, selected string) string {
	if StripMarker(att.Grade) != GradePlanned {
		return att.Grade
	}
	if att.Semester == selected {
		return GradePlanned
	}
	if After(selected, att.Semester) {
		return GradeAssumedPassed
	}
	return GradePlanned
}
