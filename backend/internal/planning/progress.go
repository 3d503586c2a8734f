package planning

import (
	"math"
	"strconv"
	"strings"
)

// ── 学业进度汇总 ──────────────────────────────────────────

// 学级划分的学分阈值
const (
	standingYear2Credits = 30
	standingYear3Credits = 60
	standingYear4Credits = 95
)

// Progress 截至选定学期的学业进度
type Progress struct {
	TotalCredits  float64 `json:"total_credits"`
	GPA           float64 `json:"gpa"`
	ClassStanding int     `json:"class_standing"` // 1-4 年级
	PassedCourses int     `json:"passed_courses"`
}

// ParseCredits 解析学分字符串，容忍逗号小数点；无法解析按 0 处理
func ParseCredits(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ComputeProgress 计算截至选定学期的总学分、GPA、学级与通过课程数
//
// 规则：
//   - 仅统计选定学期及之前的记录；选定学期不在成绩单学期集合中
//     时返回全零进度；
//   - 同一课程代码只保留按学期排序最新的一次记录（重修覆盖旧成绩）；
//   - 总学分 = 通过课程学分之和（含"过去学期 -- 推定通过"），保留 1 位小数；
//   - GPA = Σ(绩点×学分)/Σ学分，仅计入绩点表内成绩的记录，保留
//     2 位小数，分母为 0 时 GPA 为 0。
func ComputeProgress(transcript []Attempt, selected string) Progress {
	zero := Progress{ClassStanding: 1}

	if !semesterKnown(transcript, selected) {
		return zero
	}

	upTo := FilterUpTo(transcript, selected)

	// 同一代码保留最新记录，保持首次出现的代码顺序
	var latest []Attempt
	seen := make(map[string]bool)
	for _, att := range upTo {
		if seen[att.Code] {
			continue
		}
		seen[att.Code] = true
		latest = append(latest, *LatestAttempt(upTo, att.Code))
	}

	var totalCredits, pointSum, creditSum float64
	passedCount := 0

	for _, att := range latest {
		credits := ParseCredits(att.Credits)

		passed := IsPassing(att.Grade)
		if StripMarker(att.Grade) == GradePlanned && After(selected, att.Semester) {
			// 过去学期仍为 "--"：推定通过
			passed = true
		}
		if passed {
			totalCredits += credits
			passedCount++
		}

		if point, ok := GradePoint(att.Grade); ok {
			pointSum += point * credits
			creditSum += credits
		}
	}

	totalCredits = math.Round(totalCredits*10) / 10

	gpa := 0.0
	if creditSum > 0 {
		gpa = math.Round(pointSum/creditSum*100) / 100
	}

	return Progress{
		TotalCredits:  totalCredits,
		GPA:           gpa,
		ClassStanding: classStanding(totalCredits),
		PassedCourses: passedCount,
	}
}

func semesterKnown(transcript []Attempt, selected string) bool {
	for _, att := range transcript {
		if att.Semester == selected {
			return true
		}
	}
	return false
}

func classStanding(totalCredits float64) int {
	switch {
	case totalCredits < standingYear2Credits:
		return 1
	case totalCredits < standingYear3Credits:
		return 2
	case totalCredits < standingYear4Credits:
		return 3
	default:
		return 4
	}
}
