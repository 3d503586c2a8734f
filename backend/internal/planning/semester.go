package planning

import (
	"strconv"
	"strings"
)

// ── 学期排序 ──────────────────────────────────────────────
//
// 日历学期标签形如 "2023-2024 Güz Dönemi"（学年 + 学期名）。
// 排序值 = 起始年份*10 + 学期序号（Güz=1, Bahar=2, Yaz=3）。
// 模板学期标签形如 "3. Dönem"，仅按序号排序，与日历标签
// 不在同一数值刻度上，两种刻度之间不可比较（After 返回 false）。
// ─────────────────────────────────────────────────────────

// 学期名 → 序号；无法识别的学期名序号为 0
var termRank = map[string]int{
	"Güz":   1,
	"Bahar": 2,
	"Yaz":   3,
}

// Order 计算日历学期标签的排序值
// 年份无法解析时年份部分按 0 处理，学期名无法识别时序号为 0。
// 排序值相等的两个标签视为同时发生（不规定进一步的先后）。
func Order(label string) int {
	year := 0
	if fields := strings.Fields(label); len(fields) > 0 {
		yearPart := strings.SplitN(fields[0], "-", 2)[0]
		if y, err := strconv.Atoi(yearPart); err == nil {
			year = y
		}
	}

	rank := 0
	for term, r := range termRank {
		if strings.Contains(label, term) {
			rank = r
			break
		}
	}

	return year*10 + rank
}

// IsTemplateLabel 判断是否为模板学期标签（"N. Dönem" 形式）
func IsTemplateLabel(label string) bool {
	_, ok := templateIndex(label)
	return ok
}

// TemplateOrder 模板学期标签的排序值（即序号 N，无法解析为 0）
func TemplateOrder(label string) int {
	n, _ := templateIndex(label)
	return n
}

func templateIndex(label string) (int, bool) {
	rest, found := strings.CutSuffix(strings.TrimSpace(label), ". Dönem")
	if !found {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// After 判断学期 a 是否严格晚于学期 b
// 两个标签必须在同一刻度上（同为日历标签或同为模板标签），
// 跨刻度比较一律返回 false。
func After(a, b string) bool {
	aTpl, bTpl := IsTemplateLabel(a), IsTemplateLabel(b)
	if aTpl != bTpl {
		return false
	}
	if aTpl {
		return TemplateOrder(a) > TemplateOrder(b)
	}
	return Order(a) > Order(b)
}

// FilterUpTo 过滤出选定学期及其之前的所有选课记录（保持数组顺序）
func FilterUpTo(transcript []Attempt, selected string) []Attempt {
	result := make([]Attempt, 0, len(transcript))
	for _, att := range transcript {
		if !After(att.Semester, selected) {
			result = append(result, att)
		}
	}
	return result
}
