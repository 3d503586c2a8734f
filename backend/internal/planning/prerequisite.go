package planning

// ── 先修评估 ──────────────────────────────────────────────

// LatestAttempt 返回指定代码在成绩单中按学期排序最新的一次记录
// 排序值相等时按成绩单数组顺序取先出现者。无记录返回 nil。
func LatestAttempt(transcript []Attempt, code string) *Attempt {
	var latest *Attempt
	for i := range transcript {
		if transcript[i].Code != code {
			continue
		}
		if latest == nil || After(transcript[i].Semester, latest.Semester) {
			latest = &transcript[i]
		}
	}
	return latest
}

// IsSatisfied 判断单门先修要求是否满足
// 流程：等价解析（排除同组兄弟课程）→ 取最新一次记录 → 计算
// 有效成绩 → 与最低成绩要求比较。未解析到、正在修读或从未
// 修读均视为不满足。
func IsSatisfied(prereqCode, minGrade string, transcript []Attempt, selected string, table EquivalenceTable, siblings []string) bool {
	resolved := Resolve(prereqCode, transcript, table, siblings)
	if resolved == nil {
		return false
	}

	att := LatestAttempt(transcript, resolved.Code)
	if att == nil {
		return false
	}

	// 有效成绩已包含"过去学期 -- 视同 CC 通过"的推定规则
	eff := EffectiveGrade(*att, selected)
	if StripMarker(eff) == GradePlanned {
		return false
	}

	return Rank(eff) >= Rank(minGrade)
}

// IsGroupSatisfied 判断先修组是否满足：组内任一课程达标即可
// 每门课程解析时排除组内其他课程的代码。空组恒不满足。
func IsGroupSatisfied(group PrereqGroup, transcript []Attempt, selected string, table EquivalenceTable) bool {
	for i, course := range group.Courses {
		siblings := make([]string, 0, len(group.Courses)-1)
		for j, other := range group.Courses {
			if j != i {
				siblings = append(siblings, other.Code)
			}
		}
		if IsSatisfied(course.Code, course.Min, transcript, selected, table, siblings) {
			return true
		}
	}
	return false
}

// HasUnsatisfiedPrereqs 判断课程是否存在未满足的先修要求
// 组间为 AND：任一组不满足即为存在未满足先修。无先修组的课程
// 不存在未满足先修（空集上的 AND 为真）。
func HasUnsatisfiedPrereqs(groups []PrereqGroup, transcript []Attempt, selected string, table EquivalenceTable) bool {
	for _, group := range groups {
		if !IsGroupSatisfied(group, transcript, selected, table) {
			return true
		}
	}
	return false
}
