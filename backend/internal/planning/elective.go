package planning

import "sort"

// ── 选修槽位分配 ──────────────────────────────────────────
//
// 将成绩单中的已修课程分配到培养方案的选修槽位上，保证每门
// 课程代码最多计入一个槽位（单射）。算法为两趟确定性贪心：
//   第一趟：恰好有一条匹配记录的槽位，按选项数从少到多锁定
//   （选项更少的槽位别无选择，须先占用；同选项数按方案顺序）；
//   第二趟：多条匹配的槽位按方案顺序取第一条尚未被占用的记录。
// 贪心并非全局最优：病态的选项重叠可能导致某槽位落空，即使
// 存在合法的完全分配。为保持既有结果的可复现性，保留贪心。
// ─────────────────────────────────────────────────────────

// ElectiveAssignment 选修分配结果
type ElectiveAssignment struct {
	// 课程代码 → 选修槽位名（单射）
	CodeToSlot map[string]string
	// 选修槽位名 → 被分配的选课记录
	slotToAttempt map[string]*Attempt
}

// AssignedCourseFor 查询某选修槽位被分配到的选课记录
func (a *ElectiveAssignment) AssignedCourseFor(electiveName string) *Attempt {
	return a.slotToAttempt[electiveName]
}

// AssignElectives 对整个培养方案执行选修槽位分配
// transcript 应已按选定学期过滤（见 FilterUpTo）。
func AssignElectives(plan [][]PlanSlot, transcript []Attempt) *ElectiveAssignment {
	result := &ElectiveAssignment{
		CodeToSlot:    make(map[string]string),
		slotToAttempt: make(map[string]*Attempt),
	}

	// 第一趟：唯一匹配的槽位按选项数从少到多锁定。
	// 若两个槽位的唯一匹配是同一条记录，选项更少的槽位先占用：
	// 它没有别的候选，而选项更多的槽位本可指望其他课程。
	var single []PlanSlot
	forEachElective(plan, func(slot PlanSlot) {
		if len(matchingAttempts(slot, transcript)) == 1 {
			single = append(single, slot)
		}
	})
	sort.SliceStable(single, func(i, j int) bool {
		return len(single[i].Options) < len(single[j].Options)
	})
	for _, slot := range single {
		att := matchingAttempts(slot, transcript)[0]
		if _, taken := result.CodeToSlot[att.Code]; taken {
			continue
		}
		if _, filled := result.slotToAttempt[slot.Name]; filled {
			continue
		}
		result.CodeToSlot[att.Code] = slot.Name
		result.slotToAttempt[slot.Name] = att
	}

	// 第二趟：多匹配槽位取第一条未被占用的记录
	forEachElective(plan, func(slot PlanSlot) {
		if _, filled := result.slotToAttempt[slot.Name]; filled {
			return
		}
		matches := matchingAttempts(slot, transcript)
		if len(matches) <= 1 {
			return
		}
		for _, att := range matches {
			if _, taken := result.CodeToSlot[att.Code]; taken {
				continue
			}
			result.CodeToSlot[att.Code] = slot.Name
			result.slotToAttempt[slot.Name] = att
			break
		}
	})

	return result
}

func forEachElective(plan [][]PlanSlot, fn func(PlanSlot)) {
	for _, semester := range plan {
		for _, slot := range semester {
			switch slot.Kind {
			case SlotKindElective:
				fn(slot)
			case SlotKindCourse:
				// 固定课程槽位不参与选修分配
			}
		}
	}
}

func matchingAttempts(slot PlanSlot, transcript []Attempt) []*Attempt {
	var matches []*Attempt
	for i := range transcript {
		if contains(slot.Options, transcript[i].Code) {
			matches = append(matches, &transcript[i])
		}
	}
	return matches
}
