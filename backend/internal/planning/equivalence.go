package planning

import (
	"sort"
	"strings"
)

// ── 课程等价解析 ──────────────────────────────────────────
//
// 将目标课程代码解析为成绩单中的一条实际记录。解析顺序固定，
// 先到先得：
//  1. 代码精确匹配
//  2. 忽略代码内部空格的匹配
//  3. 等价表正向查找（跳过 exclude 中的替代代码）
//  4. 等价表反向查找（目标出现在某键的替代列表中时尝试该键）
//  5. 步骤 3/4 的去空格形式
//  6. 后缀启发：英文授课后缀 "E" 的增删变体
//
// 精确匹配必须永远优先于等价表匹配，否则陈旧的等价映射会
// 掩盖真实的重修记录 —— 此顺序是设计决定，不可调整。
// ─────────────────────────────────────────────────────────

// altDeliverySuffix 英文授课/替代授课版本的代码后缀
const altDeliverySuffix = "E"

func normalizeCode(code string) string {
	return strings.ReplaceAll(code, " ", "")
}

func findByCode(transcript []Attempt, code string) *Attempt {
	for i := range transcript {
		if transcript[i].Code == code {
			return &transcript[i]
		}
	}
	return nil
}

func findByNormalizedCode(transcript []Attempt, code string) *Attempt {
	norm := normalizeCode(code)
	for i := range transcript {
		if normalizeCode(transcript[i].Code) == norm {
			return &transcript[i]
		}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// sortedKeys 等价表键的稳定遍历顺序（反向查找的确定性依赖于此）
func sortedKeys(table EquivalenceTable) []string {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Resolve 将目标课程代码解析为成绩单中的第一条匹配记录
// exclude 用于先修组解析：排除组内兄弟课程的代码，防止一个
// 先修组借等价表匹配到自己组内的另一门课。无匹配返回 nil。
func Resolve(target string, transcript []Attempt, table EquivalenceTable, exclude []string) *Attempt {
	// 1. 精确匹配
	if att := findByCode(transcript, target); att != nil {
		return att
	}

	// 2. 忽略内部空格
	if att := findByNormalizedCode(transcript, target); att != nil {
		return att
	}

	// 3. 等价表正向查找
	for _, alt := range table[target] {
		if contains(exclude, alt) {
			continue
		}
		if att := findByCode(transcript, alt); att != nil {
			return att
		}
	}

	// 4. 等价表反向查找
	keys := sortedKeys(table)
	for _, key := range keys {
		if contains(table[key], target) {
			if att := findByCode(transcript, key); att != nil {
				return att
			}
		}
	}

	// 5. 步骤 3/4 的去空格形式
	for _, alt := range table[target] {
		if contains(exclude, alt) {
			continue
		}
		if att := findByNormalizedCode(transcript, alt); att != nil {
			return att
		}
	}
	for _, key := range keys {
		if contains(table[key], target) {
			if att := findByNormalizedCode(transcript, key); att != nil {
				return att
			}
		}
	}

	// 6. 后缀启发：尝试增删英文授课后缀
	if stripped, ok := strings.CutSuffix(target, altDeliverySuffix); ok && stripped != "" {
		if att := findByCode(transcript, stripped); att != nil {
			return att
		}
	} else {
		if att := findByCode(transcript, target+altDeliverySuffix); att != nil {
			return att
		}
	}

	return nil
}
