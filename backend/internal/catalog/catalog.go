package catalog

import (
	"embed"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/selimdilsadercan/foritu-web-sub000/backend/internal/planning"
)

// ── 静态参考数据 ──────────────────────────────────────────
//
// 培养方案模板、课程目录、课程等价表与开课目录均为只读数据，
// 随二进制嵌入，进程启动时加载一次。培养方案模板中形状异常
// 的学期（非数组）在加载时丢弃并记录告警，而不是让进程崩溃。
// ─────────────────────────────────────────────────────────

//go:embed data/*.json
var dataFS embed.FS

// Course 课程目录条目
type Course struct {
	Code          string                 `json:"code"`
	Name          string                 `json:"name"`
	Credits       string                 `json:"credits"`
	Prerequisites []planning.PrereqGroup `json:"prerequisites,omitempty"`
}

// Session 开课的上课场次信息
type Session struct {
	Location string `json:"location"`
	Day      string `json:"day"`
	Time     string `json:"time"`
	Room     string `json:"room"`
}

// Lesson 开课目录条目（课程的一个可选场次）
type Lesson struct {
	LessonID     string  `json:"lesson_id"`
	CourseCode   string  `json:"course_code"`
	Session      Session `json:"session"`
	Instructor   string  `json:"instructor"`
	DeliveryMode string  `json:"delivery_mode"` // yüz yüze | online
}

// Period 培养方案模板的一个学制版本
type Period struct {
	Period    string                `json:"period"`
	Semesters [][]planning.PlanSlot `json:"semesters"`
}

// Program 专业及其学制版本列表
type Program struct {
	Program string   `json:"program"`
	Periods []Period `json:"periods"`
}

// Faculty 学院及其专业列表
type Faculty struct {
	Faculty  string    `json:"faculty"`
	Programs []Program `json:"programs"`
}

// Catalog 全部静态参考数据的聚合
type Catalog struct {
	Faculties    []Faculty
	Courses      []Course
	Equivalences planning.EquivalenceTable
	Lessons      []Lesson

	courseByCode  map[string]*Course
	lessonsByCode map[string][]Lesson
	lessonByID    map[string]*Lesson
}

// Load 从嵌入数据加载全部参考数据
func Load(logger *zap.Logger) (*Catalog, error) {
	c := &Catalog{
		courseByCode:  make(map[string]*Course),
		lessonsByCode: make(map[string][]Lesson),
		lessonByID:    make(map[string]*Lesson),
	}

	if err := c.loadPlans(logger); err != nil {
		return nil, fmt.Errorf("加载培养方案模板失败: %w", err)
	}
	if err := loadJSON("data/courses.json", &c.Courses); err != nil {
		return nil, fmt.Errorf("加载课程目录失败: %w", err)
	}
	if err := loadJSON("data/equivalences.json", &c.Equivalences); err != nil {
		return nil, fmt.Errorf("加载课程等价表失败: %w", err)
	}
	if err := loadJSON("data/lessons.json", &c.Lessons); err != nil {
		return nil, fmt.Errorf("加载开课目录失败: %w", err)
	}

	for i := range c.Courses {
		c.courseByCode[c.Courses[i].Code] = &c.Courses[i]
	}
	for i := range c.Lessons {
		lesson := c.Lessons[i]
		c.lessonsByCode[lesson.CourseCode] = append(c.lessonsByCode[lesson.CourseCode], lesson)
		c.lessonByID[lesson.LessonID] = &c.Lessons[i]
	}

	logger.Info("参考数据加载完成",
		zap.Int("faculties", len(c.Faculties)),
		zap.Int("courses", len(c.Courses)),
		zap.Int("equivalences", len(c.Equivalences)),
		zap.Int("lessons", len(c.Lessons)),
	)

	return c, nil
}

// 培养方案模板单独加载：学期字段先读为 RawMessage，
// 无法解析为槽位数组的学期丢弃并告警（防御坏数据）
func (c *Catalog) loadPlans(logger *zap.Logger) error {
	type rawPeriod struct {
		Period    string            `json:"period"`
		Semesters []json.RawMessage `json:"semesters"`
	}
	type rawProgram struct {
		Program string      `json:"program"`
		Periods []rawPeriod `json:"periods"`
	}
	type rawFaculty struct {
		Faculty  string       `json:"faculty"`
		Programs []rawProgram `json:"programs"`
	}

	var rawFaculties []rawFaculty
	if err := loadJSON("data/plans.json", &rawFaculties); err != nil {
		return err
	}

	for _, rf := range rawFaculties {
		faculty := Faculty{Faculty: rf.Faculty}
		for _, rp := range rf.Programs {
			program := Program{Program: rp.Program}
			for _, rper := range rp.Periods {
				period := Period{Period: rper.Period}
				for i, rawSem := range rper.Semesters {
					var slots []planning.PlanSlot
					if err := json.Unmarshal(rawSem, &slots); err != nil {
						logger.Warn("培养方案模板学期形状异常，已丢弃",
							zap.String("faculty", rf.Faculty),
							zap.String("program", rp.Program),
							zap.String("period", rper.Period),
							zap.Int("semester_index", i),
							zap.Error(err),
						)
						continue
					}
					period.Semesters = append(period.Semesters, slots)
				}
				program.Periods = append(program.Periods, period)
			}
			faculty.Programs = append(faculty.Programs, program)
		}
		c.Faculties = append(c.Faculties, faculty)
	}

	return nil
}

func loadJSON(path string, v interface{}) error {
	data, err := dataFS.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// ── 查询辅助 ──

// Course 按代码查课程目录，未收录返回 nil
func (c *Catalog) Course(code string) *Course {
	return c.courseByCode[code]
}

// Prerequisites 课程的先修组列表（未收录课程视为无先修）
func (c *Catalog) Prerequisites(code string) []planning.PrereqGroup {
	if course := c.courseByCode[code]; course != nil {
		return course.Prerequisites
	}
	return nil
}

// LessonsFor 某课程的全部开课场次
func (c *Catalog) LessonsFor(courseCode string) []Lesson {
	return c.lessonsByCode[courseCode]
}

// Lesson 按场次 ID 查开课，未收录返回 nil
func (c *Catalog) Lesson(lessonID string) *Lesson {
	return c.lessonByID[lessonID]
}

// Template 按（学院, 专业, 学制版本）查培养方案模板
func (c *Catalog) Template(faculty, program, period string) ([][]planning.PlanSlot, bool) {
	for _, f := range c.Faculties {
		if f.Faculty != faculty {
			continue
		}
		for _, p := range f.Programs {
			if p.Program != program {
				continue
			}
			for _, per := range p.Periods {
				if per.Period == period {
					return per.Semesters, true
				}
			}
		}
	}
	return nil, false
}
