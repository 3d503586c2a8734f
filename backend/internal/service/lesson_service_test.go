package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/selimdilsadercan/foritu-web-sub000/backend/internal/catalog"
	"github.com/selimdilsadercan/foritu-web-sub000/backend/internal/planning"
)

func newLessonServiceForTest(t *testing.T, transcriptRepo *mockTranscriptRepo) LessonService {
	t.Helper()
	return NewLessonService(
		testRepository(transcriptRepo, newMockPlanRepo()),
		testCatalog(t),
		zap.NewNop(),
	)
}

func TestListLessons(t *testing.T) {
	svc := newLessonServiceForTest(t, newMockTranscriptRepo())

	lessons, err := svc.ListLessons(context.Background(), "MAT101")
	if err != nil {
		t.Fatalf("查询开课失败: %v", err)
	}
	if len(lessons) != 2 {
		t.Fatalf("MAT101 期望 2 个场次，实际 %d", len(lessons))
	}
	for _, l := range lessons {
		if l.CourseCode != "MAT101" {
			t.Errorf("场次课程代码不符: %s", l.CourseCode)
		}
	}
}

func TestListLessons_UnknownCourse(t *testing.T) {
	svc := newLessonServiceForTest(t, newMockTranscriptRepo())

	lessons, err := svc.ListLessons(context.Background(), "XYZ999")
	if err != nil {
		t.Fatalf("未收录课程不应报错: %v", err)
	}
	if len(lessons) != 0 {
		t.Errorf("期望空列表，实际 %d", len(lessons))
	}
}

func TestSelectedLessons_JoinsCatalog(t *testing.T) {
	repo := newMockTranscriptRepo()
	seedTranscript(repo, "u1", []planning.Attempt{
		{ID: "a1", Semester: "2024-2025 Güz Dönemi", Code: "MAT101", Grade: planning.GradePlanned, SessionID: "11205"},
		{ID: "a2", Semester: "2024-2025 Güz Dönemi", Code: "FIZ101", Grade: planning.GradePlanned},
		{ID: "a3", Semester: "2024-2025 Güz Dönemi", Code: "BLG103", Grade: planning.GradePlanned, SessionID: "gecersiz"},
	})
	svc := newLessonServiceForTest(t, repo)

	selected, err := svc.SelectedLessons(context.Background(), "u1")
	if err != nil {
		t.Fatalf("查询已选场次失败: %v", err)
	}
	// 无场次的记录与目录中不存在的场次引用都跳过
	if len(selected) != 1 {
		t.Fatalf("期望 1 个已选场次，实际 %d", len(selected))
	}
	got := selected[0]
	if got.LessonID != "11205" || got.CourseCode != "MAT101" {
		t.Errorf("联查结果不符: %+v", got)
	}
	if got.Session.Day != "Pazartesi" || got.Instructor != "A. Yılmaz" {
		t.Errorf("场次明细应来自开课目录: %+v", got)
	}
}

func TestExportICS_NoSelections(t *testing.T) {
	repo := newMockTranscriptRepo()
	seedTranscript(repo, "u1", []planning.Attempt{
		{ID: "a1", Semester: "2024-2025 Güz Dönemi", Code: "MAT101", Grade: planning.GradePlanned},
	})
	svc := newLessonServiceForTest(t, repo)

	_, _, err := svc.ExportICS(context.Background(), "u1")
	if !errors.Is(err, ErrNoSelectedLessons) {
		t.Fatalf("期望 ErrNoSelectedLessons，实际: %v", err)
	}
}

func TestExportICS_GeneratesWeeklyEvents(t *testing.T) {
	repo := newMockTranscriptRepo()
	seedTranscript(repo, "u1", []planning.Attempt{
		{ID: "a1", Semester: "2024-2025 Güz Dönemi", Code: "MAT101", Grade: planning.GradePlanned, SessionID: "11205"},
		{ID: "a2", Semester: "2024-2025 Güz Dönemi", Code: "FIZ101", Grade: planning.GradePlanned, SessionID: "11340"},
	})
	svc := newLessonServiceForTest(t, repo)

	buf, filename, err := svc.ExportICS(context.Background(), "u1")
	if err != nil {
		t.Fatalf("导出 ICS 失败: %v", err)
	}
	if filename != "ders_programi.ics" {
		t.Errorf("文件名不符: %s", filename)
	}

	content := buf.String()
	if !strings.Contains(content, "BEGIN:VCALENDAR") {
		t.Error("输出应为 iCalendar 格式")
	}
	if strings.Count(content, "BEGIN:VEVENT") != 2 {
		t.Errorf("期望 2 个事件，实际 %d", strings.Count(content, "BEGIN:VEVENT"))
	}
	if !strings.Contains(content, "FREQ=WEEKLY") {
		t.Error("事件应按周重复")
	}
	if !strings.Contains(content, "MAT101") {
		t.Error("事件摘要应包含课程代码")
	}
}

func TestNextSessionTimes(t *testing.T) {
	// 2026-08-26 是星期三
	now := time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC)

	// 星期一 08:30-11:30 → 下周一
	start, end, err := nextSessionTimes(catalog.Session{Day: "Pazartesi", Time: "08:30-11:30"}, now)
	if err != nil {
		t.Fatalf("解析场次时间失败: %v", err)
	}
	if start.Weekday() != time.Monday {
		t.Errorf("期望星期一，实际 %s", start.Weekday())
	}
	if !start.After(now) {
		t.Error("起始时间应在当前时刻之后")
	}
	if got := end.Sub(start); got != 3*time.Hour {
		t.Errorf("期望时长 3 小时，实际 %s", got)
	}

	// 当天但时间已过 → 顺延一周
	start, _, err = nextSessionTimes(catalog.Session{Day: "Çarşamba", Time: "08:30-11:30"}, now)
	if err != nil {
		t.Fatalf("解析场次时间失败: %v", err)
	}
	if !start.After(now) {
		t.Error("已过时刻应顺延到下周")
	}
	if start.Weekday() != time.Wednesday {
		t.Errorf("期望星期三，实际 %s", start.Weekday())
	}

	if _, _, err := nextSessionTimes(catalog.Session{Day: "Bilinmeyen", Time: "08:30-11:30"}, now); err == nil {
		t.Error("无法识别的星期标签应报错")
	}
	if _, _, err := nextSessionTimes(catalog.Session{Day: "Cuma", Time: "sabah"}, now); err == nil {
		t.Error("无法识别的时间区间应报错")
	}
}
