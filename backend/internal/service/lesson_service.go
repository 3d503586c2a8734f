package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/selimdilsadercan/foritu-web-sub000/backend/internal/catalog"
	"github.com/selimdilsadercan/foritu-web-sub000/backend/internal/dto"
	"github.com/selimdilsadercan/foritu-web-sub000/backend/internal/repository"
)

// ── 开课/场次模块业务错误 ──

var (
	ErrNoSelectedLessons = errors.New("尚未选定任何上课场次")
)

const istanbulTimezone = "Europe/Istanbul"

// LessonService 开课查询与课表导出业务接口
//
// 设计说明：
//   - 开课目录为只读嵌入数据；"已选场次"是成绩单记录与开课
//     目录的联查结果，不单独落库
//   - ICS 导出按周重复事件生成，起始时间取各场次自当前时刻
//     起的下一次上课
type LessonService interface {
	// ListLessons 某课程的全部开课场次
	ListLessons(ctx context.Context, courseCode string) ([]dto.LessonResponse, error)

	// SelectedLessons 用户成绩单中已选定场次的明细
	SelectedLessons(ctx context.Context, userID string) ([]dto.SelectedLessonResponse, error)

	// ExportICS 将已选场次导出为 iCalendar 文件
	ExportICS(ctx context.Context, userID string) (*bytes.Buffer, string, error)
}

type lessonService struct {
	repo   *repository.Repository
	cat    *catalog.Catalog
	logger *zap.Logger
}

// NewLessonService 创建 LessonService 实例
func NewLessonService(repo *repository.Repository, cat *catalog.Catalog, logger *zap.Logger) LessonService {
	return &lessonService{repo: repo, cat: cat, logger: logger}
}

func (s *lessonService) ListLessons(_ context.Context, courseCode string) ([]dto.LessonResponse, error) {
	lessons := s.cat.LessonsFor(courseCode)
	result := make([]dto.LessonResponse, 0, len(lessons))
	for _, l := range lessons {
		result = append(result, dto.LessonResponse{
			LessonID:   l.LessonID,
			CourseCode: l.CourseCode,
			Session: dto.SessionInfo{
				Location: l.Session.Location,
				Day:      l.Session.Day,
				Time:     l.Session.Time,
				Room:     l.Session.Room,
			},
			Instructor:   l.Instructor,
			DeliveryMode: l.DeliveryMode,
		})
	}
	return result, nil
}

func (s *lessonService) SelectedLessons(ctx context.Context, userID string) ([]dto.SelectedLessonResponse, error) {
	lessons, err := s.selectedCatalogLessons(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.SelectedLessonResponse, 0, len(lessons))
	for _, l := range lessons {
		result = append(result, dto.SelectedLessonResponse{
			CourseCode: l.CourseCode,
			LessonID:   l.LessonID,
			Session: dto.SessionInfo{
				Location: l.Session.Location,
				Day:      l.Session.Day,
				Time:     l.Session.Time,
				Room:     l.Session.Room,
			},
			Instructor: l.Instructor,
			Delivery:   l.DeliveryMode,
		})
	}
	return result, nil
}

// ═══════════════════════════════════════════════════════════
// ExportICS — 已选场次导出为 iCalendar
// ═══════════════════════════════════════════════════════════
//
// 每个场次生成一个按周重复（FREQ=WEEKLY）的 VEVENT，
// DTSTART 为自当前时刻起该星期几的下一次上课时间。

func (s *lessonService) ExportICS(ctx context.Context, userID string) (*bytes.Buffer, string, error) {
	lessons, err := s.selectedCatalogLessons(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	if len(lessons) == 0 {
		return nil, "", ErrNoSelectedLessons
	}

	loc, err := time.LoadLocation(istanbulTimezone)
	if err != nil {
		loc = time.UTC
	}
	now := time.Now().In(loc)

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//foritu//ders-programi//TR")

	for _, l := range lessons {
		start, end, err := nextSessionTimes(l.Session, now)
		if err != nil {
			s.logger.Warn("场次时间无法解析，已跳过",
				zap.String("lesson_id", l.LessonID),
				zap.Error(err),
			)
			continue
		}

		summary := l.CourseCode
		if course := s.cat.Course(l.CourseCode); course != nil {
			summary = fmt.Sprintf("%s %s", l.CourseCode, course.Name)
		}

		evt := cal.AddEvent(fmt.Sprintf("%s-%s@foritu", l.CourseCode, l.LessonID))
		evt.SetCreatedTime(now)
		evt.SetDtStampTime(now)
		evt.SetStartAt(start)
		evt.SetEndAt(end)
		evt.SetSummary(summary)
		evt.SetLocation(strings.TrimSpace(l.Session.Location + " " + l.Session.Room))
		evt.SetDescription(fmt.Sprintf("%s / %s", l.Instructor, l.DeliveryMode))
		evt.AddRrule("FREQ=WEEKLY")
	}

	buf := new(bytes.Buffer)
	if err := cal.SerializeTo(buf); err != nil {
		s.logger.Error("生成 ICS 失败", zap.Error(err))
		return nil, "", err
	}
	return buf, "ders_programi.ics", nil
}

// ── 内部辅助 ──

// selectedCatalogLessons 成绩单中 session_id 非空的记录 × 开课目录联查
// 目录中已不存在的场次跳过并告警（目录数据更新后的残留引用）
func (s *lessonService) selectedCatalogLessons(ctx context.Context, userID string) ([]catalog.Lesson, error) {
	t, err := s.repo.Transcript.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		s.logger.Error("查询成绩单失败", zap.Error(err))
		return nil, err
	}

	var lessons []catalog.Lesson
	for _, row := range t.Rows {
		if row.SessionID == "" {
			continue
		}
		lesson := s.cat.Lesson(row.SessionID)
		if lesson == nil {
			s.logger.Warn("成绩单引用的场次已不在目录中",
				zap.String("session_id", row.SessionID),
				zap.String("code", row.Code),
			)
			continue
		}
		lessons = append(lessons, *lesson)
	}
	return lessons, nil
}

// 星期标签 → time.Weekday
var dayOfWeek = map[string]time.Weekday{
	"Pazartesi": time.Monday,
	"Salı":      time.Tuesday,
	"Çarşamba":  time.Wednesday,
	"Perşembe":  time.Thursday,
	"Cuma":      time.Friday,
	"Cumartesi": time.Saturday,
	"Pazar":     time.Sunday,
}

// nextSessionTimes 解析场次的星期与时间区间（"08:30-11:30"），
// 返回自 now 起该星期几的下一次上课起止时间
func nextSessionTimes(session catalog.Session, now time.Time) (time.Time, time.Time, error) {
	wd, ok := dayOfWeek[session.Day]
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("无法识别的星期标签: %s", session.Day)
	}

	parts := strings.SplitN(session.Time, "-", 2)
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, fmt.Errorf("无法识别的时间区间: %s", session.Time)
	}
	startClock, err := time.Parse("15:04", strings.TrimSpace(parts[0]))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("无法识别的开始时间: %s", parts[0])
	}
	endClock, err := time.Parse("15:04", strings.TrimSpace(parts[1]))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("无法识别的结束时间: %s", parts[1])
	}

	daysAhead := (int(wd) - int(now.Weekday()) + 7) % 7
	day := now.AddDate(0, 0, daysAhead)

	start := time.Date(day.Year(), day.Month(), day.Day(), startClock.Hour(), startClock.Minute(), 0, 0, now.Location())
	end := time.Date(day.Year(), day.Month(), day.Day(), endClock.Hour(), endClock.Minute(), 0, 0, now.Location())
	if daysAhead == 0 && start.Before(now) {
		start = start.AddDate(0, 0, 7)
		end = end.AddDate(0, 0, 7)
	}
	return start, end, nil
}
