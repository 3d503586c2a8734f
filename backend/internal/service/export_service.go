package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/selimdilsadercan/foritu-web-sub000/backend/internal/catalog"
	"github.com/selimdilsadercan/foritu-web-sub000/backend/internal/planning"
	"github.com/selimdilsadercan/foritu-web-sub000/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoTranscript = errors.New("成绩单不存在，无可导出内容")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 学业报告导出业务接口
//
// 设计说明：
//   - 导出截至选定学期的进度汇总与逐条选课明细为 Excel (.xlsx)
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportProgress 导出学业进度报告为 Excel
	ExportProgress(ctx context.Context, userID, selectedSemester string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	cat    *catalog.Catalog
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, cat *catalog.Catalog, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, cat: cat, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportProgress — 导出学业进度报告为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 顶部汇总块：总学分 / GPA / 学级 / 已通过课程数
//   - 明细表：学期、代码、名称、学分、成绩、有效成绩
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportProgress(ctx context.Context, userID, selected string) (*bytes.Buffer, string, error) {
	t, err := s.repo.Transcript.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrExportNoTranscript
		}
		s.logger.Error("查询成绩单失败", zap.Error(err))
		return nil, "", err
	}

	progress := planning.ComputeProgress(t.Rows, selected)
	visible := planning.FilterUpTo(t.Rows, selected)

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Akademik Durum"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 22)
	f.SetColWidth(sheetName, "B", "B", 12)
	f.SetColWidth(sheetName, "C", "C", 36)
	f.SetColWidth(sheetName, "D", "F", 12)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	title := "Akademik Durum Raporu"
	if selected != "" {
		title = fmt.Sprintf("%s — %s", title, selected)
	}
	f.SetCellValue(sheetName, "A1", title)
	f.MergeCell(sheetName, "A1", "F1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 汇总块
	f.SetCellValue(sheetName, "A3", "Toplam Kredi")
	f.SetCellValue(sheetName, "B3", progress.TotalCredits)
	f.SetCellValue(sheetName, "A4", "Genel Not Ortalaması")
	f.SetCellValue(sheetName, "B4", progress.GPA)
	f.SetCellValue(sheetName, "A5", "Sınıf")
	f.SetCellValue(sheetName, "B5", progress.ClassStanding)
	f.SetCellValue(sheetName, "A6", "Geçilen Ders Sayısı")
	f.SetCellValue(sheetName, "B6", progress.PassedCourses)

	// 明细表头
	row := 8
	headers := []string{"Dönem", "Kod", "Ders Adı", "Kredi", "Not", "Geçerli Not"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cellRef := fmt.Sprintf("%s%d", col, row)
		f.SetCellValue(sheetName, cellRef, h)
		f.SetCellStyle(sheetName, cellRef, cellRef, headerStyle)
	}

	// 明细行
	row++
	for _, att := range visible {
		name := att.Name
		credits := att.Credits
		if course := s.cat.Course(att.Code); course != nil {
			if name == "" {
				name = course.Name
			}
			if credits == "" {
				credits = course.Credits
			}
		}

		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), att.Semester)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), att.Code)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), name)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), credits)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), att.Grade)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), planning.EffectiveGrade(att, selected))
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := "akademik_durum.xlsx"
	if selected != "" {
		filename = fmt.Sprintf("akademik_durum_%s.xlsx", selected)
	}
	return buf, filename, nil
}
