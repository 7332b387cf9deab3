package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ── ExportService 接口 ──────────────────────────────────────
//
// 设计说明：
//   - 月报导出为 Excel (.xlsx)、CSV 与 iCalendar (.ics) 三种格式
//   - 导出数据完全来自 ReportService 构建的月报，不另行查库
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入
// ─────────────────────────────────────────────────────────────

// ExportService 导出业务接口
type ExportService interface {
	// ExportMonthlyXLSX 导出月报为 Excel 日历网格
	ExportMonthlyXLSX(ctx context.Context, employeeID string, year, month int) (*bytes.Buffer, string, error)
	// ExportMonthlyCSV 导出月报为 CSV（每个真实日期一行）
	ExportMonthlyCSV(ctx context.Context, employeeID string, year, month int) (*bytes.Buffer, string, error)
	// ExportMonthlyICS 导出月报为 iCalendar（有工时的日期生成全天事件）
	ExportMonthlyICS(ctx context.Context, employeeID string, year, month int) (*bytes.Buffer, string, error)
}

type exportService struct {
	reportSvc ReportService
	logger    *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(reportSvc ReportService, logger *zap.Logger) ExportService {
	return &exportService{reportSvc: reportSvc, logger: logger}
}

// ════════════════════════════════════════════════════════════
// ExportMonthlyXLSX — Excel 日历网格
// ════════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单 Sheet，列头 Mon ~ Sun
//   - 每周一行，单元格 "日号\n工时 状态"，占位格留空
//   - 末尾追加汇总行（总工时/出勤/请假/周休/节假日/缺数据）

var weekdayHeaders = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func (s *exportService) ExportMonthlyXLSX(ctx context.Context, employeeID string, year, month int) (*bytes.Buffer, string, error) {
	report, err := s.reportSvc.GetMonthlyReport(ctx, employeeID, year, month)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	title := fmt.Sprintf("%04d-%02d", report.Year, report.Month)
	_ = f.SetCellValue(sheet, "A1", fmt.Sprintf("Attendance %s — %s", title, report.EmployeeID))

	for i, h := range weekdayHeaders {
		cellName, _ := excelize.CoordinatesToCellName(i+1, 2)
		_ = f.SetCellValue(sheet, cellName, h)
	}

	rowOffset := 3
	for w, week := range report.Weeks {
		for d, cellData := range week {
			cellName, _ := excelize.CoordinatesToCellName(d+1, rowOffset+w)
			if cellData.Placeholder {
				continue
			}
			text := fmt.Sprintf("%d\n%s %s", cellData.Day, cellData.Display, cellData.Status)
			_ = f.SetCellValue(sheet, cellName, text)
		}
	}

	summaryRow := rowOffset + len(report.Weeks) + 1
	summary := fmt.Sprintf("Total %.2f h | Avg %.2f h | Present %d | Leave %d | Weekly Off %d | Holiday %d | No Data %d",
		report.TotalHours, report.AverageHours, report.WorkedDays,
		report.LeaveDays, report.WeeklyOffDays, report.HolidayDays, report.MissingDays)
	cellName, _ := excelize.CoordinatesToCellName(1, summaryRow)
	_ = f.SetCellValue(sheet, cellName, summary)

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("Excel 生成失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("attendance_%s_%s.xlsx", report.EmployeeID, title)
	return buf, filename, nil
}

// ════════════════════════════════════════════════════════════
// ExportMonthlyCSV — 逐日 CSV
// ════════════════════════════════════════════════════════════

func (s *exportService) ExportMonthlyCSV(ctx context.Context, employeeID string, year, month int) (*bytes.Buffer, string, error) {
	report, err := s.reportSvc.GetMonthlyReport(ctx, employeeID, year, month)
	if err != nil {
		return nil, "", err
	}

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	_ = w.Write([]string{"date", "hours", "decimal_hours", "status", "swipe_count", "source"})

	for _, week := range report.Weeks {
		for _, cellData := range week {
			if cellData.Placeholder {
				continue
			}
			source := "none"
			switch {
			case cellData.FromDaily:
				source = "daily"
			case cellData.FromMonthly:
				source = "monthly"
			}
			_ = w.Write([]string{
				cellData.Date,
				cellData.Display,
				fmt.Sprintf("%.2f", cellData.Hours),
				cellData.Status,
				fmt.Sprintf("%d", cellData.SwipeCount),
				source,
			})
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		s.logger.Error("CSV 生成失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("attendance_%s_%04d-%02d.csv", report.EmployeeID, report.Year, report.Month)
	return buf, filename, nil
}

// ════════════════════════════════════════════════════════════
// ExportMonthlyICS — iCalendar 全天事件
// ════════════════════════════════════════════════════════════

func (s *exportService) ExportMonthlyICS(ctx context.Context, employeeID string, year, month int) (*bytes.Buffer, string, error) {
	report, err := s.reportSvc.GetMonthlyReport(ctx, employeeID, year, month)
	if err != nil {
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//workhours//attendance//EN")

	for _, week := range report.Weeks {
		for _, cellData := range week {
			if cellData.Placeholder || cellData.Hours <= 0 {
				continue
			}
			day, err := time.Parse(time.DateOnly, cellData.Date)
			if err != nil {
				continue
			}
			event := cal.AddEvent(fmt.Sprintf("%s-%s@workhours", report.EmployeeID, cellData.Date))
			event.SetAllDayStartAt(day)
			event.SetAllDayEndAt(day.AddDate(0, 0, 1))
			event.SetSummary(fmt.Sprintf("Work %s", cellData.Display))
			event.SetDescription(cellData.Tooltip)
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("attendance_%s_%04d-%02d.ics", report.EmployeeID, report.Year, report.Month)
	return buf, filename, nil
}
