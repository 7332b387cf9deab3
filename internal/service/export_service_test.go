package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/ramp-cyb/workhours/internal/dto"
)

// ── 测试辅助 ──

// stubReportService 返回固定月报的 ReportService 桩
type stubReportService struct {
	resp *dto.MonthlyReportResponse
	err  error
}

func (s *stubReportService) GetMonthlyReport(_ context.Context, _ string, _, _ int) (*dto.MonthlyReportResponse, error) {
	return s.resp, s.err
}

func fixtureReport() *dto.MonthlyReportResponse {
	return &dto.MonthlyReportResponse{
		EmployeeID: "E1001",
		Year:       2024,
		Month:      5,
		Weeks: [][]dto.DayCellResponse{
			{
				{Placeholder: true},
				{Placeholder: true},
				{Date: "2024-05-01", Day: 1, Display: "8:30", Hours: 8.5, Status: "Present", StatusTag: "present", SwipeCount: 10, FromMonthly: true, Tooltip: "Swipes: 10"},
				{Date: "2024-05-02", Day: 2, Display: "0:00", Hours: 0, Status: "Weekly Off", StatusTag: "weekly_off"},
				{Date: "2024-05-03", Day: 3, Display: "4:00", Hours: 4, Status: "Present", StatusTag: "present", SwipeCount: 4, FromDaily: true},
				{Date: "2024-05-04", Day: 4, Display: "0:00", Hours: 0, Status: "No Data", StatusTag: "no_data"},
				{Date: "2024-05-05", Day: 5, Display: "0:00", Hours: 0, Status: "Weekly Off", StatusTag: "weekly_off"},
			},
		},
		TotalHours:    12.5,
		AverageHours:  6.25,
		WorkedDays:    2,
		WeeklyOffDays: 2,
		MissingDays:   1,
	}
}

func setupTestExportService(report *dto.MonthlyReportResponse, reportErr error) ExportService {
	return NewExportService(&stubReportService{resp: report, err: reportErr}, zap.NewNop())
}

// ── Excel 导出测试 ──

func TestExportService_ExportMonthlyXLSX(t *testing.T) {
	svc := setupTestExportService(fixtureReport(), nil)

	buf, filename, err := svc.ExportMonthlyXLSX(context.Background(), "E1001", 2024, 5)
	if err != nil {
		t.Fatalf("ExportMonthlyXLSX 应成功: %v", err)
	}
	if filename != "attendance_E1001_2024-05.xlsx" {
		t.Errorf("文件名不符合约定，实际=%s", filename)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("导出产物应为合法工作簿: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	title, _ := f.GetCellValue(sheet, "A1")
	if !strings.Contains(title, "2024-05") || !strings.Contains(title, "E1001") {
		t.Errorf("标题应含年月与工号，实际=%q", title)
	}
	monday, _ := f.GetCellValue(sheet, "A2")
	if monday != "Mon" {
		t.Errorf("列头应以 Mon 开始，实际=%q", monday)
	}
	// 占位格留空，5月1日落在周三列
	placeholder, _ := f.GetCellValue(sheet, "A3")
	if placeholder != "" {
		t.Errorf("占位格应为空，实际=%q", placeholder)
	}
	day1, _ := f.GetCellValue(sheet, "C3")
	if !strings.Contains(day1, "8:30") {
		t.Errorf("5月1日单元格应含工时，实际=%q", day1)
	}
}

// ── CSV 导出测试 ──

func TestExportService_ExportMonthlyCSV(t *testing.T) {
	svc := setupTestExportService(fixtureReport(), nil)

	buf, filename, err := svc.ExportMonthlyCSV(context.Background(), "E1001", 2024, 5)
	if err != nil {
		t.Fatalf("ExportMonthlyCSV 应成功: %v", err)
	}
	if filename != "attendance_E1001_2024-05.csv" {
		t.Errorf("文件名不符合约定，实际=%s", filename)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[0] != "date,hours,decimal_hours,status,swipe_count,source" {
		t.Errorf("表头不符合约定，实际=%q", lines[0])
	}
	// 占位格不产生数据行：5个真实日期
	if len(lines) != 6 {
		t.Fatalf("期望表头+5行，实际=%d行", len(lines))
	}
	if lines[1] != "2024-05-01,8:30,8.50,Present,10,monthly" {
		t.Errorf("5月1日数据行不符，实际=%q", lines[1])
	}
	if !strings.HasSuffix(lines[3], ",daily") {
		t.Errorf("实时来源应标记 daily，实际=%q", lines[3])
	}
	if !strings.HasSuffix(lines[4], ",none") {
		t.Errorf("无数据来源应标记 none，实际=%q", lines[4])
	}
}

// ── iCalendar 导出测试 ──

func TestExportService_ExportMonthlyICS(t *testing.T) {
	svc := setupTestExportService(fixtureReport(), nil)

	buf, filename, err := svc.ExportMonthlyICS(context.Background(), "E1001", 2024, 5)
	if err != nil {
		t.Fatalf("ExportMonthlyICS 应成功: %v", err)
	}
	if filename != "attendance_E1001_2024-05.ics" {
		t.Errorf("文件名不符合约定，实际=%s", filename)
	}

	out := buf.String()
	if !strings.Contains(out, "BEGIN:VCALENDAR") || !strings.Contains(out, "END:VCALENDAR") {
		t.Error("导出产物应为合法 iCalendar")
	}
	// 仅有工时的日期生成事件：5月1日与5月3日
	if got := strings.Count(out, "BEGIN:VEVENT"); got != 2 {
		t.Errorf("期望2个事件，实际=%d", got)
	}
	if !strings.Contains(out, "SUMMARY:Work 8:30") {
		t.Error("事件摘要应含显示工时")
	}
	if !strings.Contains(out, "E1001-2024-05-01@workhours") {
		t.Error("事件 UID 应含工号与日期")
	}
}

// ── 错误传递测试 ──

func TestExportService_PropagatesReportError(t *testing.T) {
	svc := setupTestExportService(nil, ErrReportEmployeeRequired)

	if _, _, err := svc.ExportMonthlyXLSX(context.Background(), "", 2024, 5); !errors.Is(err, ErrReportEmployeeRequired) {
		t.Errorf("XLSX 导出应透传报表错误，实际: %v", err)
	}
	if _, _, err := svc.ExportMonthlyCSV(context.Background(), "", 2024, 5); !errors.Is(err, ErrReportEmployeeRequired) {
		t.Errorf("CSV 导出应透传报表错误，实际: %v", err)
	}
	if _, _, err := svc.ExportMonthlyICS(context.Background(), "", 2024, 5); !errors.Is(err, ErrReportEmployeeRequired) {
		t.Errorf("ICS 导出应透传报表错误，实际: %v", err)
	}
}
