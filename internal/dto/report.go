package dto

import (
	"time"

	"github.com/ramp-cyb/workhours/internal/attendance"
)

// ── 月度报表 ──

// DayCellResponse 日历单元格；占位格仅 placeholder=true，其余字段为零值
type DayCellResponse struct {
	Date        string  `json:"date,omitempty"` // YYYY-MM-DD
	Day         int     `json:"day,omitempty"`
	Display     string  `json:"display_hours,omitempty"`
	Hours       float64 `json:"decimal_hours"`
	Status      string  `json:"status,omitempty"`
	StatusTag   string  `json:"status_tag,omitempty"`
	SwipeCount  int     `json:"swipe_count"`
	Tooltip     string  `json:"tooltip,omitempty"`
	FromMonthly bool    `json:"from_monthly"`
	FromDaily   bool    `json:"from_daily"`
	IsToday     bool    `json:"is_today"`
	Placeholder bool    `json:"placeholder"`
}

// MonthlyReportResponse 月度日历视图 + 汇总计数
type MonthlyReportResponse struct {
	EmployeeID    string              `json:"employee_id"`
	Year          int                 `json:"year"`
	Month         int                 `json:"month"`
	Weeks         [][]DayCellResponse `json:"weeks"`
	TotalHours    float64             `json:"total_actual_hours"`
	AverageHours  float64             `json:"average_actual_hours"`
	WorkedDays    int                 `json:"worked_days"`
	LeaveDays     int                 `json:"leave_days"`
	WeeklyOffDays int                 `json:"weekly_off_days"`
	HolidayDays   int                 `json:"holiday_days"`
	MissingDays   int                 `json:"missing_days"`
}

// ToMonthlyReportResponse 核心报表 → 响应 DTO
func ToMonthlyReportResponse(employeeID string, r attendance.MonthlyReport) *MonthlyReportResponse {
	weeks := make([][]DayCellResponse, 0, len(r.Weeks))
	for _, week := range r.Weeks {
		row := make([]DayCellResponse, 0, len(week))
		for _, cell := range week {
			row = append(row, toDayCellResponse(cell))
		}
		weeks = append(weeks, row)
	}
	return &MonthlyReportResponse{
		EmployeeID:    employeeID,
		Year:          r.Year,
		Month:         int(r.Month),
		Weeks:         weeks,
		TotalHours:    r.TotalHours,
		AverageHours:  r.AverageHours,
		WorkedDays:    r.WorkedDays,
		LeaveDays:     r.LeaveDays,
		WeeklyOffDays: r.WeeklyOffDays,
		HolidayDays:   r.HolidayDays,
		MissingDays:   r.MissingDays,
	}
}

func toDayCellResponse(cell attendance.DayCell) DayCellResponse {
	if cell.Placeholder {
		return DayCellResponse{Placeholder: true}
	}
	return DayCellResponse{
		Date:        cell.Date.Format(time.DateOnly),
		Day:         cell.Day,
		Display:     cell.Display,
		Hours:       cell.Hours,
		Status:      cell.Status,
		StatusTag:   string(cell.Tag),
		SwipeCount:  cell.SwipeCount,
		Tooltip:     cell.Tooltip,
		FromMonthly: cell.FromMonthly,
		FromDaily:   cell.FromDaily,
		IsToday:     cell.IsToday,
	}
}
