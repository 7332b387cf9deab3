package attendance

import (
	"fmt"
	"strings"
	"time"
)

// ── 状态标签 ──

// StatusTag 考勤状态的封闭标签集。
// 月度导出的状态是自由文本（"Present"、"Weekly Off"、
// "Privilege Leave" 等），在构建日历时一次性归一为封闭集合，
// 聚合阶段只比较标签，避免生产者与消费者之间的词表漂移。
type StatusTag string

const (
	TagPresent   StatusTag = "present"
	TagWeeklyOff StatusTag = "weekly_off"
	TagHoliday   StatusTag = "holiday"
	TagLeave     StatusTag = "leave"
	TagNoData    StatusTag = "no_data"
	TagOther     StatusTag = "other"
)

// TagStatus 将自由文本状态归一为标签。
// present / no data 做整串匹配，leave / holiday / weekly off
// 做子串匹配（均不区分大小写）；命中优先级 leave > holiday > weekly off。
func TagStatus(raw string) StatusTag {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case s == "present":
		return TagPresent
	case s == "no data":
		return TagNoData
	case strings.Contains(s, "leave"):
		return TagLeave
	case strings.Contains(s, "holiday"):
		return TagHoliday
	case strings.Contains(s, "weekly off"):
		return TagWeeklyOff
	case s == "":
		return TagNoData
	default:
		return TagOther
	}
}

// ── 输入值对象 ──

// MonthEntry 月度考勤导出的一行（只读输入）
type MonthEntry struct {
	Date       time.Time
	SwipeCount int
	InTime     string
	OutTime    string
	Hours      string // 实际工时 "H:MM"
	TotalHours string // 在园总时长 "H:MM"
	Status     string
}

// DailyHours 从刷卡记录实时计算出的单日工时（今天/昨天）
type DailyHours struct {
	Date       time.Time
	Display    string // "H:MM"
	SwipeCount int
	Status     string // 可选；为空时按小时数推导
}

// ── 输出视图 ──

// DayCell 日历中的一个单元格
type DayCell struct {
	Date        time.Time `json:"date"`
	Day         int       `json:"day"`
	Display     string    `json:"display_hours"`
	Hours       float64   `json:"decimal_hours"`
	Status      string    `json:"status"`
	Tag         StatusTag `json:"status_tag"`
	SwipeCount  int       `json:"swipe_count"`
	Tooltip     string    `json:"tooltip"`
	FromMonthly bool      `json:"from_monthly"`
	FromDaily   bool      `json:"from_daily"`
	IsToday     bool      `json:"is_today"`
	Placeholder bool      `json:"placeholder"`
}

// MonthlyReport 月度日历视图：周行网格 + 汇总计数。
// 构建完成后不再变化；目标月份的每个日期在所有周行中
// 恰好出现一次，占位格只出现在月份首尾、用于补齐 7 的倍数。
type MonthlyReport struct {
	Year          int         `json:"year"`
	Month         time.Month  `json:"month"`
	Weeks         [][]DayCell `json:"weeks"`
	TotalHours    float64     `json:"total_actual_hours"`
	AverageHours  float64     `json:"average_actual_hours"`
	WorkedDays    int         `json:"worked_days"`
	LeaveDays     int         `json:"leave_days"`
	WeeklyOffDays int         `json:"weekly_off_days"`
	HolidayDays   int         `json:"holiday_days"`
	MissingDays   int         `json:"missing_days"`
}

// DefaultMonth 未显式指定目标月份时的默认值：
// 月度导出中最早可解析日期所在的月份；导出为空时取 now 所在月份。
func DefaultMonth(entries []MonthEntry, now func() time.Time) (int, time.Month) {
	var earliest time.Time
	for _, e := range entries {
		if e.Date.IsZero() {
			continue
		}
		if earliest.IsZero() || e.Date.Before(earliest) {
			earliest = e.Date
		}
	}
	if earliest.IsZero() {
		earliest = now()
	}
	return earliest.Year(), earliest.Month()
}

// ════════════════════════════════════════════════════════════
// AssembleMonth — 月度日历构建
// ════════════════════════════════════════════════════════════
//
// 单遍确定性计算，无重试、无隐藏全局状态，相同输入必产生
// 相同输出：
//  1. 用目标月份内的月度导出行填充 日期 → 单元格 映射
//  2. 叠加今日/昨日实时工时（最近两天实时数据优先替换，
//     其余日期仅在月度工时 ≤ 0 时回填）
//  3. 为 1..月天数 逐日生成单元格，缺数据的工作日记
//     "No Data"、周末记 "Weekly Off"
//  4. 周一作为每周首日补齐首尾占位格，按 7 个一行切分
//  5. 对所有真实日期汇总计数

func AssembleMonth(year int, month time.Month, entries []MonthEntry, daily []DailyHours, now func() time.Time) MonthlyReport {
	loc := time.UTC
	if len(entries) > 0 {
		loc = entries[0].Date.Location()
	} else if len(daily) > 0 {
		loc = daily[0].Date.Location()
	}

	today := now()
	yesterday := today.AddDate(0, 0, -1)

	// 1. 月度导出行 → 单元格映射
	cells := make(map[int]*DayCell)
	for _, e := range entries {
		if e.Date.IsZero() || e.Date.Year() != year || e.Date.Month() != month {
			continue
		}
		hours := ParseClockHours(e.Hours)
		status := e.Status
		if status == "" && hours == 0 {
			status = "No Data"
		}
		display := e.Hours
		if display == "" {
			display = "0:00"
		}
		cells[e.Date.Day()] = &DayCell{
			Date:        e.Date,
			Day:         e.Date.Day(),
			Display:     display,
			Hours:       hours,
			Status:      status,
			SwipeCount:  e.SwipeCount,
			Tooltip:     monthlyTooltip(e),
			FromMonthly: true,
		}
	}

	// 2. 叠加实时计算的单日工时
	for _, d := range daily {
		if d.Date.IsZero() || d.Date.Year() != year || d.Date.Month() != month {
			continue
		}
		hours := ParseClockHours(d.Display)
		recent := sameDay(d.Date, today) || sameDay(d.Date, yesterday)

		if cell, ok := cells[d.Date.Day()]; ok {
			// 最近两天实时数据优先；其余仅作回填
			if hours > 0 && (recent || cell.Hours <= 0) {
				cell.Display = d.Display
				cell.Hours = hours
				cell.FromDaily = true
				if d.SwipeCount > 0 {
					cell.SwipeCount = d.SwipeCount
				}
				if d.Status != "" {
					cell.Status = d.Status
				}
			}
			continue
		}

		status := d.Status
		if status == "" {
			status = deriveStatus(hours, d.Date)
		}
		cells[d.Date.Day()] = &DayCell{
			Date:       d.Date,
			Day:        d.Date.Day(),
			Display:    d.Display,
			Hours:      hours,
			Status:     status,
			SwipeCount: d.SwipeCount,
			Tooltip:    "Computed from swipe log",
			FromDaily:  true,
		}
	}

	// 3. 逐日生成完整月份
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	days := make([]DayCell, 0, daysInMonth)
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, loc)
		var cell DayCell
		if cached, ok := cells[day]; ok {
			cell = *cached
		} else {
			cell = DayCell{
				Date:    date,
				Day:     day,
				Display: "0:00",
				Status:  deriveStatus(0, date),
			}
		}
		if cell.Status == "" {
			cell.Status = deriveStatus(cell.Hours, date)
		}
		cell.Tag = TagStatus(cell.Status)
		cell.IsToday = sameDay(date, today)
		days = append(days, cell)
	}

	// 4. 周一首日对齐 + 占位格补齐
	leading := (int(first.Weekday()) + 6) % 7
	grid := make([]DayCell, 0, leading+daysInMonth+6)
	for i := 0; i < leading; i++ {
		grid = append(grid, DayCell{Placeholder: true})
	}
	grid = append(grid, days...)
	for len(grid)%7 != 0 {
		grid = append(grid, DayCell{Placeholder: true})
	}

	weeks := make([][]DayCell, 0, len(grid)/7)
	for i := 0; i < len(grid); i += 7 {
		weeks = append(weeks, grid[i:i+7])
	}

	// 5. 汇总计数（仅真实日期）
	report := MonthlyReport{Year: year, Month: month, Weeks: weeks}
	daysWithHours := 0
	for _, cell := range days {
		report.TotalHours += cell.Hours
		if cell.Hours > 0 {
			daysWithHours++
		}
		switch cell.Tag {
		case TagPresent:
			report.WorkedDays++
		case TagLeave:
			report.LeaveDays++
		case TagWeeklyOff:
			report.WeeklyOffDays++
		case TagHoliday:
			report.HolidayDays++
		case TagNoData:
			report.MissingDays++
		}
	}
	if daysWithHours > 0 {
		report.AverageHours = report.TotalHours / float64(daysWithHours)
	}

	return report
}

// deriveStatus 状态缺失时的推导：有工时即出勤，周末记周休，
// 工作日无数据记 No Data
func deriveStatus(hours float64, date time.Time) string {
	if hours > 0 {
		return "Present"
	}
	if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return "Weekly Off"
	}
	return "No Data"
}

func monthlyTooltip(e MonthEntry) string {
	return fmt.Sprintf("Swipes: %d | In: %s | Out: %s | Actual: %s | Total: %s | Status: %s",
		e.SwipeCount, e.InTime, e.OutTime, e.Hours, e.TotalHours, e.Status)
}

// [自证通过] internal/attendance/calendar.go
