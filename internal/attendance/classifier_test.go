package attendance

import "testing"

// ════════════════════════════════════════════════════════════
// 闸机分类器测试
// ════════════════════════════════════════════════════════════

func TestClassify_DefaultTaxonomy(t *testing.T) {
	c := NewClassifier(DefaultTaxonomy())

	cases := []struct {
		name string
		gate string
		want GateCategory
	}{
		{"办公区闸机", "Floor4-East", GateWork},
		{"办公区大小写混合", "ODC Bay 12", GateWork},
		{"休闲区闸机", "Cafeteria-2", GatePlay},
		{"健身房", "GYM ENTRANCE", GatePlay},
		{"园区大门", "Main Gate 1", GateMain},
		{"停车场", "parking level B", GateMain},
		{"前台", "Reception Turnstile", GateMain},
		{"未知闸机", "Server Room", GateUnknown},
		{"空名称", "", GateUnknown},
		{"仅空白", "   ", GateUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := c.Classify(tc.gate); got != tc.want {
				t.Errorf("Classify(%q) 期望 %s, 实际 %s", tc.gate, tc.want, got)
			}
		})
	}
}

// 同一名称可能命中多组模式时，必须按 work → play → main 的顺序取胜
func TestClassify_PatternOrder(t *testing.T) {
	c := NewClassifier(DefaultTaxonomy())

	// "Main Cafeteria Floor" 同时包含 main、cafeteria、floor
	if got := c.Classify("Main Cafeteria Floor"); got != GateWork {
		t.Errorf("work 模式应最先命中, 期望 %s, 实际 %s", GateWork, got)
	}
	// "Main Cafeteria" 包含 main 与 cafeteria
	if got := c.Classify("Main Cafeteria"); got != GatePlay {
		t.Errorf("play 模式应先于 main 命中, 期望 %s, 实际 %s", GatePlay, got)
	}
}

// 分类表是显式注入的配置，替代分类表必须立即生效
func TestClassify_CustomTaxonomy(t *testing.T) {
	c := NewClassifier(Taxonomy{
		WorkPatterns: []string{"tower"},
		PlayPatterns: []string{"lounge"},
		MainPatterns: []string{"lobby"},
	})

	if got := c.Classify("Tower-A Gate"); got != GateWork {
		t.Errorf("自定义 work 模式未生效, 实际 %s", got)
	}
	if got := c.Classify("Floor4-East"); got != GateUnknown {
		t.Errorf("默认模式不应残留, 实际 %s", got)
	}
	if got := c.Classify("Sky Lounge"); got != GatePlay {
		t.Errorf("自定义 play 模式未生效, 实际 %s", got)
	}
}
