package recommend

// Provenance 标记一份推荐列表由哪种策略产出，仅用于下游展示文案。
type Provenance string

const (
	ProvenancePopular Provenance = "popular" // 冷启动：直接返回热门榜
	ProvenanceCF      Provenance = "cf"      // 纯协同过滤结果
	ProvenanceHybrid  Provenance = "hybrid"  // 协同过滤不足 N 个，用热门榜补足
)

// Message 返回面向用户的提示文案。
func (p Provenance) Message() string {
	switch p {
	case ProvenanceCF:
		return "Personalized recommendations based on similar users."
	case ProvenanceHybrid:
		return "Mixed recommendations: personalized + popular attractions."
	default:
		return "Popular attractions (cold-start fallback)."
	}
}

func (p Provenance) String() string { return string(p) }
