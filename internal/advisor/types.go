package advisor

// 中文说明：
// Advisory 是顾问环节的固定输出：无论外部模型是否可用、输出是否可解析，
// 返回给调用方的始终是八个字段齐全、取值合法的建议。

type Advisory struct {
	Action     string   `json:"action"`     // enter / wait
	Direction  string   `json:"direction"`  // long / short
	Confidence int      `json:"confidence"` // 0-100
	RiskLevel  string   `json:"risk_level"` // low / mid / high
	SLPct      float64  `json:"sl_pct"`
	TPPct      float64  `json:"tp_pct"`
	Reason     string   `json:"reason"`
	Checklist  []string `json:"checklist"`
}

const (
	ActionEnter = "enter"
	ActionWait  = "wait"

	DirectionLong  = "long"
	DirectionShort = "short"

	RiskLow  = "low"
	RiskMid  = "mid"
	RiskHigh = "high"
)

// 模型输出缺字段时的补齐默认值（与回退建议不同：风险档取 mid，止盈 2.5%）。
const (
	defaultFillSLPct = 0.9
	defaultFillTPPct = 2.5
	defaultReason    = "模型输出不完整，已按保守默认补齐，建议人工复核后再操作。"
)

var defaultChecklist = []string{
	"人工确认趋势方向",
	"核对关键支撑/阻力位",
	"留意异常波动与放量",
}
