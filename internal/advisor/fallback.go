package advisor

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Fallback 纯函数：在顾问不可用或输出不可信时给出保守建议。
// 方向沿用载荷里声明的信号方向，动作一律观望。
func Fallback(payloadJSON, cause string) Advisory {
	return Advisory{
		Action:     ActionWait,
		Direction:  SignalDirection(payloadJSON),
		Confidence: 0,
		RiskLevel:  RiskHigh,
		SLPct:      0.9,
		TPPct:      2.2,
		Reason:     fmt.Sprintf("顾问建议不可用（%s），保持观望并人工复核。", cause),
		Checklist: []string{
			"人工确认趋势方向",
			"核对关键支撑/阻力位",
			"留意异常波动与放量",
		},
	}
}

// SignalDirection 从序列化载荷中提取信号方向。大小写不敏感，
// 无法识别或缺失时默认 long。
func SignalDirection(payloadJSON string) string {
	sig := strings.ToUpper(gjson.Get(payloadJSON, "signal").String())
	if strings.Contains(sig, "SHORT") {
		return DirectionShort
	}
	return DirectionLong
}
