package notifier

import (
	"fmt"
	"strings"

	"tvrelay/internal/advisor"

	"github.com/tidwall/gjson"
)

const maxMessageLen = 3800

// ComposeAdvisory 把一条建议压成简短推送文本：信号标识与价格、
// 动作/风险/置信度、止损止盈、一句理由、最多 3 条核对项。
func ComposeAdvisory(payloadJSON string, adv advisor.Advisory) string {
	var b strings.Builder
	b.WriteString(headline(payloadJSON, adv))
	b.WriteString("\n")
	if price := gjson.Get(payloadJSON, "price"); price.Exists() {
		b.WriteString(fmt.Sprintf("价格：%s\n", price.String()))
	}
	b.WriteString(fmt.Sprintf("建议：%s｜风险：%s｜置信度：%d\n", adv.Action, adv.RiskLevel, adv.Confidence))
	b.WriteString(fmt.Sprintf("止损 %.2f%%｜止盈 %.2f%%\n", adv.SLPct, adv.TPPct))
	if reason := strings.TrimSpace(adv.Reason); reason != "" {
		b.WriteString("理由：" + reason + "\n")
	}
	if items := checklistLines(adv.Checklist); len(items) > 0 {
		b.WriteString("核对：\n")
		for _, item := range items {
			b.WriteString("- " + item + "\n")
		}
	}
	body := strings.TrimSpace(b.String())
	if len(body) > maxMessageLen {
		body = body[:maxMessageLen] + "..."
	}
	return body
}

func headline(payloadJSON string, adv advisor.Advisory) string {
	parts := []string{icon(adv)}
	if s := firstString(payloadJSON, "ticker", "symbol"); s != "" {
		parts = append(parts, s)
	} else {
		parts = append(parts, "未知标的")
	}
	if s := firstString(payloadJSON, "interval", "timeframe"); s != "" {
		parts = append(parts, s)
	}
	parts = append(parts, strings.ToUpper(adv.Direction))
	return strings.Join(parts, " ")
}

func icon(adv advisor.Advisory) string {
	if adv.Action == advisor.ActionEnter {
		return "🚨"
	}
	return "⏸"
}

func firstString(payloadJSON string, keys ...string) string {
	for _, key := range keys {
		if s := strings.TrimSpace(gjson.Get(payloadJSON, key).String()); s != "" {
			return s
		}
	}
	return ""
}

func checklistLines(items []string) []string {
	out := make([]string, 0, 3)
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
		if len(out) == 3 {
			break
		}
	}
	return out
}
