package notifier

import (
	"strings"
	"testing"

	"tvrelay/internal/advisor"
	"tvrelay/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestComposeAdvisory(t *testing.T) {
	adv := advisor.Advisory{
		Action:     advisor.ActionEnter,
		Direction:  advisor.DirectionLong,
		Confidence: 66,
		RiskLevel:  advisor.RiskMid,
		SLPct:      1.2,
		TPPct:      3.5,
		Reason:     "突破回踩确认",
		Checklist:  []string{"看趋势", "看量能", "看关键位", "第四条不该出现", "第五条也不该"},
	}
	text := ComposeAdvisory(`{"ticker":"BTCUSDT","interval":"15m","price":65000}`, adv)

	assert.Contains(t, text, "BTCUSDT")
	assert.Contains(t, text, "15m")
	assert.Contains(t, text, "价格：65000")
	assert.Contains(t, text, "建议：enter｜风险：mid｜置信度：66")
	assert.Contains(t, text, "止损 1.20%｜止盈 3.50%")
	assert.Contains(t, text, "突破回踩确认")
	assert.Contains(t, text, "看关键位")
	assert.NotContains(t, text, "第四条不该出现")
	// 核对项最多渲染 3 条
	assert.Equal(t, 3, strings.Count(text, "\n- "))
}

func TestComposeAdvisoryMinimalPayload(t *testing.T) {
	adv := advisor.Fallback(`{}`, "顾问服务未配置")
	text := ComposeAdvisory(`{"raw":"TV_FORCE_TEST","recv_ts_utc":"2026-08-27T10:00:00Z"}`, adv)
	assert.Contains(t, text, "未知标的")
	assert.Contains(t, text, "建议：wait")
	assert.NotContains(t, text, "价格：")
}

func TestFromConfigRequiresFullCredentials(t *testing.T) {
	assert.Empty(t, FromConfig(config.NotifyConfig{}), "无凭据时不构造任何通道")

	partial := config.NotifyConfig{
		Twilio: config.TwilioConfig{AccountSID: "AC1", AuthToken: "tok", From: "+100"},
	}
	assert.Empty(t, FromConfig(partial), "Twilio 四项缺一则禁用")

	full := config.NotifyConfig{
		Telegram: config.TelegramConfig{BotToken: "bot", ChatID: "chat"},
		Twilio:   config.TwilioConfig{AccountSID: "AC1", AuthToken: "tok", From: "+100", To: "+200"},
	}
	ns := FromConfig(full)
	assert.Len(t, ns, 2)
	names := []string{ns[0].Name(), ns[1].Name()}
	assert.Contains(t, names, "telegram")
	assert.Contains(t, names, "twilio")
}
