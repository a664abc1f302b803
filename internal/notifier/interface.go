package notifier

import (
	"tvrelay/internal/config"
)

// TextNotifier defines a minimal text notification interface.
// It is intentionally small so different components can depend on it without
// importing concrete implementations (e.g. Telegram, Twilio).
type TextNotifier interface {
	Name() string
	SendText(text string) error
}

// FromConfig 只构造凭据齐全的通道；一个都没配时返回空切片，推送整体静默跳过。
func FromConfig(cfg config.NotifyConfig) []TextNotifier {
	var out []TextNotifier
	if cfg.Telegram.Configured() {
		out = append(out, NewTelegram(cfg.Telegram.BotToken, cfg.Telegram.ChatID))
	}
	if cfg.Twilio.Configured() {
		out = append(out, NewTwilio(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.From, cfg.Twilio.To))
	}
	return out
}
