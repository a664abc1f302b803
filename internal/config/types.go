package config

import "strings"

// Config 是 tvrelay 的主配置载体，进程启动时构建一次，只读传入各组件。
type Config struct {
	App    AppConfig    `toml:"app"`
	AI     AIConfig     `toml:"ai"`
	Store  StoreConfig  `toml:"store"`
	Notify NotifyConfig `toml:"notify"`
}

type AppConfig struct {
	Env      string `toml:"env"`
	LogLevel string `toml:"log_level"`
	HTTPAddr string `toml:"http_addr"`
	LogPath  string `toml:"log_path"`
	LLMLog   string `toml:"llm_log_path"`
}

// AIConfig 描述外部顾问模型（OpenAI 兼容 /v1/chat/completions）的访问方式。
type AIConfig struct {
	BaseURL        string  `toml:"base_url"`
	APIKey         string  `toml:"api_key"`
	Model          string  `toml:"model"`
	Temperature    float64 `toml:"temperature"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
	MaxRetries     int     `toml:"max_retries"`
}

// Configured 未配置密钥时顾问调用全部走保守回退。
func (a AIConfig) Configured() bool {
	return strings.TrimSpace(a.APIKey) != ""
}

type StoreConfig struct {
	Path string `toml:"path"`
}

type NotifyConfig struct {
	Telegram TelegramConfig `toml:"telegram"`
	Twilio   TwilioConfig   `toml:"twilio"`
}

type TelegramConfig struct {
	BotToken string `toml:"bot_token"`
	ChatID   string `toml:"chat_id"`
}

func (t TelegramConfig) Configured() bool {
	return strings.TrimSpace(t.BotToken) != "" && strings.TrimSpace(t.ChatID) != ""
}

// TwilioConfig 四项凭据必须同时提供，缺任意一项则该通道静默禁用。
type TwilioConfig struct {
	AccountSID string `toml:"account_sid"`
	AuthToken  string `toml:"auth_token"`
	From       string `toml:"from"`
	To         string `toml:"to"`
}

func (t TwilioConfig) Configured() bool {
	return strings.TrimSpace(t.AccountSID) != "" &&
		strings.TrimSpace(t.AuthToken) != "" &&
		strings.TrimSpace(t.From) != "" &&
		strings.TrimSpace(t.To) != ""
}
