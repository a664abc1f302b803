package config

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Load 读取可选的 YAML 配置文件并叠加环境变量。文件缺失不报错：
// 纯环境变量部署（容器里最常见）只需要设置下面绑定的变量即可。
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	applyDefaults(v)
	bindEnvironment(v)
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("reading config file failed (%s): %w", path, err)
			}
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "toml"
		dc.WeaklyTypedInput = true
	}); err != nil {
		return nil, fmt.Errorf("parsing config failed: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "prod")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.http_addr", ":8080")
	v.SetDefault("ai.base_url", "https://api.openai.com/v1")
	v.SetDefault("ai.model", "gpt-4o-mini")
	v.SetDefault("ai.temperature", 0.2)
	v.SetDefault("ai.timeout_seconds", 20)
	v.SetDefault("ai.max_retries", 2)
	v.SetDefault("store.path", "data/tvrelay.db")
}

func bindEnvironment(v *viper.Viper) {
	binds := map[string]string{
		"app.log_level":             "TVRELAY_LOG_LEVEL",
		"app.http_addr":             "TVRELAY_HTTP_ADDR",
		"app.log_path":              "TVRELAY_LOG_PATH",
		"app.llm_log_path":          "TVRELAY_LLM_LOG_PATH",
		"ai.base_url":               "OPENAI_BASE_URL",
		"ai.api_key":                "OPENAI_API_KEY",
		"ai.model":                  "OPENAI_MODEL",
		"store.path":                "TVRELAY_DB_PATH",
		"notify.telegram.bot_token": "TELEGRAM_BOT_TOKEN",
		"notify.telegram.chat_id":   "TELEGRAM_CHAT_ID",
		"notify.twilio.account_sid": "TWILIO_ACCOUNT_SID",
		"notify.twilio.auth_token":  "TWILIO_AUTH_TOKEN",
		"notify.twilio.from":        "TWILIO_FROM",
		"notify.twilio.to":          "TWILIO_TO",
	}
	for key, env := range binds {
		_ = v.BindEnv(key, env)
	}
}
