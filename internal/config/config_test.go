package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err, "配置文件缺失不报错")
	assert.Equal(t, ":8080", cfg.App.HTTPAddr)
	assert.Equal(t, "data/tvrelay.db", cfg.Store.Path)
	assert.Equal(t, 20, cfg.AI.TimeoutSeconds)
	assert.Equal(t, 0.2, cfg.AI.Temperature)
	assert.False(t, cfg.AI.Configured())
	assert.False(t, cfg.Notify.Telegram.Configured())
	assert.False(t, cfg.Notify.Twilio.Configured())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("TVRELAY_DB_PATH", "/tmp/other.db")
	t.Setenv("TWILIO_ACCOUNT_SID", "AC1")
	t.Setenv("TWILIO_AUTH_TOKEN", "tok")
	t.Setenv("TWILIO_FROM", "+100")
	t.Setenv("TWILIO_TO", "+200")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.AI.Configured())
	assert.Equal(t, "/tmp/other.db", cfg.Store.Path)
	assert.True(t, cfg.Notify.Twilio.Configured())
}

func TestLoadFileMergedWithEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app:\n  http_addr: \":9000\"\nai:\n  model: test-model\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.App.HTTPAddr)
	assert.Equal(t, "test-model", cfg.AI.Model)
	// 文件未覆盖的键仍取默认值
	assert.Equal(t, "data/tvrelay.db", cfg.Store.Path)
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Setenv("TVRELAY_DB_PATH", " ")
	_, err := Load("")
	assert.Error(t, err)
}

func TestTwilioRequiresAllFour(t *testing.T) {
	c := TwilioConfig{AccountSID: "AC1", AuthToken: "tok", From: "+100"}
	assert.False(t, c.Configured())
	c.To = "+200"
	assert.True(t, c.Configured())
}
