package app

import (
	"context"
	"fmt"

	"tvrelay/internal/advisor"
	"tvrelay/internal/config"
	"tvrelay/internal/logger"
	"tvrelay/internal/notifier"
	"tvrelay/internal/provider"
	"tvrelay/internal/relay"
	"tvrelay/internal/store"
	sqlitestore "tvrelay/internal/store/sqlite"
	webhookhttp "tvrelay/internal/transport/http/webhook"

	"golang.org/x/sync/errgroup"
)

const Version = "0.1.0"

// App 负责应用级编排：配置 → 依赖构建 → 启动 HTTP 服务。
// 所有可变句柄在这里装配一次，之后只读传递。
type App struct {
	cfg    *config.Config
	server *webhookhttp.Server
	store  store.EventLogStore
}

// NewApp 根据配置构建应用对象（不启动）。
func NewApp(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	logger.SetLevel(cfg.App.LogLevel)

	st, err := sqlitestore.NewSqliteStore(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("初始化事件日志存储失败: %w", err)
	}

	var caller advisor.ModelCaller
	if cfg.AI.Configured() {
		caller = provider.NewOpenAIChatClient(cfg.AI)
	} else {
		logger.Warnf("未配置 OPENAI_API_KEY，顾问建议全部走保守回退")
	}
	advClient := advisor.NewClient(cfg.AI, caller)

	notifiers := notifier.FromConfig(cfg.Notify)
	if len(notifiers) == 0 {
		logger.Infof("未配置任何通知通道，推送步骤静默跳过")
	}

	svc := relay.NewService(advClient, st, notifiers)
	server, err := webhookhttp.NewServer(webhookhttp.ServerConfig{
		Addr:    cfg.App.HTTPAddr,
		Version: Version,
		Relay:   svc,
		Logs:    st,
	})
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	logger.Infof("✓ 初始化完成（顾问=%s，通知通道=%d，存储=%s，监听=%s）",
		advisorMode(cfg.AI), len(notifiers), cfg.Store.Path, server.Addr())
	return &App{cfg: cfg, server: server, store: st}, nil
}

// Run 启动服务并在 ctx 取消后关闭存储。
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.server == nil {
		return fmt.Errorf("app not initialized")
	}
	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := a.server.Start(ctx); err != nil {
			return fmt.Errorf("webhook http server error: %w", err)
		}
		return nil
	})
	err := group.Wait()
	if cerr := a.store.Close(); cerr != nil {
		logger.Warnf("关闭事件日志存储失败: %v", cerr)
	}
	return err
}

func advisorMode(cfg config.AIConfig) string {
	if cfg.Configured() {
		return cfg.Model
	}
	return "fallback-only"
}
