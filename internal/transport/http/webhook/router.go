package webhookhttp

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"tvrelay/internal/relay"
	"tvrelay/internal/store"

	"github.com/gin-gonic/gin"
)

// Router 暴露告警入口与事件日志查询接口。
type Router struct {
	relay   *relay.Service
	logs    store.EventLogStore
	version string
}

func NewRouter(svc *relay.Service, logs store.EventLogStore, version string) *Router {
	return &Router{relay: svc, logs: logs, version: version}
}

// Register 挂载路由。两个 POST 入口共用同一处理逻辑，路径只用于落库。
func (r *Router) Register(e *gin.Engine) {
	e.GET("/", r.handleAlive)
	e.POST("/", r.handleWebhook)
	e.POST("/tv-webhook", r.handleWebhook)
	e.GET("/api/events", r.handleListEvents)
}

func (r *Router) handleAlive(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "msg": "alive", "version": r.version})
}

// handleWebhook 对上游的约定是"永远应答成功"：
// 内部任何失败都已在链路里降级，这里不会出现非 200。
func (r *Router) handleWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		body = nil
	}
	adv := r.relay.Handle(c.Request.Context(), c.Request.URL.Path, body)
	c.JSON(http.StatusOK, gin.H{"ok": true, "advisory": adv})
}

type eventView struct {
	TraceID   string          `json:"trace_id"`
	TS        time.Time       `json:"ts"`
	Route     string          `json:"route"`
	RawText   string          `json:"raw_text"`
	Payload   json.RawMessage `json:"payload"`
	Advisory  json.RawMessage `json:"advisory"`
	ErrorText string          `json:"error_text,omitempty"`
}

func (r *Router) handleListEvents(c *gin.Context) {
	if r.logs == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "事件日志未启用"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	rows, err := r.logs.ListRecent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]eventView, 0, len(rows))
	for _, rec := range rows {
		out = append(out, eventView{
			TraceID:   rec.TraceID,
			TS:        rec.TS,
			Route:     rec.Route,
			RawText:   rec.RawText,
			Payload:   json.RawMessage(rec.Payload),
			Advisory:  json.RawMessage(rec.Advisory),
			ErrorText: rec.ErrorText,
		})
	}
	c.JSON(http.StatusOK, gin.H{"events": out})
}
