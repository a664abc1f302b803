package advisor

import (
	"context"
	"fmt"
	"strings"

	"tvrelay/internal/config"
	"tvrelay/internal/logger"
	"tvrelay/internal/pkg/jsonutil"

	"github.com/tidwall/gjson"
)

// ModelCaller 外部模型调用入口，由 provider 包实现。
type ModelCaller interface {
	Call(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Client 把一条规范化载荷交给外部模型换取风控建议。
// 对外永不报错：任何失败都降级为保守回退建议，另返回一段给运维看的错误文本。
type Client struct {
	caller     ModelCaller
	configured bool
}

func NewClient(cfg config.AIConfig, caller ModelCaller) *Client {
	return &Client{caller: caller, configured: cfg.Configured() && caller != nil}
}

// Advise 返回完整建议与错误文本（无故障时为空串）。
func (c *Client) Advise(ctx context.Context, payloadJSON string) (Advisory, string) {
	if !c.configured {
		return Fallback(payloadJSON, "顾问服务未配置"), ""
	}
	raw, err := c.caller.Call(ctx, systemPrompt, buildUserPrompt(payloadJSON))
	if err != nil {
		logger.Errorf("顾问调用失败: %v", err)
		return Fallback(payloadJSON, "调用异常"), fmt.Sprintf("advisor call failed: %v", err)
	}
	objJSON, ok := extractAdvisoryObject(raw)
	if !ok {
		logger.Warnf("顾问输出不是 JSON 对象，已回退（前 120 字：%s）", head(raw, 120))
		return Fallback(payloadJSON, "非JSON输出"), "advisor output is not a JSON object"
	}
	adv := fillDefaults(objJSON, payloadJSON)
	if err := validateAdvisory(adv); err != nil {
		logger.Warnf("顾问建议未通过出参校验: %v", err)
		return Fallback(payloadJSON, "输出校验失败"), fmt.Sprintf("advisory schema check failed: %v", err)
	}
	return adv, ""
}

// extractAdvisoryObject 先按严格 JSON 看整段回复：合法对象直接用，
// 合法但不是对象（数组/标量）视为坏输出。整段不合法时才尝试从
// 围栏或自由文本里挖平衡对象。
func extractAdvisoryObject(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}
	if gjson.Valid(trimmed) {
		if gjson.Parse(trimmed).IsObject() {
			return trimmed, true
		}
		return "", false
	}
	obj, ok := jsonutil.ExtractObject(trimmed)
	if !ok || !gjson.Valid(obj) || !gjson.Parse(obj).IsObject() {
		return "", false
	}
	return obj, true
}

// fillDefaults 保留模型给出的合法字段，缺失或非法的按保守默认补齐。
func fillDefaults(objJSON, payloadJSON string) Advisory {
	adv := Advisory{
		Action:     ActionWait,
		Direction:  SignalDirection(payloadJSON),
		Confidence: 0,
		RiskLevel:  RiskMid,
		SLPct:      defaultFillSLPct,
		TPPct:      defaultFillTPPct,
		Reason:     defaultReason,
		Checklist:  append([]string(nil), defaultChecklist...),
	}
	obj := gjson.Parse(objJSON)
	if a, ok := normalizeEnum(obj.Get("action").String(), ActionEnter, ActionWait); ok {
		adv.Action = a
	}
	if d, ok := normalizeEnum(obj.Get("direction").String(), DirectionLong, DirectionShort); ok {
		adv.Direction = d
	}
	if v := obj.Get("confidence"); v.Exists() {
		adv.Confidence = clampConfidence(int(v.Int()))
	}
	if r, ok := normalizeEnum(obj.Get("risk_level").String(), RiskLow, RiskMid, RiskHigh); ok {
		adv.RiskLevel = r
	}
	if v := obj.Get("sl_pct"); v.Exists() && v.Float() > 0 {
		adv.SLPct = v.Float()
	}
	if v := obj.Get("tp_pct"); v.Exists() && v.Float() > 0 {
		adv.TPPct = v.Float()
	}
	if s := strings.TrimSpace(obj.Get("reason").String()); s != "" {
		adv.Reason = s
	}
	if cl := obj.Get("checklist"); cl.IsArray() {
		items := make([]string, 0, 3)
		cl.ForEach(func(_, item gjson.Result) bool {
			s := strings.TrimSpace(item.String())
			if s != "" {
				items = append(items, s)
			}
			return true
		})
		if len(items) > 0 {
			adv.Checklist = items
		}
	}
	return adv
}

func normalizeEnum(v string, allowed ...string) (string, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	for _, a := range allowed {
		if v == a {
			return a, true
		}
	}
	return "", false
}

func clampConfidence(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func head(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
