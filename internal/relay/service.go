package relay

import (
	"context"

	"tvrelay/internal/advisor"
	"tvrelay/internal/logger"
	"tvrelay/internal/notifier"
	"tvrelay/internal/pkg/jsonutil"
	"tvrelay/internal/store"

	"github.com/google/uuid"
)

// Service 串起单次 webhook 的完整链路：
// 规范化 → 顾问 → 落库 → 通知 → 应答。每一步失败只降级，不中断，
// 调用方拿到的永远是一份完整建议。
type Service struct {
	advisor   *advisor.Client
	store     store.EventLogStore
	notifiers []notifier.TextNotifier
}

func NewService(adv *advisor.Client, st store.EventLogStore, notifiers []notifier.TextNotifier) *Service {
	return &Service{advisor: adv, store: st, notifiers: notifiers}
}

func (s *Service) Handle(ctx context.Context, route string, raw []byte) advisor.Advisory {
	payload := Normalize(raw)
	payloadJSON := jsonutil.MarshalCompact(payload)

	adv, errText := s.advisor.Advise(ctx, payloadJSON)
	advJSON := jsonutil.MarshalCompact(adv)

	rec := store.EventRecord{
		TraceID:   uuid.NewString(),
		TS:        RecvTime(payload),
		Route:     route,
		RawText:   string(raw),
		Payload:   []byte(payloadJSON),
		Advisory:  []byte(advJSON),
		ErrorText: errText,
	}
	if err := s.store.Append(ctx, rec); err != nil {
		logger.Errorf("事件落库失败（不影响应答）: %v", err)
	}

	// 通知在落库之后：发送失败不影响应答，也不影响已写入的记录。
	s.notify(payloadJSON, adv)
	return adv
}

func (s *Service) notify(payloadJSON string, adv advisor.Advisory) {
	if len(s.notifiers) == 0 {
		return
	}
	text := notifier.ComposeAdvisory(payloadJSON, adv)
	for _, n := range s.notifiers {
		if err := n.SendText(text); err != nil {
			logger.Warnf("通知发送失败（%s）: %v", n.Name(), err)
		}
	}
}
