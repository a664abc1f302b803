package relay

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"tvrelay/internal/advisor"
	"tvrelay/internal/config"
	"tvrelay/internal/notifier"
	"tvrelay/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingStore struct {
	appended []store.EventRecord
	fail     bool
}

func (s *recordingStore) Append(_ context.Context, rec store.EventRecord) error {
	if s.fail {
		return errors.New("disk full")
	}
	s.appended = append(s.appended, rec)
	return nil
}

func (s *recordingStore) ListRecent(context.Context, int) ([]store.EventRecord, error) {
	return s.appended, nil
}

func (s *recordingStore) GetByTraceID(context.Context, string) (store.EventRecord, error) {
	return store.EventRecord{}, errors.New("not found")
}

func (s *recordingStore) Close() error { return nil }

type recordingNotifier struct {
	sent []string
	fail bool
}

func (n *recordingNotifier) Name() string { return "recording" }

func (n *recordingNotifier) SendText(text string) error {
	if n.fail {
		return errors.New("provider rejected")
	}
	n.sent = append(n.sent, text)
	return nil
}

func newFallbackService(st store.EventLogStore, ns ...notifier.TextNotifier) *Service {
	return NewService(advisor.NewClient(config.AIConfig{}, nil), st, ns)
}

func TestHandlePersistsAndNotifies(t *testing.T) {
	st := &recordingStore{}
	n := &recordingNotifier{}
	svc := newFallbackService(st, n)

	adv := svc.Handle(context.Background(), "/tv-webhook", []byte(`{"signal":"LONG","ticker":"BTCUSDT","price":65000}`))
	assert.Equal(t, advisor.ActionWait, adv.Action)

	require.Len(t, st.appended, 1)
	rec := st.appended[0]
	assert.NotEmpty(t, rec.TraceID)
	assert.Equal(t, "/tv-webhook", rec.Route)
	assert.Equal(t, `{"signal":"LONG","ticker":"BTCUSDT","price":65000}`, rec.RawText)

	var persisted advisor.Advisory
	require.NoError(t, json.Unmarshal(rec.Advisory, &persisted))
	assert.Equal(t, adv, persisted)

	require.Len(t, n.sent, 1)
	assert.Contains(t, n.sent[0], "BTCUSDT")
}

func TestHandleSurvivesStoreFailure(t *testing.T) {
	st := &recordingStore{fail: true}
	n := &recordingNotifier{}
	svc := newFallbackService(st, n)

	adv := svc.Handle(context.Background(), "/", []byte("not json"))
	assert.Equal(t, advisor.ActionWait, adv.Action)
	assert.Equal(t, advisor.RiskHigh, adv.RiskLevel)
	// 落库失败不影响通知与应答
	assert.Len(t, n.sent, 1)
}

func TestHandleSurvivesNotifierFailure(t *testing.T) {
	st := &recordingStore{}
	svc := newFallbackService(st, &recordingNotifier{fail: true})

	adv := svc.Handle(context.Background(), "/", []byte(`{"signal":"SHORT"}`))
	assert.Equal(t, advisor.DirectionShort, adv.Direction)
	assert.Len(t, st.appended, 1, "通知失败不影响已写入的记录")
}

func TestHandleNoNotifiersIsSilent(t *testing.T) {
	st := &recordingStore{}
	svc := newFallbackService(st)

	adv := svc.Handle(context.Background(), "/", []byte(`{}`))
	assert.Equal(t, advisor.ActionWait, adv.Action)
	assert.Len(t, st.appended, 1)
}
