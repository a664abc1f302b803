package webhookhttp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"tvrelay/internal/advisor"
	"tvrelay/internal/config"
	"tvrelay/internal/relay"
	sqlitestore "tvrelay/internal/store/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer 组装一套离线全链路：无顾问凭据、无通知通道、临时 SQLite。
func newTestServer(t *testing.T) *Server {
	t.Helper()
	st, err := sqlitestore.NewSqliteStore(filepath.Join(t.TempDir(), "events.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	adv := advisor.NewClient(config.AIConfig{}, nil)
	svc := relay.NewService(adv, st, nil)
	srv, err := NewServer(ServerConfig{Addr: ":0", Version: "test", Relay: svc, Logs: st})
	require.NoError(t, err)
	return srv
}

func do(srv *Server, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	return w
}

func TestAliveAndHealth(t *testing.T) {
	srv := newTestServer(t)

	w := do(srv, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	var alive struct {
		OK      bool   `json:"ok"`
		Msg     string `json:"msg"`
		Version string `json:"version"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &alive))
	assert.True(t, alive.OK)
	assert.Equal(t, "alive", alive.Msg)
	assert.Equal(t, "test", alive.Version)

	w = do(srv, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWebhookJSONSignalFallbackOnly(t *testing.T) {
	srv := newTestServer(t)

	w := do(srv, http.MethodPost, "/tv-webhook", `{"signal":"LONG","price":65000}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		OK       bool             `json:"ok"`
		Advisory advisor.Advisory `json:"advisory"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, advisor.ActionWait, resp.Advisory.Action)
	assert.Equal(t, advisor.DirectionLong, resp.Advisory.Direction)
	assert.Equal(t, 0, resp.Advisory.Confidence)
	assert.Equal(t, advisor.RiskHigh, resp.Advisory.RiskLevel)
	assert.Equal(t, 0.9, resp.Advisory.SLPct)
	assert.Equal(t, 2.2, resp.Advisory.TPPct)
	assert.Len(t, resp.Advisory.Checklist, 3)
}

func TestWebhookPlainTextBody(t *testing.T) {
	srv := newTestServer(t)

	w := do(srv, http.MethodPost, "/", "TV_FORCE_TEST")
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		OK       bool             `json:"ok"`
		Advisory advisor.Advisory `json:"advisory"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, advisor.ActionWait, resp.Advisory.Action)

	// 落库记录保留原始报文，载荷挂在 raw 键下并带收取时间戳
	w = do(srv, http.MethodGet, "/api/events", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Events []struct {
			Route   string          `json:"route"`
			RawText string          `json:"raw_text"`
			Payload json.RawMessage `json:"payload"`
		} `json:"events"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Events, 1)
	assert.Equal(t, "/", list.Events[0].Route)
	assert.Equal(t, "TV_FORCE_TEST", list.Events[0].RawText)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(list.Events[0].Payload, &payload))
	assert.Equal(t, "TV_FORCE_TEST", payload["raw"])
	assert.NotEmpty(t, payload["recv_ts_utc"])
}

func TestWebhookRoutesShareHandling(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/", "/tv-webhook"} {
		w := do(srv, http.MethodPost, path, `{"signal":"SHORT"}`)
		require.Equal(t, http.StatusOK, w.Code, "path=%s", path)
		var resp struct {
			Advisory advisor.Advisory `json:"advisory"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, advisor.DirectionShort, resp.Advisory.Direction, "path=%s", path)
	}

	w := do(srv, http.MethodGet, "/api/events", "")
	var list struct {
		Events []struct {
			Route string `json:"route"`
		} `json:"events"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Events, 2)
	assert.Equal(t, "/tv-webhook", list.Events[0].Route)
	assert.Equal(t, "/", list.Events[1].Route)
}
