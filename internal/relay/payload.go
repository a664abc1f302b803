package relay

import (
	"encoding/json"
	"strings"
	"time"
)

const (
	// RawKey 非 JSON 报文整体挂在这个键下，任何输入都不拒收。
	RawKey = "raw"
	// RecvTSKey 规范化载荷必带的收取时间戳键。
	RecvTSKey = "recv_ts_utc"
)

// Normalize 把入站原始字节转成规范化载荷。非法 UTF-8 字节直接丢弃；
// 严格 JSON 对象解析成功则沿用该映射，否则整段文本挂到 raw 键下。
// 永不失败，输出至少含 recv_ts_utc 一个键。
func Normalize(raw []byte) map[string]any {
	text := strings.ToValidUTF8(string(raw), "")
	var payload map[string]any
	if err := json.Unmarshal([]byte(text), &payload); err != nil || payload == nil {
		payload = map[string]any{RawKey: text}
	}
	if _, ok := payload[RecvTSKey]; !ok {
		payload[RecvTSKey] = time.Now().UTC().Format(time.RFC3339)
	}
	return payload
}

// RecvTime 取载荷里的收取时间；解析不了就用当前时间兜底。
func RecvTime(payload map[string]any) time.Time {
	if s, ok := payload[RecvTSKey].(string); ok {
		if ts, err := time.Parse(time.RFC3339, s); err == nil {
			return ts.UTC()
		}
	}
	return time.Now().UTC()
}
