package jsonutil

import (
	"bytes"
	"encoding/json"
	"strings"
)

// MarshalCompact 序列化为单行 JSON，不做 HTML 转义：
// 载荷里的中文/符号原样进入提示词与数据库。
func MarshalCompact(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "{}"
	}
	return strings.TrimSpace(buf.String())
}
