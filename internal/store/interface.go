package store

import (
	"context"
	"time"
)

// EventRecord 是一条落库的事件：原始报文、规范化载荷、建议结果与错误文本。
// 只追加，写入后不再修改。
type EventRecord struct {
	TraceID   string    `json:"trace_id"`
	TS        time.Time `json:"ts"`
	Route     string    `json:"route"`
	RawText   string    `json:"raw_text"`
	Payload   []byte    `json:"payload"`
	Advisory  []byte    `json:"advisory"`
	ErrorText string    `json:"error_text,omitempty"`
}

// EventLogStore 事件日志存储。没有更新/删除入口。
type EventLogStore interface {
	Append(ctx context.Context, rec EventRecord) error
	ListRecent(ctx context.Context, limit int) ([]EventRecord, error)
	GetByTraceID(ctx context.Context, traceID string) (EventRecord, error)
	Close() error
}
