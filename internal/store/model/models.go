package model

import (
	"time"

	"gorm.io/datatypes"
)

// EventLogModel 对应 event_logs 表：每次 webhook 调用追加一行。
type EventLogModel struct {
	ID        uint           `gorm:"primaryKey;autoIncrement"`
	TraceID   string         `gorm:"size:64;uniqueIndex"`
	TS        time.Time      `gorm:"index"`
	Route     string         `gorm:"size:128;index"`
	RawText   string         `gorm:"type:text"`
	Payload   datatypes.JSON `gorm:"type:text"`
	Advisory  datatypes.JSON `gorm:"type:text"`
	ErrorText string         `gorm:"type:text"`
	CreatedAt time.Time
}

func (EventLogModel) TableName() string { return "event_logs" }
