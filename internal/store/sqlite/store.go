package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tvrelay/internal/store"
	"tvrelay/internal/store/model"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SqliteStore 用 Gorm + SQLite 保存事件日志。并发追加依赖
// busy_timeout + WAL 由驱动层排队，进程内不加锁。
type SqliteStore struct {
	db *gorm.DB
}

func NewSqliteStore(path string) (*SqliteStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("database path cannot be empty")
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&cache=shared", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&model.EventLogModel{}); err != nil {
		return nil, err
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(2)
	}
	return &SqliteStore{db: db}, nil
}

func (s *SqliteStore) Append(ctx context.Context, rec store.EventRecord) error {
	row := model.EventLogModel{
		TraceID:   rec.TraceID,
		TS:        rec.TS,
		Route:     rec.Route,
		RawText:   rec.RawText,
		Payload:   datatypes.JSON(rec.Payload),
		Advisory:  datatypes.JSON(rec.Advisory),
		ErrorText: rec.ErrorText,
	}
	return s.db.WithContext(ctx).Create(&row).Error
}

func (s *SqliteStore) ListRecent(ctx context.Context, limit int) ([]store.EventRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []model.EventLogModel
	if err := s.db.WithContext(ctx).Order("id DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]store.EventRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, toRecord(row))
	}
	return out, nil
}

func (s *SqliteStore) GetByTraceID(ctx context.Context, traceID string) (store.EventRecord, error) {
	var row model.EventLogModel
	if err := s.db.WithContext(ctx).Where("trace_id = ?", traceID).First(&row).Error; err != nil {
		return store.EventRecord{}, err
	}
	return toRecord(row), nil
}

func (s *SqliteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func toRecord(row model.EventLogModel) store.EventRecord {
	return store.EventRecord{
		TraceID:   row.TraceID,
		TS:        row.TS,
		Route:     row.Route,
		RawText:   row.RawText,
		Payload:   []byte(row.Payload),
		Advisory:  []byte(row.Advisory),
		ErrorText: row.ErrorText,
	}
}
