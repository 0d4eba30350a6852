package logger

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func TestGormAdapterLevels(t *testing.T) {
	originalLogger := log
	defer func() { log = originalLogger }()

	core, logs := observer.New(zapcore.DebugLevel)
	log = zap.New(core)

	adapter := NewGormAdapter(gormlogger.Warn)
	ctx := context.Background()

	adapter.Info(ctx, "info message")
	adapter.Warn(ctx, "warn message")
	adapter.Error(ctx, "error message")

	var foundInfo, foundWarn, foundError bool
	for _, entry := range logs.All() {
		switch entry.Message {
		case "info message":
			foundInfo = true
		case "warn message":
			foundWarn = true
		case "error message":
			foundError = true
		}
	}
	if foundInfo {
		t.Error("Info message should be filtered out at Warn level")
	}
	if !foundWarn {
		t.Error("Warn message not found in logs")
	}
	if !foundError {
		t.Error("Error message not found in logs")
	}
}

func TestGormAdapterTrace(t *testing.T) {
	originalLogger := log
	defer func() { log = originalLogger }()

	core, logs := observer.New(zapcore.DebugLevel)
	log = zap.New(core)

	adapter := NewGormAdapter(gormlogger.Info)
	adapter.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT * FROM products", 3
	}, nil)

	found := false
	for _, entry := range logs.All() {
		if entry.Message != "query" {
			continue
		}
		found = true
		hasSQL := false
		for _, field := range entry.Context {
			if field.Key == "sql" && field.String == "SELECT * FROM products" {
				hasSQL = true
			}
		}
		if !hasSQL {
			t.Error("SQL query not found in trace log fields")
		}
	}
	if !found {
		t.Error("Trace message not found in logs")
	}
}

func TestGormAdapterIgnoresRecordNotFound(t *testing.T) {
	originalLogger := log
	defer func() { log = originalLogger }()

	core, logs := observer.New(zapcore.DebugLevel)
	log = zap.New(core)

	adapter := NewGormAdapter(gormlogger.Warn)
	adapter.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT * FROM users WHERE id = 999", 0
	}, gormlogger.ErrRecordNotFound)

	for _, entry := range logs.All() {
		if entry.Message == "database query failed" {
			t.Error("record not found should not be logged as a query failure")
		}
	}
}

func TestGormAdapterSlowQuery(t *testing.T) {
	originalLogger := log
	defer func() { log = originalLogger }()

	core, logs := observer.New(zapcore.DebugLevel)
	log = zap.New(core)

	adapter := &GormAdapter{level: gormlogger.Warn, slowThreshold: time.Millisecond}
	adapter.Trace(context.Background(), time.Now().Add(-time.Second), func() (string, int64) {
		return "SELECT * FROM slow_table", 1
	}, nil)

	found := false
	for _, entry := range logs.All() {
		if entry.Message == "slow query" {
			found = true
		}
	}
	if !found {
		t.Error("Slow query should be logged with warn level")
	}
}
