package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// GormAdapter routes GORM log output through the shared zap logger.
type GormAdapter struct {
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

// NewGormAdapter creates a GORM logger at the given level. Queries slower
// than 200ms are logged as warnings.
func NewGormAdapter(level gormlogger.LogLevel) *GormAdapter {
	return &GormAdapter{level: level, slowThreshold: 200 * time.Millisecond}
}

func (a *GormAdapter) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	return &GormAdapter{level: level, slowThreshold: a.slowThreshold}
}

func (a *GormAdapter) zap() *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}

func (a *GormAdapter) Info(_ context.Context, msg string, args ...interface{}) {
	if a.level >= gormlogger.Info {
		a.zap().Info(fmt.Sprintf(msg, args...))
	}
}

func (a *GormAdapter) Warn(_ context.Context, msg string, args ...interface{}) {
	if a.level >= gormlogger.Warn {
		a.zap().Warn(fmt.Sprintf(msg, args...))
	}
}

func (a *GormAdapter) Error(_ context.Context, msg string, args ...interface{}) {
	if a.level >= gormlogger.Error {
		a.zap().Error(fmt.Sprintf(msg, args...))
	}
}

func (a *GormAdapter) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if a.level <= gormlogger.Silent {
		return
	}

	sql, rows := fc()
	elapsed := time.Since(begin)
	fields := []zap.Field{
		zap.String("sql", sql),
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
	}

	switch {
	case err != nil && a.level >= gormlogger.Error && !errors.Is(err, gormlogger.ErrRecordNotFound):
		a.zap().Error("database query failed", append(fields, zap.Error(err))...)
	case a.slowThreshold != 0 && elapsed > a.slowThreshold && a.level >= gormlogger.Warn:
		a.zap().Warn("slow query", fields...)
	case a.level >= gormlogger.Info:
		a.zap().Info("query", fields...)
	}
}
