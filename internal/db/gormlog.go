package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gym-app-go/pkg/logger"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var _ gormlogger.Interface = (*gormLogger)(nil)

// gormLogger forwards gorm's query log to the application logger. Failed
// queries are internal errors, slow ones warnings, everything else debug.
// Record-not-found is a normal lookup miss and is not logged.
type gormLogger struct {
	log   logger.Logger
	level gormlogger.LogLevel
	slow  time.Duration
}

func newGormLogger(log logger.Logger, slow time.Duration) *gormLogger {
	return &gormLogger{
		log:   log.Component("gorm"),
		level: gormlogger.Info,
		slow:  slow,
	}
}

func (l *gormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *gormLogger) Info(_ context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Info {
		l.log.Info(fmt.Sprintf(msg, args...))
	}
}

func (l *gormLogger) Warn(_ context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Warn {
		l.log.Warn(fmt.Sprintf(msg, args...))
	}
}

func (l *gormLogger) Error(_ context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Error {
		l.log.Error(fmt.Sprintf(msg, args...))
	}
}

func (l *gormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= gormlogger.Error:
		sql, rows := fc()
		l.log.InternalError("db: query failed", err, "sql", sql, "rows", rows, "elapsed", elapsed)
	case l.slow > 0 && elapsed > l.slow && l.level >= gormlogger.Warn:
		sql, rows := fc()
		l.log.Warn("db: slow query", "sql", sql, "rows", rows, "elapsed", elapsed, "threshold", l.slow)
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		l.log.Debug("db: query", "sql", sql, "rows", rows, "elapsed", elapsed)
	}
}
