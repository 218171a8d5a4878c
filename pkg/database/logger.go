package database

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shashiranjanraj/orderdesk/pkg/logger"
	"github.com/shashiranjanraj/orderdesk/pkg/metrics"
)

// queryLogger sends GORM output through pkg/logger and records query
// latency in metrics.DBQueryDuration.
type queryLogger struct {
	slow  time.Duration
	level gormlogger.LogLevel
}

// NewLogger returns a GORM logger that warns about queries slower than slow.
func NewLogger(slow time.Duration) gormlogger.Interface {
	return &queryLogger{slow: slow, level: gormlogger.Warn}
}

func (l *queryLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cp := *l
	cp.level = level
	return &cp
}

func (l *queryLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		logger.WithCtx(ctx).Info().Msgf(msg, args...)
	}
}

func (l *queryLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		logger.WithCtx(ctx).Warn().Msgf(msg, args...)
	}
}

func (l *queryLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		logger.WithCtx(ctx).Error().Msgf(msg, args...)
	}
}

func (l *queryLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()
	metrics.DBQueryDuration.WithLabelValues(operation(sql)).Observe(elapsed.Seconds())

	if l.level <= gormlogger.Silent {
		return
	}

	log := logger.WithCtx(ctx)
	switch {
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		log.Error().Err(err).Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("query failed")
	case l.slow > 0 && elapsed > l.slow && l.level >= gormlogger.Warn:
		log.Warn().Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("slow query")
	case l.level >= gormlogger.Info:
		log.Debug().Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("query")
	}
}

// operation returns the lower-cased leading SQL verb, e.g. "select".
func operation(sql string) string {
	sql = strings.TrimSpace(sql)
	if i := strings.IndexAny(sql, " \n\t"); i > 0 {
		sql = sql[:i]
	}
	switch op := strings.ToLower(sql); op {
	case "select", "insert", "update", "delete":
		return op
	default:
		return "other"
	}
}
