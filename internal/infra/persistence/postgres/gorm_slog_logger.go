package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fullapp/config"
	deliverycontext "fullapp/internal/delivery/context"
	"fullapp/internal/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultGormSlowThreshold = 200 * time.Millisecond

// gormSlogLogger routes gorm output to slog. Inside a request the request-scoped
// logger is used so SQL lines carry the request id.
type gormSlogLogger struct {
	logger        *slog.Logger
	level         logger.LogLevel
	slowThreshold time.Duration
}

func newGormSlogLogger(baseLogger *slog.Logger, cfg *config.Config) logger.Interface {
	l := &gormSlogLogger{
		logger:        baseLogger,
		level:         logger.Warn,
		slowThreshold: defaultGormSlowThreshold,
	}
	if cfg == nil {
		return l
	}
	if cfg.Env.Debug {
		l.level = logger.Info
	}
	if cfg.Env.Log.SlowQueryThreshold > 0 {
		l.slowThreshold = cfg.Env.Log.SlowQueryThreshold
	}

	return l
}

func (l *gormSlogLogger) loggerFor(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return l.logger
	}

	return deliverycontext.GetLoggerOrDefault(ctx, l.logger)
}

func (l *gormSlogLogger) LogMode(level logger.LogLevel) logger.Interface {
	cloned := *l
	cloned.level = level

	return &cloned
}

func (l *gormSlogLogger) Info(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, logger.Info, slog.LevelInfo, msg, args...)
}

func (l *gormSlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, logger.Warn, slog.LevelWarn, msg, args...)
}

func (l *gormSlogLogger) Error(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, logger.Error, slog.LevelError, msg, args...)
}

func (l *gormSlogLogger) printf(ctx context.Context, min logger.LogLevel, level slog.Level, msg string, args ...any) {
	if l.logger == nil || l.level < min {
		return
	}

	l.loggerFor(ctx).LogAttrs(ctx, level, "GORM "+level.String(), slog.String("message", fmt.Sprintf(msg, args...)))
}

// Trace logs one statement: failures at error, slow statements at warn, the rest only in info mode.
// Record-not-found is an expected outcome for lookups and is never logged.
func (l *gormSlogLogger) Trace(ctx context.Context, begin time.Time, sqlAndRowsFn func() (string, int64), err error) {
	if l.logger == nil || l.level == logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	level, msg, ok := l.classify(elapsed, err)
	if !ok {
		return
	}

	sql, rows := sqlAndRowsFn()
	attrs := []slog.Attr{
		slog.Duration("elapsed", elapsed),
		slog.Int64("rows", rows),
		slog.String("sql", sql),
	}
	switch level {
	case slog.LevelError:
		attrs = append(attrs, slog.String("error", err.Error()))
	case slog.LevelWarn:
		attrs = append(attrs, slog.Duration("slowThreshold", l.slowThreshold))
	}

	l.loggerFor(ctx).LogAttrs(ctx, level, msg, attrs...)
}

func (l *gormSlogLogger) classify(elapsed time.Duration, err error) (slog.Level, string, bool) {
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= logger.Error:
		return slog.LevelError, "GORM query failed", true
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= logger.Warn:
		return slog.LevelWarn, "GORM slow query", true
	case l.level >= logger.Info:
		return slog.LevelInfo, "GORM query", true
	default:
		return 0, "", false
	}
}
