package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/mateusmacedo/train-booking/pkg/application"
)

// OpenPostgres opens a gorm connection and translates driver errors
// (e.g. unique violations) into gorm sentinels.
func OpenPostgres(dsn string, logger application.AppLogger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         NewGormLogger(logger, 200*time.Millisecond),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}

type gormLoggerAdapter struct {
	appLogger     application.AppLogger
	level         gormLogger.LogLevel
	slowThreshold time.Duration
}

// NewGormLogger reports slow queries and query errors through the AppLogger.
func NewGormLogger(appLogger application.AppLogger, slowThreshold time.Duration) gormLogger.Interface {
	return &gormLoggerAdapter{
		appLogger:     appLogger,
		level:         gormLogger.Warn,
		slowThreshold: slowThreshold,
	}
}

func (l *gormLoggerAdapter) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *gormLoggerAdapter) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormLogger.Info {
		application.LogInfo(ctx, l.appLogger, fmt.Sprintf(msg, args...), nil)
	}
}

func (l *gormLoggerAdapter) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormLogger.Warn {
		application.LogInfo(ctx, l.appLogger, fmt.Sprintf(msg, args...), map[string]interface{}{"level": "warn"})
	}
}

func (l *gormLoggerAdapter) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormLogger.Error {
		application.LogError(ctx, l.appLogger, fmt.Sprintf(msg, args...), nil, nil)
	}
}

func (l *gormLoggerAdapter) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormLogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= gormLogger.Error:
		sql, rows := fc()
		application.LogError(ctx, l.appLogger, "query failed", err, map[string]interface{}{
			"sql": sql, "rows": rows, "elapsed": elapsed.String(),
		})
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= gormLogger.Warn:
		sql, rows := fc()
		application.LogInfo(ctx, l.appLogger, "slow query", map[string]interface{}{
			"sql": sql, "rows": rows, "elapsed": elapsed.String(),
		})
	case l.level >= gormLogger.Info:
		sql, rows := fc()
		application.LogTrace(ctx, l.appLogger, "query", map[string]interface{}{
			"sql": sql, "rows": rows, "elapsed": elapsed.String(),
		})
	}
}
