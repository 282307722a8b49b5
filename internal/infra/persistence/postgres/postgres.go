package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"fullapp/config"
	"fullapp/internal/domain/lifecycle"
	"fullapp/internal/errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

const (
	dbPoolMonitorInterval       = 5 * time.Second
	dbPoolWarnDurationThreshold = 50 * time.Millisecond
	dbStatsName                 = "fullapp"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the gorm handle for the store. Ping and pool metrics start with the app;
// schema migrations are applied separately by RunMigrations.
func New(params Params) (*gorm.DB, error) {
	db, err := pgLib.New(params.Config.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PostgreSQL client")
	}
	db = db.Session(&gorm.Session{
		// Multi-step writes go through TransactionManager.Execute.
		SkipDefaultTransaction: true,
		Logger:                 newGormSlogLogger(params.Logger, params.Config),
	})

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	monitorCtx, cancelMonitor := context.WithCancel(context.Background())
	statsCollector := collectors.NewDBStatsCollector(sqlDB, dbStatsName)

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to ping PostgreSQL")
			}

			if err := registerCollector(prometheus.DefaultRegisterer, statsCollector); err != nil {
				return err
			}

			go monitorDBPool(monitorCtx, params.Logger, sqlDB, dbPoolMonitorInterval)

			return nil
		},
		OnStop: func(context.Context) error {
			cancelMonitor()
			prometheus.DefaultRegisterer.Unregister(statsCollector)

			return errors.WithStack(sqlDB.Close())
		},
	})

	return db, nil
}

// registerCollector tolerates a collector that is already registered.
func registerCollector(reg prometheus.Registerer, c prometheus.Collector) error {
	err := reg.Register(c)
	if _, already := errors.Find[prometheus.AlreadyRegisteredError](err); err == nil || already {
		return nil
	}

	return errors.Wrap(err, "register postgres pool metrics")
}

// poolWait summarizes how long callers queued for a connection between two samples.
type poolWait struct {
	count    int64
	duration time.Duration
}

func (w poolWait) average() time.Duration {
	if w.count <= 0 {
		return 0
	}

	return w.duration / time.Duration(w.count)
}

func poolWaitBetween(prev, cur sql.DBStats) poolWait {
	return poolWait{
		count:    cur.WaitCount - prev.WaitCount,
		duration: cur.WaitDuration - prev.WaitDuration,
	}
}

// monitorDBPool logs connection waits; sustained waits mean the pool is undersized.
// Gauges for the same stats are exported by the DBStats collector.
func monitorDBPool(ctx context.Context, logger *slog.Logger, sqlDB *sql.DB, interval time.Duration) {
	if logger == nil || sqlDB == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	prev := sqlDB.Stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur := sqlDB.Stats()
			logPoolWait(ctx, logger, poolWaitBetween(prev, cur), cur)
			prev = cur
		}
	}
}

func logPoolWait(ctx context.Context, logger *slog.Logger, wait poolWait, cur sql.DBStats) {
	if wait.count <= 0 {
		return
	}

	level, msg := slog.LevelDebug, "Postgres pool wait observed"
	if wait.duration >= dbPoolWarnDurationThreshold {
		level, msg = slog.LevelWarn, "Postgres pool wait detected"
	}

	logger.LogAttrs(ctx, level, msg,
		slog.Int64("waitCountDelta", wait.count),
		slog.Duration("waitDurationDelta", wait.duration),
		slog.Duration("avgWait", wait.average()),
		slog.Int("maxOpenConns", cur.MaxOpenConnections),
		slog.Int("openConns", cur.OpenConnections),
		slog.Int("inUseConns", cur.InUse),
		slog.Int("idleConns", cur.Idle),
	)
}
