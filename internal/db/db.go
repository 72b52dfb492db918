package db

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"fleet-dashboard-service/internal/config"
)

func New(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg.DB)
	if err != nil {
		return nil, err
	}

	database, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(logWriter{log: log}, gormlogger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  gormLogLevel(cfg.Environment),
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.DB.Driver, err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, err
	}
	if cfg.DB.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	}
	if cfg.DB.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	}
	if cfg.DB.ConnMaxLifetime != "" {
		if lifetime, err := time.ParseDuration(cfg.DB.ConnMaxLifetime); err == nil {
			sqlDB.SetConnMaxLifetime(lifetime)
		}
	}

	if cfg.DB.AutoMigrate {
		ensureIndexes(log, func() error {
			return runMigrations(database, cfg.Dashboard.TripTable, cfg.Dashboard.AlcoholTable)
		})
	}

	log.Info().Str("driver", cfg.DB.Driver).Msg("database connected")
	return database, nil
}

// ensureIndexes runs the index migrations. The indexes only speed up the
// date filters, so a failure (MySQL refuses to index a TEXT date column
// without a prefix length) is logged and startup continues.
func ensureIndexes(log zerolog.Logger, migrate func() error) {
	if err := migrate(); err != nil {
		log.Warn().Err(err).Msg("source table indexes not created, queries run unindexed")
		return
	}
	log.Info().Msg("source table indexes ensured")
}

func dialectorFor(cfg config.DBConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverMySQL:
		return mysql.Open(cfg.DSN), nil
	case config.DriverPostgres:
		return postgres.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func gormLogLevel(environment string) gormlogger.LogLevel {
	if config.IsDevelopment(environment) {
		return gormlogger.Info
	}
	return gormlogger.Warn
}

type logWriter struct {
	log zerolog.Logger
}

func (w logWriter) Printf(format string, args ...interface{}) {
	w.log.Debug().Str("component", "gorm").Msgf(format, args...)
}
