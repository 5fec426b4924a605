package db

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/hokago/nichian/internal/config"
	"github.com/hokago/nichian/internal/logger"
	"github.com/hokago/nichian/internal/models"
)

var conn *gorm.DB

// Init opens the database named by cfg and migrates the schema.
func Init(cfg config.DBConfig) error {
	gdb, err := Open(cfg)
	if err != nil {
		return err
	}
	conn = gdb
	logger.L().Info("database ready", zap.String("driver", cfg.Driver))
	return nil
}

// Open returns a migrated connection without touching the package default.
func Open(cfg config.DBConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		dialector = sqlite.Open(sqliteDSN(cfg.DSN))
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	if cfg.Driver != "postgres" {
		// SQLite works best with a single writer; cap the pool accordingly.
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
	}

	if err := Migrate(gdb); err != nil {
		return nil, err
	}
	return gdb, nil
}

func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&models.Store{},
		&models.Staff{},
		&models.Child{},
		&models.Activity{},
		&models.HiddenActivity{},
		&models.DailyPlan{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// sqliteDSN appends the WAL/busy-timeout/foreign-key pragmas unless the
// caller already passed query parameters.
func sqliteDSN(dsn string) string {
	if dsn == "" {
		dsn = "nichian.db"
	}
	if strings.Contains(dsn, "?") {
		return dsn
	}
	return dsn + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"
}

func Conn() *gorm.DB {
	return conn
}

// Ping checks that the default connection is usable.
func Ping() error {
	if conn == nil {
		return fmt.Errorf("database not initialised")
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
