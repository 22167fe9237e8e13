package cmd

import (
	"fmt"
	"log/slog"

	"github.com/frahmantamala/user-dashboard/internal"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// initDB opens the directory database through database/sql.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	_, driver := cfg.DriverName()

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return dbConn, nil
}

// initGormDB wraps the sqlx pool in gorm for the directory repository.
func initGormDB(cfg internal.DatabaseConfig, dbConn *sqlx.DB, lg *slog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if cfg.Driver == "sqlite" {
		dialector = sqlite.Dialector{Conn: dbConn.DB}
	} else {
		dialector = postgres.New(postgres.Config{Conn: dbConn.DB})
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(slog.NewLogLogger(lg.Handler(), slog.LevelDebug), gormlogger.Config{
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm: %w", err)
	}
	return db, nil
}
