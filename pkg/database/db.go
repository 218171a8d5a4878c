package database

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/orderdesk/config"
)

// Connect opens the configured database. The handle is returned to the
// caller and injected from there; nothing is stored globally.
func Connect() (*gorm.DB, error) {
	return Open(config.DatabaseDriver(), config.DatabaseDSN())
}

// Open opens a database for driver/dsn and configures the connection pool.
// Returns an error instead of calling log.Fatal so the caller can
// shut down gracefully.
func Open(driver, dsn string) (*gorm.DB, error) {
	dialector, err := buildDialector(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("database: build dialector: %w", err)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: NewLogger(200 * time.Millisecond),
	})
	if err != nil {
		return nil, fmt.Errorf("database: open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database: get sql.DB: %w", err)
	}

	if driver == "sqlite" {
		// One writer avoids "database is locked" and keeps in-memory
		// databases on a single connection.
		sqlDB.SetMaxOpenConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("database: enable foreign keys: %w", err)
		}
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
		sqlDB.SetConnMaxIdleTime(2 * time.Minute)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database: ping: %w", err)
	}

	return db, nil
}

// Close releases the underlying pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func buildDialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "sqlite":
		return sqlite.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	case "mysql":
		return mysql.Open(dsn), nil
	case "sqlserver":
		return sqlserver.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (supported: sqlite, postgres, mysql, sqlserver)", driver)
	}
}
