// database/connection.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql" // MariaDB / MySQL driver
	"github.com/ltp-analytics/dashboard/config"
	"github.com/ltp-analytics/dashboard/logger"
)

var DB *sql.DB

// DSN builds the driver connection string for cfg.
func DSN(cfg config.DatabaseConfig) string {
	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	mc.DBName = cfg.DBName
	mc.ParseTime = false // register dates are read as text
	return mc.FormatDSN()
}

// InitDB initializes the database connection pool.
func InitDB(ctx context.Context, cfg config.DatabaseConfig) error {
	var err error
	DB, err = sql.Open("mysql", DSN(cfg))
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	// Configure connection pool settings
	DB.SetMaxOpenConns(25)
	DB.SetMaxIdleConns(25)
	DB.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := DB.PingContext(pingCtx); err != nil {
		DB.Close()
		DB = nil
		return fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Log.Infof("Database: connected to %s on %s:%s", cfg.DBName, cfg.Host, cfg.Port)
	return nil
}

// CloseDB closes the database connection pool.
// Typically called on application shutdown.
func CloseDB() {
	if DB != nil {
		DB.Close()
		logger.Log.Info("Database: connection closed")
	}
}
