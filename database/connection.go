// database/connection.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver ("pgx")
	_ "modernc.org/sqlite"             // SQLite driver ("sqlite")

	"github.com/gewnthar/flightops/config"
)

// DB is the pooled connection shared by every store. Queries are written with
// "?" placeholders and rebound for PostgreSQL.
type DB struct {
	*sql.DB
	driver string
	log    *slog.Logger
}

// Open initializes the connection pool for the configured driver and pings it.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*DB, error) {
	driverName, dsn, err := dataSource(cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if cfg.Driver == "sqlite" {
		// One writer at a time; also keeps clear-and-load transactions from hitting SQLITE_BUSY.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(25)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database: connected", slog.String("driver", cfg.Driver))
	return &DB{DB: sqlDB, driver: cfg.Driver, log: logger}, nil
}

func dataSource(cfg config.DatabaseConfig) (driverName, dsn string, err error) {
	switch cfg.Driver {
	case "mysql":
		mc := mysql.NewConfig()
		mc.User = cfg.User
		mc.Passwd = cfg.Password
		mc.Net = "tcp"
		mc.Addr = cfg.Host + ":" + cfg.Port
		mc.DBName = cfg.DBName
		mc.ParseTime = true
		return "mysql", mc.FormatDSN(), nil
	case "postgres":
		u := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(cfg.User, cfg.Password),
			Host:   cfg.Host + ":" + cfg.Port,
			Path:   "/" + cfg.DBName,
		}
		if cfg.SSLMode != "" {
			u.RawQuery = "sslmode=" + url.QueryEscape(cfg.SSLMode)
		}
		return "pgx", u.String(), nil
	case "sqlite":
		if cfg.Path == "" {
			return "", "", fmt.Errorf("sqlite database path is not configured")
		}
		return "sqlite", cfg.Path + "?_pragma=busy_timeout(5000)", nil
	}
	return "", "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

// Driver returns the configured driver name (mysql, postgres or sqlite).
func (db *DB) Driver() string {
	return db.driver
}

// Rebind converts "?" placeholders to the driver's syntax.
func (db *DB) Rebind(query string) string {
	if db.driver != "postgres" {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Close closes the connection pool. Typically called on application shutdown.
func (db *DB) Close() error {
	if db == nil || db.DB == nil {
		return nil
	}
	err := db.DB.Close()
	db.log.Info("Database: connection closed")
	return err
}
