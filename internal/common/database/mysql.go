// internal/common/database/mysql.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"geotrack-backend/internal/common/config"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLClient wraps the SQL database connection
type MySQLClient struct {
	DB *sql.DB
}

// NewMySQL creates a new MySQL client
func NewMySQL(cfg config.MySQLConfig) (*MySQLClient, error) {
	dsn := cfg.GetDSN()

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open mysql: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &MySQLClient{DB: db}, nil
}

// Ping tests the database connection
func (c *MySQLClient) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

// CurrentDatabase returns the name of the active schema, for the startup banner.
func (c *MySQLClient) CurrentDatabase(ctx context.Context) (string, error) {
	var name sql.NullString
	if err := c.DB.QueryRowContext(ctx, "SELECT DATABASE()").Scan(&name); err != nil {
		return "", err
	}
	return name.String, nil
}

// Close closes the database connection
func (c *MySQLClient) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

// Query executes a query that returns rows
func (c *MySQLClient) Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return c.DB.QueryContext(ctx, query, args...)
}

// QueryRow executes a query that returns at most one row
func (c *MySQLClient) QueryRow(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return c.DB.QueryRowContext(ctx, query, args...)
}

// Exec executes a query that doesn't return rows
func (c *MySQLClient) Exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return c.DB.ExecContext(ctx, query, args...)
}

// GetDB returns the underlying *sql.DB for compatibility
func (c *MySQLClient) GetDB() *sql.DB {
	return c.DB
}
