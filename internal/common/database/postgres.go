// internal/common/database/postgres.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"employee-query-workers/internal/common/config"

	_ "github.com/lib/pq"
)

// EmployeeColumns are the columns of the employees table the assistant reads.
var EmployeeColumns = []string{"first_name", "last_name", "department", "salary", "hire_date", "is_manager"}

const employeeColumnsQuery = `
	SELECT column_name
	FROM information_schema.columns
	WHERE table_schema = current_schema() AND table_name = 'employees'`

type PostgresClient struct {
	db *sql.DB
}

// NewPostgres opens a pool; it does not dial until first use or Ping.
func NewPostgres(cfg config.PostgresConfig) (*PostgresClient, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	lifetime := time.Duration(cfg.ConnMaxLifetimeSec) * time.Second
	if lifetime <= 0 {
		lifetime = 5 * time.Minute
	}
	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(lifetime)
	db.SetConnMaxIdleTime(lifetime)

	return &PostgresClient{db: db}, nil
}

// NewPostgresFromDB wraps an already opened pool.
func NewPostgresFromDB(db *sql.DB) *PostgresClient {
	return &PostgresClient{db: db}
}

func (c *PostgresClient) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// CheckEmployeesTable fails when the employees table is absent or lacks a column the
// assistant queries.
func (c *PostgresClient) CheckEmployeesTable(ctx context.Context) error {
	rows, err := c.db.QueryContext(ctx, employeeColumnsQuery)
	if err != nil {
		return fmt.Errorf("read employees columns: %w", err)
	}
	defer rows.Close()

	present := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("scan employees column: %w", err)
		}
		present[name] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("read employees columns: %w", err)
	}
	if len(present) == 0 {
		return fmt.Errorf("table employees not found")
	}

	var missing []string
	for _, col := range EmployeeColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("table employees is missing columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

func (c *PostgresClient) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

func (c *PostgresClient) GetDB() *sql.DB {
	return c.db
}
