// Package store reads employee data for classified queries.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"employee-query-workers/internal/models"
)

// Store is the storage collaborator. Department arguments are matched case-insensitively.
type Store interface {
	EmployeesInDepartment(ctx context.Context, department string) ([]models.DepartmentEmployeeRow, error)
	AllManagers(ctx context.Context) ([]models.ManagerRow, error)
	DepartmentManagers(ctx context.Context, department string) ([]models.DepartmentManagerRow, error)
	EmployeesByHireDate(ctx context.Context, cmp models.Comparison, date string) ([]models.HireDateRow, error)
	EmployeesBySalary(ctx context.Context, cmp models.Comparison, amount int64) ([]models.SalaryRow, error)
	AverageSalary(ctx context.Context, department string) (models.SalaryAggregate, error)
}

const (
	queryEmployeesInDepartment = `
		SELECT first_name, last_name, salary, to_char(hire_date, 'YYYY-MM-DD')
		FROM employees
		WHERE LOWER(department) = $1
		ORDER BY last_name`

	queryAllManagers = `
		SELECT first_name, last_name, department
		FROM employees
		WHERE is_manager = 'Yes'
		ORDER BY department, last_name`

	queryDepartmentManagers = `
		SELECT first_name, last_name
		FROM employees
		WHERE LOWER(department) = $1 AND is_manager = 'Yes'
		ORDER BY last_name`

	// %s is a whitelisted comparison operator.
	queryEmployeesByHireDate = `
		SELECT first_name, last_name, department, to_char(hire_date, 'YYYY-MM-DD')
		FROM employees
		WHERE hire_date %s $1
		ORDER BY hire_date`

	queryEmployeesBySalary = `
		SELECT first_name, last_name, department, salary
		FROM employees
		WHERE salary %s $1
		ORDER BY salary DESC`

	queryAverageSalaryOverall = `
		SELECT COALESCE(AVG(salary), 0), COUNT(*)
		FROM employees`

	queryAverageSalaryByDepartment = `
		SELECT COALESCE(AVG(salary), 0), COUNT(*)
		FROM employees
		WHERE LOWER(department) = $1`
)

// PostgresStore implements Store over database/sql with the lib/pq driver.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore wraps an open connection pool.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) EmployeesInDepartment(ctx context.Context, department string) ([]models.DepartmentEmployeeRow, error) {
	rows, err := s.db.QueryContext(ctx, queryEmployeesInDepartment, department)
	if err != nil {
		return nil, fmt.Errorf("query department employees: %w", err)
	}
	defer rows.Close()

	var out []models.DepartmentEmployeeRow
	for rows.Next() {
		var r models.DepartmentEmployeeRow
		if err := rows.Scan(&r.FirstName, &r.LastName, &r.Salary, &r.HireDate); err != nil {
			return nil, fmt.Errorf("scan department employee: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *PostgresStore) AllManagers(ctx context.Context) ([]models.ManagerRow, error) {
	rows, err := s.db.QueryContext(ctx, queryAllManagers)
	if err != nil {
		return nil, fmt.Errorf("query managers: %w", err)
	}
	defer rows.Close()

	var out []models.ManagerRow
	for rows.Next() {
		var r models.ManagerRow
		if err := rows.Scan(&r.FirstName, &r.LastName, &r.Department); err != nil {
			return nil, fmt.Errorf("scan manager: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *PostgresStore) DepartmentManagers(ctx context.Context, department string) ([]models.DepartmentManagerRow, error) {
	rows, err := s.db.QueryContext(ctx, queryDepartmentManagers, department)
	if err != nil {
		return nil, fmt.Errorf("query department managers: %w", err)
	}
	defer rows.Close()

	var out []models.DepartmentManagerRow
	for rows.Next() {
		var r models.DepartmentManagerRow
		if err := rows.Scan(&r.FirstName, &r.LastName); err != nil {
			return nil, fmt.Errorf("scan department manager: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *PostgresStore) EmployeesByHireDate(ctx context.Context, cmp models.Comparison, date string) ([]models.HireDateRow, error) {
	if !cmp.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidComparison, cmp)
	}
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(queryEmployeesByHireDate, cmp), date)
	if err != nil {
		return nil, fmt.Errorf("query employees by hire date: %w", err)
	}
	defer rows.Close()

	var out []models.HireDateRow
	for rows.Next() {
		var r models.HireDateRow
		if err := rows.Scan(&r.FirstName, &r.LastName, &r.Department, &r.HireDate); err != nil {
			return nil, fmt.Errorf("scan hire date row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *PostgresStore) EmployeesBySalary(ctx context.Context, cmp models.Comparison, amount int64) ([]models.SalaryRow, error) {
	if !cmp.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidComparison, cmp)
	}
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(queryEmployeesBySalary, cmp), amount)
	if err != nil {
		return nil, fmt.Errorf("query employees by salary: %w", err)
	}
	defer rows.Close()

	var out []models.SalaryRow
	for rows.Next() {
		var r models.SalaryRow
		if err := rows.Scan(&r.FirstName, &r.LastName, &r.Department, &r.Salary); err != nil {
			return nil, fmt.Errorf("scan salary row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// AverageSalary aggregates over every employee when department is empty.
func (s *PostgresStore) AverageSalary(ctx context.Context, department string) (models.SalaryAggregate, error) {
	var (
		agg models.SalaryAggregate
		row *sql.Row
	)
	if department == "" {
		row = s.db.QueryRowContext(ctx, queryAverageSalaryOverall)
	} else {
		row = s.db.QueryRowContext(ctx, queryAverageSalaryByDepartment, department)
	}
	if err := row.Scan(&agg.Average, &agg.Count); err != nil {
		return models.SalaryAggregate{}, fmt.Errorf("query average salary: %w", err)
	}
	return agg, nil
}
