package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "employee-query-workers/internal/common/errors"
	"employee-query-workers/internal/models"
)

var (
	ErrInvalidComparison = errors.New("invalid comparison operator")
	ErrMissingParam      = errors.New("missing required parameter")
)

// QueryFunc fetches the rows for one intent.
type QueryFunc func(ctx context.Context, s Store, p models.Params) (models.ResultSet, error)

// Registry maps every data-backed intent to its query.
var Registry = map[models.Intent]QueryFunc{
	models.IntentDepartmentList:            departmentList,
	models.IntentManagerList:               managerList,
	models.IntentManagerOfDepartment:       managerOfDepartment,
	models.IntentHireDateFilter:            hireDateFilter,
	models.IntentSalaryFilter:              salaryFilter,
	models.IntentAverageSalaryOverall:      averageSalaryOverall,
	models.IntentAverageSalaryByDepartment: averageSalaryByDepartment,
}

// Fetch runs the query registered for parsed.Intent. Failures are returned as
// *errors.StandardError: STORAGE_ERROR or QUERY_TIMEOUT for collaborator failures,
// INVALID_INPUT for unusable parameters and UNSUPPORTED_INTENT for intents without a query.
func Fetch(ctx context.Context, s Store, parsed models.ParsedIntent) (models.ResultSet, error) {
	fn, ok := Registry[parsed.Intent]
	if !ok {
		return models.ResultSet{Intent: parsed.Intent}, apperrors.NewUnsupportedIntentError(string(parsed.Intent))
	}

	rs, err := fn(ctx, s, parsed.Params)
	if err != nil {
		if errors.Is(err, ErrMissingParam) || errors.Is(err, ErrInvalidComparison) {
			return models.ResultSet{Intent: parsed.Intent}, apperrors.NewInvalidInputError(err.Error())
		}
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return models.ResultSet{Intent: parsed.Intent}, apperrors.NewQueryTimeoutError(string(parsed.Intent), err)
		}
		return models.ResultSet{Intent: parsed.Intent}, apperrors.NewStorageError(string(parsed.Intent), err)
	}
	rs.Intent = parsed.Intent
	return rs, nil
}

func departmentKey(p models.Params) (string, error) {
	dept := strings.ToLower(strings.TrimSpace(p.Department))
	if dept == "" {
		return "", fmt.Errorf("%w: department", ErrMissingParam)
	}
	return dept, nil
}

func departmentList(ctx context.Context, s Store, p models.Params) (models.ResultSet, error) {
	dept, err := departmentKey(p)
	if err != nil {
		return models.ResultSet{}, err
	}
	rows, err := s.EmployeesInDepartment(ctx, dept)
	return models.ResultSet{Employees: rows}, err
}

func managerList(ctx context.Context, s Store, _ models.Params) (models.ResultSet, error) {
	rows, err := s.AllManagers(ctx)
	return models.ResultSet{Managers: rows}, err
}

func managerOfDepartment(ctx context.Context, s Store, p models.Params) (models.ResultSet, error) {
	dept, err := departmentKey(p)
	if err != nil {
		return models.ResultSet{}, err
	}
	rows, err := s.DepartmentManagers(ctx, dept)
	return models.ResultSet{DepartmentManagers: rows}, err
}

func hireDateFilter(ctx context.Context, s Store, p models.Params) (models.ResultSet, error) {
	if p.Date == "" {
		return models.ResultSet{}, fmt.Errorf("%w: date", ErrMissingParam)
	}
	rows, err := s.EmployeesByHireDate(ctx, p.Comparison, p.Date)
	return models.ResultSet{HireDates: rows}, err
}

func salaryFilter(ctx context.Context, s Store, p models.Params) (models.ResultSet, error) {
	rows, err := s.EmployeesBySalary(ctx, p.Comparison, p.Amount)
	return models.ResultSet{Salaries: rows}, err
}

func averageSalaryOverall(ctx context.Context, s Store, _ models.Params) (models.ResultSet, error) {
	agg, err := s.AverageSalary(ctx, "")
	if err != nil {
		return models.ResultSet{}, err
	}
	return models.ResultSet{Aggregate: &agg}, nil
}

func averageSalaryByDepartment(ctx context.Context, s Store, p models.Params) (models.ResultSet, error) {
	dept, err := departmentKey(p)
	if err != nil {
		return models.ResultSet{}, err
	}
	agg, err := s.AverageSalary(ctx, dept)
	if err != nil {
		return models.ResultSet{}, err
	}
	return models.ResultSet{Aggregate: &agg}, nil
}
