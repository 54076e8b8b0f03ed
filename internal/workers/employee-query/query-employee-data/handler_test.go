package queryemployeedata

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"employee-query-workers/internal/assistant/store"
	"employee-query-workers/internal/common/config"
	apperrors "employee-query-workers/internal/common/errors"
	"employee-query-workers/internal/common/logger"
	"employee-query-workers/internal/models"
	"employee-query-workers/pkg/registry"
)

// ==========================
// Test Helper Functions
// ==========================

func setupTest(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	reg, err := registry.Default()
	require.NoError(t, err)
	activity, ok := reg.Find(TaskType)
	require.True(t, ok)

	cfg := LoadConfig(config.WorkerConfig{Timeout: 2000}, config.AssistantConfig{QueryTimeoutMS: 1000}, activity)
	return NewHandler(cfg, store.NewPostgresStore(db), logger.NewTestLogger(t)), mock
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_SalaryFilter(t *testing.T) {
	h, mock := setupTest(t)

	rows := sqlmock.NewRows([]string{"first_name", "last_name", "department", "salary"}).
		AddRow("Grace", "Hopper", "engineering", 150000).
		AddRow("Mary", "Barra", "sales", 120000)
	mock.ExpectQuery(`WHERE salary > \$1`).WithArgs(int64(100000)).WillReturnRows(rows)

	out, err := h.Execute(context.Background(), &Input{
		Intent: "salary-filter",
		Params: models.Params{Comparison: models.ComparisonGreater, Amount: 100000},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, out.RowCount)
	assert.Equal(t, models.IntentSalaryFilter, out.ResultSet.Intent)
	assert.Equal(t, "Grace", out.ResultSet.Salaries[0].FirstName)
	assert.GreaterOrEqual(t, out.QueryExecutionTime, int64(0))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_AverageOverall(t *testing.T) {
	h, mock := setupTest(t)

	mock.ExpectQuery(`SELECT COALESCE\(AVG\(salary\), 0\), COUNT\(\*\) FROM employees`).
		WillReturnRows(sqlmock.NewRows([]string{"avg", "count"}).AddRow(85000.5, 4))

	out, err := h.Execute(context.Background(), &Input{Intent: "average-salary-overall"})
	require.NoError(t, err)
	assert.Equal(t, 1, out.RowCount)
	require.NotNil(t, out.ResultSet.Aggregate)
	assert.Equal(t, int64(4), out.ResultSet.Aggregate.Count)
}

func TestHandler_Execute_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    *Input
		mock     func(mock sqlmock.Sqlmock)
		sentinel error
	}{
		{
			name:     "nil input",
			input:    nil,
			sentinel: apperrors.ErrInvalidInput,
		},
		{
			name:     "unknown intent",
			input:    &Input{Intent: "weather"},
			sentinel: apperrors.ErrInvalidInput,
		},
		{
			name:     "intent without data",
			input:    &Input{Intent: "help"},
			sentinel: apperrors.ErrUnsupportedIntent,
		},
		{
			name:     "missing department",
			input:    &Input{Intent: "department-list"},
			sentinel: apperrors.ErrInvalidInput,
		},
		{
			name:  "storage failure",
			input: &Input{Intent: "manager-list"},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM employees`).WillReturnError(sql.ErrConnDone)
			},
			sentinel: apperrors.ErrStorage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, mock := setupTest(t)
			if tt.mock != nil {
				tt.mock(mock)
			}
			_, err := h.Execute(context.Background(), tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.sentinel), "unexpected error %v", err)
		})
	}
}

func TestHandler_Decode(t *testing.T) {
	h, _ := setupTest(t)

	input, err := h.Decode(`{"intent": "hire-date-filter", "params": {"comparison": ">", "date": "2021-01-01", "dateText": "2021-01-01"}}`)
	require.NoError(t, err)
	assert.Equal(t, models.ComparisonGreater, input.Params.Comparison)
	assert.Equal(t, "2021-01-01", input.Params.Date)

	for _, vars := range []string{`{}`, `{"intent": "help"}`, `{"intent": "salary-filter", "params": "x"}`} {
		_, err := h.Decode(vars)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidInput), vars)
	}
}

func TestLoadConfig_QueryTimeoutCappedByJobTimeout(t *testing.T) {
	cfg := LoadConfig(config.WorkerConfig{Timeout: 1000}, config.AssistantConfig{QueryTimeoutMS: 5000}, registry.Activity{})
	assert.Equal(t, time.Second, cfg.QueryTimeout)

	cfg = LoadConfig(config.WorkerConfig{}, config.AssistantConfig{}, registry.Activity{})
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 5*time.Second, cfg.QueryTimeout)
}
