package parsequeryintent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"employee-query-workers/internal/common/config"
	apperrors "employee-query-workers/internal/common/errors"
	"employee-query-workers/internal/common/logger"
	"employee-query-workers/pkg/registry"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestHandler(t *testing.T) *Handler {
	reg, err := registry.Default()
	require.NoError(t, err)
	activity, ok := reg.Find(TaskType)
	require.True(t, ok)

	cfg := LoadConfig(config.WorkerConfig{Timeout: 1000}, activity)
	return NewHandler(cfg, logger.NewZapAdapter(zaptest.NewLogger(t)))
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		intent    string
		params    map[string]interface{}
		errorCode string
		message   string
	}{
		{
			name:   "salary filter",
			query:  "salary above 100000",
			intent: "salary-filter",
			params: map[string]interface{}{"comparison": ">", "amount": int64(100000)},
		},
		{
			name:   "hire date filter",
			query:  "hired before March 1 2020",
			intent: "hire-date-filter",
			params: map[string]interface{}{"comparison": "<", "date": "2020-03-01", "dateText": "march 1 2020"},
		},
		{
			name:   "average by department",
			query:  "average salary in sales department",
			intent: "average-salary-by-department",
			params: map[string]interface{}{"department": "sales"},
		},
		{
			name:   "unknown",
			query:  "what is the weather",
			intent: "unknown",
			params: map[string]interface{}{},
		},
		{
			name:      "extraction failure completes with error code",
			query:     "department show",
			intent:    "department-list",
			params:    map[string]interface{}{},
			errorCode: "MISSING_PARAMETER",
			message:   "Please specify a department name.",
		},
		{
			name:      "invalid date",
			query:     "hired after someday soon",
			intent:    "hire-date-filter",
			params:    map[string]interface{}{"comparison": ">", "dateText": "someday soon"},
			errorCode: "INVALID_DATE",
			message:   "Please provide a valid date format (e.g., YYYY-MM-DD).",
		},
	}

	h := createTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := h.Execute(context.Background(), &Input{Query: tt.query})
			require.NoError(t, err)
			assert.Equal(t, tt.intent, out.Intent)
			assert.Equal(t, tt.params, out.Params)
			assert.Equal(t, tt.errorCode, out.ErrorCode)
			assert.Equal(t, tt.message, out.Message)
		})
	}
}

func TestHandler_Execute_NilInput(t *testing.T) {
	_, err := createTestHandler(t).Execute(context.Background(), nil)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestHandler_Decode(t *testing.T) {
	h := createTestHandler(t)

	input, err := h.Decode(`{"query": "list all managers", "other": true}`)
	require.NoError(t, err)
	assert.Equal(t, "list all managers", input.Query)

	for _, vars := range []string{`{}`, `{"query": 5}`, `not json`} {
		_, err := h.Decode(vars)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidInput), vars)
	}
}

func TestLoadConfig_DefaultTimeout(t *testing.T) {
	cfg := LoadConfig(config.WorkerConfig{}, registry.Activity{})
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Nil(t, cfg.InputSchema)
}
