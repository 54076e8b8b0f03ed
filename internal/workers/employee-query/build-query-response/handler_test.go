package buildqueryresponse

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"employee-query-workers/internal/assistant/format"
	"employee-query-workers/internal/common/config"
	apperrors "employee-query-workers/internal/common/errors"
	"employee-query-workers/internal/common/logger"
	"employee-query-workers/internal/models"
	"employee-query-workers/pkg/registry"
)

func createTestHandler(t *testing.T) *Handler {
	reg, err := registry.Default()
	require.NoError(t, err)
	activity, ok := reg.Find(TaskType)
	require.True(t, ok)
	return NewHandler(LoadConfig(config.WorkerConfig{}, activity), logger.NewZapAdapter(zaptest.NewLogger(t)))
}

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		name  string
		input *Input
		want  string
	}{
		{
			name:  "help",
			input: &Input{Intent: "help"},
			want:  format.Help(),
		},
		{
			name:  "exit",
			input: &Input{Intent: "exit"},
			want:  "Goodbye!",
		},
		{
			name:  "unknown",
			input: &Input{Intent: "unknown"},
			want:  format.Unknown,
		},
		{
			name: "department managers",
			input: &Input{
				Intent: "manager-of-department",
				Params: models.Params{Department: "sales"},
				ResultSet: models.ResultSet{
					Intent: models.IntentManagerOfDepartment,
					DepartmentManagers: []models.DepartmentManagerRow{
						{FirstName: "Mary", LastName: "Barra"},
					},
				},
			},
			want: format.DepartmentManagers([]models.DepartmentManagerRow{{FirstName: "Mary", LastName: "Barra"}}, "sales"),
		},
		{
			name: "average overall",
			input: &Input{
				Intent:    "average-salary-overall",
				ResultSet: models.ResultSet{Intent: models.IntentAverageSalaryOverall, Aggregate: &models.SalaryAggregate{Average: 82500, Count: 4}},
			},
			want: "Company-wide average salary (4 employees): $82,500.00",
		},
		{
			name:  "classifier message is answered verbatim",
			input: &Input{Intent: "department-list", ErrorCode: "MISSING_PARAMETER", Message: apperrors.MsgMissingDepartment},
			want:  apperrors.MsgMissingDepartment,
		},
	}

	h := createTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := h.Execute(context.Background(), tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Response)
		})
	}
}

func TestHandler_Execute_InvalidInput(t *testing.T) {
	h := createTestHandler(t)

	inputs := []*Input{
		nil,
		{Intent: "weather"},
		{Intent: "salary-filter", ResultSet: models.ResultSet{Intent: models.IntentManagerList}},
	}
	for _, in := range inputs {
		_, err := h.Execute(context.Background(), in)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
	}
}

func TestHandler_Decode_RoundTripsResultSet(t *testing.T) {
	h := createTestHandler(t)

	input, err := h.Decode(`{
		"intent": "salary-filter",
		"params": {"comparison": ">", "amount": 100000},
		"resultSet": {"intent": "salary-filter", "salaries": [{"firstName": "Grace", "lastName": "Hopper", "department": "engineering", "salary": 150000}]}
	}`)
	require.NoError(t, err)

	out, err := h.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.Contains(t, out.Response, "Grace Hopper")
	assert.Contains(t, out.Response, "$150,000.00")

	_, err = h.Decode(`{"params": {}}`)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}
