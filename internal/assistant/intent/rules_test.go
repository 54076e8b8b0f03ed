package intent

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "employee-query-workers/internal/common/errors"
	"employee-query-workers/internal/models"
)

func TestClassify_Success(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		intent models.Intent
		params models.Params
	}{
		{"help", "help", models.IntentHelp, models.Params{}},
		{"help with whitespace and case", "  HELP \n", models.IntentHelp, models.Params{}},
		{"exit", "exit", models.IntentExit, models.Params{}},
		{"department listing", "show sales department", models.IntentDepartmentList, models.Params{Department: "sales"}},
		{"department listing keeps extracted token", "Show me the Engineering department", models.IntentDepartmentList, models.Params{Department: "engineering"}},
		{"department listing token before keyword", "show department sales", models.IntentDepartmentList, models.Params{Department: "show"}},
		{"list all managers", "list all managers", models.IntentManagerList, models.Params{}},
		{"manager of department", "who is the sales manager", models.IntentManagerOfDepartment, models.Params{Department: "sales"}},
		{"manager of department plural", "marketing managers", models.IntentManagerOfDepartment, models.Params{Department: "marketing"}},
		{"hired after iso", "hired after 2021-01-01", models.IntentHireDateFilter, models.Params{Comparison: ">", Date: "2021-01-01", DateText: "2021-01-01"}},
		{"hired before human date", "hired before March 1 2020", models.IntentHireDateFilter, models.Params{Comparison: "<", Date: "2020-03-01", DateText: "march 1 2020"}},
		{"hired after with comma", "who was hired after jan 5, 2019", models.IntentHireDateFilter, models.Params{Comparison: ">", Date: "2019-01-05", DateText: "jan 5, 2019"}},
		{"salary above", "salary above 100000", models.IntentSalaryFilter, models.Params{Comparison: ">", Amount: 100000}},
		{"salary over", "employees with salary over 75000", models.IntentSalaryFilter, models.Params{Comparison: ">", Amount: 75000}},
		{"salary below", "salary below 50000", models.IntentSalaryFilter, models.Params{Comparison: "<", Amount: 50000}},
		{"salary digits concatenated across query", "salary under 50,000", models.IntentSalaryFilter, models.Params{Comparison: "<", Amount: 50000}},
		{"average by department", "average salary in sales department", models.IntentAverageSalaryByDepartment, models.Params{Department: "sales"}},
		{"average overall", "average salary", models.IntentAverageSalaryOverall, models.Params{}},
		{"average without salary word", "what is the average pay", models.IntentAverageSalaryOverall, models.Params{}},
		{"unknown", "what is the weather", models.IntentUnknown, models.Params{}},
		{"hired without supported phrasing", "who got hired recently", models.IntentUnknown, models.Params{}},
		{"after outside the hired after phrase", "employees hired before the merger after 2020", models.IntentUnknown, models.Params{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := Classify(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.intent, parsed.Intent)
			assert.Equal(t, tt.params, parsed.Params)
		})
	}
}

func TestClassify_ExtractionErrors(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		intent   models.Intent
		sentinel error
		message  string
	}{
		{"department is first token", "department show", models.IntentDepartmentList, apperrors.ErrMissingParameter, apperrors.MsgMissingDepartment},
		{"department not a standalone token", "show departments", models.IntentDepartmentList, apperrors.ErrMissingParameter, apperrors.MsgInvalidDepartment},
		{"bare manager", "manager", models.IntentManagerOfDepartment, apperrors.ErrMissingParameter, apperrors.MsgMissingDepartment},
		{"unparsable date", "hired after someday soon", models.IntentHireDateFilter, apperrors.ErrInvalidDate, apperrors.MsgInvalidDate},
		{"missing date", "hired before", models.IntentHireDateFilter, apperrors.ErrInvalidDate, apperrors.MsgInvalidDate},
		{"no digits", "salary above a lot", models.IntentSalaryFilter, apperrors.ErrInvalidAmount, apperrors.MsgInvalidAmount},
		{"digits overflow", "salary above 99999999999999999999999", models.IntentSalaryFilter, apperrors.ErrInvalidAmount, apperrors.MsgInvalidAmount},
		{"average department without name", "department average salary", models.IntentAverageSalaryByDepartment, apperrors.ErrMissingParameter, apperrors.MsgInvalidDepartment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := Classify(tt.query)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.sentinel), "unexpected error %v", err)
			assert.Equal(t, tt.intent, parsed.Intent)

			stdErr, ok := apperrors.AsStandardError(err)
			require.True(t, ok)
			assert.Equal(t, tt.message, stdErr.UserMessage())
		})
	}
}

func TestClassify_HireDateAfterWinsOverBefore(t *testing.T) {
	parsed, err := Classify("hired after someday but not before")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidDate))
	assert.Equal(t, models.IntentHireDateFilter, parsed.Intent)
	assert.Equal(t, models.ComparisonGreater, parsed.Params.Comparison)
	assert.Equal(t, "someday but not before", parsed.Params.DateText)
}

func TestClassify_PriorityOrder(t *testing.T) {
	tests := []struct {
		query string
		rule  string
	}{
		// average must win over salary
		{"average salary in engineering department", "average-salary"},
		// show + department must win over average and manager
		{"show average salary in sales department", "department-list"},
		{"show manager department", "department-list"},
		// manager wins over hired and salary
		{"managers hired after 2020-01-01", "manager"},
		{"sales manager salary", "manager"},
		// hired wins over average and salary
		{"average salary of people hired after 2020-01-01", "hire-date"},
		// exact keywords only
		{"help me", ""},
		{"exit now", ""},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.rule, MatchingRule(tt.query))
		})
	}
}

func TestRules_OrderIsStable(t *testing.T) {
	var names []string
	for _, r := range Rules() {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{
		"help", "exit", "department-list", "manager", "hire-date", "average-salary", "salary-filter",
	}, names)
}

func TestClassifyWith_FirstMatchWins(t *testing.T) {
	always := func(string) bool { return true }
	ruleList := []Rule{
		{Name: "first", Match: always, Extract: fixed(models.IntentHelp)},
		{Name: "second", Match: always, Extract: fixed(models.IntentExit)},
	}

	parsed, err := ClassifyWith(ruleList, "anything")
	require.NoError(t, err)
	assert.Equal(t, models.IntentHelp, parsed.Intent)

	parsed, err = ClassifyWith(nil, "anything")
	require.NoError(t, err)
	assert.Equal(t, models.IntentUnknown, parsed.Intent)
}

func TestClassify_Idempotent(t *testing.T) {
	queries := []string{
		"show sales department",
		"average salary in sales department",
		"hired before March 1 2020",
		"salary above 100000",
		"what is the weather",
	}
	for _, q := range queries {
		first, firstErr := Classify(q)
		second, secondErr := Classify(q)
		assert.Equal(t, first, second, q)
		assert.Equal(t, firstErr == nil, secondErr == nil, q)
	}
}

func TestLegacyTokenExtraction(t *testing.T) {
	token, pos := legacyTokenBeforeKeyword("show sales department now", "department")
	assert.Equal(t, "sales", token)
	assert.Equal(t, 2, pos)

	_, pos = legacyTokenBeforeKeyword("department sales", "department")
	assert.Equal(t, 0, pos)

	_, pos = legacyTokenBeforeKeyword("show departments", "department")
	assert.Equal(t, -1, pos)

	token, ok := legacyLastTokenBefore("the hr manager", "manager")
	assert.True(t, ok)
	assert.Equal(t, "hr", token)

	_, ok = legacyLastTokenBefore("   manager", "manager")
	assert.False(t, ok)

	text, ok := legacyTextAfter("hired after   2021-01-01  ", "hired after")
	assert.True(t, ok)
	assert.Equal(t, "2021-01-01", text)

	assert.Equal(t, "1202450", legacyDigits("q1 2024 salary 50"))
	assert.Equal(t, "", legacyDigits("no numbers"))
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"2021-01-01", "2021-01-01"},
		{"2021/03/15", "2021-03-15"},
		{"march 1 2020", "2020-03-01"},
		{"March 1, 2020", "2020-03-01"},
		{"1 march 2020", "2020-03-01"},
		{"03/01/2020", "2020-03-01"},
		{"2021-01-01?", "2021-01-01"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := ParseDate(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Format(DateLayout))
		})
	}

	_, err := ParseDate("   ")
	assert.Error(t, err)
	_, err = ParseDate("not a date at all")
	assert.Error(t, err)
}
