package format

import (
	"database/sql"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"employee-query-workers/internal/models"
)

func TestCurrency(t *testing.T) {
	amount := int64(85000)
	var nilPtr *float64

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"float with grouping", 1234567.5, "$1,234,567.50"},
		{"int", 50000, "$50,000.00"},
		{"int64 pointer", &amount, "$85,000.00"},
		{"small value", 12.5, "$12.50"},
		{"float32", float32(0.25), "$0.25"},
		{"zero", 0, "$0.00"},
		{"nil", nil, "$0.00"},
		{"nil pointer", nilPtr, "$0.00"},
		{"string", "100", "$0.00"},
		{"NaN", math.NaN(), "$0.00"},
		{"infinity", math.Inf(1), "$0.00"},
		{"valid null float", sql.NullFloat64{Float64: 99.5, Valid: true}, "$99.50"},
		{"invalid null float", sql.NullFloat64{}, "$0.00"},
		{"struct", struct{}{}, "$0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Currency(tt.in))
		})
	}
}

func TestDate(t *testing.T) {
	assert.Equal(t, "January 05, 2021", Date("2021-01-05"))
	assert.Equal(t, "December 31, 1999", Date("1999-12-31"))
	assert.Equal(t, "not-a-date", Date("not-a-date"))
	assert.Equal(t, "2021-1-5", Date("2021-1-5"))
	assert.Equal(t, "", Date(""))
}

func TestTitleCaseAndError(t *testing.T) {
	assert.Equal(t, "Sales", TitleCase("sales"))
	assert.Equal(t, "Human Resources", TitleCase("human RESOURCES"))
	assert.Equal(t, "Error: boom", Error("boom"))
}

func TestEmployeeList(t *testing.T) {
	rows := []models.DepartmentEmployeeRow{
		{FirstName: "Ada", LastName: "Byron", Salary: 120000, HireDate: "2019-03-04"},
		{FirstName: "Alan", LastName: "Turing", Salary: 95000, HireDate: "2020-11-30"},
	}

	want := "Employees in Engineering department:\n" +
		"- Ada Byron (Salary: $120,000.00, Hired: March 04, 2019)\n" +
		"- Alan Turing (Salary: $95,000.00, Hired: November 30, 2020)"
	assert.Equal(t, want, EmployeeList(rows, "engineering"))

	assert.Equal(t, "No employees found in sales department.", EmployeeList(nil, "sales"))
}

func TestManagerList_GroupsConsecutiveDepartments(t *testing.T) {
	rows := []models.ManagerRow{
		{FirstName: "Grace", LastName: "Hopper", Department: "engineering"},
		{FirstName: "Linus", LastName: "Torvalds", Department: "engineering"},
		{FirstName: "Mary", LastName: "Barra", Department: "sales"},
	}

	want := strings.Join([]string{
		"Company Managers:",
		"",
		"Engineering Department:",
		"- Grace Hopper",
		"- Linus Torvalds",
		"",
		"Sales Department:",
		"- Mary Barra",
	}, "\n")
	got := ManagerList(rows)
	assert.Equal(t, want, got)
	assert.Equal(t, 2, strings.Count(got, "Department:"))

	assert.Equal(t, "No managers found.", ManagerList(nil))
}

func TestManagerList_EmptyDepartmentStillGetsHeading(t *testing.T) {
	got := ManagerList([]models.ManagerRow{{FirstName: "A", LastName: "B"}})
	assert.Equal(t, "Company Managers:\n\n Department:\n- A B", got)
}

func TestDepartmentManagers(t *testing.T) {
	rows := []models.DepartmentManagerRow{
		{FirstName: "Mary", LastName: "Barra"},
		{FirstName: "Sam", LastName: "Walton"},
	}
	assert.Equal(t, "Manager of Sales department: Mary Barra, Sam Walton", DepartmentManagers(rows, "sales"))
	assert.Equal(t, "No manager found for hr department.", DepartmentManagers(nil, "hr"))
}

func TestHireDateResults(t *testing.T) {
	rows := []models.HireDateRow{
		{FirstName: "Ada", LastName: "Byron", Department: "engineering", HireDate: "2021-06-01"},
	}
	want := "Employees hired after 2021-01-01:\n- Ada Byron (Engineering, Hired: June 01, 2021)"
	assert.Equal(t, want, HireDateResults(rows, "2021-01-01", models.ComparisonGreater))

	assert.Equal(t, "No employees found hired before march 1 2020.",
		HireDateResults(nil, "march 1 2020", models.ComparisonLess))
}

func TestSalaryResults(t *testing.T) {
	rows := []models.SalaryRow{
		{FirstName: "Ada", LastName: "Byron", Department: "engineering", Salary: 150000},
		{FirstName: "Mary", LastName: "Barra", Department: "sales", Salary: 120000},
	}
	want := "Employees with salary above $100,000.00:\n" +
		"- Ada Byron (Engineering, Salary: $150,000.00)\n" +
		"- Mary Barra (Sales, Salary: $120,000.00)"
	assert.Equal(t, want, SalaryResults(rows, 100000, models.ComparisonGreater))

	assert.Equal(t, "No employees found with salary below $10,000.00.",
		SalaryResults(nil, 10000, models.ComparisonLess))
}

func TestAverageSalary(t *testing.T) {
	assert.Equal(t, "No salary data available in the database.",
		AverageSalary(models.SalaryAggregate{}, ""))
	assert.Equal(t, "No salary data available for Sales department.",
		AverageSalary(models.SalaryAggregate{}, "sales"))
	assert.Equal(t, "Company-wide average salary (4 employees): $82,500.00",
		AverageSalary(models.SalaryAggregate{Average: 82500, Count: 4}, ""))
	assert.Equal(t, "Average salary in Sales department (2 employees): $70,000.50",
		AverageSalary(models.SalaryAggregate{Average: 70000.5, Count: 2}, "sales"))
	// a zero average over real rows is still reported
	assert.Equal(t, "Company-wide average salary (1 employees): $0.00",
		AverageSalary(models.SalaryAggregate{Average: 0, Count: 1}, ""))
}

func TestRender(t *testing.T) {
	tests := []struct {
		name   string
		parsed models.ParsedIntent
		rs     models.ResultSet
		want   string
	}{
		{"help", models.ParsedIntent{Intent: models.IntentHelp}, models.ResultSet{}, Help()},
		{"exit", models.ParsedIntent{Intent: models.IntentExit}, models.ResultSet{}, "Goodbye!"},
		{"unknown", models.ParsedIntent{Intent: models.IntentUnknown}, models.ResultSet{}, Unknown},
		{
			"average without aggregate",
			models.ParsedIntent{Intent: models.IntentAverageSalaryOverall},
			models.ResultSet{Intent: models.IntentAverageSalaryOverall},
			"No salary data available in the database.",
		},
		{
			"department list",
			models.ParsedIntent{Intent: models.IntentDepartmentList, Params: models.Params{Department: "hr"}},
			models.ResultSet{Intent: models.IntentDepartmentList},
			"No employees found in hr department.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.parsed, tt.rs))
		})
	}
}

func TestHelp_MentionsEveryCategory(t *testing.T) {
	help := Help()
	for _, phrase := range []string{"department", "managers", "hired after", "salary above", "average salary", "exit"} {
		assert.Contains(t, help, phrase)
	}
	assert.False(t, strings.HasPrefix(help, "\n"))
	assert.False(t, strings.HasSuffix(help, "\n"))
}
