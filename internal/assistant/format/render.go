package format

import (
	"fmt"
	"strings"

	"employee-query-workers/internal/models"
)

// Fixed answers.
const (
	Unknown = "I don't understand that query. Type 'help' for available commands."
	Goodbye = "Goodbye!"
)

var helpLines = []string{
	"Available commands:",
	"- Department employees: 'show sales department'",
	"- All managers: 'list all managers'",
	"- Department manager: 'who is the engineering manager'",
	"- Hire dates: 'hired after 2021-01-01' or 'hired before March 1 2020'",
	"- Salary filters: 'salary above 100000' or 'salary below 50000'",
	"- Average salary: 'average salary' or 'average salary in sales department'",
	"- 'help' shows this message, 'exit' quits.",
}

// Help lists every supported query category with example phrasings.
func Help() string {
	return strings.Join(helpLines, "\n")
}

// Render produces the answer for a classified query and the rows fetched for it.
func Render(parsed models.ParsedIntent, rs models.ResultSet) string {
	p := parsed.Params
	switch parsed.Intent {
	case models.IntentHelp:
		return Help()
	case models.IntentExit:
		return Goodbye
	case models.IntentDepartmentList:
		return EmployeeList(rs.Employees, p.Department)
	case models.IntentManagerList:
		return ManagerList(rs.Managers)
	case models.IntentManagerOfDepartment:
		return DepartmentManagers(rs.DepartmentManagers, p.Department)
	case models.IntentHireDateFilter:
		return HireDateResults(rs.HireDates, p.DateText, p.Comparison)
	case models.IntentSalaryFilter:
		return SalaryResults(rs.Salaries, p.Amount, p.Comparison)
	case models.IntentAverageSalaryOverall:
		return AverageSalary(aggregateOf(rs), "")
	case models.IntentAverageSalaryByDepartment:
		return AverageSalary(aggregateOf(rs), p.Department)
	default:
		return Unknown
	}
}

func aggregateOf(rs models.ResultSet) models.SalaryAggregate {
	if rs.Aggregate == nil {
		return models.SalaryAggregate{}
	}
	return *rs.Aggregate
}

// EmployeeList renders the employees of one department.
func EmployeeList(rows []models.DepartmentEmployeeRow, department string) string {
	if len(rows) == 0 {
		return fmt.Sprintf("No employees found in %s department.", department)
	}
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, fmt.Sprintf("Employees in %s department:", TitleCase(department)))
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("- %s %s (Salary: %s, Hired: %s)",
			r.FirstName, r.LastName, Currency(r.Salary), Date(r.HireDate)))
	}
	return strings.Join(lines, "\n")
}

// ManagerList renders every manager grouped under a heading per department. Rows are expected
// ordered by department; a heading is emitted whenever the department changes.
func ManagerList(rows []models.ManagerRow) string {
	if len(rows) == 0 {
		return "No managers found."
	}
	lines := []string{"Company Managers:"}
	current, started := "", false
	for _, r := range rows {
		if !started || r.Department != current {
			current, started = r.Department, true
			lines = append(lines, "", fmt.Sprintf("%s Department:", TitleCase(current)))
		}
		lines = append(lines, fmt.Sprintf("- %s %s", r.FirstName, r.LastName))
	}
	return strings.Join(lines, "\n")
}

// DepartmentManagers names every manager found for department.
func DepartmentManagers(rows []models.DepartmentManagerRow, department string) string {
	if len(rows) == 0 {
		return fmt.Sprintf("No manager found for %s department.", department)
	}
	names := make([]string, 0, len(rows))
	for _, r := range rows {
		names = append(names, r.FirstName+" "+r.LastName)
	}
	return fmt.Sprintf("Manager of %s department: %s", TitleCase(department), strings.Join(names, ", "))
}

// HireDateResults renders employees hired before or after dateText.
func HireDateResults(rows []models.HireDateRow, dateText string, cmp models.Comparison) string {
	word := cmp.DateWord()
	if len(rows) == 0 {
		return fmt.Sprintf("No employees found hired %s %s.", word, dateText)
	}
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, fmt.Sprintf("Employees hired %s %s:", word, dateText))
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("- %s %s (%s, Hired: %s)",
			r.FirstName, r.LastName, TitleCase(r.Department), Date(r.HireDate)))
	}
	return strings.Join(lines, "\n")
}

// SalaryResults renders employees earning above or below amount.
func SalaryResults(rows []models.SalaryRow, amount int64, cmp models.Comparison) string {
	word := cmp.SalaryWord()
	if len(rows) == 0 {
		return fmt.Sprintf("No employees found with salary %s %s.", word, Currency(amount))
	}
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, fmt.Sprintf("Employees with salary %s %s:", word, Currency(amount)))
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("- %s %s (%s, Salary: %s)",
			r.FirstName, r.LastName, TitleCase(r.Department), Currency(r.Salary)))
	}
	return strings.Join(lines, "\n")
}

// AverageSalary renders a company-wide average when department is empty and a per-department
// one otherwise. A zero count means there was nothing to average.
func AverageSalary(agg models.SalaryAggregate, department string) string {
	if agg.Count == 0 {
		if department != "" {
			return fmt.Sprintf("No salary data available for %s department.", TitleCase(department))
		}
		return "No salary data available in the database."
	}
	if department != "" {
		return fmt.Sprintf("Average salary in %s department (%d employees): %s",
			TitleCase(department), agg.Count, Currency(agg.Average))
	}
	return fmt.Sprintf("Company-wide average salary (%d employees): %s", agg.Count, Currency(agg.Average))
}
