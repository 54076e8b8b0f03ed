// internal/models/query_types.go
package models

// Intent is the classified purpose of a query.
type Intent string

const (
	IntentDepartmentList            Intent = "department-list"
	IntentManagerList               Intent = "manager-list"
	IntentManagerOfDepartment       Intent = "manager-of-department"
	IntentHireDateFilter            Intent = "hire-date-filter"
	IntentSalaryFilter              Intent = "salary-filter"
	IntentAverageSalaryOverall      Intent = "average-salary-overall"
	IntentAverageSalaryByDepartment Intent = "average-salary-by-department"
	IntentHelp                      Intent = "help"
	IntentExit                      Intent = "exit"
	IntentUnknown                   Intent = "unknown"
)

var allIntents = []Intent{
	IntentDepartmentList,
	IntentManagerList,
	IntentManagerOfDepartment,
	IntentHireDateFilter,
	IntentSalaryFilter,
	IntentAverageSalaryOverall,
	IntentAverageSalaryByDepartment,
	IntentHelp,
	IntentExit,
	IntentUnknown,
}

// AllIntents returns every intent tag in declaration order.
func AllIntents() []Intent {
	out := make([]Intent, len(allIntents))
	copy(out, allIntents)
	return out
}

// Valid reports whether i is one of the known tags.
func (i Intent) Valid() bool {
	for _, known := range allIntents {
		if i == known {
			return true
		}
	}
	return false
}

// NeedsData reports whether answering i requires a fetch from the employee store.
func (i Intent) NeedsData() bool {
	switch i {
	case IntentDepartmentList, IntentManagerList, IntentManagerOfDepartment,
		IntentHireDateFilter, IntentSalaryFilter,
		IntentAverageSalaryOverall, IntentAverageSalaryByDepartment:
		return true
	}
	return false
}

// Comparison is the operator applied to a salary or hire date filter.
type Comparison string

const (
	ComparisonGreater Comparison = ">"
	ComparisonLess    Comparison = "<"
)

// Valid reports whether c is safe to splice into SQL.
func (c Comparison) Valid() bool {
	return c == ComparisonGreater || c == ComparisonLess
}

// SalaryWord returns the phrasing used in answers for a salary filter ("above"/"below").
func (c Comparison) SalaryWord() string {
	if c == ComparisonGreater {
		return "above"
	}
	return "below"
}

// DateWord returns the phrasing used in answers for a hire date filter ("after"/"before").
func (c Comparison) DateWord() string {
	if c == ComparisonGreater {
		return "after"
	}
	return "before"
}

// Params holds what the classifier extracted from the query text.
type Params struct {
	Department string     `json:"department,omitempty"`
	Comparison Comparison `json:"comparison,omitempty"`
	Amount     int64      `json:"amount,omitempty"`
	Date       string     `json:"date,omitempty"`     // YYYY-MM-DD
	DateText   string     `json:"dateText,omitempty"` // as typed by the user
}

// Map renders the non-empty parameters as a name -> value mapping.
func (p Params) Map() map[string]interface{} {
	out := make(map[string]interface{})
	if p.Department != "" {
		out["department"] = p.Department
	}
	if p.Comparison != "" {
		out["comparison"] = string(p.Comparison)
	}
	if p.Comparison != "" && p.Date == "" && p.DateText == "" {
		out["amount"] = p.Amount
	}
	if p.Date != "" {
		out["date"] = p.Date
	}
	if p.DateText != "" {
		out["dateText"] = p.DateText
	}
	return out
}

// ParsedIntent is the classifier output for one query.
type ParsedIntent struct {
	Intent Intent `json:"intent"`
	Params Params `json:"params"`
}
