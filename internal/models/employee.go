// internal/models/employee.go
package models

// DepartmentEmployeeRow is one line of a department listing.
type DepartmentEmployeeRow struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Salary    int64  `json:"salary"`
	HireDate  string `json:"hireDate"`
}

// ManagerRow is one line of the company-wide manager listing.
type ManagerRow struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Department string `json:"department"`
}

// DepartmentManagerRow names a manager of a single department.
type DepartmentManagerRow struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// HireDateRow is one line of a hire date filter.
type HireDateRow struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Department string `json:"department"`
	HireDate   string `json:"hireDate"`
}

// SalaryRow is one line of a salary filter.
type SalaryRow struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Department string `json:"department"`
	Salary     int64  `json:"salary"`
}

// SalaryAggregate is the mean salary and head count over a set of employees.
// Count distinguishes "no employees" from a legitimate zero average.
type SalaryAggregate struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

// ResultSet carries the rows fetched for one intent. Only the field matching Intent is set.
type ResultSet struct {
	Intent             Intent                  `json:"intent"`
	Employees          []DepartmentEmployeeRow `json:"employees,omitempty"`
	Managers           []ManagerRow            `json:"managers,omitempty"`
	DepartmentManagers []DepartmentManagerRow  `json:"departmentManagers,omitempty"`
	HireDates          []HireDateRow           `json:"hireDates,omitempty"`
	Salaries           []SalaryRow             `json:"salaries,omitempty"`
	Aggregate          *SalaryAggregate        `json:"aggregate,omitempty"`
}

// RowCount returns the number of rows held for the result's intent.
// Aggregates count as a single row.
func (r ResultSet) RowCount() int {
	switch r.Intent {
	case IntentDepartmentList:
		return len(r.Employees)
	case IntentManagerList:
		return len(r.Managers)
	case IntentManagerOfDepartment:
		return len(r.DepartmentManagers)
	case IntentHireDateFilter:
		return len(r.HireDates)
	case IntentSalaryFilter:
		return len(r.Salaries)
	case IntentAverageSalaryOverall, IntentAverageSalaryByDepartment:
		if r.Aggregate != nil {
			return 1
		}
	}
	return 0
}
