// internal/workers/employee-query/query-employee-data/models.go
package queryemployeedata

import "employee-query-workers/internal/models"

type Input struct {
	Intent string        `json:"intent"`
	Params models.Params `json:"params"`
}

type Output struct {
	ResultSet          models.ResultSet `json:"resultSet"`
	RowCount           int              `json:"rowCount"`
	QueryExecutionTime int64            `json:"queryExecutionTime"` // milliseconds
}
