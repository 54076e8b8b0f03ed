// internal/workers/employee-query/build-query-response/models.go
package buildqueryresponse

import "employee-query-workers/internal/models"

// Input mirrors the outputs of parse-query-intent and query-employee-data.
// A non-empty Message from the classifier is answered verbatim.
type Input struct {
	Intent    string           `json:"intent"`
	Params    models.Params    `json:"params"`
	ResultSet models.ResultSet `json:"resultSet"`
	ErrorCode string           `json:"errorCode,omitempty"`
	Message   string           `json:"message,omitempty"`
}

type Output struct {
	Response string `json:"response"`
}
