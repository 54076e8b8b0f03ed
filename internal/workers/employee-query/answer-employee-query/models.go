// internal/workers/employee-query/answer-employee-query/models.go
package answeremployeequery

type Input struct {
	Query     string `json:"query"`
	RequestID string `json:"requestId,omitempty"`
}

type Output struct {
	RequestID string                 `json:"requestId"`
	Intent    string                 `json:"intent"`
	Params    map[string]interface{} `json:"params"`
	Response  string                 `json:"response"`
	Exit      bool                   `json:"exit"`
	ErrorCode string                 `json:"errorCode,omitempty"`
	RowCount  int                    `json:"rowCount"`
}
