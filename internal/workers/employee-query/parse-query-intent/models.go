// internal/workers/employee-query/parse-query-intent/models.go
package parsequeryintent

type Input struct {
	Query string `json:"query"`
}

// Output carries the classification. ErrorCode and Message are set when the intent was
// recognised but a parameter could not be extracted; the job still completes.
type Output struct {
	Intent    string                 `json:"intent"`
	Params    map[string]interface{} `json:"params"`
	ErrorCode string                 `json:"errorCode,omitempty"`
	Message   string                 `json:"message,omitempty"`
}
