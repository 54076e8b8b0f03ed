// Package errors provides the error taxonomy shared by the assistant, the shell and the job workers.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Extraction failures. Message carries the user-facing sentence.
	ErrCodeMissingParameter ErrorCode = "MISSING_PARAMETER"
	ErrCodeInvalidDate      ErrorCode = "INVALID_DATE"
	ErrCodeInvalidAmount    ErrorCode = "INVALID_AMOUNT"

	// Storage collaborator failures.
	ErrCodeStorage      ErrorCode = "STORAGE_ERROR"
	ErrCodeQueryTimeout ErrorCode = "QUERY_TIMEOUT"

	// Worker input failures.
	ErrCodeInvalidInput      ErrorCode = "INVALID_INPUT"
	ErrCodeUnsupportedIntent ErrorCode = "UNSUPPORTED_INTENT"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// User-facing sentences. Storage details are never exposed to the user.
const (
	MsgMissingDepartment      = "Please specify a department name."
	MsgInvalidDepartment      = "Please specify a valid department name."
	MsgInvalidDate            = "Please provide a valid date format (e.g., YYYY-MM-DD)."
	MsgInvalidAmount          = "Please specify a valid salary amount."
	MsgStorageFailure         = "An error occurred while processing your query. Please try again."
	MsgQueryTimeout           = "The query took too long to complete. Please try again."
	MsgInvalidInput           = "The request could not be understood."
	MsgUnsupportedIntentQuery = "That kind of question cannot be answered from the employee data."
)

// Sentinels for errors.Is matching against a StandardError of the same code.
var (
	ErrMissingParameter  = stderrors.New("missing parameter")
	ErrInvalidDate       = stderrors.New("invalid date")
	ErrInvalidAmount     = stderrors.New("invalid amount")
	ErrStorage           = stderrors.New("storage error")
	ErrQueryTimeout      = stderrors.New("query timeout")
	ErrInvalidInput      = stderrors.New("invalid input")
	ErrUnsupportedIntent = stderrors.New("unsupported intent")
)

var sentinelByCode = map[ErrorCode]error{
	ErrCodeMissingParameter:  ErrMissingParameter,
	ErrCodeInvalidDate:       ErrInvalidDate,
	ErrCodeInvalidAmount:     ErrInvalidAmount,
	ErrCodeStorage:           ErrStorage,
	ErrCodeQueryTimeout:      ErrQueryTimeout,
	ErrCodeInvalidInput:      ErrInvalidInput,
	ErrCodeUnsupportedIntent: ErrUnsupportedIntent,
}

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause, if any.
func (e *StandardError) Unwrap() error {
	return e.cause
}

// Is reports whether target is the sentinel registered for e.Code.
func (e *StandardError) Is(target error) bool {
	sentinel, ok := sentinelByCode[e.Code]
	return ok && sentinel == target
}

// UserMessage returns the sentence that may be shown to the user.
func (e *StandardError) UserMessage() string {
	return e.Message
}

// AsStandardError extracts a StandardError from err's chain.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewMissingParameterError reports a required token that could not be located in the query.
func NewMissingParameterError(param, message string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMissingParameter,
		Message:   message,
		Details:   fmt.Sprintf("parameter: %s", param),
		Retryable: false,
		Metadata:  map[string]interface{}{"parameter": param},
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidDateError reports date text that is present but unparsable.
func NewInvalidDateError(dateText string, cause error) *StandardError {
	details := fmt.Sprintf("dateText: %q", dateText)
	if cause != nil {
		details = fmt.Sprintf("%s, error: %s", details, cause.Error())
	}
	return &StandardError{
		Code:      ErrCodeInvalidDate,
		Message:   MsgInvalidDate,
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// NewInvalidAmountError reports a salary query without a usable number.
func NewInvalidAmountError(digits string, cause error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidAmount,
		Message:   MsgInvalidAmount,
		Details:   fmt.Sprintf("digits: %q", digits),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// NewStorageError wraps a failed fetch. The message is generic on purpose; details stay in logs.
func NewStorageError(queryType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStorage,
		Message:   MsgStorageFailure,
		Details:   fmt.Sprintf("queryType: %s, error: %v", queryType, err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewQueryTimeoutError reports a fetch that exceeded its deadline.
func NewQueryTimeoutError(queryType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryTimeout,
		Message:   MsgQueryTimeout,
		Details:   fmt.Sprintf("queryType: %s", queryType),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewInvalidInputError reports job variables that fail schema validation or decoding.
func NewInvalidInputError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidInput,
		Message:   MsgInvalidInput,
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnsupportedIntentError reports an intent that has no data query behind it.
func NewUnsupportedIntentError(intent string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnsupportedIntent,
		Message:   MsgUnsupportedIntentQuery,
		Details:   fmt.Sprintf("intent: %s", intent),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewExternalServiceError wraps a failure of an infrastructure dependency (zeebe, redis, ...).
func NewExternalServiceError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "EXTERNAL_SERVICE_ERROR",
		Message:   fmt.Sprintf("External service '%s' error", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewTimeoutError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "TIMEOUT_ERROR",
		Message:   fmt.Sprintf("Service '%s' timeout", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewResourceNotFoundError(service, details string) *StandardError {
	return &StandardError{
		Code:      "RESOURCE_NOT_FOUND",
		Message:   fmt.Sprintf("Resource not found in %s", service),
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewAuthenticationError(details string) *StandardError {
	return &StandardError{
		Code:      "AUTHENTICATION_ERROR",
		Message:   "Authentication failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. BPMN mapping helpers
// ==========================

var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeMissingParameter:  "MISSING_PARAMETER",
	ErrCodeInvalidDate:       "INVALID_DATE",
	ErrCodeInvalidAmount:     "INVALID_AMOUNT",
	ErrCodeStorage:           "STORAGE_ERROR",
	ErrCodeQueryTimeout:      "QUERY_TIMEOUT",
	ErrCodeInvalidInput:      "INVALID_INPUT",
	ErrCodeUnsupportedIntent: "UNSUPPORTED_INTENT",
}

// GetRetryCount returns how many retries a job failing with code should get.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeStorage, "EXTERNAL_SERVICE_ERROR":
		return 3
	case ErrCodeQueryTimeout, "TIMEOUT_ERROR":
		return 2
	default:
		return 0 // business errors: no retry
	}
}

func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// GetErrorCategory groups codes for log dashboards.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case code == ErrCodeMissingParameter || code == ErrCodeInvalidDate || code == ErrCodeInvalidAmount:
		return "EXTRACTION"
	case strings.Contains(codeStr, "STORAGE") || strings.Contains(codeStr, "QUERY"):
		return "DATABASE"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "UNSUPPORTED"):
		return "VALIDATION"
	case strings.Contains(codeStr, "EXTERNAL") || strings.Contains(codeStr, "TIMEOUT"):
		return "INFRASTRUCTURE"
	default:
		return "INTERNAL"
	}
}
