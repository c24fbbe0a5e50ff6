// Package errors provides standardized error handling for BPMN workflow integration.
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
	ErrCodeInvalidAuditInput   ErrorCode = "INVALID_AUDIT_INPUT"
	ErrCodeUnknownCaseType     ErrorCode = "UNKNOWN_CASE_TYPE"
	ErrCodeArchiveReadFailed   ErrorCode = "ARCHIVE_READ_FAILED"
	ErrCodeAuditParseError     ErrorCode = "AUDIT_PARSE_ERROR"
	ErrCodeAuditSchemaMismatch ErrorCode = "AUDIT_SCHEMA_MISMATCH"

	ErrCodeEngineInvocationFailed ErrorCode = "ENGINE_INVOCATION_FAILED"
	ErrCodeEngineTimeout          ErrorCode = "ENGINE_TIMEOUT"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeReportPersistFailed      ErrorCode = "REPORT_PERSIST_FAILED"
	ErrCodeReportNotFound           ErrorCode = "REPORT_NOT_FOUND"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeBrokerUnavailable ErrorCode = "BROKER_UNAVAILABLE"
	ErrCodeBrokerRejected    ErrorCode = "BROKER_REJECTED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
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

type codeInfo struct {
	message   string
	retryable bool
	retries   int
}

// registry lists every code the workers throw. Retry counts follow the
// process model: engine timeouts are terminal, transport failures retry.
var registry = map[ErrorCode]codeInfo{
	ErrCodeInvalidAuditInput:        {message: "Audit input failed validation"},
	ErrCodeUnknownCaseType:          {message: "Unsupported case type"},
	ErrCodeArchiveReadFailed:        {message: "Uploaded archive could not be read"},
	ErrCodeAuditParseError:          {message: "Engine response is not a JSON object"},
	ErrCodeAuditSchemaMismatch:      {message: "Engine response does not match the case type schema"},
	ErrCodeEngineInvocationFailed:   {message: "Audit engine call failed", retryable: true, retries: 2},
	ErrCodeEngineTimeout:            {message: "Audit engine timeout"},
	ErrCodeDatabaseConnectionFailed: {message: "Database connection error", retryable: true, retries: 3},
	ErrCodeReportPersistFailed:      {message: "Audit report could not be stored", retryable: true, retries: 3},
	ErrCodeReportNotFound:           {message: "Audit report not found"},
	ErrCodeNotificationSendFailed:   {message: "Notification delivery failed", retryable: true, retries: 3},
	ErrCodeBrokerUnavailable:        {message: "Zeebe gateway unavailable", retryable: true, retries: 3},
	ErrCodeBrokerRejected:           {message: "Zeebe rejected the command"},
}

// New builds a StandardError for a registered code.
func New(code ErrorCode, details string) *StandardError {
	info, ok := registry[code]
	if !ok {
		info = codeInfo{message: "Unexpected error"}
	}
	return &StandardError{
		Code:      code,
		Message:   info.message,
		Details:   details,
		Retryable: info.retryable,
		Timestamp: time.Now().UTC(),
	}
}

// NewEngineTimeoutError creates a non-retryable engine timeout error.
func NewEngineTimeoutError(caseType string) *StandardError {
	return New(ErrCodeEngineTimeout, fmt.Sprintf("caseType: %s", caseType))
}

// NewReportPersistFailedError creates a retryable report storage error.
func NewReportPersistFailedError(auditID string, err error) *StandardError {
	return New(ErrCodeReportPersistFailed, fmt.Sprintf("auditId: %s, error: %s", auditID, err.Error()))
}

// NewNotificationSendFailedError creates a retryable notification send error.
func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return New(ErrCodeNotificationSendFailed, fmt.Sprintf("channel: %s, error: %s", channel, err.Error()))
}

// FromError converts any error into a StandardError. Sentinels created with
// errors.New("<CODE>") anywhere in the chain resolve to their registered code.
func FromError(err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	for e := err; e != nil; e = stderrors.Unwrap(e) {
		code := ErrorCode(e.Error())
		if _, ok := registry[code]; ok {
			return New(code, err.Error())
		}
	}
	return &StandardError{
		Code:      "INTERNAL_ERROR",
		Message:   "Unexpected error",
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// GetRetryCount returns the recommended retry count for a code.
func GetRetryCount(code ErrorCode) int {
	return registry[code].retries
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
// BPMN codes are identical to the internal codes.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      string(stdErr.Code),
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

// ==========================
// 5. Utility Functions
// ==========================

// IsKnownErrorCode reports whether code has a registry entry.
func IsKnownErrorCode(code ErrorCode) bool {
	_, ok := registry[code]
	return ok
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "ENGINE"):
		return "ENGINE"
	case strings.HasPrefix(codeStr, "AUDIT"):
		return "NORMALIZATION"
	case strings.Contains(codeStr, "DATABASE") || strings.HasPrefix(codeStr, "REPORT"):
		return "DATABASE"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.HasPrefix(codeStr, "BROKER"):
		return "BROKER"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "UNKNOWN") || strings.Contains(codeStr, "ARCHIVE"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
