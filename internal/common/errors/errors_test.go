package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
)

func TestFromError_ResolvesSentinelChain(t *testing.T) {
	sentinel := stderrors.New("ENGINE_TIMEOUT")
	err := fmt.Errorf("invoke: %w", fmt.Errorf("%w: context deadline exceeded", sentinel))

	stdErr := FromError(err)

	assert.Equal(t, ErrCodeEngineTimeout, stdErr.Code)
	assert.False(t, stdErr.Retryable)
	assert.Contains(t, stdErr.Details, "context deadline exceeded")
}

func TestFromError_PassesStandardErrorThrough(t *testing.T) {
	original := NewReportPersistFailedError("audit-1", stderrors.New("connection reset"))
	stdErr := FromError(fmt.Errorf("save: %w", original))

	assert.Same(t, original, stdErr)
	assert.True(t, stdErr.Retryable)
}

func TestFromError_Unknown(t *testing.T) {
	stdErr := FromError(stderrors.New("boom"))

	assert.Equal(t, ErrorCode("INTERNAL_ERROR"), stdErr.Code)
	assert.Equal(t, "boom", stdErr.Details)
	assert.False(t, stdErr.Retryable)
}

func TestConvertToBPMNError(t *testing.T) {
	tests := []struct {
		name        string
		err         *StandardError
		wantRetries int
	}{
		{"engine failure retries", New(ErrCodeEngineInvocationFailed, "502"), 2},
		{"engine timeout is terminal", NewEngineTimeoutError("Study Permit"), 0},
		{"persist failure retries", NewReportPersistFailedError("a", stderrors.New("x")), 3},
		{"parse error is terminal", New(ErrCodeAuditParseError, ""), 0},
		{"unknown case type is terminal", New(ErrCodeUnknownCaseType, "Refugee"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bpmnErr := ConvertToBPMNError(tt.err)
			assert.Equal(t, string(tt.err.Code), bpmnErr.Code)
			assert.Equal(t, tt.wantRetries, bpmnErr.Retries)

			vars := bpmnErr.ToErrorVariables()
			assert.Equal(t, string(tt.err.Code), vars["errorCode"])
			assert.Equal(t, string(tt.err.Code), vars["originalErrorCode"])
		})
	}
}

func TestRetriesLeft(t *testing.T) {
	bpmnErr := &BPMNError{Retries: 3}

	assert.Equal(t, int32(3), RetriesLeft(entities.Job{ActivatedJob: &pb.ActivatedJob{Retries: 5}}, bpmnErr))
	assert.Equal(t, int32(1), RetriesLeft(entities.Job{ActivatedJob: &pb.ActivatedJob{Retries: 2}}, bpmnErr))
	assert.Equal(t, int32(0), RetriesLeft(entities.Job{ActivatedJob: &pb.ActivatedJob{Retries: 1}}, bpmnErr))
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "ENGINE", GetErrorCategory(ErrCodeEngineTimeout))
	assert.Equal(t, "NORMALIZATION", GetErrorCategory(ErrCodeAuditSchemaMismatch))
	assert.Equal(t, "DATABASE", GetErrorCategory(ErrCodeReportPersistFailed))
	assert.Equal(t, "NOTIFICATION", GetErrorCategory(ErrCodeNotificationSendFailed))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeArchiveReadFailed))
	assert.Equal(t, "BROKER", GetErrorCategory(ErrCodeBrokerUnavailable))
	assert.Equal(t, "OTHER", GetErrorCategory("SOMETHING_ELSE"))
}

func TestIsRetryableErrorCode(t *testing.T) {
	assert.True(t, IsRetryableErrorCode(ErrCodeNotificationSendFailed))
	assert.False(t, IsRetryableErrorCode(ErrCodeEngineTimeout))
}

func TestIsKnownErrorCode(t *testing.T) {
	assert.True(t, IsKnownErrorCode(ErrCodeBrokerRejected))
	assert.True(t, IsKnownErrorCode(ErrCodeAuditSchemaMismatch))
	assert.False(t, IsKnownErrorCode("REPORT_SHREDDED"))
}
