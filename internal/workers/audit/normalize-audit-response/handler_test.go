// internal/workers/audit/normalize-audit-response/handler_test.go
package normalizeauditresponse

import (
	"context"
	"testing"

	"docushield-workers/internal/audit/normalize"
	"docushield-workers/internal/common/logger"
	"docushield-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testLogger struct {
	t *testing.T
}

func (tl *testLogger) Debug(msg string, fields map[string]interface{}) {
	tl.t.Logf("DEBUG: %s %v", msg, fields)
}

func (tl *testLogger) Info(msg string, fields map[string]interface{}) {
	tl.t.Logf("INFO: %s %v", msg, fields)
}

func (tl *testLogger) Warn(msg string, fields map[string]interface{}) {
	tl.t.Logf("WARN: %s %v", msg, fields)
}

func (tl *testLogger) Error(msg string, fields map[string]interface{}) {
	tl.t.Logf("ERROR: %s %v", msg, fields)
}

func (tl *testLogger) WithFields(fields map[string]interface{}) logger.Logger {
	return tl
}

const studyResponse = "```json\n" + `{
  "application_type": "Study Permit",
  "stream": "SDS",
  "overall_risk_level": "Low",
  "mandatory_documents_status": {"complete": true, "missing_documents": []},
  "academic_assessment": {"status": "Strong", "issues": []},
  "financial_assessment": {"status": "Strong", "issues": []},
  "statement_of_purpose_assessment": {"status": "Clear", "issues": []},
  "previous_refusal_review": {"has_previous_refusal": false, "addressed_properly": false, "issues": []},
  "background_checks": {"medical_exam": "Provided", "police_certificate": "Provided"},
  "key_risk_factors": [],
  "audit_recommendations": [],
  "final_audit_summary": "Well documented application."
}` + "\n```"

func TestHandler_Execute_Study(t *testing.T) {
	h := NewHandler(LoadConfig(), &testLogger{t: t})

	citations := []models.Citation{{Title: "SDS requirements", URI: "https://www.canada.ca/sds"}}
	output, err := h.Execute(context.Background(), &Input{
		CaseType:    "Study Permit",
		RawResponse: studyResponse,
		Citations:   citations,
	})

	require.NoError(t, err)
	require.NotNil(t, output.AuditResult)
	assert.Equal(t, models.RiskLow, output.OverallRisk)
	assert.Equal(t, models.CaseTypeStudy, output.AuditResult.CaseType)
	assert.Equal(t, "Well documented application. (Stream: SDS)", output.AuditResult.Summary)
	assert.Equal(t, citations, output.AuditResult.Citations)
	assert.False(t, output.SchemaMismatch)
	assert.Empty(t, output.Mismatches)
	assert.NoError(t, output.AuditResult.Validate())
}

func TestHandler_Execute_SchemaMismatchIsNotAnError(t *testing.T) {
	h := NewHandler(LoadConfig(), &testLogger{t: t})

	output, err := h.Execute(context.Background(), &Input{CaseType: "Work Permit", RawResponse: `{}`})

	require.NoError(t, err)
	assert.True(t, output.SchemaMismatch)
	assert.NotEmpty(t, output.Mismatches)
	assert.Equal(t, models.RiskHigh, output.OverallRisk)
	assert.NotEmpty(t, output.AuditResult.Checks)
}

func TestHandler_Execute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   *Input
		wantErr error
	}{
		{
			name:    "prose instead of json",
			input:   &Input{CaseType: "Study Permit", RawResponse: "I am unable to audit these documents."},
			wantErr: normalize.ErrParse,
		},
		{
			name:    "empty response",
			input:   &Input{CaseType: "Express Entry", RawResponse: ""},
			wantErr: normalize.ErrParse,
		},
		{
			name:    "unknown case type",
			input:   &Input{CaseType: "Super Visa", RawResponse: "{}"},
			wantErr: models.ErrUnknownCaseType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewHandler(LoadConfig(), &testLogger{t: t}).Execute(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
