// internal/workers/audit/run-document-audit/handler_test.go
package rundocumentaudit

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docushield-workers/internal/audit/bundle"
	"docushield-workers/internal/audit/engine"
	"docushield-workers/internal/audit/normalize"
	"docushield-workers/internal/audit/pipeline"
	apperrors "docushield-workers/internal/common/errors"
	"docushield-workers/internal/common/logger"
	"docushield-workers/internal/models"
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

const visitorResponse = `{
  "visa_type": "Visitor Visa",
  "mandatory_documents_status": {"complete": true, "missing": []},
  "financial_assessment": {"status": "Strong", "notes": "Statements cover six months."},
  "ties_assessment": {"status": "Strong", "notes": "Permanent employment."},
  "previous_refusal_analysis": {"has_refusal": false, "issues_addressed": true, "notes": ""},
  "overall_risk_factors": [],
  "approval_chance": "High",
  "recommended_actions": []
}`

type auditEvent struct {
	caseType       string
	risk           string
	schemaMismatch bool
}

type fakeRecorder struct {
	events []auditEvent
}

func (f *fakeRecorder) RecordAudit(ctx context.Context, caseType, risk string, schemaMismatch bool) {
	f.events = append(f.events, auditEvent{caseType: caseType, risk: risk, schemaMismatch: schemaMismatch})
}

func respondWith(text string) engine.InvokerFunc {
	return func(ctx context.Context, payload *bundle.Payload) (*engine.Response, error) {
		return &engine.Response{Text: text}, nil
	}
}

func newTestHandler(t *testing.T, invoker engine.Invoker, recorder AuditRecorder) *Handler {
	log := &testLogger{t: t}
	return NewHandler(&Config{MaxArchiveBytes: 1 << 20}, pipeline.New(invoker, log), recorder, log)
}

func archiveOf(t *testing.T, names ...string) string {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, n := range names {
		w, err := zw.Create(n)
		require.NoError(t, err)
		_, err = w.Write([]byte("x"))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestHandler_Execute_VisitorArchive(t *testing.T) {
	recorder := &fakeRecorder{}
	handler := newTestHandler(t, respondWith(visitorResponse), recorder)

	output, err := handler.Execute(context.Background(), &Input{
		ApplicantID: "app-42",
		CaseType:    "Visitor Visa",
		Archive:     archiveOf(t, "docs/passport.pdf", "docs/bank_statement.pdf", "__MACOSX/docs/._passport.pdf"),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, output.AuditID)
	assert.Equal(t, "app-42", output.ApplicantID)
	assert.Equal(t, models.CaseTypeVisitor, output.CaseType)
	assert.Equal(t, 2, output.ScannedFiles)
	require.NotNil(t, output.ClassifiedFiles)
	assert.Len(t, output.ClassifiedFiles.Current, 2)
	assert.Equal(t, models.RiskLow, output.OverallRisk)
	assert.Equal(t, 95, output.ReadinessScore.Overall)
	assert.False(t, output.SchemaMismatch)
	assert.Equal(t, 0, output.MustFixCount)

	require.Len(t, recorder.events, 1)
	assert.Equal(t, auditEvent{caseType: "Visitor Visa", risk: "Low"}, recorder.events[0])
}

func TestHandler_Execute_SchemaMismatch(t *testing.T) {
	recorder := &fakeRecorder{}
	handler := newTestHandler(t, respondWith(`{}`), recorder)

	output, err := handler.Execute(context.Background(), &Input{
		CaseType: "Work Permit",
		Uploads:  []models.UploadedDocument{{RequirementID: "w_id", RawContent: "passport text"}},
	})
	require.NoError(t, err)

	assert.True(t, output.SchemaMismatch)
	assert.Equal(t, models.RiskHigh, output.OverallRisk)
	assert.Nil(t, output.ClassifiedFiles)
	require.Len(t, recorder.events, 1)
	assert.True(t, recorder.events[0].schemaMismatch)
}

func TestHandler_Execute_NilRecorder(t *testing.T) {
	handler := newTestHandler(t, respondWith(visitorResponse), nil)

	output, err := handler.Execute(context.Background(), &Input{
		CaseType:  "Visitor Visa",
		Filenames: []string{"passport.pdf"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, output.ScannedFiles)
}

func TestHandler_Execute_Errors(t *testing.T) {
	tests := []struct {
		name     string
		invoker  engine.Invoker
		input    *Input
		wantErr  error
		wantCode apperrors.ErrorCode
	}{
		{
			name:     "unknown case type",
			invoker:  respondWith(visitorResponse),
			input:    &Input{CaseType: "Super Visa"},
			wantErr:  models.ErrUnknownCaseType,
			wantCode: apperrors.ErrCodeUnknownCaseType,
		},
		{
			name:     "bad archive encoding",
			invoker:  respondWith(visitorResponse),
			input:    &Input{CaseType: "Visitor Visa", Archive: "%%%"},
			wantErr:  ErrInvalidInput,
			wantCode: apperrors.ErrCodeInvalidAuditInput,
		},
		{
			name: "engine timeout",
			invoker: engine.InvokerFunc(func(ctx context.Context, payload *bundle.Payload) (*engine.Response, error) {
				return nil, engine.ErrEngineTimeout
			}),
			input:    &Input{CaseType: "Study Permit"},
			wantErr:  engine.ErrEngineTimeout,
			wantCode: apperrors.ErrCodeEngineTimeout,
		},
		{
			name:     "unparseable response",
			invoker:  respondWith("I could not audit this application."),
			input:    &Input{CaseType: "Study Permit"},
			wantErr:  normalize.ErrParse,
			wantCode: apperrors.ErrCodeAuditParseError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := &fakeRecorder{}
			handler := newTestHandler(t, tt.invoker, recorder)

			output, err := handler.Execute(context.Background(), tt.input)
			require.Error(t, err)
			assert.Nil(t, output)
			assert.True(t, errors.Is(err, tt.wantErr))
			assert.Equal(t, tt.wantCode, apperrors.FromError(err).Code)
			assert.Empty(t, recorder.events)
		})
	}
}

func TestHandler_Execute_ArchiveTooLarge(t *testing.T) {
	log := &testLogger{t: t}
	handler := NewHandler(&Config{MaxArchiveBytes: 8}, pipeline.New(respondWith(visitorResponse), log), nil, log)

	_, err := handler.Execute(context.Background(), &Input{
		CaseType: "Visitor Visa",
		Archive:  archiveOf(t, "passport.pdf"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestValidateVariables(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr string
	}{
		{name: "filenames", raw: `{"caseType": "Visitor Visa", "filenames": ["passport.pdf"]}`},
		{name: "uploads", raw: `{"caseType": "Study Permit", "uploads": [{"requirementId": "s_id", "rawContent": "text"}]}`},
		{name: "missing case type", raw: `{"filenames": []}`, wantErr: "caseType"},
		{name: "upload without requirement", raw: `{"caseType": "Work Permit", "uploads": [{"rawContent": "text"}]}`, wantErr: "requirementId"},
		{name: "filenames not strings", raw: `{"caseType": "Visitor Visa", "filenames": [1]}`, wantErr: "filenames.0"},
		{name: "not json", raw: `{caseType}`, wantErr: "parse input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateVariables(tt.raw)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
