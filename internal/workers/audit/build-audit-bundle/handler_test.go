// internal/workers/audit/build-audit-bundle/handler_test.go
package buildauditbundle

import (
	"context"
	"testing"

	"docushield-workers/internal/audit/bundle"
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

func newTestHandler(t *testing.T) *Handler {
	return NewHandler(LoadConfig(), &testLogger{t: t})
}

func TestHandler_Execute_Study(t *testing.T) {
	output, err := newTestHandler(t).Execute(context.Background(), &Input{
		CaseType: "Study Permit",
		ApplicantContext: models.ApplicantContext{
			"countryOfResidence": "India",
			"programName":        "MSc Data Science",
		},
		Uploads: []models.UploadedDocument{
			{RequirementID: "s_loa", RawContent: "Letter of acceptance from a DLI"},
			{RequirementID: "s_fin_gic", RawContent: "GIC certificate CAD 20,635"},
			{RequirementID: "x_unknown", RawContent: "stray upload"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, models.CaseTypeStudy, output.CaseType)
	require.NotNil(t, output.Payload)
	assert.True(t, output.Payload.WebSearch)
	assert.True(t, output.Payload.JSONOnly)
	assert.Equal(t, len(output.Payload.Prompt), output.PromptBytes)

	assert.Contains(t, output.Payload.Prompt, "Letter of acceptance from a DLI")
	assert.Contains(t, output.Payload.Prompt, "MSc Data Science")
	assert.Contains(t, output.Payload.Prompt, bundle.NotProvided)

	assert.Len(t, output.Sections, 7)
	assert.NotContains(t, output.MissingSections, "Letter of Acceptance (LOA)")
	assert.Contains(t, output.MissingSections, "Forms (IMM 1294, 5645)")
	assert.Equal(t, []string{"x_unknown"}, output.UnmappedUploads)
}

func TestHandler_Execute_VisitorUsesClassifiedFiles(t *testing.T) {
	output, err := newTestHandler(t).Execute(context.Background(), &Input{
		CaseType: "visitor",
		ClassifiedFiles: &models.ClassifiedFileSet{
			Current:    []string{"IMM5257.pdf", "passport.pdf"},
			Refusal:    []string{},
			Supporting: []string{"hotel_booking.pdf"},
		},
		Uploads: []models.UploadedDocument{{RequirementID: "ignored", RawContent: "visitor reads files"}},
	})
	require.NoError(t, err)

	assert.Contains(t, output.Payload.Prompt, "IMM5257.pdf")
	assert.Contains(t, output.Payload.Prompt, "hotel_booking.pdf")
	assert.NotContains(t, output.Payload.Prompt, "visitor reads files")
	assert.Len(t, output.MissingSections, 1)
	assert.Empty(t, output.UnmappedUploads)
}

func TestHandler_Execute_VisitorWithoutFiles(t *testing.T) {
	output, err := newTestHandler(t).Execute(context.Background(), &Input{CaseType: "Visitor Visa"})
	require.NoError(t, err)

	assert.Len(t, output.MissingSections, 3)
}

func TestHandler_Execute_WebSearchDisabled(t *testing.T) {
	h := NewHandler(&Config{WebSearch: false}, &testLogger{t: t})

	output, err := h.Execute(context.Background(), &Input{CaseType: "Work Permit"})
	require.NoError(t, err)
	assert.False(t, output.Payload.WebSearch)
	assert.NotNil(t, output.UnmappedUploads)
}

func TestHandler_Execute_UnknownCaseType(t *testing.T) {
	_, err := newTestHandler(t).Execute(context.Background(), &Input{CaseType: "Super Visa"})
	assert.ErrorIs(t, err, models.ErrUnknownCaseType)
}
