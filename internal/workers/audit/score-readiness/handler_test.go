// internal/workers/audit/score-readiness/handler_test.go
package scorereadiness

import (
	"context"
	"testing"

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

func createAuditResult(risk models.RiskLevel, checks ...models.AuditCheck) *models.AuditResult {
	return &models.AuditResult{
		CaseType:         models.CaseTypeWork,
		OverallRisk:      risk,
		Summary:          "test",
		Checks:           checks,
		MissingDocuments: []string{},
		Recommendations:  []string{},
		Citations:        []models.Citation{},
	}
}

func check(category string, status models.CheckStatus, issues ...string) models.AuditCheck {
	if issues == nil {
		issues = []string{}
	}
	return models.AuditCheck{Category: category, Status: status, Issues: issues, Notes: category + " notes"}
}

func TestHandler_Execute_Success(t *testing.T) {
	tests := []struct {
		name            string
		result          *models.AuditResult
		wantOverall     int
		wantIdentity    int
		wantFinancials  int
		wantMustFix     int
		wantRecommended int
		wantReady       bool
	}{
		{
			name: "low risk, clean checks",
			result: createAuditResult(models.RiskLow,
				check("Identity Documents", models.CheckStatusPass),
				check("Financial Capacity", models.CheckStatusPass),
			),
			wantOverall:    95,
			wantIdentity:   100,
			wantFinancials: 100,
			wantReady:      true,
		},
		{
			name: "medium risk with a warning",
			result: createAuditResult(models.RiskMedium,
				check("Identity Documents", models.CheckStatusPass),
				check("Financial Capacity", models.CheckStatusWarning, "Balance is close to the threshold"),
			),
			wantOverall:     72,
			wantIdentity:    100,
			wantFinancials:  50,
			wantRecommended: 1,
			wantReady:       true,
		},
		{
			name: "high risk with failures",
			result: createAuditResult(models.RiskHigh,
				check("Key Risk Factors", models.CheckStatusFail, "No LMIA", "Unverified employer"),
				check("Identity Documents", models.CheckStatusNotProvided),
			),
			wantOverall:    45,
			wantIdentity:   50,
			wantFinancials: 50,
			wantMustFix:    2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(LoadConfig(), &testLogger{t: t})
			output, err := h.Execute(context.Background(), &Input{AuditResult: tt.result})
			require.NoError(t, err)

			assert.Equal(t, tt.wantOverall, output.OverallScore)
			assert.Equal(t, tt.wantOverall, output.ReadinessScore.Breakdown.Risk)
			assert.Equal(t, 80, output.ReadinessScore.Breakdown.Eligibility)
			assert.Equal(t, tt.wantIdentity, output.ReadinessScore.Breakdown.Identity)
			assert.Equal(t, tt.wantFinancials, output.ReadinessScore.Breakdown.Financials)
			assert.Equal(t, tt.wantMustFix, output.MustFixCount)
			assert.Equal(t, tt.wantRecommended, output.RecommendedCount)
			assert.Len(t, output.Issues, tt.wantMustFix+tt.wantRecommended)
			assert.Equal(t, tt.wantReady, output.ReadyToSubmit)
		})
	}
}

func TestHandler_Execute_IssuesCarryCheckContext(t *testing.T) {
	h := NewHandler(LoadConfig(), &testLogger{t: t})
	output, err := h.Execute(context.Background(), &Input{
		AuditResult: createAuditResult(models.RiskMedium,
			check("Employment", models.CheckStatusFail, "Contract unsigned"),
		),
	})
	require.NoError(t, err)

	require.Len(t, output.Issues, 1)
	issue := output.Issues[0]
	assert.Equal(t, "Employment", issue.Type)
	assert.Equal(t, models.SeverityMustFix, issue.Severity)
	assert.Equal(t, "Contract unsigned", issue.Description)
	assert.Equal(t, "Employment notes", issue.WhyItMatters)
	assert.False(t, output.ReadyToSubmit)
}

func TestHandler_Execute_InvalidInput(t *testing.T) {
	h := NewHandler(LoadConfig(), &testLogger{t: t})

	tests := []struct {
		name  string
		input *Input
	}{
		{"missing result", &Input{}},
		{"no checks", &Input{AuditResult: createAuditResult(models.RiskLow)}},
		{"bad risk", &Input{AuditResult: createAuditResult("Severe", check("Identity", models.CheckStatusPass))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Execute(context.Background(), tt.input)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
