// internal/workers/audit/score-readiness/models.go
package scorereadiness

import "docushield-workers/internal/models"

type Input struct {
	AuditResult *models.AuditResult `json:"auditResult"`
}

type Output struct {
	ReadinessScore   models.ReadinessScore `json:"readinessScore"`
	OverallScore     int                   `json:"overallScore"`
	Issues           []models.AuditIssue   `json:"issues"`
	MustFixCount     int                   `json:"mustFixCount"`
	RecommendedCount int                   `json:"recommendedCount"`
	// ReadyToSubmit is false while any MUST_FIX issue remains or risk is High.
	ReadyToSubmit bool `json:"readyToSubmit"`
}
