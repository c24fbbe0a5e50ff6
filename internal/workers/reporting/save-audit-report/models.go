// internal/workers/reporting/save-audit-report/models.go
package saveauditreport

import "docushield-workers/internal/models"

type Input struct {
	AuditID        string                `json:"auditId"`
	ApplicantID    string                `json:"applicantId"`
	AuditResult    *models.AuditResult   `json:"auditResult"`
	ReadinessScore models.ReadinessScore `json:"readinessScore"`
	Issues         []models.AuditIssue   `json:"issues"`
	SchemaMismatch bool                  `json:"schemaMismatch"`
}

type Output struct {
	ReportID string `json:"reportId"`
	AuditID  string `json:"auditId"`
	SavedAt  string `json:"savedAt"`
}
