// internal/workers/audit/run-document-audit/models.go
package rundocumentaudit

import "docushield-workers/internal/models"

type Input struct {
	ApplicantID      string                    `json:"applicantId"`
	CaseType         string                    `json:"caseType"`
	ApplicantContext models.ApplicantContext   `json:"applicantContext"`
	Uploads          []models.UploadedDocument `json:"uploads"`
	// Visitor only: base64 ZIP, a filename listing, or an already classified set.
	Archive         string                    `json:"archive"`
	Filenames       []string                  `json:"filenames"`
	ClassifiedFiles *models.ClassifiedFileSet `json:"classifiedFiles"`
}

type Output struct {
	AuditID         string                    `json:"auditId"`
	ApplicantID     string                    `json:"applicantId"`
	CaseType        models.CaseType           `json:"caseType"`
	AuditResult     *models.AuditResult       `json:"auditResult"`
	OverallRisk     models.RiskLevel          `json:"overallRisk"`
	ReadinessScore  models.ReadinessScore     `json:"readinessScore"`
	Issues          []models.AuditIssue       `json:"issues"`
	MustFixCount    int                       `json:"mustFixCount"`
	MissingSections []string                  `json:"missingSections"`
	ClassifiedFiles *models.ClassifiedFileSet `json:"classifiedFiles,omitempty"`
	ScannedFiles    int                       `json:"scannedFiles"`
	SchemaMismatch  bool                      `json:"schemaMismatch"`
	EngineLatencyMs int64                     `json:"engineLatencyMs"`
}
