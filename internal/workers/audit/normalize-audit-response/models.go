// internal/workers/audit/normalize-audit-response/models.go
package normalizeauditresponse

import "docushield-workers/internal/models"

type Input struct {
	CaseType    string            `json:"caseType"`
	RawResponse string            `json:"rawResponse"`
	Citations   []models.Citation `json:"citations"`
}

type Output struct {
	AuditResult    *models.AuditResult `json:"auditResult"`
	OverallRisk    models.RiskLevel    `json:"overallRisk"`
	SchemaMismatch bool                `json:"schemaMismatch"`
	Mismatches     []string            `json:"mismatches"`
}
