// internal/workers/intake/group-requirements/models.go
package grouprequirements

import (
	"docushield-workers/internal/audit/checklist"
	"docushield-workers/internal/models"
)

type Input struct {
	CaseType string `json:"caseType"`
	// UploadedIDs are the requirement ids that already have content. Optional.
	UploadedIDs []string `json:"uploadedIds"`
}

type Output struct {
	CaseType          models.CaseType              `json:"caseType"`
	Requirements      []models.DocumentRequirement `json:"requirements"`
	Entries           []checklist.Entry            `json:"entries"`
	RequiredCount     int                          `json:"requiredCount"`
	MissingRequired   []string                     `json:"missingRequired"`
	ChecklistComplete bool                         `json:"checklistComplete"`
}
