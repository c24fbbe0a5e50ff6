// internal/workers/audit/build-audit-bundle/models.go
package buildauditbundle

import (
	"docushield-workers/internal/audit/bundle"
	"docushield-workers/internal/models"
)

// Input describes one audit. Visitor audits read ClassifiedFiles (or
// Filenames); every other case type reads Uploads.
type Input struct {
	CaseType         string                    `json:"caseType"`
	ApplicantContext models.ApplicantContext   `json:"applicantContext"`
	Uploads          []models.UploadedDocument `json:"uploads"`
	ClassifiedFiles  *models.ClassifiedFileSet `json:"classifiedFiles"`
	Filenames        []string                  `json:"filenames"`
}

type Output struct {
	CaseType        models.CaseType `json:"caseType"`
	Payload         *bundle.Payload `json:"payload"`
	Sections        []string        `json:"sections"`
	MissingSections []string        `json:"missingSections"`
	UnmappedUploads []string        `json:"unmappedUploads"`
	PromptBytes     int             `json:"promptBytes"`
}
