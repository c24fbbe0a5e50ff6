// internal/workers/intake/classify-documents/models.go
package classifydocuments

import "docushield-workers/internal/models"

// Input carries either a plain filename listing or a base64 encoded ZIP.
// The archive wins when both are set.
type Input struct {
	Filenames []string `json:"filenames"`
	Archive   string   `json:"archive"`
}

type Output struct {
	ClassifiedFiles models.ClassifiedFileSet `json:"classifiedFiles"`
	ScannedFiles    int                      `json:"scannedFiles"`
	CurrentCount    int                      `json:"currentCount"`
	RefusalCount    int                      `json:"refusalCount"`
	SupportingCount int                      `json:"supportingCount"`
	HasRefusal      bool                     `json:"hasRefusal"`
}
