package bundle

import (
	"strings"

	"docushield-workers/internal/models"
)

const scannedListHeader = "SCANNED FILE LIST:"

const currentFolderNote = "(AI Context: These files contain Forms, Financials, Identity, and Employment Documents.)"

// FolderUploads turns a classified file listing into the three virtual visitor
// documents. An empty bucket produces no upload, so its section renders as
// NotProvided.
func FolderUploads(files models.ClassifiedFileSet) []models.UploadedDocument {
	var uploads []models.UploadedDocument

	if len(files.Current) > 0 {
		uploads = append(uploads, models.UploadedDocument{
			RequirementID: FolderCurrentID,
			Name:          "Mandatory / Current Submission",
			RawContent:    scannedList(files.Current) + "\n\n" + currentFolderNote,
		})
	}
	if len(files.Refusal) > 0 {
		uploads = append(uploads, models.UploadedDocument{
			RequirementID: FolderRefusalID,
			Name:          "Refusal History",
			RawContent:    scannedList(files.Refusal),
		})
	}
	if len(files.Supporting) > 0 {
		uploads = append(uploads, models.UploadedDocument{
			RequirementID: FolderSupportingID,
			Name:          "Supporting Documents",
			RawContent:    scannedList(files.Supporting),
		})
	}
	return uploads
}

func scannedList(names []string) string {
	return scannedListHeader + "\n" + strings.Join(names, "\n")
}

// BuildVisitor builds the visitor bundle from a classified listing.
func BuildVisitor(ctx models.ApplicantContext, files models.ClassifiedFileSet) (*CaseBundle, error) {
	return Build(models.CaseTypeVisitor, ctx, FolderUploads(files))
}
