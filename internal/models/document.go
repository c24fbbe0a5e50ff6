package models

type DocumentRequirement struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
	Group       string `json:"group,omitempty"`
}

type UploadedDocument struct {
	RequirementID string `json:"requirementId"`
	Name          string `json:"name,omitempty"`
	RawContent    string `json:"rawContent"`
}

// FileCategory is the semantic bucket a filename is sorted into.
type FileCategory string

const (
	FileCategoryCurrent    FileCategory = "CURRENT"
	FileCategoryRefusal    FileCategory = "REFUSAL"
	FileCategorySupporting FileCategory = "SUPPORTING"
)

type ClassifiedFileSet struct {
	Current    []string `json:"current"`
	Refusal    []string `json:"refusal"`
	Supporting []string `json:"supporting"`
}

func (s ClassifiedFileSet) Total() int {
	return len(s.Current) + len(s.Refusal) + len(s.Supporting)
}
