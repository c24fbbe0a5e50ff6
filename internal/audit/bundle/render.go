package bundle

import (
	"fmt"
	"strings"

	"docushield-workers/internal/models"
)

// Payload is what the engine receives for one audit.
type Payload struct {
	CaseType          models.CaseType `json:"caseType"`
	SystemInstruction string          `json:"systemInstruction"`
	Prompt            string          `json:"prompt"`
	WebSearch         bool            `json:"webSearch"`
	JSONOnly          bool            `json:"jsonOnly"`
}

// Render serializes the bundle into the instruction payload. This is the only
// place the NotProvided sentinel enters the text.
func Render(b *CaseBundle) (*Payload, error) {
	v, ok := variants[b.CaseType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCaseType, b.CaseType)
	}

	parts := []string{v.preamble}

	parts = append(parts, "APPLICANT CONTEXT:\n"+strings.Join(contextLines(v, b.Context), "\n"))

	if v.directives != "" {
		parts = append(parts, v.directives)
	}

	parts = append(parts, v.documentsHeading)
	for i, s := range b.Sections {
		parts = append(parts, fmt.Sprintf("%d. %s:\n%s", i+1, s.Title, s.Text()))
	}

	parts = append(parts, v.rules)
	parts = append(parts, v.outputHeading+"\n\n"+v.outputFormat)

	return &Payload{
		CaseType:          b.CaseType,
		SystemInstruction: v.systemInstruction,
		Prompt:            strings.Join(parts, "\n\n"),
		WebSearch:         true,
		JSONOnly:          true,
	}, nil
}

// BuildPayload is Build followed by Render.
func BuildPayload(caseType models.CaseType, ctx models.ApplicantContext, uploads []models.UploadedDocument) (*CaseBundle, *Payload, error) {
	b, err := Build(caseType, ctx, uploads)
	if err != nil {
		return nil, nil, err
	}
	p, err := Render(b)
	if err != nil {
		return nil, nil, err
	}
	return b, p, nil
}
