package bundle

import (
	"fmt"
	"sort"
	"strings"

	"docushield-workers/internal/audit/checklist"
	"docushield-workers/internal/models"
)

// NotProvided is written into the prompt for sections with no content. The
// engine instructions treat it as a structured absence marker.
const NotProvided = "NOT PROVIDED"

var ErrUnknownCaseType = models.ErrUnknownCaseType

// Section is one named block of the instruction payload. Content is nil when
// none of the section's requirements has an upload.
type Section struct {
	Key            string   `json:"key"`
	Title          string   `json:"title"`
	RequirementIDs []string `json:"requirementIds,omitempty"`
	Content        *string  `json:"content,omitempty"`
}

func (s Section) Provided() bool {
	return s.Content != nil
}

// Text returns the section content, or the NotProvided sentinel.
func (s Section) Text() string {
	if s.Content == nil {
		return NotProvided
	}
	return *s.Content
}

// CaseBundle is built fresh for every audit and never persisted.
type CaseBundle struct {
	CaseType models.CaseType        `json:"caseType"`
	Context  models.ApplicantContext `json:"context"`
	Sections []Section              `json:"sections"`
	// Unmapped lists uploaded requirement ids no section consumed.
	Unmapped []string `json:"unmapped,omitempty"`
}

// MissingSections returns the titles of sections rendered as NotProvided.
func (b *CaseBundle) MissingSections() []string {
	var missing []string
	for _, s := range b.Sections {
		if !s.Provided() {
			missing = append(missing, s.Title)
		}
	}
	return missing
}

// Build resolves uploads into the case type's prompt sections. Uploads are
// keyed by requirement id; a later upload for the same id replaces an
// earlier one.
func Build(caseType models.CaseType, ctx models.ApplicantContext, uploads []models.UploadedDocument) (*CaseBundle, error) {
	v, ok := variants[caseType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCaseType, caseType)
	}

	byID, order := latestUploads(uploads)

	b := &CaseBundle{
		CaseType: caseType,
		Context:  copyContext(ctx),
		Sections: make([]Section, 0, len(v.sections)+1),
	}

	mapped := make(map[string]bool)
	for _, spec := range v.sections {
		var docs []models.UploadedDocument
		for _, id := range spec.ids {
			mapped[id] = true
			if doc, ok := byID[id]; ok {
				docs = append(docs, doc)
			}
		}
		b.Sections = append(b.Sections, Section{
			Key:            spec.key,
			Title:          spec.title,
			RequirementIDs: append([]string(nil), spec.ids...),
			Content:        joinDocuments(caseType, docs, "\n\n", len(docs) > 1),
		})
	}

	var rest []models.UploadedDocument
	for _, id := range order {
		if !mapped[id] {
			rest = append(rest, byID[id])
		}
	}

	if v.remainder != nil {
		ids := make([]string, 0, len(rest))
		for _, doc := range rest {
			ids = append(ids, doc.RequirementID)
		}
		b.Sections = append(b.Sections, Section{
			Key:            v.remainder.key,
			Title:          v.remainder.title,
			RequirementIDs: ids,
			Content:        joinDocuments(caseType, rest, "\n", true),
		})
	} else {
		for _, doc := range rest {
			b.Unmapped = append(b.Unmapped, doc.RequirementID)
		}
	}

	return b, nil
}

// latestUploads keeps the last upload per requirement id and returns ids in
// first-seen order. Uploads with blank content count as absent.
func latestUploads(uploads []models.UploadedDocument) (map[string]models.UploadedDocument, []string) {
	byID := make(map[string]models.UploadedDocument, len(uploads))
	var order []string
	for _, u := range uploads {
		id := strings.TrimSpace(u.RequirementID)
		if id == "" {
			continue
		}
		if _, seen := byID[id]; !seen {
			order = append(order, id)
		}
		u.RequirementID = id
		byID[id] = u
	}

	kept := order[:0]
	for _, id := range order {
		if strings.TrimSpace(byID[id].RawContent) == "" {
			delete(byID, id)
			continue
		}
		kept = append(kept, id)
	}
	return byID, kept
}

func joinDocuments(caseType models.CaseType, docs []models.UploadedDocument, sep string, labelled bool) *string {
	if len(docs) == 0 {
		return nil
	}
	if !labelled {
		text := docs[0].RawContent
		return &text
	}

	parts := make([]string, 0, len(docs))
	for _, doc := range docs {
		parts = append(parts, fmt.Sprintf("[%s]: %s", documentLabel(caseType, doc), doc.RawContent))
	}
	text := strings.Join(parts, sep)
	return &text
}

func documentLabel(caseType models.CaseType, doc models.UploadedDocument) string {
	if doc.Name != "" {
		return doc.Name
	}
	if req, ok := checklist.Lookup(caseType, doc.RequirementID); ok {
		return req.Label
	}
	return doc.RequirementID
}

func copyContext(ctx models.ApplicantContext) models.ApplicantContext {
	out := make(models.ApplicantContext, len(ctx))
	for k, v := range ctx {
		out[k] = v
	}
	return out
}

// contextLines renders declared facts in the variant's order; undeclared
// facts use the fallback and extra keys follow in sorted order.
func contextLines(v *variant, ctx models.ApplicantContext) []string {
	known := make(map[string]bool, len(v.contextFields))
	lines := make([]string, 0, len(v.contextFields)+len(ctx))

	for _, f := range v.contextFields {
		known[f.key] = true
		value, ok := ctx.Get(f.key)
		if ok {
			value += f.suffix
		} else {
			value = v.contextFallback
		}
		lines = append(lines, fmt.Sprintf("- %s: %s", f.label, value))
	}

	var extra []string
	for k := range ctx {
		if !known[k] {
			if _, ok := ctx.Get(k); ok {
				extra = append(extra, k)
			}
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		value, _ := ctx.Get(k)
		lines = append(lines, fmt.Sprintf("- %s: %s", k, value))
	}
	return lines
}
