package normalize

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"

	"docushield-workers/internal/common/validation"
	"docushield-workers/internal/models"
)

var ErrUnknownCaseType = models.ErrUnknownCaseType

type variant struct {
	schema      *validation.Schema
	newResponse func() response
}

// variants is keyed by case type; adding a case type adds an entry here.
var variants = map[models.CaseType]variant{
	models.CaseTypeVisitor:      {schema: visitorSchema, newResponse: func() response { return &visitorResponse{} }},
	models.CaseTypeStudy:        {schema: studySchema, newResponse: func() response { return &studyResponse{} }},
	models.CaseTypeWork:         {schema: workSchema, newResponse: func() response { return &workResponse{} }},
	models.CaseTypeExpressEntry: {schema: expressEntrySchema, newResponse: func() response { return &expressEntryResponse{} }},
}

// Outcome is a normalized result plus every schema deviation that was
// absorbed along the way.
type Outcome struct {
	Result     *models.AuditResult `json:"result"`
	Mismatches []string            `json:"mismatches,omitempty"`
}

func (o *Outcome) SchemaMismatch() bool {
	return len(o.Mismatches) > 0
}

// Normalize parses the engine text for caseType into the canonical result.
// Only unparseable text is an error; missing or mistyped fields degrade to
// defaults and are reported in Outcome.Mismatches.
func Normalize(caseType models.CaseType, raw string, citations []models.Citation) (*Outcome, error) {
	v, ok := variants[caseType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCaseType, caseType)
	}

	doc, err := Unwrap(raw)
	if err != nil {
		return nil, err
	}

	rec := &recorder{}

	if result, err := v.schema.Validate(doc); err != nil {
		rec.add(err.Error())
	} else if !result.Valid {
		rec.add(result.Messages()...)
	}

	resp := v.newResponse()
	if err := decode(doc, resp); err != nil {
		var decodeErr *mapstructure.Error
		if errors.As(err, &decodeErr) {
			rec.add(decodeErr.Errors...)
		} else {
			rec.add(err.Error())
		}
	}

	result := resp.canonical(rec)
	result.CaseType = caseType
	result.Citations = citations
	finalize(result)

	return &Outcome{Result: result, Mismatches: rec.dedupe()}, nil
}

// decode is weakly typed so "true" becomes a bool and a lone string becomes
// a one-element list. Fields that still fail keep their zero value.
func decode(doc map[string]interface{}, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		TagName:          "json",
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(doc)
}

// finalize enforces the canonical invariants: lists are never nil and
// checks is never empty.
func finalize(r *models.AuditResult) {
	for i := range r.Checks {
		r.Checks[i].Issues = nonNil(nonBlank(r.Checks[i].Issues))
	}
	if len(r.Checks) == 0 {
		r.Checks = []models.AuditCheck{{
			Category: "Audit Completeness",
			Status:   models.CheckStatusWarning,
			Issues:   []string{},
			Notes:    "The audit response contained no individual checks.",
		}}
	}
	if !r.OverallRisk.Valid() {
		r.OverallRisk = FallbackRisk
	}
	r.MissingDocuments = nonNil(nonBlank(r.MissingDocuments))
	r.Recommendations = nonNil(nonBlank(r.Recommendations))
	if r.Citations == nil {
		r.Citations = []models.Citation{}
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// recorder collects schema deviations for logging and metrics.
type recorder struct {
	mismatches []string
}

func (r *recorder) add(msgs ...string) {
	r.mismatches = append(r.mismatches, msgs...)
}

func (r *recorder) missing(field string) {
	r.add(field + ": missing")
}

func (r *recorder) unrecognized(field, value string) {
	if strings.TrimSpace(value) == "" {
		r.missing(field)
		return
	}
	r.add(fmt.Sprintf("%s: unrecognized value %q", field, value))
}

func (r *recorder) status(t statusTable, field, value string) models.CheckStatus {
	s, ok := t.lookup(value)
	if !ok {
		r.unrecognized(field, value)
	}
	return s
}

func (r *recorder) risk(field, value string) models.RiskLevel {
	level, ok := parseRisk(value)
	if !ok {
		r.unrecognized(field, value)
	}
	return level
}

func (r *recorder) dedupe() []string {
	seen := make(map[string]bool, len(r.mismatches))
	var out []string
	for _, m := range r.mismatches {
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out
}
