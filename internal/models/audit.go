package models

import "fmt"

type CheckStatus string

const (
	CheckStatusPass        CheckStatus = "Pass"
	CheckStatusWarning     CheckStatus = "Warning"
	CheckStatusFail        CheckStatus = "Fail"
	CheckStatusNotProvided CheckStatus = "Not Provided"
)

func (s CheckStatus) Valid() bool {
	switch s {
	case CheckStatusPass, CheckStatusWarning, CheckStatusFail, CheckStatusNotProvided:
		return true
	}
	return false
}

type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

func (r RiskLevel) Valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

type AuditCheck struct {
	Category string      `json:"category"`
	Status   CheckStatus `json:"status"`
	Issues   []string    `json:"issues"`
	Notes    string      `json:"notes"`
}

type Citation struct {
	Title string `json:"title,omitempty"`
	URI   string `json:"uri"`
}

// AuditResult is the canonical report every case-type response is
// normalized into.
type AuditResult struct {
	CaseType         CaseType     `json:"caseType"`
	OverallRisk      RiskLevel    `json:"overallRisk"`
	Summary          string       `json:"summary"`
	Stream           string       `json:"stream,omitempty"`
	Checks           []AuditCheck `json:"checks"`
	MissingDocuments []string     `json:"missingDocuments"`
	Recommendations  []string     `json:"recommendations"`
	Citations        []Citation   `json:"citations"`
}

// Validate reports whether r satisfies the canonical invariants.
func (r *AuditResult) Validate() error {
	if !r.CaseType.Valid() {
		return fmt.Errorf("invalid case type %q", r.CaseType)
	}
	if !r.OverallRisk.Valid() {
		return fmt.Errorf("invalid overall risk %q", r.OverallRisk)
	}
	if len(r.Checks) == 0 {
		return fmt.Errorf("audit result has no checks")
	}
	for i, c := range r.Checks {
		if !c.Status.Valid() {
			return fmt.Errorf("check %d (%s): invalid status %q", i, c.Category, c.Status)
		}
	}
	return nil
}

type ScoreBreakdown struct {
	Identity    int `json:"identity"`
	Financials  int `json:"financials"`
	Eligibility int `json:"eligibility"`
	Risk        int `json:"risk"`
}

type ReadinessScore struct {
	Overall   int            `json:"overall"`
	Breakdown ScoreBreakdown `json:"breakdown"`
}

type Severity string

const (
	SeverityMustFix     Severity = "MUST_FIX"
	SeverityRecommended Severity = "RECOMMENDED"
	SeverityOptional    Severity = "OPTIONAL"
)

// AuditIssue is the flattened per-issue view the dashboard lists.
type AuditIssue struct {
	ID           string   `json:"id"`
	Type         string   `json:"type"`
	Severity     Severity `json:"severity"`
	Documents    []string `json:"documents"`
	Description  string   `json:"description"`
	WhyItMatters string   `json:"whyItMatters"`
	HowToFix     string   `json:"howToFix"`
}
