package normalize

import (
	"fmt"
	"regexp"
	"strings"

	"docushield-workers/internal/models"
)

// response is one variant of the closed set of engine schemas.
type response interface {
	canonical(r *recorder) *models.AuditResult
}

type statusNotes struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

type statusIssues struct {
	Status string   `json:"status"`
	Issues []string `json:"issues"`
}

type backgroundChecks struct {
	MedicalExam       string `json:"medical_exam"`
	PoliceCertificate string `json:"police_certificate"`
}

type visitorResponse struct {
	VisaType           string `json:"visa_type"`
	SubType            string `json:"sub_type"`
	MandatoryDocuments struct {
		Complete *bool    `json:"complete"`
		Missing  []string `json:"missing"`
	} `json:"mandatory_documents_status"`
	Financial       statusNotes `json:"financial_assessment"`
	Ties            statusNotes `json:"ties_assessment"`
	PreviousRefusal struct {
		HasRefusal      *bool  `json:"has_refusal"`
		IssuesAddressed *bool  `json:"issues_addressed"`
		Notes           string `json:"notes"`
	} `json:"previous_refusal_analysis"`
	RiskFactors        []string `json:"overall_risk_factors"`
	ApprovalChance     string   `json:"approval_chance"`
	RecommendedActions []string `json:"recommended_actions"`
}

func (v *visitorResponse) canonical(r *recorder) *models.AuditResult {
	var checks []models.AuditCheck

	mandatory := models.AuditCheck{
		Category: "Mandatory Documents",
		Status:   models.CheckStatusWarning,
		Issues:   v.MandatoryDocuments.Missing,
		Notes:    "Mandatory document status not reported.",
	}
	switch {
	case v.MandatoryDocuments.Complete == nil:
		r.missing("mandatory_documents_status.complete")
	case *v.MandatoryDocuments.Complete:
		mandatory.Status, mandatory.Notes = models.CheckStatusPass, "All core documents identified."
	default:
		mandatory.Status, mandatory.Notes = models.CheckStatusFail, "Missing mandatory documents."
	}
	checks = append(checks, mandatory)

	checks = append(checks, models.AuditCheck{
		Category: "Financial Assessment",
		Status:   r.status(visitorFinancialStatuses, "financial_assessment.status", v.Financial.Status),
		Notes:    orDefault(v.Financial.Notes, "No financial docs detected."),
	})
	checks = append(checks, models.AuditCheck{
		Category: "Ties & Employment",
		Status:   r.status(visitorTiesStatuses, "ties_assessment.status", v.Ties.Status),
		Notes:    orDefault(v.Ties.Notes, "Weak proof of ties."),
	})

	if isTrue(v.PreviousRefusal.HasRefusal) {
		checks = append(checks, models.AuditCheck{
			Category: "Refusal History",
			Status:   passOrFail(isTrue(v.PreviousRefusal.IssuesAddressed)),
			Notes:    v.PreviousRefusal.Notes,
		})
	}

	checks = prependRiskFactors(checks, "Risk Factors", models.CheckStatusWarning, v.RiskFactors, "Potential risks identified.")

	risk, ok := approvalRisks[vocabKey(v.ApprovalChance)]
	if !ok {
		r.unrecognized("approval_chance", v.ApprovalChance)
		risk = FallbackRisk
	}

	return &models.AuditResult{
		OverallRisk:      risk,
		Summary:          fmt.Sprintf("Audit complete. Approval Chance: %s.", orDefault(strings.TrimSpace(v.ApprovalChance), "Unknown")),
		Checks:           checks,
		MissingDocuments: v.MandatoryDocuments.Missing,
		Recommendations:  v.RecommendedActions,
	}
}

type studyResponse struct {
	ApplicationType    string `json:"application_type"`
	Stream             string `json:"stream"`
	OverallRiskLevel   string `json:"overall_risk_level"`
	MandatoryDocuments struct {
		Complete         *bool    `json:"complete"`
		MissingDocuments []string `json:"missing_documents"`
	} `json:"mandatory_documents_status"`
	Academic        statusIssues `json:"academic_assessment"`
	Financial       statusIssues `json:"financial_assessment"`
	SOP             statusIssues `json:"statement_of_purpose_assessment"`
	PreviousRefusal struct {
		HasPreviousRefusal *bool    `json:"has_previous_refusal"`
		AddressedProperly  *bool    `json:"addressed_properly"`
		Issues             []string `json:"issues"`
	} `json:"previous_refusal_review"`
	Background           backgroundChecks `json:"background_checks"`
	KeyRiskFactors       []string         `json:"key_risk_factors"`
	AuditRecommendations []string         `json:"audit_recommendations"`
	FinalAuditSummary    string           `json:"final_audit_summary"`
}

func (s *studyResponse) canonical(r *recorder) *models.AuditResult {
	risk := r.risk("overall_risk_level", s.OverallRiskLevel)

	checks := []models.AuditCheck{
		{
			Category: "Academic Assessment",
			Status:   r.status(strengthStatuses, "academic_assessment.status", s.Academic.Status),
			Issues:   s.Academic.Issues,
			Notes:    "Assessment: " + reported(s.Academic.Status),
		},
		{
			Category: "Financial Assessment",
			Status:   r.status(strengthStatuses, "financial_assessment.status", s.Financial.Status),
			Issues:   s.Financial.Issues,
			Notes:    "Assessment: " + reported(s.Financial.Status),
		},
		{
			Category: "Statement of Purpose",
			Status:   r.status(sopStatuses, "statement_of_purpose_assessment.status", s.SOP.Status),
			Issues:   s.SOP.Issues,
			Notes:    "Clarity: " + reported(s.SOP.Status),
		},
		backgroundCheck(r, s.Background),
	}

	if isTrue(s.PreviousRefusal.HasPreviousRefusal) {
		addressed := isTrue(s.PreviousRefusal.AddressedProperly)
		notes := "Refusal NOT adequately addressed."
		if addressed {
			notes = "Refusal addressed properly."
		}
		checks = append(checks, models.AuditCheck{
			Category: "Previous Refusal Analysis",
			Status:   passOrFail(addressed),
			Issues:   s.PreviousRefusal.Issues,
			Notes:    notes,
		})
	}

	checks = prependRiskFactors(checks, "Key Risk Factors", keyRiskStatus(risk), s.KeyRiskFactors, "Critical risks identified impacting the decision.")

	stream := strings.TrimSpace(s.Stream)
	summary := strings.TrimSpace(s.FinalAuditSummary)
	if stream != "" {
		summary = strings.TrimSpace(fmt.Sprintf("%s (Stream: %s)", summary, stream))
	}

	return &models.AuditResult{
		OverallRisk:      risk,
		Summary:          summary,
		Stream:           stream,
		Checks:           checks,
		MissingDocuments: s.MandatoryDocuments.MissingDocuments,
		Recommendations:  s.AuditRecommendations,
	}
}

type workResponse struct {
	ApplicationType    string `json:"application_type"`
	OverallRiskLevel   string `json:"overall_risk_level"`
	MandatoryDocuments struct {
		Complete         *bool    `json:"complete"`
		MissingDocuments []string `json:"missing_documents"`
	} `json:"mandatory_documents_status"`
	Employment struct {
		JobOfferValid   *bool    `json:"job_offer_valid"`
		ExperienceMatch string   `json:"experience_match"`
		Issues          []string `json:"issues"`
	} `json:"employment_assessment"`
	Authorization struct {
		LMIAOrExemptionProvided *bool    `json:"lmia_or_exemption_provided"`
		Issues                  []string `json:"issues"`
	} `json:"authorization_status"`
	Background           backgroundChecks `json:"background_checks"`
	KeyRiskFactors       []string         `json:"key_risk_factors"`
	AuditRecommendations []string         `json:"audit_recommendations"`
	FinalAuditSummary    string           `json:"final_audit_summary"`
}

func (w *workResponse) canonical(r *recorder) *models.AuditResult {
	risk := r.risk("overall_risk_level", w.OverallRiskLevel)

	employment := r.status(strengthStatuses, "employment_assessment.experience_match", w.Employment.ExperienceMatch)
	switch {
	case w.Employment.JobOfferValid == nil:
		r.missing("employment_assessment.job_offer_valid")
		employment = worst(employment, models.CheckStatusWarning)
	case !*w.Employment.JobOfferValid:
		employment = models.CheckStatusFail
	}

	authorization := models.AuditCheck{
		Category: "Authorization (LMIA/Exemption)",
		Status:   models.CheckStatusWarning,
		Issues:   w.Authorization.Issues,
		Notes:    "Authorization status not reported.",
	}
	switch {
	case w.Authorization.LMIAOrExemptionProvided == nil:
		r.missing("authorization_status.lmia_or_exemption_provided")
	case *w.Authorization.LMIAOrExemptionProvided:
		authorization.Status, authorization.Notes = models.CheckStatusPass, "Authorization Present"
	default:
		authorization.Status, authorization.Notes = models.CheckStatusFail, "Missing LMIA or Exemption Proof"
	}

	checks := []models.AuditCheck{
		{
			Category: "Employment Assessment",
			Status:   employment,
			Issues:   w.Employment.Issues,
			Notes:    "Job Match: " + reported(w.Employment.ExperienceMatch),
		},
		authorization,
		backgroundCheck(r, w.Background),
	}

	checks = prependRiskFactors(checks, "Key Risk Factors", keyRiskStatus(risk), w.KeyRiskFactors, "Critical risks identified.")

	return &models.AuditResult{
		OverallRisk:      risk,
		Summary:          strings.TrimSpace(w.FinalAuditSummary),
		Checks:           checks,
		MissingDocuments: w.MandatoryDocuments.MissingDocuments,
		Recommendations:  w.AuditRecommendations,
	}
}

type rawCheck struct {
	Category string   `json:"category"`
	Status   string   `json:"status"`
	Issues   []string `json:"issues"`
	Notes    string   `json:"notes"`
}

type expressEntryResponse struct {
	VisaType            string     `json:"visaType"`
	OverallRisk         string     `json:"overallRisk"`
	StreamDetermination string     `json:"streamDetermination"`
	Stream              string     `json:"stream"`
	Summary             string     `json:"summary"`
	Checks              []rawCheck `json:"checks"`
	MissingDocuments    []string   `json:"missingDocuments"`
	Recommendations     []string   `json:"recommendations"`
	RiskFactors         []string   `json:"riskFactors"`
}

const programEligibility = "Program Eligibility"

var streamInSummary = regexp.MustCompile(`(?i)stream\s+determination\s*:\s*(FSW|CEC|FST)\b`)

var expressEntryStreams = map[string]string{"fsw": "FSW", "cec": "CEC", "fst": "FST"}

func (e *expressEntryResponse) canonical(r *recorder) *models.AuditResult {
	risk := r.risk("overallRisk", e.OverallRisk)

	checks := make([]models.AuditCheck, 0, len(e.Checks)+2)
	hasEligibility := false
	for i, c := range e.Checks {
		category := strings.TrimSpace(c.Category)
		if category == "" {
			r.missing(fmt.Sprintf("checks.%d.category", i))
			category = "General"
		}
		if strings.Contains(strings.ToLower(category), strings.ToLower(programEligibility)) {
			hasEligibility = true
		}
		checks = append(checks, models.AuditCheck{
			Category: category,
			Status:   r.status(canonicalStatuses, fmt.Sprintf("checks.%d.status", i), c.Status),
			Issues:   c.Issues,
			Notes:    c.Notes,
		})
	}

	stream := e.stream()
	if !hasEligibility && stream != "" {
		checks = append(checks, models.AuditCheck{
			Category: programEligibility,
			Status:   models.CheckStatusWarning,
			Notes:    "Stream Determination: " + stream,
		})
	}

	checks = prependRiskFactors(checks, "Risk Factors", models.CheckStatusWarning, e.RiskFactors, "Potential risks identified.")

	return &models.AuditResult{
		OverallRisk:      risk,
		Summary:          strings.TrimSpace(e.Summary),
		Stream:           stream,
		Checks:           checks,
		MissingDocuments: e.MissingDocuments,
		Recommendations:  e.Recommendations,
	}
}

// stream prefers the explicit field and falls back to the summary text.
func (e *expressEntryResponse) stream() string {
	for _, v := range []string{e.StreamDetermination, e.Stream} {
		if s, ok := expressEntryStreams[vocabKey(v)]; ok {
			return s
		}
	}
	if m := streamInSummary.FindStringSubmatch(e.Summary); m != nil {
		return strings.ToUpper(m[1])
	}
	return ""
}

func backgroundCheck(r *recorder, b backgroundChecks) models.AuditCheck {
	return models.AuditCheck{
		Category: "Background Checks",
		Status: worst(
			r.status(backgroundStatuses, "background_checks.medical_exam", b.MedicalExam),
			r.status(backgroundStatuses, "background_checks.police_certificate", b.PoliceCertificate),
		),
		Notes: fmt.Sprintf("Medical: %s, Police: %s", reported(b.MedicalExam), reported(b.PoliceCertificate)),
	}
}

func prependRiskFactors(checks []models.AuditCheck, category string, status models.CheckStatus, factors []string, notes string) []models.AuditCheck {
	factors = nonBlank(factors)
	if len(factors) == 0 {
		return checks
	}
	return append([]models.AuditCheck{{
		Category: category,
		Status:   status,
		Issues:   factors,
		Notes:    notes,
	}}, checks...)
}

func keyRiskStatus(risk models.RiskLevel) models.CheckStatus {
	if risk == models.RiskHigh {
		return models.CheckStatusFail
	}
	return models.CheckStatusWarning
}

func passOrFail(ok bool) models.CheckStatus {
	if ok {
		return models.CheckStatusPass
	}
	return models.CheckStatusFail
}

func isTrue(b *bool) bool {
	return b != nil && *b
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func reported(s string) string {
	return orDefault(strings.TrimSpace(s), "Not reported")
}

func nonBlank(in []string) []string {
	var out []string
	for _, s := range in {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}
