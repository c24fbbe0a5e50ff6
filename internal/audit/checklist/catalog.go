package checklist

import (
	"fmt"

	"docushield-workers/internal/models"
)

const (
	GroupProofOfFunds   = "Proof of Funds"
	GroupStreamSpecific = "Stream Specific"
	GroupCivilStatus    = "Civil Status"
)

// ZIPUploadID is the only requirement of the visitor checklist: the whole
// application package as one archive.
const ZIPUploadID = "v_zip_upload"

var visitorChecklist = []models.DocumentRequirement{
	{ID: ZIPUploadID, Label: "Full Application Package (ZIP)", Category: "Bulk Upload", Description: "Upload a single ZIP file containing all your documents. We will extract and segregate them automatically.", Required: true},
}

var studyChecklist = []models.DocumentRequirement{
	{ID: "s_form_app", Label: "IMM 1294 (Application)", Category: "Forms", Description: "Application for Study Permit made outside of Canada.", Required: true},
	{ID: "s_form_fam", Label: "IMM 5645 (Family Info)", Category: "Forms", Description: "Details about immediate family members.", Required: true},
	{ID: "s_loa", Label: "Letter of Acceptance", Category: "Eligibility", Description: "Original LOA from a Designated Learning Institution (DLI).", Required: true},
	{ID: "s_sop", Label: "Statement of Purpose", Category: "Purpose", Description: "Study plan explaining why you want to study in Canada and your future goals.", Required: true},
	{ID: "s_fin_bank", Label: "Bank Statements", Category: "Financials", Description: "Personal or sponsor bank statements (past 4 months).", Required: true, Group: GroupProofOfFunds},
	{ID: "s_fin_gic", Label: "GIC (Mandatory for SDS)", Category: "Financials", Description: "Guaranteed Investment Certificate (e.g., $20,635).", Group: GroupProofOfFunds},
	{ID: "s_fin_loan", Label: "Education Loan Approval", Category: "Financials", Description: "Sanction letter from a financial institution.", Group: GroupProofOfFunds},
	{ID: "s_fin_scholar", Label: "Scholarship / Funding Letter", Category: "Financials", Description: "Proof of scholarship or financial aid awards.", Group: GroupProofOfFunds},
	{ID: "s_fin_parent", Label: "Parent Income Documents", Category: "Financials", Description: "Sponsor's employment proof, pay slips, or ITR.", Group: GroupProofOfFunds},
	{ID: "s_id", Label: "Passport Bio-page", Category: "Identity", Description: "Must be valid for the duration of your study.", Required: true},
	{ID: "s_photo", Label: "Digital Photo", Category: "Identity", Description: "Meeting IRCC photo specifications.", Required: true},
	{ID: "s_lang", Label: "Language Results", Category: "Education", Description: "IELTS/CELPIP/PTE (Required for SDS, Conditional for others).", Required: true},
	{ID: "s_acad_docs", Label: "Academic Documents", Category: "Education", Description: "Transcripts, diplomas, and mark sheets."},
	{ID: "s_eca", Label: "ECA Report", Category: "Education", Description: "Educational Credential Assessment (if applicable)."},
	{ID: "s_police", Label: "Police Certificates", Category: "Background", Description: "From countries where you lived >6 months (Conditional)."},
	{ID: "s_med", Label: "Medical Exam", Category: "Background", Description: "Upfront medical exam e-Medical sheet (if applicable)."},
	{ID: "s_bg_refusal", Label: "Previous Refusal Letters", Category: "Background", Description: "Letters explaining any previous visa refusals (if applicable)."},
}

var workChecklist = []models.DocumentRequirement{
	{ID: "w_form_app", Label: "IMM 1295 (Application)", Category: "Forms", Description: "Application for Work Permit made outside of Canada.", Required: true},
	{ID: "w_form_fam", Label: "IMM 5645 (Family Info)", Category: "Forms", Description: "Details about immediate family members.", Required: true},
	{ID: "w_id", Label: "Passport Bio-page", Category: "Identity", Description: "Clear scan of passport identity page.", Required: true},
	{ID: "w_photo", Label: "Digital Photo", Category: "Identity", Description: "Photo meeting IRCC specifications.", Required: true},
	{ID: "w_cont", Label: "Job Contract", Category: "Employment", Description: "Signed offer letter or contract.", Required: true},
	{ID: "w_lmia", Label: "LMIA / Exemption", Category: "Eligibility", Description: "Labour market impact assessment copy or Offer of Employment number.", Required: true},
	{ID: "w_exp", Label: "Proof of Experience", Category: "Employment", Description: "Reference letters from past employers.", Required: true},
	{ID: "w_fin_bank", Label: "Bank Statements", Category: "Financials", Description: "Personal bank statements (past 6 months).", Required: true, Group: GroupProofOfFunds},
	{ID: "w_fin_letter", Label: "Bank Balance Certificate", Category: "Financials", Description: "Bank letter showing liquid funds (e.g., 20 Lakhs).", Group: GroupProofOfFunds},
	{ID: "w_fin_ca", Label: "CA Net Worth Letter", Category: "Financials", Description: "Chartered Accountant summary of assets.", Group: GroupProofOfFunds},
	{ID: "w_lang", Label: "Language Results", Category: "Education", Description: "IELTS/CELPIP/PTE results."},
	{ID: "w_cert", Label: "Professional Certs", Category: "Eligibility", Description: "Degrees or licenses required for role (Conditional)."},
	{ID: "w_ties", Label: "Proof of Ties", Category: "Intent", Description: "Evidence of assets/family home to prove temporary intent."},
	{ID: "w_marriage", Label: "Marriage Certificate", Category: "Civil Status", Description: "Required if you are married."},
	{ID: "w_police", Label: "Police Certificates", Category: "Background", Description: "From countries where you lived >6 months (Conditional)."},
	{ID: "w_med", Label: "Upfront Medical Exam", Category: "Background", Description: "E-Medical information sheet (Mandatory).", Required: true},
}

var expressEntryChecklist = []models.DocumentRequirement{
	{ID: "e_form_app", Label: "Express Entry App (Online)", Category: "Forms", Description: "Copy of online application summary.", Required: true},
	{ID: "e_form_sch_a", Label: "Schedule A (IMM 5669)", Category: "Forms", Description: "Background / Declaration form.", Required: true},
	{ID: "e_form_fam", Label: "Family Information (IMM 5406)", Category: "Forms", Description: "Additional Family Information.", Required: true},
	{ID: "e_form_travel", Label: "Travel History", Category: "Forms", Description: "IMM 5562 - Supplementary Information.", Required: true},
	{ID: "e_id", Label: "Passport Bio-page", Category: "Identity", Description: "Valid passport (bio page + stamped pages).", Required: true},
	{ID: "e_photo", Label: "Digital Photo", Category: "Identity", Description: "Meeting PR specifications.", Required: true},
	{ID: "e_birth", Label: "Birth Certificate", Category: "Identity", Description: "Proof of birth / age.", Required: true},
	{ID: "e_lang", Label: "Language Results", Category: "Eligibility", Description: "Valid IELTS / CELPIP / TEF / TCF.", Required: true},
	{ID: "e_eca", Label: "ECA Report", Category: "Education", Description: "Educational Credential Assessment (for foreign education).", Required: true},
	{ID: "e_degree", Label: "Degree/Diploma", Category: "Education", Description: "Copies of certificates.", Required: true},
	{ID: "e_transcripts", Label: "Transcripts", Category: "Education", Description: "Academic transcripts/mark sheets.", Required: true},
	{ID: "e_ref_letter", Label: "Reference Letters", Category: "Work Experience", Description: "Employer letters (NOC-aligned duties).", Required: true},
	{ID: "e_emp_proof", Label: "Employment Proof", Category: "Work Experience", Description: "Payslips, contracts, tax docs.", Required: true},
	{ID: "e_police", Label: "Police Certificates", Category: "Background", Description: "For all countries lived ≥6 months > age 18.", Required: true},
	{ID: "e_med", Label: "Medical Exam (IME)", Category: "Background", Description: "Upfront medical examination sheet.", Required: true},
	{ID: "e_funds", Label: "Proof of Funds", Category: "Financials", Description: "Settlement funds (Mandatory for FSW/FST).", Group: GroupStreamSpecific},
	{ID: "e_marriage", Label: "Marriage Certificate", Category: "Civil Status", Description: "If married.", Group: GroupCivilStatus},
	{ID: "e_divorce", Label: "Divorce/Death Cert", Category: "Civil Status", Description: "If applicable.", Group: GroupCivilStatus},
	{ID: "e_dep_docs", Label: "Dependent Documents", Category: "Civil Status", Description: "Passports/Birth certs for dependents.", Group: GroupCivilStatus},
	{ID: "e_pnp", Label: "Provincial Nomination", Category: "Stream Specific", Description: "Nomination Certificate (PNP).", Group: GroupStreamSpecific},
	{ID: "e_trade_cert", Label: "Trade Certificate", Category: "Stream Specific", Description: "Certificate of Qualification (FST).", Group: GroupStreamSpecific},
	{ID: "e_offer", Label: "Job Offer", Category: "Employment", Description: "Valid Canadian job offer (LMIA/Exempt)."},
	{ID: "e_cec_docs", Label: "CEC Tax Docs", Category: "Employment", Description: "T4s, NOAs, Work Permits (CEC)."},
	{ID: "e_rep", Label: "IMM 5476 (Rep)", Category: "Representation", Description: "Use of a Representative form."},
	{ID: "e_loe", Label: "Letter of Explanation", Category: "Other", Description: "Explain gaps, refusals, discrepancies."},
	{ID: "e_name_change", Label: "Name Change Affidavit", Category: "Identity", Description: "If applicable."},
	{ID: "e_custody", Label: "Custody Documents", Category: "Civil Status", Description: "Adoption/Custody papers."},
}

var catalog = map[models.CaseType][]models.DocumentRequirement{
	models.CaseTypeVisitor:      visitorChecklist,
	models.CaseTypeStudy:        studyChecklist,
	models.CaseTypeWork:         workChecklist,
	models.CaseTypeExpressEntry: expressEntryChecklist,
}

// ForCaseType returns a copy of the checklist for the case type.
func ForCaseType(ct models.CaseType) ([]models.DocumentRequirement, error) {
	reqs, ok := catalog[ct]
	if !ok {
		return nil, fmt.Errorf("no checklist for case type %q", ct)
	}
	out := make([]models.DocumentRequirement, len(reqs))
	copy(out, reqs)
	return out, nil
}

// Lookup finds a requirement by id within a case type's checklist.
func Lookup(ct models.CaseType, id string) (models.DocumentRequirement, bool) {
	for _, r := range catalog[ct] {
		if r.ID == id {
			return r, true
		}
	}
	return models.DocumentRequirement{}, false
}
