package bundle

import "docushield-workers/internal/models"

// Requirement ids of the virtual visitor folder documents.
const (
	FolderCurrentID    = "v_folder_current"
	FolderRefusalID    = "v_folder_refusal"
	FolderSupportingID = "v_folder_support"
)

type sectionSpec struct {
	key   string
	title string
	ids   []string
}

type contextField struct {
	label  string
	key    string
	suffix string
}

type variant struct {
	systemInstruction string
	preamble          string
	contextFields     []contextField
	contextFallback   string
	directives        string
	documentsHeading  string
	sections          []sectionSpec
	remainder         *sectionSpec
	rules             string
	outputHeading     string
	outputFormat      string
}

const (
	determineFromDocuments = "Determine from documents"
	notDeclared            = "Not declared"
)

var variants = map[models.CaseType]*variant{
	models.CaseTypeVisitor:      visitorVariant,
	models.CaseTypeStudy:        studyVariant,
	models.CaseTypeWork:         workVariant,
	models.CaseTypeExpressEntry: expressEntryVariant,
}

// SectionKeys returns the section keys for a case type in prompt order.
func SectionKeys(caseType models.CaseType) []string {
	v, ok := variants[caseType]
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(v.sections)+1)
	for _, s := range v.sections {
		keys = append(keys, s.key)
	}
	if v.remainder != nil {
		keys = append(keys, v.remainder.key)
	}
	return keys
}

var visitorVariant = &variant{
	systemInstruction: "You are DocuShield. You audit file lists for visa compliance. Output strictly valid JSON.",
	preamble: `You are DocuShield, an expert immigration document auditor.
You are given lists of files extracted from a user's ZIP package for a Visitor Visa application.
The files have been auto-categorized into three lists.`,
	contextFields: []contextField{
		{label: "Country of residence", key: "countryOfResidence"},
		{label: "Purpose of visit", key: "purposeOfVisit"},
	},
	contextFallback:  determineFromDocuments,
	documentsHeading: "FILE LISTS:",
	sections: []sectionSpec{
		{key: "current", title: `"Mandatory / Current Submission" List (expect IMM forms, passports, photos, proof of funds, employment letters, itineraries)`, ids: []string{FolderCurrentID}},
		{key: "refusal", title: `"Refusal History" List (expect previous refusal letters)`, ids: []string{FolderRefusalID}},
		{key: "supporting", title: `"Supporting Documents" List (expect additional documents)`, ids: []string{FolderSupportingID}},
	},
	rules: `YOUR TASK:
Scan the filenames provided in ALL lists to determine if the application is complete.

STEP 1: Verify Mandatory Documents
Look for these specific items (by filename keywords):
- Application Form: Keywords "IMM", "5257", "Application"
- Family Information: Keywords "IMM", "5645", "Family"
- Passport: Keywords "Passport"
- Proof of Funds: Keywords "Bank", "Statement", "Fund", "Balance", "Account", "Asset", "Tax", "Pay", "Salary", "GIC"
- Proof of Employment/Ties: Keywords "Job", "Offer", "Letter", "Employment", "Work", "Experience"
- Purpose: Keywords "Itinerary", "Ticket", "Invitation", "SOP", "Letter"

RULE: If a mandatory document is missing from the "Mandatory" list but present in "Supporting Documents", mark it as PRESENT.
RULE: A list whose content is NOT PROVIDED contains no files.

STEP 2: Financial Assessment
- Do filenames suggest strong financials (e.g. "Bank Statement", "CA Report")?
- If no financial documents are found in ANY list, mark as WEAK/MISSING.

Important:
- Base your audit purely on the filenames provided.
- Be generous with filename matching (e.g., "stmt.pdf" likely means Statement).`,
	outputHeading: "STEP 3: Output strictly in JSON:",
	outputFormat: `{
  "visa_type": "Visitor Visa",
  "sub_type": "Tourism | Invitation-Based",
  "mandatory_documents_status": {
    "complete": true | false,
    "missing": ["List of missing mandatory docs"]
  },
  "financial_assessment": {
    "status": "Strong | Adequate | Weak | Missing",
    "notes": "brief explanation based on filenames"
  },
  "ties_assessment": {
    "status": "Strong | Moderate | Weak",
    "notes": "brief explanation based on filenames"
  },
  "previous_refusal_analysis": {
    "has_refusal": true | false,
    "issues_addressed": true | false,
    "notes": "brief explanation"
  },
  "overall_risk_factors": ["Risk 1", "Risk 2"],
  "approval_chance": "High | Medium | Low",
  "recommended_actions": ["Action 1", "Action 2"]
}`,
}

var studyVariant = &variant{
	systemInstruction: "You are DocuShield, a conservative immigration document auditor. Always output strictly valid JSON.",
	preamble: `Audit the following Canadian Study Permit application.
Use Google Search to verify DLI status, program eligibility for PGWP, or specific country requirements (SDS) if relevant.

APPLICATION TYPE:
- Study Permit
- Stream: SDS or Non-SDS`,
	contextFields: []contextField{
		{label: "Country of residence", key: "countryOfResidence"},
		{label: "Level of Study", key: "levelOfStudy"},
		{label: "Program", key: "programName"},
		{label: "Institution", key: "institutionName"},
		{label: "Intake", key: "intake"},
		{label: "Previous Background", key: "previousBackground"},
	},
	contextFallback:  determineFromDocuments,
	documentsHeading: "DOCUMENTS PROVIDED (Text Extracted):",
	sections: []sectionSpec{
		{key: "forms", title: "Forms (IMM 1294, 5645)", ids: []string{"s_form_app", "s_form_fam"}},
		{key: "loa", title: "Letter of Acceptance (LOA)", ids: []string{"s_loa"}},
		{key: "sop", title: "Statement of Purpose (SOP)", ids: []string{"s_sop"}},
		{key: "identity", title: "Identity (Passport, Photo)", ids: []string{"s_id", "s_photo"}},
		{key: "academics", title: "Academic & Language (Transcripts, Degrees, IELTS/PTE, ECA)", ids: []string{"s_acad_docs", "s_eca", "s_lang"}},
		{key: "financials", title: "Financials (Bank, GIC, Loan, Scholarships, Parent Income)", ids: []string{"s_fin_bank", "s_fin_gic", "s_fin_loan", "s_fin_scholar", "s_fin_parent"}},
		{key: "background", title: "Background (Refusal Letters, Police, Medical)", ids: []string{"s_police", "s_med", "s_bg_refusal"}},
	},
	rules: `MANDATORY DOCUMENTS (ALL STUDY PERMITS):
- IMM 1294 (Study Permit Application)
- IMM 5645 (Family Information)
- Letter of Acceptance (from a DLI-approved institution)
- Statement of Purpose (Study Plan)
- Passport Bio-page
- Digital Photograph
- Language Test Results
- Academic Documents (degrees, diplomas, transcripts)
- Proof of Funds (at least one strong source)

ACADEMIC RULES:
- Academic documents must support logical study progression
- ECA is REQUIRED only if education is from outside Canada AND the officer needs equivalency clarification
- Missing or inconsistent academics increase refusal risk

PROOF OF FUNDS - ACCEPTABLE DOCUMENTS:
- Bank Statements (last 6 months) - Mandatory
- GIC (Mandatory for SDS)
- Education Loan Approval (if applicable)
- Scholarship / Funding Letter (if applicable)
- Parent Income Documents (if sponsored)

FINANCIAL RULES:
- SDS applications MUST include GIC
- Funds must reasonably cover tuition + living expenses
- Multiple weak documents do NOT replace a strong financial source

BACKGROUND & HISTORY DOCUMENTS:
- Previous Refusal Letters (MANDATORY if any past refusal exists)
- Police Clearance Certificate (if requested / applicable)
- Medical Examination (upfront or when requested)

RISK EVALUATION TASKS:
1. Verify presence of all mandatory documents (a section reading NOT PROVIDED is missing)
2. Identify SDS vs Non-SDS compliance
3. Validate consistency between the Letter of Acceptance, Statement of Purpose, academic background and financial capacity
4. Review previous refusal reasons and check if addressed
5. Identify gaps, inconsistencies, or unexplained changes
6. Assess refusal risk based on weak SOP, weak or unclear finances, poor academic progression and unaddressed previous refusals`,
	outputHeading: "OUTPUT STRICTLY IN THIS JSON FORMAT:",
	outputFormat: `{
  "application_type": "Study Permit",
  "stream": "SDS | Non-SDS",
  "overall_risk_level": "Low | Medium | High",
  "mandatory_documents_status": {
    "complete": true | false,
    "missing_documents": []
  },
  "academic_assessment": {
    "status": "Strong | Moderate | Weak",
    "issues": []
  },
  "financial_assessment": {
    "status": "Strong | Moderate | Weak",
    "issues": []
  },
  "statement_of_purpose_assessment": {
    "status": "Clear | Weak | Inconsistent",
    "issues": []
  },
  "previous_refusal_review": {
    "has_previous_refusal": true | false,
    "addressed_properly": true | false,
    "issues": []
  },
  "background_checks": {
    "medical_exam": "Provided | Pending | Not Required Yet",
    "police_certificate": "Provided | Pending | Not Required Yet"
  },
  "key_risk_factors": [],
  "audit_recommendations": [],
  "final_audit_summary": "Short, neutral audit conclusion"
}`,
}

var workVariant = &variant{
	systemInstruction: "You are DocuShield, a conservative immigration document auditor. Always output strictly valid JSON.",
	preamble: `Audit the following Canadian Work Permit application.
Use Google Search to verify current LMIA exemption codes (e.g., C50, C11) or specific country requirements if relevant.`,
	contextFields: []contextField{
		{label: "Country of residence", key: "countryOfResidence"},
		{label: "Work Permit Type", key: "workPermitType"},
		{label: "Job Title", key: "jobTitle"},
		{label: "Employer", key: "employerName"},
		{label: "LMIA Status", key: "lmiaStatus"},
	},
	contextFallback:  determineFromDocuments,
	documentsHeading: "DOCUMENTS PROVIDED (Text Extracted):",
	sections: []sectionSpec{
		{key: "forms", title: "Forms (IMM 1295, 5645)", ids: []string{"w_form_app", "w_form_fam"}},
		{key: "identity", title: "Identity (Passport, Photo)", ids: []string{"w_id", "w_photo"}},
		{key: "employment", title: "Employment (Contract, LMIA/Exemption, Experience)", ids: []string{"w_cont", "w_lmia", "w_exp"}},
		{key: "financials", title: "Financials (Bank, Assets)", ids: []string{"w_fin_bank", "w_fin_letter", "w_fin_ca"}},
		{key: "conditional", title: "Conditional/Support (Language, Certs, Ties, Marriage, Police, Medical)", ids: []string{"w_lang", "w_cert", "w_ties", "w_marriage", "w_police", "w_med"}},
	},
	rules: `MANDATORY DOCUMENTS:
- IMM 1295 (Application)
- IMM 5645 (Family Information)
- Passport Bio-page
- Digital Photo
- Job Contract / Offer Letter
- LMIA OR LMIA Exemption proof
- Proof of Work Experience

CONDITIONAL / OPTIONAL DOCUMENTS:
- Proof of Funds (supporting only)
- Language Test Results (if provided)
- Professional Certificates (if job requires)
- Proof of Ties (optional, intent support)
- Marriage Certificate (if applicable)
- Police Certificates (if requested)
- Upfront Medical Exam (only if job/country requires)

AUDIT TASKS:
1. Verify presence of all mandatory documents (a section reading NOT PROVIDED is missing)
2. Confirm LMIA OR valid exemption is provided
3. Check alignment between the job offer, applicant experience and professional qualifications
4. Identify missing or weak mandatory documents
5. Assess risk based on job-experience mismatch, missing authorization (LMIA/exemption) and weak intent explanation (if provided)`,
	outputHeading: "OUTPUT STRICTLY IN THIS JSON FORMAT:",
	outputFormat: `{
  "application_type": "Work Permit",
  "overall_risk_level": "Low | Medium | High",
  "mandatory_documents_status": {
    "complete": true | false,
    "missing_documents": []
  },
  "employment_assessment": {
    "job_offer_valid": true | false,
    "experience_match": "Strong | Moderate | Weak",
    "issues": []
  },
  "authorization_status": {
    "lmia_or_exemption_provided": true | false,
    "issues": []
  },
  "background_checks": {
    "medical_exam": "Provided | Not Required | Pending",
    "police_certificate": "Provided | Not Required | Pending"
  },
  "key_risk_factors": [],
  "audit_recommendations": [],
  "final_audit_summary": "Short, neutral audit conclusion"
}`,
}

var expressEntryVariant = &variant{
	systemInstruction: "You are DocuShield, a conservative immigration document auditor. You parse document text and applicant context to identify refusal risks based on IRCC guidelines. You output strictly valid JSON.",
	preamble: `Audit the following documents for Express Entry.
Use Google Search to verify current official requirements, CRS trends, or specific stream criteria (FSW/CEC/FST).`,
	contextFields: []contextField{
		{label: "Country of residence", key: "countryOfResidence"},
		{label: "Total skilled work experience", key: "totalWorkYears", suffix: " years"},
		{label: "Skilled work experience in Canada", key: "canadianWorkMonths", suffix: " months"},
		{label: "Current occupation / NOC", key: "nocCode"},
		{label: "Is skilled trade?", key: "isSkilledTrade"},
		{label: "Valid Canadian job offer?", key: "hasJobOffer"},
		{label: "Canadian trade certificate?", key: "hasTradeCertificate"},
		{label: "Provincial nomination?", key: "hasProvincialNomination"},
		{label: "Highest level of education", key: "highestEducation"},
		{label: "Intended Express Entry goal", key: "prGoal"},
	},
	contextFallback: notDeclared,
	directives: `CRITICAL INSTRUCTION: DETERMINE APPLICABLE EXPRESS ENTRY STREAM (FSW | CEC | FST).

Decision Rules (Strictly Follow):
1. If Canadian skilled work experience (in 'Work History' or 'Job Offer' context) is 12 months or more -> CEC
2. Else if occupation is a skilled trade AND (valid job offer OR trade certificate exists) -> FST
3. Else -> FSW

You must:
- Analyze the 'Other Documents' (specifically Work History / Reference Letters) and 'Education, Work Experience & Language' sections.
- Explicitly state the determined stream in the 'summary' field (e.g., "Stream Determination: CEC") and in 'streamDetermination'.
- Add a Check item with category "Program Eligibility" containing the status "Pass" (if eligible) or "Fail" and reasoning.`,
	documentsHeading: "Uploaded Documents (extracted text only):",
	sections: []sectionSpec{
		{key: "passport", title: "Passport Bio Page", ids: []string{"e_id"}},
		{key: "funds", title: "Proof of Funds", ids: []string{"e_funds"}},
		{key: "purpose", title: "Education, Work Experience & Language", ids: []string{"e_offer", "e_pnp", "e_trade_cert", "e_ref_letter", "e_emp_proof", "e_degree", "e_transcripts", "e_eca", "e_lang", "e_cec_docs"}},
		{key: "background", title: "Civil Documents & Background", ids: []string{"e_police", "e_med", "e_form_travel", "e_form_sch_a", "e_marriage", "e_divorce", "e_birth", "e_dep_docs"}},
	},
	remainder: &sectionSpec{key: "other", title: "Other Documents (merged)"},
	rules: `Audit Instructions:
- Evaluate documents strictly for Express Entry
- Do not assume approval or refusal authority
- Identify missing, weak, inconsistent, or risky elements
- Use conservative reasoning aligned with common IRCC assessment factors
- Base conclusions only on provided document content
- If a document is MISSING (content says NOT PROVIDED), flag it in missingDocuments or checks.`,
	outputHeading: "Return the audit strictly in the following JSON format (no markdown, no extra text):",
	outputFormat: `{
  "visaType": "Express Entry",
  "overallRisk": "Low | Medium | High",
  "streamDetermination": "FSW | CEC | FST",
  "summary": "Executive summary string...",
  "checks": [
    {
      "category": "Identity Verification",
      "status": "Pass | Warning | Fail",
      "issues": ["Issue 1", "Issue 2"],
      "notes": "Observation notes"
    },
    ... (include Financial Sufficiency, Program Eligibility, Background)
  ],
  "missingDocuments": ["Doc Name 1", ...],
  "recommendations": ["Rec 1", ...]
}`,
}
