package normalize

import "docushield-workers/internal/common/validation"

const stringArray = `{"type": "array", "items": {"type": "string"}}`

var visitorSchema = validation.MustCompile("visitor-response", `{
  "type": "object",
  "required": ["mandatory_documents_status", "financial_assessment", "ties_assessment", "approval_chance"],
  "properties": {
    "visa_type": {"type": "string"},
    "sub_type": {"type": "string"},
    "mandatory_documents_status": {
      "type": "object",
      "required": ["complete"],
      "properties": {"complete": {"type": "boolean"}, "missing": `+stringArray+`}
    },
    "financial_assessment": {
      "type": "object",
      "required": ["status"],
      "properties": {"status": {"type": "string"}, "notes": {"type": "string"}}
    },
    "ties_assessment": {
      "type": "object",
      "required": ["status"],
      "properties": {"status": {"type": "string"}, "notes": {"type": "string"}}
    },
    "previous_refusal_analysis": {
      "type": "object",
      "properties": {
        "has_refusal": {"type": "boolean"},
        "issues_addressed": {"type": "boolean"},
        "notes": {"type": "string"}
      }
    },
    "overall_risk_factors": `+stringArray+`,
    "approval_chance": {"type": "string"},
    "recommended_actions": `+stringArray+`
  }
}`)

const statusIssuesSchema = `{
  "type": "object",
  "required": ["status"],
  "properties": {"status": {"type": "string"}, "issues": ` + stringArray + `}
}`

var studySchema = validation.MustCompile("study-response", `{
  "type": "object",
  "required": ["overall_risk_level", "academic_assessment", "financial_assessment", "statement_of_purpose_assessment", "final_audit_summary"],
  "properties": {
    "application_type": {"type": "string"},
    "stream": {"type": "string"},
    "overall_risk_level": {"type": "string"},
    "mandatory_documents_status": {
      "type": "object",
      "properties": {"complete": {"type": "boolean"}, "missing_documents": `+stringArray+`}
    },
    "academic_assessment": `+statusIssuesSchema+`,
    "financial_assessment": `+statusIssuesSchema+`,
    "statement_of_purpose_assessment": `+statusIssuesSchema+`,
    "previous_refusal_review": {
      "type": "object",
      "properties": {
        "has_previous_refusal": {"type": "boolean"},
        "addressed_properly": {"type": "boolean"},
        "issues": `+stringArray+`
      }
    },
    "background_checks": {
      "type": "object",
      "properties": {"medical_exam": {"type": "string"}, "police_certificate": {"type": "string"}}
    },
    "key_risk_factors": `+stringArray+`,
    "audit_recommendations": `+stringArray+`,
    "final_audit_summary": {"type": "string"}
  }
}`)

var workSchema = validation.MustCompile("work-response", `{
  "type": "object",
  "required": ["overall_risk_level", "employment_assessment", "authorization_status", "final_audit_summary"],
  "properties": {
    "application_type": {"type": "string"},
    "overall_risk_level": {"type": "string"},
    "mandatory_documents_status": {
      "type": "object",
      "properties": {"complete": {"type": "boolean"}, "missing_documents": `+stringArray+`}
    },
    "employment_assessment": {
      "type": "object",
      "required": ["job_offer_valid", "experience_match"],
      "properties": {
        "job_offer_valid": {"type": "boolean"},
        "experience_match": {"type": "string"},
        "issues": `+stringArray+`
      }
    },
    "authorization_status": {
      "type": "object",
      "required": ["lmia_or_exemption_provided"],
      "properties": {"lmia_or_exemption_provided": {"type": "boolean"}, "issues": `+stringArray+`}
    },
    "background_checks": {
      "type": "object",
      "properties": {"medical_exam": {"type": "string"}, "police_certificate": {"type": "string"}}
    },
    "key_risk_factors": `+stringArray+`,
    "audit_recommendations": `+stringArray+`,
    "final_audit_summary": {"type": "string"}
  }
}`)

var expressEntrySchema = validation.MustCompile("express-entry-response", `{
  "type": "object",
  "required": ["overallRisk", "summary", "checks"],
  "properties": {
    "visaType": {"type": "string"},
    "overallRisk": {"type": "string"},
    "streamDetermination": {"type": "string"},
    "summary": {"type": "string"},
    "checks": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["category", "status"],
        "properties": {
          "category": {"type": "string"},
          "status": {"type": "string"},
          "issues": `+stringArray+`,
          "notes": {"type": "string"}
        }
      }
    },
    "missingDocuments": `+stringArray+`,
    "recommendations": `+stringArray+`,
    "riskFactors": `+stringArray+`
  }
}`)
