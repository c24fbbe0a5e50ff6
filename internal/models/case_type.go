package models

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownCaseType = errors.New("UNKNOWN_CASE_TYPE")

// CaseType is one of the closed set of audit variants. Each variant carries
// its own checklist, prompt sections and engine response schema.
type CaseType string

const (
	CaseTypeVisitor      CaseType = "Visitor Visa"
	CaseTypeStudy        CaseType = "Study Permit"
	CaseTypeWork         CaseType = "Work Permit"
	CaseTypeExpressEntry CaseType = "Express Entry"
)

var caseTypeAliases = map[string]CaseType{
	"visitor":       CaseTypeVisitor,
	"visitor visa":  CaseTypeVisitor,
	"study":         CaseTypeStudy,
	"study permit":  CaseTypeStudy,
	"work":          CaseTypeWork,
	"work permit":   CaseTypeWork,
	"express entry": CaseTypeExpressEntry,
	"express_entry": CaseTypeExpressEntry,
	"expressentry":  CaseTypeExpressEntry,
	"ee":            CaseTypeExpressEntry,
}

// AllCaseTypes lists the supported variants in display order.
func AllCaseTypes() []CaseType {
	return []CaseType{CaseTypeVisitor, CaseTypeStudy, CaseTypeWork, CaseTypeExpressEntry}
}

// ParseCaseType accepts the display label or a short alias, case-insensitively.
func ParseCaseType(s string) (CaseType, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if ct, ok := caseTypeAliases[key]; ok {
		return ct, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCaseType, s)
}

func (c CaseType) Valid() bool {
	switch c {
	case CaseTypeVisitor, CaseTypeStudy, CaseTypeWork, CaseTypeExpressEntry:
		return true
	}
	return false
}

func (c CaseType) String() string {
	return string(c)
}

// ApplicantContext holds the free-form facts the applicant declared in the
// wizard (country of residence, program, job offer flags and so on).
type ApplicantContext map[string]string

// Get returns the trimmed value for key and whether it was declared.
func (a ApplicantContext) Get(key string) (string, bool) {
	v, ok := a[key]
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}
