package normalize

import (
	"strings"
	"unicode"

	"docushield-workers/internal/models"
)

// statusTable maps a case type's local vocabulary onto CheckStatus. Keys are
// folded with vocabKey so "Not Required Yet" and "not_required_yet" match.
type statusTable map[string]models.CheckStatus

func vocabKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// newStatusTable always includes the canonical names so already-normalized
// input maps to itself.
func newStatusTable(local map[string]models.CheckStatus) statusTable {
	t := statusTable{}
	for _, s := range []models.CheckStatus{
		models.CheckStatusPass,
		models.CheckStatusWarning,
		models.CheckStatusFail,
		models.CheckStatusNotProvided,
	} {
		t[vocabKey(string(s))] = s
	}
	for word, s := range local {
		t[vocabKey(word)] = s
	}
	return t
}

// lookup resolves value, defaulting to Warning for anything unrecognized.
func (t statusTable) lookup(value string) (models.CheckStatus, bool) {
	if s, ok := t[vocabKey(value)]; ok {
		return s, true
	}
	return models.CheckStatusWarning, false
}

var (
	canonicalStatuses = newStatusTable(nil)

	visitorFinancialStatuses = newStatusTable(map[string]models.CheckStatus{
		"Strong":   models.CheckStatusPass,
		"Adequate": models.CheckStatusPass,
		"Weak":     models.CheckStatusFail,
		"Missing":  models.CheckStatusNotProvided,
	})

	visitorTiesStatuses = newStatusTable(map[string]models.CheckStatus{
		"Strong":   models.CheckStatusPass,
		"Moderate": models.CheckStatusPass,
		"Weak":     models.CheckStatusWarning,
	})

	strengthStatuses = newStatusTable(map[string]models.CheckStatus{
		"Strong":   models.CheckStatusPass,
		"Moderate": models.CheckStatusWarning,
		"Weak":     models.CheckStatusFail,
	})

	sopStatuses = newStatusTable(map[string]models.CheckStatus{
		"Clear":        models.CheckStatusPass,
		"Weak":         models.CheckStatusFail,
		"Inconsistent": models.CheckStatusFail,
	})

	backgroundStatuses = newStatusTable(map[string]models.CheckStatus{
		"Provided":         models.CheckStatusPass,
		"Not Required":     models.CheckStatusPass,
		"Not Required Yet": models.CheckStatusPass,
		"Pending":          models.CheckStatusWarning,
	})
)

var statusRank = map[models.CheckStatus]int{
	models.CheckStatusPass:        0,
	models.CheckStatusNotProvided: 1,
	models.CheckStatusWarning:     2,
	models.CheckStatusFail:        3,
}

func worst(statuses ...models.CheckStatus) models.CheckStatus {
	out := models.CheckStatusPass
	for _, s := range statuses {
		if statusRank[s] > statusRank[out] {
			out = s
		}
	}
	return out
}

// FallbackRisk replaces any overall risk outside Low/Medium/High.
const FallbackRisk = models.RiskHigh

var riskLevels = map[string]models.RiskLevel{
	"low":      models.RiskLow,
	"medium":   models.RiskMedium,
	"moderate": models.RiskMedium,
	"high":     models.RiskHigh,
}

func parseRisk(value string) (models.RiskLevel, bool) {
	if r, ok := riskLevels[vocabKey(value)]; ok {
		return r, true
	}
	return FallbackRisk, false
}

// approvalRisks inverts the visitor approval chance into an overall risk.
var approvalRisks = map[string]models.RiskLevel{
	"high":   models.RiskLow,
	"medium": models.RiskMedium,
	"low":    models.RiskHigh,
}
