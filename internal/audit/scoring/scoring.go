package scoring

import (
	"fmt"
	"strings"

	"docushield-workers/internal/models"
)

var overallByRisk = map[models.RiskLevel]int{
	models.RiskLow:    95,
	models.RiskMedium: 72,
	models.RiskHigh:   45,
}

const (
	// unscoredOverall is only reachable for a result that skipped normalization.
	unscoredOverall = 50

	categoryPassScore  = 100
	categoryOtherScore = 50
	eligibilityScore   = 80
)

// Score maps an audit result to its readiness score. It is a fixed lookup,
// not a fitted model.
func Score(result *models.AuditResult) models.ReadinessScore {
	overall, ok := overallByRisk[result.OverallRisk]
	if !ok {
		overall = unscoredOverall
	}

	return models.ReadinessScore{
		Overall: overall,
		Breakdown: models.ScoreBreakdown{
			Identity:    categoryScore(result.Checks, "identity"),
			Financials:  categoryScore(result.Checks, "financial"),
			Eligibility: eligibilityScore,
			Risk:        overall,
		},
	}
}

// categoryScore looks at the first check whose category mentions keyword.
func categoryScore(checks []models.AuditCheck, keyword string) int {
	for _, c := range checks {
		if strings.Contains(strings.ToLower(c.Category), keyword) {
			if c.Status == models.CheckStatusPass {
				return categoryPassScore
			}
			return categoryOtherScore
		}
	}
	return categoryOtherScore
}

const defaultHowToFix = "See detailed recommendations."

// DeriveIssues flattens every issue of a Fail or Warning check into the
// dashboard issue list. Ids index the flagged checks only.
func DeriveIssues(result *models.AuditResult) []models.AuditIssue {
	issues := []models.AuditIssue{}
	flagged := 0
	for _, c := range result.Checks {
		var severity models.Severity
		switch c.Status {
		case models.CheckStatusFail:
			severity = models.SeverityMustFix
		case models.CheckStatusWarning:
			severity = models.SeverityRecommended
		default:
			continue
		}

		for j, text := range c.Issues {
			issues = append(issues, models.AuditIssue{
				ID:           fmt.Sprintf("issue_%d_%d", flagged, j),
				Type:         c.Category,
				Severity:     severity,
				Documents:    []string{},
				Description:  text,
				WhyItMatters: c.Notes,
				HowToFix:     defaultHowToFix,
			})
		}
		flagged++
	}
	return issues
}
