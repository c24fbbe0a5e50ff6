package intake

import (
	"regexp"

	"docushield-workers/internal/models"
)

// Rule is one keyword group of the classifier. Rules are evaluated in
// slice order and the first match decides the category.
type Rule struct {
	Name     string
	Category models.FileCategory
	Pattern  *regexp.Regexp
}

func newRule(name string, category models.FileCategory, pattern string) Rule {
	return Rule{Name: name, Category: category, Pattern: regexp.MustCompile(pattern)}
}

// Rules is the ordered rule table. Refusal history comes first so that a
// refusal-related file is never filed as a routine current submission.
// Patterns run against the normalized name (lower case, separators as
// spaces, extension removed).
var Rules = []Rule{
	newRule("refusal-history", models.FileCategoryRefusal,
		`refus|reject|denial|denied|adverse|procedural|fairness|previous|prior decision|explanation|history|\bgcms\b`),

	newRule("application-forms", models.FileCategoryCurrent,
		`\bimm|\b(5257|5645|1294|1295|5669|5406|5562|5476)\b|application|\bforms?\b|schedule|family info|representative|use of rep`),
	newRule("identity", models.FileCategoryCurrent,
		`passport|photo|\bpic|\bid\b|identity|aadhaa?r|birth|marriage|\bpr card|national id|licen[cs]e|\bstatus\b`),
	newRule("financials", models.FileCategoryCurrent,
		`bank|statement|fund|balance|account|net worth|\bca report|\bca\b|valuation|asset|property|\btax|\bnoa\b|\bt4\b|\bitr\b|\bpay|salary|slip|income|\bgic\b|loan|scholarship|sponsor`),
	newRule("employment-ties", models.FileCategoryCurrent,
		`\bjob|offer|employ|\bwork|experience|contract|reference|\bleave\b|\bnoc\b|company|business`),
	newRule("travel-purpose", models.FileCategoryCurrent,
		`itinerary|ticket|booking|flight|hotel|invitation|invite|purpose|travel|study plan|\bplan\b|\bsop\b|acceptance|\bloa\b|\bhost`),
	newRule("official-records", models.FileCategoryCurrent,
		`medical|\bime\b|police|\bpcc\b|clearance|ielts|celpip|\bpte\b|\btef\b|\btcf\b|language|transcript|degree|diploma|mark ?sheet|\beca\b|\bwes\b|certificat`),
}
