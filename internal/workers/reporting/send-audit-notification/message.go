// internal/workers/reporting/send-audit-notification/message.go
package sendauditnotification

import (
	"fmt"
	"html"
	"strings"
)

func reportURL(base, auditID string) string {
	if base == "" {
		return ""
	}
	return strings.TrimRight(base, "/") + "/audits/" + auditID
}

func emailSubject(input *Input) string {
	return fmt.Sprintf("Your %s document audit is ready", input.CaseType)
}

func greeting(name string) string {
	if name == "" {
		return "Hello,"
	}
	return fmt.Sprintf("Hello %s,", name)
}

func emailText(input *Input, link string) string {
	var b strings.Builder
	b.WriteString(greeting(input.ApplicantName) + "\n\n")
	fmt.Fprintf(&b, "We finished auditing your %s documents.\n\n", input.CaseType)
	fmt.Fprintf(&b, "Overall risk: %s\n", input.OverallRisk)
	fmt.Fprintf(&b, "Readiness score: %d/100\n", input.ReadinessScore.Overall)
	fmt.Fprintf(&b, "Issues to fix before submitting: %d\n", input.MustFixCount)
	if link != "" {
		fmt.Fprintf(&b, "\nView the full report: %s\n", link)
	}
	return b.String()
}

func emailHTML(input *Input, link string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>%s</p>", html.EscapeString(greeting(input.ApplicantName)))
	fmt.Fprintf(&b, "<p>We finished auditing your %s documents.</p>", html.EscapeString(input.CaseType))
	b.WriteString("<ul>")
	fmt.Fprintf(&b, "<li>Overall risk: <strong>%s</strong></li>", html.EscapeString(string(input.OverallRisk)))
	fmt.Fprintf(&b, "<li>Readiness score: <strong>%d/100</strong></li>", input.ReadinessScore.Overall)
	fmt.Fprintf(&b, "<li>Issues to fix before submitting: <strong>%d</strong></li>", input.MustFixCount)
	b.WriteString("</ul>")
	if link != "" {
		fmt.Fprintf(&b, `<p><a href="%s">View the full report</a></p>`, html.EscapeString(link))
	}
	return b.String()
}
