// internal/workers/reporting/send-audit-notification/models.go
package sendauditnotification

import "docushield-workers/internal/models"

type Input struct {
	AuditID        string                `json:"auditId"`
	ApplicantID    string                `json:"applicantId"`
	ApplicantName  string                `json:"applicantName"`
	ApplicantEmail string                `json:"applicantEmail"`
	CaseType       string                `json:"caseType"`
	OverallRisk    models.RiskLevel      `json:"overallRisk"`
	ReadinessScore models.ReadinessScore `json:"readinessScore"`
	MustFixCount   int                   `json:"mustFixCount"`
	ReportID       string                `json:"reportId,omitempty"`
}

type Output struct {
	NotificationID string `json:"notificationId"`
	EmailSent      bool   `json:"emailSent"`
	EmailMessageID string `json:"emailMessageId,omitempty"`
	EventPublished bool   `json:"eventPublished"`
	EventMessageID string `json:"eventMessageId,omitempty"`
	SentAt         string `json:"sentAt"`
}

// auditCompletedEvent is the SNS message body.
type auditCompletedEvent struct {
	NotificationID string `json:"notificationId"`
	Event          string `json:"event"`
	AuditID        string `json:"auditId"`
	ReportID       string `json:"reportId,omitempty"`
	ApplicantID    string `json:"applicantId"`
	CaseType       string `json:"caseType"`
	OverallRisk    string `json:"overallRisk"`
	OverallScore   int    `json:"overallScore"`
	MustFixCount   int    `json:"mustFixCount"`
	ReportURL      string `json:"reportUrl,omitempty"`
	OccurredAt     string `json:"occurredAt"`
}
