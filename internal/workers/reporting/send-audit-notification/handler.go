// internal/workers/reporting/send-audit-notification/handler.go
package sendauditnotification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	awsclient "docushield-workers/internal/common/aws"
	apperrors "docushield-workers/internal/common/errors"
	"docushield-workers/internal/common/logger"
	"docushield-workers/internal/common/metrics"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "send-audit-notification"

	eventAuditCompleted = "audit.completed"
)

var (
	ErrInvalidInput = errors.New("INVALID_AUDIT_INPUT")
)

type SESService interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error)
}

type Handler struct {
	config       *Config
	sesClient    SESService
	snsClient    SNSService
	logger       logger.Logger
	errorHandler *apperrors.ErrorHandler
}

// NewHandler takes nil clients for disabled channels.
func NewHandler(config *Config, sesClient SESService, snsClient SNSService, log logger.Logger) *Handler {
	if config.Timeout == 0 {
		config.Timeout = LoadConfig().Timeout
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		sesClient:    sesClient,
		snsClient:    snsClient,
		logger:       log,
		errorHandler: apperrors.NewErrorHandler(log),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, fmt.Errorf("%w: parse input: %v", ErrInvalidInput, err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, err)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.AuditID == "" {
		return nil, fmt.Errorf("%w: auditId is required", ErrInvalidInput)
	}

	now := time.Now().UTC()
	output := &Output{
		NotificationID: uuid.New().String(),
		SentAt:         now.Format(time.RFC3339),
	}
	link := reportURL(h.config.DashboardURL, input.AuditID)

	if h.emailEnabled() {
		if to := strings.TrimSpace(input.ApplicantEmail); to != "" {
			id, err := h.sendEmail(ctx, input, to, link)
			if err != nil {
				return nil, apperrors.NewNotificationSendFailedError("email", err)
			}
			output.EmailSent = true
			output.EmailMessageID = id
		} else {
			h.logger.Warn("no applicant email, skipping email", map[string]interface{}{
				"auditId": input.AuditID,
			})
		}
	}

	if h.snsEnabled() {
		id, err := h.publishEvent(ctx, input, output.NotificationID, link, now)
		if err != nil {
			return nil, apperrors.NewNotificationSendFailedError("sns", err)
		}
		output.EventPublished = true
		output.EventMessageID = id
	}

	h.logger.Info("audit notification sent", map[string]interface{}{
		"auditId":        input.AuditID,
		"notificationId": output.NotificationID,
		"emailSent":      output.EmailSent,
		"eventPublished": output.EventPublished,
	})

	return output, nil
}

func (h *Handler) emailEnabled() bool {
	return h.config.EmailEnabled && h.sesClient != nil
}

func (h *Handler) snsEnabled() bool {
	return h.config.SNSEnabled && h.snsClient != nil && h.config.TopicARN != ""
}

func (h *Handler) sendEmail(ctx context.Context, input *Input, to, link string) (string, error) {
	msg := awsclient.EmailInput(h.config.FromEmail, to, emailSubject(input), emailText(input, link), emailHTML(input, link))
	out, err := h.sesClient.SendEmail(ctx, msg)
	if err != nil {
		return "", err
	}
	return aws.ToString(out.MessageId), nil
}

func (h *Handler) publishEvent(ctx context.Context, input *Input, notificationID, link string, now time.Time) (string, error) {
	body, err := json.Marshal(auditCompletedEvent{
		NotificationID: notificationID,
		Event:          eventAuditCompleted,
		AuditID:        input.AuditID,
		ReportID:       input.ReportID,
		ApplicantID:    input.ApplicantID,
		CaseType:       input.CaseType,
		OverallRisk:    string(input.OverallRisk),
		OverallScore:   input.ReadinessScore.Overall,
		MustFixCount:   input.MustFixCount,
		ReportURL:      link,
		OccurredAt:     now.Format(time.RFC3339),
	})
	if err != nil {
		return "", err
	}

	msg := awsclient.EventInput(h.config.TopicARN, "Document audit completed", string(body), map[string]string{
		"event":       eventAuditCompleted,
		"caseType":    input.CaseType,
		"overallRisk": string(input.OverallRisk),
	})
	out, err := h.snsClient.Publish(ctx, msg)
	if err != nil {
		return "", err
	}
	return aws.ToString(out.MessageId), nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if _, err := cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, err error) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(apperrors.FromError(err).Code)).Inc()
	h.errorHandler.HandleJobError(context.Background(), client, job, err)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
