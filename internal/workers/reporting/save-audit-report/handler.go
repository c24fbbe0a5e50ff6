// internal/workers/reporting/save-audit-report/handler.go
package saveauditreport

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	apperrors "docushield-workers/internal/common/errors"
	"docushield-workers/internal/common/logger"
	"docushield-workers/internal/common/metrics"
	"docushield-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "save-audit-report"
)

var (
	ErrInvalidInput = errors.New("INVALID_AUDIT_INPUT")
)

// Re-running the job for the same audit overwrites the stored report and
// keeps its original id.
const upsertReport = `
	INSERT INTO audit_reports (
		id, audit_id, applicant_id, case_type, overall_risk, readiness_score,
		stream, result, score, issues, schema_mismatch, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)
	ON CONFLICT (audit_id) DO UPDATE SET
		overall_risk    = EXCLUDED.overall_risk,
		readiness_score = EXCLUDED.readiness_score,
		stream          = EXCLUDED.stream,
		result          = EXCLUDED.result,
		score           = EXCLUDED.score,
		issues          = EXCLUDED.issues,
		schema_mismatch = EXCLUDED.schema_mismatch,
		updated_at      = EXCLUDED.updated_at
	RETURNING id`

type Handler struct {
	config       *Config
	db           *sql.DB
	logger       logger.Logger
	errorHandler *apperrors.ErrorHandler
}

func NewHandler(config *Config, db *sql.DB, log logger.Logger) *Handler {
	if config.Timeout == 0 {
		config.Timeout = LoadConfig().Timeout
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		db:           db,
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
	if input.AuditResult == nil {
		return nil, fmt.Errorf("%w: auditResult is required", ErrInvalidInput)
	}
	if err := input.AuditResult.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	issues := input.Issues
	if issues == nil {
		issues = []models.AuditIssue{}
	}

	resultJSON, err := json.Marshal(input.AuditResult)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal result: %v", ErrInvalidInput, err)
	}
	scoreJSON, err := json.Marshal(input.ReadinessScore)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal score: %v", ErrInvalidInput, err)
	}
	issuesJSON, err := json.Marshal(issues)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal issues: %v", ErrInvalidInput, err)
	}

	savedAt := time.Now().UTC()
	var reportID string
	err = h.db.QueryRowContext(ctx, upsertReport,
		uuid.New().String(),
		input.AuditID,
		input.ApplicantID,
		input.AuditResult.CaseType.String(),
		string(input.AuditResult.OverallRisk),
		input.ReadinessScore.Overall,
		input.AuditResult.Stream,
		resultJSON,
		scoreJSON,
		issuesJSON,
		input.SchemaMismatch,
		savedAt,
	).Scan(&reportID)
	if err != nil {
		h.logger.Error("failed to store audit report", map[string]interface{}{
			"auditId": input.AuditID,
			"error":   err.Error(),
		})
		return nil, apperrors.NewReportPersistFailedError(input.AuditID, err)
	}

	h.logger.Info("audit report stored", map[string]interface{}{
		"reportId":    reportID,
		"auditId":     input.AuditID,
		"applicantId": input.ApplicantID,
		"overallRisk": input.AuditResult.OverallRisk,
	})

	return &Output{
		ReportID: reportID,
		AuditID:  input.AuditID,
		SavedAt:  savedAt.Format(time.RFC3339),
	}, nil
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
