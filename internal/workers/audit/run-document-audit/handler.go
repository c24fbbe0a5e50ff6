// internal/workers/audit/run-document-audit/handler.go
package rundocumentaudit

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"docushield-workers/internal/audit/pipeline"
	apperrors "docushield-workers/internal/common/errors"
	"docushield-workers/internal/common/logger"
	"docushield-workers/internal/common/metrics"
	"docushield-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "run-document-audit"
)

var (
	ErrInvalidInput = errors.New("INVALID_AUDIT_INPUT")
)

// AuditRunner runs one audit end to end.
type AuditRunner interface {
	Run(ctx context.Context, req *pipeline.Request) (*pipeline.Report, error)
}

// AuditRecorder receives one event per completed audit.
type AuditRecorder interface {
	RecordAudit(ctx context.Context, caseType, risk string, schemaMismatch bool)
}

type Handler struct {
	config       *Config
	runner       AuditRunner
	recorder     AuditRecorder
	logger       logger.Logger
	errorHandler *apperrors.ErrorHandler
}

// NewHandler wires the pipeline. recorder may be nil.
func NewHandler(config *Config, runner AuditRunner, recorder AuditRecorder, log logger.Logger) *Handler {
	if config.Timeout == 0 {
		config.Timeout = LoadConfig().Timeout
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		runner:       runner,
		recorder:     recorder,
		logger:       log,
		errorHandler: apperrors.NewErrorHandler(log),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	if err := validateVariables(job.Variables); err != nil {
		h.failJob(client, job, err)
		return
	}

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
	req, err := h.buildRequest(input)
	if err != nil {
		return nil, err
	}

	report, err := h.runner.Run(ctx, req)
	if err != nil {
		return nil, err
	}

	if h.recorder != nil {
		h.recorder.RecordAudit(ctx, report.CaseType.String(), string(report.Result.OverallRisk), len(report.Mismatches) > 0)
	}

	mustFix := 0
	for _, issue := range report.Issues {
		if issue.Severity == models.SeverityMustFix {
			mustFix++
		}
	}

	return &Output{
		AuditID:         report.AuditID,
		ApplicantID:     input.ApplicantID,
		CaseType:        report.CaseType,
		AuditResult:     report.Result,
		OverallRisk:     report.Result.OverallRisk,
		ReadinessScore:  report.Score,
		Issues:          report.Issues,
		MustFixCount:    mustFix,
		MissingSections: report.MissingSections,
		ClassifiedFiles: report.Classified,
		ScannedFiles:    report.ScannedFiles,
		SchemaMismatch:  len(report.Mismatches) > 0,
		EngineLatencyMs: report.EngineLatency.Milliseconds(),
	}, nil
}

func (h *Handler) buildRequest(input *Input) (*pipeline.Request, error) {
	caseType, err := models.ParseCaseType(input.CaseType)
	if err != nil {
		return nil, err
	}

	req := &pipeline.Request{
		CaseType:  caseType,
		Context:   input.ApplicantContext,
		Uploads:   input.Uploads,
		Filenames: input.Filenames,
		Files:     input.ClassifiedFiles,
	}

	if input.Archive != "" {
		data, err := base64.StdEncoding.DecodeString(input.Archive)
		if err != nil {
			return nil, fmt.Errorf("%w: archive is not valid base64: %v", ErrInvalidInput, err)
		}
		if h.config.MaxArchiveBytes > 0 && len(data) > h.config.MaxArchiveBytes {
			return nil, fmt.Errorf("%w: archive is %d bytes, limit is %d", ErrInvalidInput, len(data), h.config.MaxArchiveBytes)
		}
		req.Archive = data
	}
	return req, nil
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
