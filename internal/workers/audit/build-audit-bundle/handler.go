// internal/workers/audit/build-audit-bundle/handler.go
package buildauditbundle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"docushield-workers/internal/audit/bundle"
	"docushield-workers/internal/audit/pipeline"
	apperrors "docushield-workers/internal/common/errors"
	"docushield-workers/internal/common/logger"
	"docushield-workers/internal/common/metrics"
	"docushield-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "build-audit-bundle"
)

var (
	ErrInvalidInput = errors.New("INVALID_AUDIT_INPUT")
)

type Handler struct {
	config       *Config
	logger       logger.Logger
	errorHandler *apperrors.ErrorHandler
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	if config.Timeout == 0 {
		config.Timeout = LoadConfig().Timeout
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
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

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	caseType, err := models.ParseCaseType(input.CaseType)
	if err != nil {
		return nil, err
	}

	uploads := input.Uploads
	if caseType == models.CaseTypeVisitor {
		files, _, err := pipeline.ClassifyRequest(&pipeline.Request{
			Filenames: input.Filenames,
			Files:     input.ClassifiedFiles,
		})
		if err != nil {
			return nil, err
		}
		uploads = bundle.FolderUploads(files)
	}

	b, payload, err := bundle.BuildPayload(caseType, input.ApplicantContext, uploads)
	if err != nil {
		return nil, err
	}
	payload.WebSearch = h.config.WebSearch

	sections := make([]string, 0, len(b.Sections))
	for _, s := range b.Sections {
		sections = append(sections, s.Title)
	}
	missing := b.MissingSections()
	if missing == nil {
		missing = []string{}
	}
	unmapped := b.Unmapped
	if unmapped == nil {
		unmapped = []string{}
	}

	if len(unmapped) > 0 {
		h.logger.Warn("uploads not mapped to any section", map[string]interface{}{
			"caseType":       caseType.String(),
			"requirementIds": unmapped,
		})
	}

	return &Output{
		CaseType:        caseType,
		Payload:         payload,
		Sections:        sections,
		MissingSections: missing,
		UnmappedUploads: unmapped,
		PromptBytes:     len(payload.Prompt),
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
