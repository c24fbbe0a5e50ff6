// internal/workers/audit/invoke-audit-engine/handler.go
package invokeauditengine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"docushield-workers/internal/audit/engine"
	apperrors "docushield-workers/internal/common/errors"
	"docushield-workers/internal/common/logger"
	"docushield-workers/internal/common/metrics"
	"docushield-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "invoke-audit-engine"
)

var (
	ErrInvalidInput = errors.New("INVALID_AUDIT_INPUT")
)

type Handler struct {
	config       *Config
	invoker      engine.Invoker
	logger       logger.Logger
	errorHandler *apperrors.ErrorHandler
}

func NewHandler(config *Config, invoker engine.Invoker, log logger.Logger) *Handler {
	if config.Timeout == 0 {
		config.Timeout = LoadConfig().Timeout
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		invoker:      invoker,
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
	if input.Payload == nil || strings.TrimSpace(input.Payload.Prompt) == "" {
		return nil, fmt.Errorf("%w: payload prompt is required", ErrInvalidInput)
	}
	if !input.Payload.CaseType.Valid() {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownCaseType, input.Payload.CaseType)
	}
	caseType := input.Payload.CaseType.String()

	start := time.Now()
	resp, err := h.invoker.Invoke(ctx, input.Payload)
	latency := time.Since(start)
	if err != nil {
		metrics.EngineLatency.WithLabelValues(caseType, "error").Observe(latency.Seconds())
		h.logger.Error("engine invocation failed", map[string]interface{}{
			"caseType":  caseType,
			"latencyMs": latency.Milliseconds(),
			"error":     err.Error(),
		})
		return nil, err
	}
	metrics.EngineLatency.WithLabelValues(caseType, "ok").Observe(latency.Seconds())

	citations := resp.Citations
	if citations == nil {
		citations = []models.Citation{}
	}

	h.logger.Info("engine responded", map[string]interface{}{
		"caseType":      caseType,
		"latencyMs":     latency.Milliseconds(),
		"responseBytes": len(resp.Text),
		"citations":     len(citations),
	})

	return &Output{
		RawResponse: resp.Text,
		Citations:   citations,
		LatencyMs:   latency.Milliseconds(),
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
