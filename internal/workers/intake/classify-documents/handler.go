// internal/workers/intake/classify-documents/handler.go
package classifydocuments

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

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "classify-documents"
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
	req := &pipeline.Request{Filenames: input.Filenames}

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

	files, scanned, err := pipeline.ClassifyRequest(req)
	if err != nil {
		return nil, err
	}

	h.logger.Info("files classified", map[string]interface{}{
		"scanned":    scanned,
		"current":    len(files.Current),
		"refusal":    len(files.Refusal),
		"supporting": len(files.Supporting),
	})

	return &Output{
		ClassifiedFiles: files,
		ScannedFiles:    scanned,
		CurrentCount:    len(files.Current),
		RefusalCount:    len(files.Refusal),
		SupportingCount: len(files.Supporting),
		HasRefusal:      len(files.Refusal) > 0,
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
