package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"docushield-workers/internal/audit/bundle"
	"docushield-workers/internal/audit/engine"
	"docushield-workers/internal/audit/intake"
	"docushield-workers/internal/audit/normalize"
	"docushield-workers/internal/audit/scoring"
	"docushield-workers/internal/common/logger"
	"docushield-workers/internal/common/metrics"
	"docushield-workers/internal/models"
)

var ErrInvalidInput = errors.New("INVALID_AUDIT_INPUT")

var tracer = otel.Tracer("docushield-workers/audit")

// Request is an immutable snapshot of one audit. Visitor audits read their
// documents from Archive, Filenames or Files (first non-empty wins); the
// other case types read Uploads.
type Request struct {
	CaseType  models.CaseType
	Context   models.ApplicantContext
	Uploads   []models.UploadedDocument
	Archive   []byte
	Filenames []string
	Files     *models.ClassifiedFileSet
}

type Report struct {
	AuditID         string                    `json:"auditId"`
	CaseType        models.CaseType           `json:"caseType"`
	Classified      *models.ClassifiedFileSet `json:"classified,omitempty"`
	ScannedFiles    int                       `json:"scannedFiles,omitempty"`
	MissingSections []string                  `json:"missingSections"`
	Result          *models.AuditResult       `json:"result"`
	Score           models.ReadinessScore     `json:"score"`
	Issues          []models.AuditIssue       `json:"issues"`
	Mismatches      []string                  `json:"mismatches,omitempty"`
	EngineLatency   time.Duration             `json:"engineLatency"`
}

// Pipeline runs classify, bundle, invoke, normalize and score in sequence.
// It holds no per-audit state, so one Pipeline serves concurrent audits.
type Pipeline struct {
	invoker   engine.Invoker
	logger    logger.Logger
	webSearch bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithWebSearch sets whether rendered payloads ask the engine for its search
// tool. It is on by default.
func WithWebSearch(enabled bool) Option {
	return func(p *Pipeline) {
		p.webSearch = enabled
	}
}

func New(invoker engine.Invoker, log logger.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		invoker:   invoker,
		logger:    log.WithFields(map[string]interface{}{"component": "audit-pipeline"}),
		webSearch: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Pipeline) Run(ctx context.Context, req *Request) (report *Report, err error) {
	ctx, span := tracer.Start(ctx, "audit.run")
	defer func() { endSpan(span, err) }()

	if req == nil {
		return nil, fmt.Errorf("%w: nil request", ErrInvalidInput)
	}
	if !req.CaseType.Valid() {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownCaseType, req.CaseType)
	}

	report = &Report{AuditID: uuid.New().String(), CaseType: req.CaseType}
	span.SetAttributes(
		attribute.String("audit.id", report.AuditID),
		attribute.String("audit.case_type", req.CaseType.String()),
	)
	log := p.logger.WithFields(map[string]interface{}{
		"auditId":  report.AuditID,
		"caseType": req.CaseType.String(),
	})

	uploads := req.Uploads
	if req.CaseType == models.CaseTypeVisitor {
		files, scanned, err := ClassifyRequest(req)
		if err != nil {
			return nil, err
		}
		report.Classified = &files
		report.ScannedFiles = scanned
		uploads = bundle.FolderUploads(files)
	}

	b, payload, err := bundle.BuildPayload(req.CaseType, req.Context, uploads)
	if err != nil {
		return nil, err
	}
	payload.WebSearch = p.webSearch
	report.MissingSections = nonNil(b.MissingSections())
	if len(b.Unmapped) > 0 {
		log.Warn("uploads not mapped to any section", map[string]interface{}{"requirementIds": b.Unmapped})
	}

	invokeCtx, invokeSpan := tracer.Start(ctx, "audit.invoke", trace.WithAttributes(
		attribute.Int("audit.payload_bytes", len(payload.Prompt)),
	))
	start := time.Now()
	resp, err := p.invoker.Invoke(invokeCtx, payload)
	report.EngineLatency = time.Since(start)
	endSpan(invokeSpan, err)
	if err != nil {
		metrics.EngineLatency.WithLabelValues(req.CaseType.String(), "error").Observe(report.EngineLatency.Seconds())
		log.Error("engine invocation failed", map[string]interface{}{"error": err.Error()})
		return nil, err
	}
	metrics.EngineLatency.WithLabelValues(req.CaseType.String(), "ok").Observe(report.EngineLatency.Seconds())

	outcome, err := normalize.Normalize(req.CaseType, resp.Text, resp.Citations)
	if err != nil {
		if errors.Is(err, normalize.ErrParse) {
			metrics.AuditParseFailures.WithLabelValues(req.CaseType.String()).Inc()
		}
		log.Error("failed to normalize engine response", map[string]interface{}{"error": err.Error()})
		return nil, err
	}
	if outcome.SchemaMismatch() {
		metrics.AuditSchemaMismatches.WithLabelValues(req.CaseType.String()).Inc()
		log.Warn("engine response deviates from schema", map[string]interface{}{"mismatches": outcome.Mismatches})
	}

	report.Result = outcome.Result
	report.Mismatches = outcome.Mismatches
	report.Score = scoring.Score(outcome.Result)
	report.Issues = scoring.DeriveIssues(outcome.Result)

	span.SetAttributes(
		attribute.String("audit.overall_risk", string(outcome.Result.OverallRisk)),
		attribute.Int("audit.score", report.Score.Overall),
		attribute.Bool("audit.schema_mismatch", outcome.SchemaMismatch()),
	)
	metrics.AuditsCompleted.WithLabelValues(req.CaseType.String(), string(outcome.Result.OverallRisk)).Inc()
	metrics.ReadinessScores.WithLabelValues(req.CaseType.String()).Observe(float64(report.Score.Overall))

	log.Info("audit completed", map[string]interface{}{
		"overallRisk":  outcome.Result.OverallRisk,
		"score":        report.Score.Overall,
		"checks":       len(outcome.Result.Checks),
		"latencyMs":    report.EngineLatency.Milliseconds(),
		"citations":    len(outcome.Result.Citations),
		"missingCount": len(outcome.Result.MissingDocuments),
	})

	return report, nil
}

// ClassifyRequest resolves the visitor file listing of a request.
func ClassifyRequest(req *Request) (models.ClassifiedFileSet, int, error) {
	switch {
	case len(req.Archive) > 0:
		names, err := intake.ListArchive(req.Archive)
		if err != nil {
			return models.ClassifiedFileSet{}, 0, err
		}
		files, scanned := intake.ClassifyAll(names)
		recordClassified(files)
		return files, scanned, nil
	case len(req.Filenames) > 0:
		files, scanned := intake.ClassifyAll(req.Filenames)
		recordClassified(files)
		return files, scanned, nil
	case req.Files != nil:
		return *req.Files, req.Files.Total(), nil
	}
	return models.ClassifiedFileSet{Current: []string{}, Refusal: []string{}, Supporting: []string{}}, 0, nil
}

func recordClassified(files models.ClassifiedFileSet) {
	metrics.FilesClassified.WithLabelValues(string(models.FileCategoryCurrent)).Add(float64(len(files.Current)))
	metrics.FilesClassified.WithLabelValues(string(models.FileCategoryRefusal)).Add(float64(len(files.Refusal)))
	metrics.FilesClassified.WithLabelValues(string(models.FileCategorySupporting)).Add(float64(len(files.Supporting)))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
