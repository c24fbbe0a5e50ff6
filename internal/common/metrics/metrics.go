package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	FilesClassified = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audit_files_classified_total",
			Help: "Filenames classified per category",
		},
		[]string{"category"},
	)

	AuditsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audit_results_total",
			Help: "Normalized audit results per case type and overall risk",
		},
		[]string{"case_type", "risk"},
	)

	AuditParseFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audit_parse_failures_total",
			Help: "Engine responses that could not be parsed as JSON",
		},
		[]string{"case_type"},
	)

	AuditSchemaMismatches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audit_schema_mismatches_total",
			Help: "Engine responses that parsed but did not match the expected schema",
		},
		[]string{"case_type"},
	)

	EngineLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "audit_engine_latency_seconds",
			Help:    "Reasoning engine call latency",
			Buckets: []float64{1, 2.5, 5, 10, 20, 30, 60, 120},
		},
		[]string{"case_type", "outcome"},
	)

	ReadinessScores = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "audit_readiness_score",
			Help:    "Overall readiness scores produced",
			Buckets: []float64{45, 50, 72, 95},
		},
		[]string{"case_type"},
	)
)
