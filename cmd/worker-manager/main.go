// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"docushield-workers/internal/audit/engine"
	"docushield-workers/internal/audit/pipeline"
	awsclient "docushield-workers/internal/common/aws"
	"docushield-workers/internal/common/camunda"
	"docushield-workers/internal/common/config"
	"docushield-workers/internal/common/database"
	"docushield-workers/internal/common/logger"
	"docushield-workers/internal/common/observability"

	// Intake Workers (2)
	cd "docushield-workers/internal/workers/intake/classify-documents"
	gr "docushield-workers/internal/workers/intake/group-requirements"

	// Audit Workers (5)
	bab "docushield-workers/internal/workers/audit/build-audit-bundle"
	iae "docushield-workers/internal/workers/audit/invoke-audit-engine"
	nar "docushield-workers/internal/workers/audit/normalize-audit-response"
	rda "docushield-workers/internal/workers/audit/run-document-audit"
	sr "docushield-workers/internal/workers/audit/score-readiness"

	// Reporting Workers (2)
	sar "docushield-workers/internal/workers/reporting/save-audit-report"
	san "docushield-workers/internal/workers/reporting/send-audit-notification"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	bootLog := logger.New("info", "console")

	cfg, err := config.Load()
	if err != nil {
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.NewWithOutput(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()

	log := logger.ForService(logger.NewZapAdapter(zapLog), cfg.App.Name, cfg.App.Version)

	zapLog.Info("Starting worker manager...", zap.String("environment", cfg.App.Environment))

	ctx := context.Background()

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	if err := obs.EnableTracing(ctx, cfg.App.Name, observability.TracingConfig{
		Endpoint:    cfg.Tracing.Endpoint,
		Insecure:    cfg.Tracing.Insecure,
		SampleRatio: cfg.Tracing.SampleRatio,
		Version:     cfg.App.Version,
	}); err != nil {
		zapLog.Warn("tracing disabled", zap.Error(err))
	}

	// --- Init Zeebe Client with retry ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClient(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: cfg.Camunda.UsePlaintext,
			RequestTimeout:         config.GetDuration(cfg.Camunda.RequestTimeout),
		}, log)
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	defer zeebe.Close()

	// --- Init PostgreSQL with retry (optional report store) ---
	var pg *database.PostgresClient
	if cfg.Database.Postgres.Enabled() && config.IsWorkerEnabled(cfg, sar.TaskType) {
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()

		if err := pg.Migrate(ctx); err != nil {
			zapLog.Fatal("postgres migration failed", zap.Error(err))
		}
		zapLog.Info("PostgreSQL connected successfully")
	}

	// --- Init Redis with retry (optional response cache) ---
	var cache redis.Cmdable
	if cfg.Audit.CacheTTL > 0 {
		var rc *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			rc, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return rc.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer rc.Close()
		cache = rc.Client
		zapLog.Info("Redis connected successfully")
	}

	// --- Init Audit Engine ---
	invoker, err := engine.New(ctx, engine.Settings{
		Provider:       cfg.Audit.Provider,
		APIKey:         cfg.APIs.GenAI.APIKey,
		BaseURL:        cfg.APIs.GenAI.BaseURL,
		Model:          cfg.Audit.Model,
		ThinkingBudget: int32(cfg.Audit.ThinkingBudget),
		CacheTTL:       time.Duration(cfg.Audit.CacheTTL) * time.Second,
	}, cache, log)
	if err != nil {
		zapLog.Fatal("audit engine init failed", zap.Error(err))
	}
	auditPipeline := pipeline.New(invoker, log, pipeline.WithWebSearch(!cfg.Audit.DisableWebSearch))

	// --- Init Notification Clients ---
	var sesClient san.SESService
	var snsClient san.SNSService
	notifyEnabled := cfg.Notifications.Email.Enabled || cfg.Notifications.SNS.Enabled
	if notifyEnabled && config.IsWorkerEnabled(cfg, san.TaskType) {
		awsCfg, err := awsclient.LoadConfig(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("aws config failed", zap.Error(err))
		}
		if cfg.Notifications.Email.Enabled {
			sesClient = awsclient.NewSESClient(awsCfg)
		}
		if cfg.Notifications.SNS.Enabled {
			snsClient = awsclient.NewSNSClient(awsCfg)
		}
	}

	// --- Register Workers ---
	registry := camunda.NewRegistry(zeebe.GetClient(), log)

	// --- 1. Intake Workers (2) ---
	registry.Register(cd.TaskType, config.GetWorkerConfig(cfg, cd.TaskType),
		cd.NewHandler(cd.LoadConfig(), log).Handle)

	registry.Register(gr.TaskType, config.GetWorkerConfig(cfg, gr.TaskType),
		gr.NewHandler(gr.LoadConfig(), log).Handle)

	// --- 2. Audit Workers (5) ---
	bundleCfg := bab.LoadConfig()
	bundleCfg.WebSearch = !cfg.Audit.DisableWebSearch
	registry.Register(bab.TaskType, config.GetWorkerConfig(cfg, bab.TaskType),
		bab.NewHandler(bundleCfg, log).Handle)

	registry.Register(iae.TaskType, config.GetWorkerConfig(cfg, iae.TaskType),
		iae.NewHandler(&iae.Config{Timeout: config.GetDuration(cfg.APIs.GenAI.Timeout)}, invoker, log).Handle)

	registry.Register(nar.TaskType, config.GetWorkerConfig(cfg, nar.TaskType),
		nar.NewHandler(nar.LoadConfig(), log).Handle)

	registry.Register(sr.TaskType, config.GetWorkerConfig(cfg, sr.TaskType),
		sr.NewHandler(sr.LoadConfig(), log).Handle)

	registry.Register(rda.TaskType, config.GetWorkerConfig(cfg, rda.TaskType),
		rda.NewHandler(rda.LoadConfig(), auditPipeline, obs, log).Handle)

	// --- 3. Reporting Workers (2) ---
	if pg != nil {
		registry.Register(sar.TaskType, config.GetWorkerConfig(cfg, sar.TaskType),
			sar.NewHandler(sar.LoadConfig(), pg.DB, log).Handle)
	} else {
		zapLog.Warn("no report store configured, worker not started", zap.String("taskType", sar.TaskType))
	}

	registry.Register(san.TaskType, config.GetWorkerConfig(cfg, san.TaskType),
		san.NewHandler(&san.Config{
			EmailEnabled: cfg.Notifications.Email.Enabled,
			FromEmail:    cfg.Notifications.Email.FromEmail,
			SNSEnabled:   cfg.Notifications.SNS.Enabled,
			TopicARN:     cfg.Notifications.SNS.TopicARN,
			DashboardURL: cfg.Audit.DashboardURL,
		}, sesClient, snsClient, log).Handle)

	zapLog.Info("Workers registered", zap.Strings("taskTypes", registry.TaskTypes()))

	// --- Health & Metrics Server ---
	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "healthy", nil)
	})
	http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := zeebe.HealthCheck(r.Context()); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, "not ready", err)
			return
		}
		if pg != nil {
			if err := pg.Ping(r.Context()); err != nil {
				writeStatus(w, http.StatusServiceUnavailable, "not ready", err)
				return
			}
		}
		writeStatus(w, http.StatusOK, "ready", nil)
	})
	http.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Metrics.Port),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	registry.Close()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping Health/Metrics server", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func writeStatus(w http.ResponseWriter, code int, status string, err error) {
	body := map[string]string{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
	}
	if err != nil {
		body["error"] = err.Error()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}
