// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"employee-query-workers/internal/assistant/engine"
	"employee-query-workers/internal/assistant/history"
	"employee-query-workers/internal/assistant/store"
	"employee-query-workers/internal/common/camunda"
	"employee-query-workers/internal/common/config"
	"employee-query-workers/internal/common/database"
	"employee-query-workers/internal/common/logger"
	"employee-query-workers/internal/common/observability"
	"employee-query-workers/pkg/registry"

	aeq "employee-query-workers/internal/workers/employee-query/answer-employee-query"
	bqr "employee-query-workers/internal/workers/employee-query/build-query-response"
	pqi "employee-query-workers/internal/workers/employee-query/parse-query-intent"
	qed "employee-query-workers/internal/workers/employee-query/query-employee-data"
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
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}
	if err := config.ValidateWorkerManager(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	reg, err := registry.Load(cfg.Registry.Path)
	if err != nil {
		zapLog.Fatal("activity registry load failed", zap.Error(err))
	}

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
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
	if err := pg.CheckEmployeesTable(ctx); err != nil {
		zapLog.Fatal("employees table check failed", zap.Error(err))
	}
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis (optional) with retry ---
	var recorder history.Recorder = history.Nop{}
	if cfg.Database.Redis.Enabled() {
		var rdb *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			rdb, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return rdb.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer rdb.Close()
		recorder = history.NewRedisRecorder(rdb.GetClient(), cfg.Assistant.HistoryKey, cfg.Assistant.HistorySize)
		zapLog.Info("Redis connected successfully")
	} else {
		zapLog.Info("Redis not configured, query history disabled")
	}

	// --- Init Zeebe Client ---
	zeebe, err := camunda.NewClient(cfg.Camunda)
	if err != nil {
		zapLog.Fatal("zeebe client failed", zap.Error(err))
	}
	defer zeebe.Close()
	zapLog.Info("Zeebe client connected successfully")

	employeeStore := store.NewPostgresStore(pg.GetDB())
	eng := engine.New(employeeStore, log, engine.Options{
		QueryTimeout:  cfg.Assistant.QueryTimeout(),
		History:       recorder,
		Observability: obs,
	})

	// --- Register Workers ---
	handlers := map[string]camunda.JobHandler{}
	activity := func(taskType string) registry.Activity {
		a, ok := reg.Find(taskType)
		if !ok {
			zapLog.Warn("activity not in registry, input validation disabled", zap.String("taskType", taskType))
		}
		return a
	}

	handlers[pqi.TaskType] = pqi.NewHandler(
		pqi.LoadConfig(config.GetWorkerConfig(cfg, pqi.TaskType), activity(pqi.TaskType)), log)
	handlers[qed.TaskType] = qed.NewHandler(
		qed.LoadConfig(config.GetWorkerConfig(cfg, qed.TaskType), cfg.Assistant, activity(qed.TaskType)), employeeStore, log)
	handlers[bqr.TaskType] = bqr.NewHandler(
		bqr.LoadConfig(config.GetWorkerConfig(cfg, bqr.TaskType), activity(bqr.TaskType)), log)
	handlers[aeq.TaskType] = aeq.NewHandler(
		aeq.LoadConfig(config.GetWorkerConfig(cfg, aeq.TaskType), activity(aeq.TaskType)), eng, log)

	var workers []*camunda.CamundaWorker
	for _, taskType := range []string{pqi.TaskType, qed.TaskType, bqr.TaskType, aeq.TaskType} {
		if !config.IsWorkerEnabled(cfg, taskType) {
			zapLog.Info("worker disabled", zap.String("taskType", taskType))
			continue
		}
		w := camunda.NewWorker(zeebe.GetClient(), taskType, config.GetWorkerConfig(cfg, taskType), handlers[taskType], log, obs)
		w.Start()
		workers = append(workers, w)
	}
	zapLog.Info("workers registered", zap.Int("count", len(workers)))

	// --- Health & Metrics Server ---
	srv := &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           newMux(pg, zeebe),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

	for _, w := range workers {
		w.Stop()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping Health/Metrics server", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

type pinger interface {
	Ping(ctx context.Context) error
}

type healthChecker interface {
	HealthCheck(ctx context.Context) error
}

func newMux(db pinger, zeebe healthChecker) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		checks := map[string]string{"postgres": "ok", "zeebe": "ok"}
		code := http.StatusOK
		if err := db.Ping(ctx); err != nil {
			checks["postgres"] = err.Error()
			code = http.StatusServiceUnavailable
		}
		if err := zeebe.HealthCheck(ctx); err != nil {
			checks["zeebe"] = err.Error()
			code = http.StatusServiceUnavailable
		}
		status := "ready"
		if code != http.StatusOK {
			status = "not ready"
		}
		writeStatus(w, code, map[string]interface{}{
			"status": status,
			"checks": checks,
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func writeStatus(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
