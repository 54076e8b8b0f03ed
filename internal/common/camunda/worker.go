package camunda

import (
	"context"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"

	"employee-query-workers/internal/common/config"
	"employee-query-workers/internal/common/logger"
	"employee-query-workers/internal/common/observability"
)

type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job)
}

type CamundaWorker struct {
	worker   worker.JobWorker
	logger   logger.Logger
	taskType string
}

// NewWorker opens a job worker for taskType. A panicking handler fails the job without retries.
// obs may be nil.
func NewWorker(
	client zbc.Client,
	taskType string,
	wc config.WorkerConfig,
	handler JobHandler,
	log logger.Logger,
	obs *observability.Observability,
) *CamundaWorker {
	log = log.WithFields(map[string]interface{}{"taskType": taskType})

	jobWorker := client.NewJobWorker().
		JobType(taskType).
		Handler(instrument(recoverHandler(handler, log), taskType, obs)).
		MaxJobsActive(wc.MaxJobsActive).
		Timeout(config.GetDuration(wc.Timeout)).
		Name(taskType).
		Open()

	return &CamundaWorker{
		worker:   jobWorker,
		logger:   log,
		taskType: taskType,
	}
}

func instrument(next worker.JobHandler, taskType string, obs *observability.Observability) worker.JobHandler {
	return func(client worker.JobClient, job entities.Job) {
		ctx, span := obs.StartSpan(context.Background(), "job."+taskType)
		defer span.End()

		start := time.Now()
		next(client, job)
		obs.RecordJobProcessed(ctx, taskType)
		obs.RecordJobDuration(ctx, time.Since(start), taskType)
	}
}

func recoverHandler(handler JobHandler, log logger.Logger) worker.JobHandler {
	return func(client worker.JobClient, job entities.Job) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("handler panicked", map[string]interface{}{
					"jobKey": job.Key,
					"panic":  fmt.Sprint(r),
				})
				_, err := client.NewFailJobCommand().
					JobKey(job.Key).
					Retries(0).
					ErrorMessage(fmt.Sprintf("handler panic: %v", r)).
					Send(context.Background())
				if err != nil {
					log.Error("failed to fail job after panic", map[string]interface{}{"error": err})
				}
			}
		}()
		handler.Handle(client, job)
	}
}

func (w *CamundaWorker) TaskType() string {
	return w.taskType
}

func (w *CamundaWorker) Start() {
	w.logger.Info("worker started", nil)
}

// Stop closes the job worker and waits for in-flight jobs. The shared client stays open.
func (w *CamundaWorker) Stop() {
	w.logger.Info("stopping worker", nil)
	w.worker.Close()
	w.worker.AwaitClose()
}
