package queryemployeedata

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"employee-query-workers/internal/assistant/store"
	apperrors "employee-query-workers/internal/common/errors"
	"employee-query-workers/internal/common/logger"
	"employee-query-workers/internal/common/metrics"
	"employee-query-workers/internal/common/validation"
	"employee-query-workers/internal/models"
)

const (
	TaskType = "query-employee-data"
)

type Handler struct {
	config     *Config
	store      store.Store
	errHandler *apperrors.ErrorHandler
	logger     logger.Logger
}

func NewHandler(config *Config, s store.Store, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		store:      s,
		errHandler: apperrors.NewErrorHandler(log),
		logger:     log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	done := metrics.TrackJob(TaskType)

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	input, err := h.decode(job.Variables)
	if err != nil {
		done(string(apperrors.ErrCodeInvalidInput))
		h.errHandler.HandleJobError(ctx, client, job, err)
		return
	}

	output, err := h.execute(ctx, input)
	if err != nil {
		done(string(apperrors.Normalize(err).Code))
		h.errHandler.HandleJobError(ctx, client, job, err)
		return
	}

	done("")
	h.completeJob(ctx, client, job, output)
}

func (h *Handler) decode(variables string) (*Input, error) {
	if result := validation.ValidateJSON(variables, h.config.InputSchema); !result.Valid {
		return nil, apperrors.NewInvalidInputError(result.Summary())
	}
	var input Input
	if err := json.Unmarshal([]byte(variables), &input); err != nil {
		return nil, apperrors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err))
	}
	return &input, nil
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, apperrors.NewInvalidInputError("input cannot be nil")
	}

	intent := models.Intent(input.Intent)
	if !intent.Valid() {
		return nil, apperrors.NewInvalidInputError(fmt.Sprintf("unknown intent %q", input.Intent))
	}

	ctx, cancel := context.WithTimeout(ctx, h.config.QueryTimeout)
	defer cancel()

	start := time.Now()
	rs, err := store.Fetch(ctx, h.store, models.ParsedIntent{Intent: intent, Params: input.Params})
	elapsed := time.Since(start)
	if err != nil {
		metrics.ObserveQuery(input.Intent, string(apperrors.Normalize(err).Code), elapsed)
		return nil, err
	}
	metrics.ObserveQuery(input.Intent, "ok", elapsed)

	h.logger.Debug("query executed", map[string]interface{}{
		"intent":   input.Intent,
		"rowCount": rs.RowCount(),
		"elapsed":  elapsed.String(),
	})

	return &Output{
		ResultSet:          rs,
		RowCount:           rs.RowCount(),
		QueryExecutionTime: elapsed.Milliseconds(),
	}, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) Decode(variables string) (*Input, error) {
	return h.decode(variables)
}
