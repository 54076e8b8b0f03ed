package parsequeryintent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"employee-query-workers/internal/assistant/intent"
	apperrors "employee-query-workers/internal/common/errors"
	"employee-query-workers/internal/common/logger"
	"employee-query-workers/internal/common/metrics"
	"employee-query-workers/internal/common/validation"
)

const (
	TaskType = "parse-query-intent"
)

type Handler struct {
	config     *Config
	errHandler *apperrors.ErrorHandler
	logger     logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
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

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, apperrors.NewInvalidInputError("input cannot be nil")
	}

	parsed, err := intent.Classify(input.Query)
	output := &Output{
		Intent: string(parsed.Intent),
		Params: parsed.Params.Map(),
	}
	if err != nil {
		stdErr, ok := apperrors.AsStandardError(err)
		if !ok {
			return nil, err
		}
		output.ErrorCode = string(stdErr.Code)
		output.Message = stdErr.UserMessage()
	}
	return output, nil
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

// Execute classifies input without a job context.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

// Decode validates and decodes raw job variables.
func (h *Handler) Decode(variables string) (*Input, error) {
	return h.decode(variables)
}
