// Package engine answers one free-text question end to end: classify, fetch, render.
package engine

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"employee-query-workers/internal/assistant/format"
	"employee-query-workers/internal/assistant/history"
	"employee-query-workers/internal/assistant/intent"
	"employee-query-workers/internal/assistant/store"
	apperrors "employee-query-workers/internal/common/errors"
	"employee-query-workers/internal/common/logger"
	"employee-query-workers/internal/common/metrics"
	"employee-query-workers/internal/common/observability"
	"employee-query-workers/internal/models"
)

const DefaultQueryTimeout = 5 * time.Second

// Answer is the outcome of one query. Text is always set.
type Answer struct {
	RequestID string              `json:"requestId"`
	Intent    models.Intent       `json:"intent"`
	Params    models.Params       `json:"params"`
	Text      string              `json:"response"`
	ErrorCode apperrors.ErrorCode `json:"errorCode,omitempty"`
	Exit      bool                `json:"exit"`
	Result    *models.ResultSet   `json:"-"`
}

type Options struct {
	QueryTimeout  time.Duration
	History       history.Recorder
	Observability *observability.Observability
}

// Engine holds no per-request state and is safe for concurrent use.
type Engine struct {
	store   store.Store
	history history.Recorder
	obs     *observability.Observability
	timeout time.Duration
	logger  logger.Logger
}

func New(s store.Store, log logger.Logger, opts Options) *Engine {
	if opts.QueryTimeout <= 0 {
		opts.QueryTimeout = DefaultQueryTimeout
	}
	if opts.History == nil {
		opts.History = history.Nop{}
	}
	return &Engine{
		store:   s,
		history: opts.History,
		obs:     opts.Observability,
		timeout: opts.QueryTimeout,
		logger:  log.WithFields(map[string]interface{}{"component": "engine"}),
	}
}

// Process answers text. It never fails: classification and storage errors become the answer text.
func (e *Engine) Process(ctx context.Context, text string) Answer {
	return e.ProcessWithID(ctx, uuid.NewString(), text)
}

// ProcessWithID is Process with a caller-supplied request id.
func (e *Engine) ProcessWithID(ctx context.Context, requestID, text string) Answer {
	if requestID == "" {
		requestID = uuid.NewString()
	}
	start := time.Now()
	ctx, span := e.obs.StartSpan(ctx, "assistant.process", attribute.String("request.id", requestID))
	defer span.End()

	answer := e.answer(ctx, requestID, text)

	status := "ok"
	if answer.ErrorCode != "" {
		status = string(answer.ErrorCode)
		span.SetStatus(codes.Error, status)
	}
	span.SetAttributes(attribute.String("intent", string(answer.Intent)))

	elapsed := time.Since(start)
	metrics.ObserveQuery(string(answer.Intent), status, elapsed)
	e.obs.RecordQuery(ctx, string(answer.Intent), status, elapsed)

	if err := e.history.Record(ctx, history.Entry{
		RequestID: requestID,
		Query:     text,
		Intent:    string(answer.Intent),
		ErrorCode: string(answer.ErrorCode),
	}); err != nil {
		e.logger.Warn("failed to record query history", map[string]interface{}{
			"requestId": requestID,
			"error":     err,
		})
	}

	e.logger.Debug("query answered", map[string]interface{}{
		"requestId": requestID,
		"intent":    answer.Intent,
		"status":    status,
		"duration":  elapsed.String(),
	})
	return answer
}

func (e *Engine) answer(ctx context.Context, requestID, text string) Answer {
	parsed, err := intent.Classify(text)
	answer := Answer{
		RequestID: requestID,
		Intent:    parsed.Intent,
		Params:    parsed.Params,
		Exit:      parsed.Intent == models.IntentExit,
	}
	if err != nil {
		return e.withError(answer, err)
	}

	if !parsed.Intent.NeedsData() {
		answer.Text = format.Render(parsed, models.ResultSet{Intent: parsed.Intent})
		return answer
	}

	qctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	rs, err := store.Fetch(qctx, e.store, parsed)
	if err != nil {
		e.logger.Error("storage query failed", map[string]interface{}{
			"requestId": requestID,
			"queryType": parsed.Intent,
			"error":     err,
		})
		return e.withError(answer, err)
	}

	answer.Result = &rs
	answer.Text = format.Render(parsed, rs)
	return answer
}

func (e *Engine) withError(answer Answer, err error) Answer {
	stdErr, ok := apperrors.AsStandardError(err)
	if !ok {
		stdErr = apperrors.NewStorageError(string(answer.Intent), err)
	}
	answer.ErrorCode = stdErr.Code
	answer.Text = stdErr.UserMessage()
	return answer
}

// History returns the most recent answered queries, newest first.
func (e *Engine) History(ctx context.Context, n int) ([]history.Entry, error) {
	return e.history.Recent(ctx, n)
}

// IntentCounts returns how many recorded queries fell under each intent.
func (e *Engine) IntentCounts(ctx context.Context) (map[string]int64, error) {
	return e.history.IntentCounts(ctx)
}
