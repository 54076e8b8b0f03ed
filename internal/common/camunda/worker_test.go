package camunda

import (
	"testing"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"employee-query-workers/internal/common/observability"
)

func TestInstrument_RecordsSpanPerJob(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	obs := observability.New("test-worker",
		observability.WithRegisterer(promclient.NewRegistry()),
		observability.WithSpanProcessor(recorder))
	defer obs.Shutdown()

	calls := 0
	h := instrument(func(worker.JobClient, entities.Job) { calls++ }, "parse-query-intent", obs)
	h(nil, entities.Job{})

	assert.Equal(t, 1, calls)
	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "job.parse-query-intent", ended[0].Name())
}

func TestInstrument_NilObservability(t *testing.T) {
	calls := 0
	h := instrument(func(worker.JobClient, entities.Job) { calls++ }, "build-query-response", nil)
	h(nil, entities.Job{})
	assert.Equal(t, 1, calls)
}
