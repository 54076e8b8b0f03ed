package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveQuery(t *testing.T) {
	before := testutil.ToFloat64(QueriesProcessed.WithLabelValues("manager-list", "ok"))
	ObserveQuery("manager-list", "ok", 10*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(QueriesProcessed.WithLabelValues("manager-list", "ok")))
}

func TestTrackJob(t *testing.T) {
	const task = "metrics-test-task"

	done := TrackJob(task)
	assert.Equal(t, float64(1), testutil.ToFloat64(WorkerJobsActive.WithLabelValues(task)))
	done("")
	assert.Equal(t, float64(0), testutil.ToFloat64(WorkerJobsActive.WithLabelValues(task)))
	assert.Equal(t, float64(1), testutil.ToFloat64(WorkerJobsCompleted.WithLabelValues(task)))

	TrackJob(task)("STORAGE_ERROR")
	assert.Equal(t, float64(1), testutil.ToFloat64(WorkerJobsFailed.WithLabelValues(task, "STORAGE_ERROR")))
}
