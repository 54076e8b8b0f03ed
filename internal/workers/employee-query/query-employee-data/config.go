// internal/workers/employee-query/query-employee-data/config.go
package queryemployeedata

import (
	"time"

	"employee-query-workers/internal/common/config"
	"employee-query-workers/pkg/registry"
)

type Config struct {
	Timeout      time.Duration
	QueryTimeout time.Duration
	InputSchema  map[string]interface{}
}

// LoadConfig bounds each fetch by the assistant query timeout, never longer than the job timeout.
func LoadConfig(wc config.WorkerConfig, ac config.AssistantConfig, activity registry.Activity) *Config {
	timeout := config.GetDuration(wc.Timeout)
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	queryTimeout := ac.QueryTimeout()
	if queryTimeout <= 0 || queryTimeout > timeout {
		queryTimeout = timeout
	}
	return &Config{
		Timeout:      timeout,
		QueryTimeout: queryTimeout,
		InputSchema:  activity.InputSchema,
	}
}
