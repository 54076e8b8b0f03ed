// internal/workers/employee-query/answer-employee-query/config.go
package answeremployeequery

import (
	"time"

	"employee-query-workers/internal/common/config"
	"employee-query-workers/pkg/registry"
)

type Config struct {
	Timeout     time.Duration
	InputSchema map[string]interface{}
}

func LoadConfig(wc config.WorkerConfig, activity registry.Activity) *Config {
	timeout := config.GetDuration(wc.Timeout)
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Config{
		Timeout:     timeout,
		InputSchema: activity.InputSchema,
	}
}
