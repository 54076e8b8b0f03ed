// internal/workers/employee-query/parse-query-intent/config.go
package parsequeryintent

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
		timeout = 5 * time.Second
	}
	return &Config{
		Timeout:     timeout,
		InputSchema: activity.InputSchema,
	}
}
