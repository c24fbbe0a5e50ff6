// internal/workers/audit/invoke-audit-engine/config.go
package invokeauditengine

import "time"

type Config struct {
	// Timeout bounds a single engine call. The job timeout in Zeebe should
	// be longer so the worker can report ENGINE_TIMEOUT itself.
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 120 * time.Second,
	}
}
