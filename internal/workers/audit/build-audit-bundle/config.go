// internal/workers/audit/build-audit-bundle/config.go
package buildauditbundle

import "time"

type Config struct {
	Timeout time.Duration
	// WebSearch lets the engine ground policy checks with a search tool.
	WebSearch bool
}

func LoadConfig() *Config {
	return &Config{
		Timeout:   10 * time.Second,
		WebSearch: true,
	}
}
