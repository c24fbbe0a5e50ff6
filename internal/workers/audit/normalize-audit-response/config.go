// internal/workers/audit/normalize-audit-response/config.go
package normalizeauditresponse

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
