// internal/workers/audit/run-document-audit/config.go
package rundocumentaudit

import "time"

type Config struct {
	// Timeout covers the whole pipeline, engine call included.
	Timeout         time.Duration
	MaxArchiveBytes int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:         150 * time.Second,
		MaxArchiveBytes: 50 << 20,
	}
}
