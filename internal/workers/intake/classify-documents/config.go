// internal/workers/intake/classify-documents/config.go
package classifydocuments

import "time"

type Config struct {
	Timeout time.Duration
	// MaxArchiveBytes caps the decoded archive size. Zero disables the check.
	MaxArchiveBytes int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:         10 * time.Second,
		MaxArchiveBytes: 50 << 20,
	}
}
