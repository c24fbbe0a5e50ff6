// internal/workers/reporting/send-audit-notification/config.go
package sendauditnotification

import "time"

type Config struct {
	Timeout      time.Duration
	EmailEnabled bool
	FromEmail    string
	SNSEnabled   bool
	TopicARN     string
	// DashboardURL prefixes the report link in emails and events; empty omits it.
	DashboardURL string
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 15 * time.Second,
	}
}
