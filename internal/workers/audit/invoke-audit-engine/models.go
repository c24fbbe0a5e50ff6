// internal/workers/audit/invoke-audit-engine/models.go
package invokeauditengine

import (
	"docushield-workers/internal/audit/bundle"
	"docushield-workers/internal/models"
)

type Input struct {
	Payload *bundle.Payload `json:"payload"`
}

type Output struct {
	RawResponse string            `json:"rawResponse"`
	Citations   []models.Citation `json:"citations"`
	LatencyMs   int64             `json:"latencyMs"`
}
