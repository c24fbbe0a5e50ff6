// pkg/registry/schema.go
package registry

// ActivityRegistry documents every service task the worker manager serves.
// Process modelers read it to wire task types, timeouts and error boundaries.
type ActivityRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Activities  []Activity `json:"activities"`
}

type Activity struct {
	ID                   string   `json:"id"`
	DisplayName          string   `json:"displayName"`
	Description          string   `json:"description"`
	Category             string   `json:"category"`
	Version              string   `json:"version"`
	TaskType             string   `json:"taskType"`
	ImplementationStatus string   `json:"implementationStatus"`
	InputVariables       []string `json:"inputVariables"`
	OutputVariables      []string `json:"outputVariables"`
	ErrorCodes           []string `json:"errorCodes"`
	Timeout              string   `json:"timeout"`
	Retries              int      `json:"retries"`
	Tags                 []string `json:"tags,omitempty"`
}

const (
	CategoryIntake    = "intake"
	CategoryAudit     = "audit"
	CategoryReporting = "reporting"
)

var validStatuses = map[string]bool{
	"planned":     true,
	"in-progress": true,
	"completed":   true,
	"verified":    true,
}
