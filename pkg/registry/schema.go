// pkg/registry/schema.go
package registry

// OperationRegistry is the machine-readable catalog of backend operations
// the dashboard consumes. configs/operations.json is its committed form.
type OperationRegistry struct {
	Version     string      `json:"version"`
	LastUpdated string      `json:"lastUpdated"`
	Operations  []Operation `json:"operations"`
}

type Operation struct {
	ID           string                 `json:"id"`
	DisplayName  string                 `json:"displayName"`
	Description  string                 `json:"description"`
	Component    string                 `json:"component"`
	Method       string                 `json:"method"`
	Path         string                 `json:"path"`
	Roles        []string               `json:"roles"`
	InputSchema  map[string]interface{} `json:"inputSchema"`
	OutputSchema map[string]interface{} `json:"outputSchema"`
	ErrorCodes   []string               `json:"errorCodes"`
	Timeout      string                 `json:"timeout"`
	Tags         []string               `json:"tags"`
}
