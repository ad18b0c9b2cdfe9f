// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
)

func LoadRegistry(path string) (*OperationRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg OperationRegistry
	err = json.Unmarshal(data, &reg)
	return &reg, err
}

// Find returns the operation with the given id, or nil.
func (r *OperationRegistry) Find(id string) *Operation {
	for i := range r.Operations {
		if r.Operations[i].ID == id {
			return &r.Operations[i]
		}
	}
	return nil
}

// Validate checks the catalog for the mistakes that bite at runtime:
// duplicate ids, missing method or path, operations with no allowed role.
func (r *OperationRegistry) Validate() error {
	seen := make(map[string]bool, len(r.Operations))
	for _, op := range r.Operations {
		if op.ID == "" {
			return fmt.Errorf("operation with empty id")
		}
		if seen[op.ID] {
			return fmt.Errorf("duplicate operation id: %s", op.ID)
		}
		seen[op.ID] = true

		if op.Method == "" || op.Path == "" {
			return fmt.Errorf("operation %s: method and path are required", op.ID)
		}
		if len(op.Roles) == 0 {
			return fmt.Errorf("operation %s: at least one role is required", op.ID)
		}
	}
	return nil
}
