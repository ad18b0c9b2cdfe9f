package reports

import (
	"pragati-dashboard/internal/backend"
	"pragati-dashboard/internal/common/auth"
	"pragati-dashboard/internal/common/logger"
)

// RangeInput is the report period as the date pickers produce it,
// calendar dates in YYYY-MM-DD form.
type RangeInput struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type ServiceDependencies struct {
	Logger   logger.Logger
	Backend  *backend.Client
	Sessions *auth.Store
}
