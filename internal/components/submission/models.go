package submission

import (
	"pragati-dashboard/internal/backend"
	"pragati-dashboard/internal/common/auth"
	"pragati-dashboard/internal/common/logger"
	"pragati-dashboard/internal/models"
)

// SubmitInput is what the student compose form carries. On failure the
// caller keeps this value so the form retains what was typed.
type SubmitInput struct {
	Category    models.ComplaintCategory `json:"category"`
	Description string                   `json:"description"`
	IsAnonymous bool                     `json:"isAnonymous"`
}

// ListOutput is the student's own complaint history as last fetched.
type ListOutput struct {
	Total int                `json:"total"`
	Items []models.Complaint `json:"items"`
}

type ServiceDependencies struct {
	Logger   logger.Logger
	Backend  *backend.Client
	Sessions *auth.Store
}
