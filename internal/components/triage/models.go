package triage

import (
	"pragati-dashboard/internal/backend"
	"pragati-dashboard/internal/common/auth"
	"pragati-dashboard/internal/common/logger"
	"pragati-dashboard/internal/models"
)

// UpdateInput is what the edit dialog carries. On failure the caller keeps
// these values so the dialog retains the attempted edit.
type UpdateInput struct {
	ID             string                 `json:"id"`
	Status         models.ComplaintStatus `json:"status"`
	ResolutionNote string                 `json:"resolutionNote"`
}

// Page is the most recently fetched school-wide listing. Search operates
// only on this snapshot.
type Page struct {
	SchoolID string                  `json:"schoolId"`
	Filter   *models.ComplaintStatus `json:"filter,omitempty"`
	Total    int                     `json:"total"`
	Items    []models.Complaint      `json:"items"`
}

// Row is a rendered listing line. Student identity is already reduced to a
// display string here, so anonymous complaints cannot leak a name further
// down the render path.
type Row struct {
	ID             string `json:"id"`
	CategoryLabel  string `json:"categoryLabel"`
	StatusLabel    string `json:"statusLabel"`
	Description    string `json:"description"`
	StudentDisplay string `json:"studentDisplay"`
	Classroom      string `json:"classroom"`
	ResolutionNote string `json:"resolutionNote,omitempty"`
}

type ServiceDependencies struct {
	Logger   logger.Logger
	Backend  *backend.Client
	Sessions *auth.Store
}
