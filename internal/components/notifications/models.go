package notifications

import (
	"time"

	"pragati-dashboard/internal/backend"
	"pragati-dashboard/internal/common/auth"
	"pragati-dashboard/internal/common/logger"
	"pragati-dashboard/internal/models"
)

// ComposeInput is what the broadcast form carries. SchoolID and CreatedBy
// are never part of the form; they come from the publishing credential.
type ComposeInput struct {
	Title      string                      `json:"title"`
	Body       string                      `json:"body"`
	Category   models.NotificationCategory `json:"category"`
	Priority   int                         `json:"priority"`
	IsPublic   bool                        `json:"isPublic"`
	ActiveFrom time.Time                   `json:"activeFrom"`
	ActiveTill time.Time                   `json:"activeTill"`
	Targets    []models.NotificationTarget `json:"targets,omitempty"`
}

// Feed is the active broadcast set grouped for display. A notification
// appears in exactly one band, decided by priority alone.
type Feed struct {
	Urgent        []models.Notification `json:"urgent"`
	Announcements []models.Notification `json:"announcements"`
	General       []models.Notification `json:"general"`
	Total         int                   `json:"total"`
}

type ServiceDependencies struct {
	Logger   logger.Logger
	Backend  *backend.Client
	Sessions *auth.Store
}
