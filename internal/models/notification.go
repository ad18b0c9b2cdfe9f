// internal/models/notification.go
package models

import "time"

// NotificationCategory is the broadcast category set.
type NotificationCategory string

const (
	NotificationGeneral  NotificationCategory = "general"
	NotificationAcademic NotificationCategory = "academic"
	NotificationEvent    NotificationCategory = "event"
	NotificationUrgent   NotificationCategory = "urgent"
)

var AllNotificationCategories = []NotificationCategory{
	NotificationGeneral,
	NotificationAcademic,
	NotificationEvent,
	NotificationUrgent,
}

func (c NotificationCategory) Valid() bool {
	for _, known := range AllNotificationCategories {
		if c == known {
			return true
		}
	}
	return false
}

// NotificationTarget scopes a non-public notification to a student or
// classroom.
type NotificationTarget struct {
	Type        string `json:"type"` // "student" or "classroom"
	StudentID   string `json:"studentId,omitempty"`
	ClassroomID string `json:"classroomId,omitempty"`
}

// Notification is a time-windowed broadcast. It has no state machine: the
// store decides whether it falls inside its active window; the client just
// renders what the active listing returns.
type Notification struct {
	ID         string               `json:"id"`
	SchoolID   string               `json:"schoolId"`
	Title      string               `json:"title"`
	Body       string               `json:"body"`
	Category   NotificationCategory `json:"category"`
	Priority   int                  `json:"priority"` // 1-5, higher is more urgent
	IsPublic   bool                 `json:"isPublic"`
	ActiveFrom time.Time            `json:"activeFrom"`
	ActiveTill time.Time            `json:"activeTill"`
	CreatedBy  string               `json:"createdBy,omitempty"`
	Targets    []NotificationTarget `json:"targets,omitempty"`
}

// PriorityBand groups priorities the way the dashboard renders them.
func (n *Notification) PriorityBand() string {
	switch {
	case n.Priority >= 4:
		return "urgent"
	case n.Priority >= 3:
		return "announcement"
	default:
		return "general"
	}
}
