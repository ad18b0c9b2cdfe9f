// internal/models/complaint.go
package models

import (
	"strings"
	"time"
)

// ComplaintStatus is the lifecycle state of a complaint. New complaints are
// always created open; only the principal surface moves them afterwards.
type ComplaintStatus string

const (
	StatusOpen       ComplaintStatus = "open"
	StatusInProgress ComplaintStatus = "in_progress"
	StatusResolved   ComplaintStatus = "resolved"
	StatusDismissed  ComplaintStatus = "dismissed"
)

var AllStatuses = []ComplaintStatus{StatusOpen, StatusInProgress, StatusResolved, StatusDismissed}

func (s ComplaintStatus) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved, StatusDismissed:
		return true
	}
	return false
}

// Label renders the wire value for display: "in_progress" -> "In Progress".
func (s ComplaintStatus) Label() string {
	return titleFromSnake(string(s))
}

// ComplaintCategory is the fixed set of reportable issues.
type ComplaintCategory string

const (
	CategoryDrinkingWater ComplaintCategory = "lack_of_proper_drinking_water"
	CategoryToilets       ComplaintCategory = "toilets"
	CategoryGirlsToilets  ComplaintCategory = "girls_toilets"
	CategoryLiberty       ComplaintCategory = "liberty"
	CategoryElectricity   ComplaintCategory = "proper_electricity"
	CategoryComputers     ComplaintCategory = "computers"
)

var AllCategories = []ComplaintCategory{
	CategoryDrinkingWater,
	CategoryToilets,
	CategoryGirlsToilets,
	CategoryLiberty,
	CategoryElectricity,
	CategoryComputers,
}

func (c ComplaintCategory) Valid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Label renders the wire value for display and search:
// "proper_electricity" -> "Proper Electricity".
func (c ComplaintCategory) Label() string {
	return titleFromSnake(string(c))
}

func titleFromSnake(s string) string {
	words := strings.Split(s, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// StudentRef identifies the submitting student. Null on the wire when the
// complaint is anonymous.
type StudentRef struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Code      string `json:"code"`
}

func (s *StudentRef) DisplayName() string {
	if s == nil {
		return ""
	}
	return s.FirstName + " " + s.LastName
}

// ClassroomRef is the grade+section pairing a complaint is attached to.
type ClassroomRef struct {
	ID      string  `json:"id"`
	Grade   Grade   `json:"grade"`
	Section Section `json:"section"`
}

type Grade struct {
	Name string `json:"name"`
}

type Section struct {
	Label string `json:"label"`
}

// StaffRef identifies the staff member the store recorded as acting on a
// complaint. Assigned by the store, never by the client.
type StaffRef struct {
	ID    string `json:"id"`
	Role  string `json:"role"`
	Email string `json:"email"`
}

// Complaint is the central entity. category, description, student,
// classroom, isAnonymous and createdAt are write-once at creation; only
// status and resolutionNote (plus the store-derived resolvedBy/resolvedAt)
// change afterwards.
type Complaint struct {
	ID             string            `json:"id"`
	Category       ComplaintCategory `json:"category"`
	Status         ComplaintStatus   `json:"status"`
	Description    string            `json:"description"`
	IsAnonymous    bool              `json:"isAnonymous"`
	Student        *StudentRef       `json:"student"`
	Classroom      ClassroomRef      `json:"classroom"`
	ResolutionNote *string           `json:"resolutionNote"`
	ResolvedBy     *StaffRef         `json:"resolvedBy"`
	CreatedAt      time.Time         `json:"createdAt"`
	ResolvedAt     *time.Time        `json:"resolvedAt,omitempty"`
}

// DisplayStudent returns the student name for rendering, honoring anonymity:
// an anonymous complaint never exposes the student identity even though the
// record may carry one.
func (c *Complaint) DisplayStudent() string {
	if c.IsAnonymous || c.Student == nil {
		return "Anonymous"
	}
	return c.Student.DisplayName()
}

// TransitionPolicy decides whether the triage surface may move a complaint
// from one status to another. The backend accepts any transition; whether
// the client restricts reopening is a product decision, so both policies
// ship and configuration picks one.
type TransitionPolicy func(from, to ComplaintStatus) bool

// OpenTransitions mirrors today's observed behavior: any status can be set
// at any time, including reopening resolved or dismissed complaints.
func OpenTransitions(from, to ComplaintStatus) bool {
	return from.Valid() && to.Valid()
}

// ForwardOnlyTransitions freezes terminal states and otherwise only allows
// moves the lifecycle diagram draws.
func ForwardOnlyTransitions(from, to ComplaintStatus) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	switch from {
	case StatusOpen:
		return to == StatusInProgress || to == StatusResolved || to == StatusDismissed
	case StatusInProgress:
		return to == StatusResolved || to == StatusDismissed || to == StatusOpen
	default:
		// resolved and dismissed are terminal under this policy
		return false
	}
}
