package triage

import (
	"context"
	"fmt"
	"strings"

	"pragati-dashboard/internal/backend"
	"pragati-dashboard/internal/common/auth"
	"pragati-dashboard/internal/common/errors"
	"pragati-dashboard/internal/common/logger"
	"pragati-dashboard/internal/common/metrics"
	"pragati-dashboard/internal/common/validation"
	"pragati-dashboard/internal/models"
)

const Component = "triage"

// Service is the principal-facing surface: list and filter the school's
// complaints, search the fetched page locally, and transition statuses.
// It is driven from a single UI goroutine; the held page is not guarded.
type Service struct {
	config   *Config
	logger   logger.Logger
	backend  *backend.Client
	sessions *auth.Store
	policy   models.TransitionPolicy

	page *Page // most recent listing; Search and UpdateStatus work off it
}

func NewService(deps ServiceDependencies, config *Config) (*Service, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for triage: %w", err)
	}

	loggerInstance := deps.Logger
	if loggerInstance == nil {
		loggerInstance = logger.NewStructured("info", "json")
	}

	return &Service{
		config:   config,
		logger:   loggerInstance.WithFields(map[string]interface{}{"component": Component}),
		backend:  deps.Backend,
		sessions: deps.Sessions,
		policy:   config.TransitionPolicy(),
	}, nil
}

func (s *Service) session(ctx context.Context) (*auth.Session, error) {
	sess, err := s.sessions.Load(ctx, auth.RolePrincipal)
	if err != nil {
		if err == auth.ErrNoSession {
			return nil, errors.NewAuthRequiredError(auth.LoginPathForRole(auth.RolePrincipal))
		}
		return nil, errors.NewNetworkError("session.load", err)
	}
	return sess, nil
}

// List fetches the school-wide complaint set. The status filter, when
// given, is applied by the server; the client never derives a filtered view
// from a superset it already holds.
func (s *Service) List(ctx context.Context, statusFilter *models.ComplaintStatus) (*Page, error) {
	if statusFilter != nil && !statusFilter.Valid() {
		metrics.DashboardActions.WithLabelValues(Component, "list", "validation_error").Inc()
		return nil, errors.NewValidationFailedError(fmt.Sprintf("unknown status filter: %s", *statusFilter))
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	sess, err := s.session(ctx)
	if err != nil {
		metrics.DashboardActions.WithLabelValues(Component, "list", "auth_error").Inc()
		return nil, err
	}

	list, err := s.backend.ListComplaints(ctx, sess, statusFilter)
	if err != nil {
		s.noteFailure(ctx, sess, "list", err)
		return nil, err
	}

	s.page = &Page{
		SchoolID: list.SchoolID,
		Filter:   statusFilter,
		Total:    list.Total,
		Items:    list.Items,
	}
	metrics.DashboardActions.WithLabelValues(Component, "list", "success").Inc()
	return s.page, nil
}

// Search narrows the most recently fetched page. Purely in-memory:
// case-insensitive substring match over the category label, description,
// and (only when not anonymous) the student display name. Never touches
// the network.
func (s *Service) Search(query string) []models.Complaint {
	if s.page == nil {
		return nil
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		// Copy so callers cannot mutate the held page through the result.
		return append([]models.Complaint(nil), s.page.Items...)
	}

	matched := make([]models.Complaint, 0, len(s.page.Items))
	for _, c := range s.page.Items {
		if matchesQuery(&c, query) {
			matched = append(matched, c)
		}
	}
	return matched
}

func matchesQuery(c *models.Complaint, lowerQuery string) bool {
	if strings.Contains(strings.ToLower(c.Category.Label()), lowerQuery) {
		return true
	}
	if strings.Contains(strings.ToLower(c.Description), lowerQuery) {
		return true
	}
	if !c.IsAnonymous && c.Student != nil {
		return strings.Contains(strings.ToLower(c.Student.DisplayName()), lowerQuery)
	}
	return false
}

// UpdateStatus transitions a complaint and optionally attaches a resolution
// note. A trimmed-empty note is omitted from the payload entirely: the wire
// contract cannot distinguish "leave unchanged" from "clear". On success the
// current filtered list is re-fetched so resolvedBy/resolvedAt stay
// store-authoritative.
func (s *Service) UpdateStatus(ctx context.Context, in UpdateInput) (*Page, error) {
	if err := s.validateUpdate(in); err != nil {
		metrics.DashboardActions.WithLabelValues(Component, "update", "validation_error").Inc()
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	sess, err := s.session(ctx)
	if err != nil {
		metrics.DashboardActions.WithLabelValues(Component, "update", "auth_error").Inc()
		return nil, err
	}

	payload := backend.UpdateComplaintInput{Status: in.Status}
	if note := strings.TrimSpace(in.ResolutionNote); note != "" {
		payload.ResolutionNote = &note
	}

	updated, err := s.backend.UpdateComplaint(ctx, sess, in.ID, payload)
	if err != nil {
		s.noteFailure(ctx, sess, "update", err)
		return nil, err
	}

	s.logger.Info("complaint updated", map[string]interface{}{
		"complaintId": updated.ID,
		"status":      updated.Status,
	})
	metrics.DashboardActions.WithLabelValues(Component, "update", "success").Inc()

	var filter *models.ComplaintStatus
	if s.page != nil {
		filter = s.page.Filter
	}
	return s.List(ctx, filter)
}

func (s *Service) validateUpdate(in UpdateInput) error {
	if in.ID == "" {
		return errors.NewValidationFailedError("no complaint selected")
	}
	if !in.Status.Valid() {
		return errors.NewValidationFailedError(fmt.Sprintf("unknown status: %s", in.Status))
	}

	result := validation.ValidateInput(map[string]interface{}{
		"id":             in.ID,
		"status":         string(in.Status),
		"resolutionNote": in.ResolutionNote,
	}, GetUpdateSchema())
	if !result.Valid {
		return errors.NewValidationFailedError(fmt.Sprintf("%v", result.Errors))
	}

	// The transition guard needs the current status, which only the
	// fetched page knows. An id outside the page cannot be "selected".
	current := s.findInPage(in.ID)
	if current == nil {
		return errors.NewValidationFailedError(fmt.Sprintf("complaint %s is not in the current page", in.ID))
	}
	if !s.policy(current.Status, in.Status) {
		return errors.NewValidationFailedError(
			fmt.Sprintf("transition %s -> %s is not permitted", current.Status, in.Status))
	}
	return nil
}

func (s *Service) findInPage(id string) *models.Complaint {
	if s.page == nil {
		return nil
	}
	for i := range s.page.Items {
		if s.page.Items[i].ID == id {
			return &s.page.Items[i]
		}
	}
	return nil
}

// RenderRow reduces a complaint to display strings. Anonymous complaints
// render as "Anonymous" regardless of what the record carries.
func RenderRow(c *models.Complaint) Row {
	row := Row{
		ID:             c.ID,
		CategoryLabel:  c.Category.Label(),
		StatusLabel:    c.Status.Label(),
		Description:    c.Description,
		StudentDisplay: c.DisplayStudent(),
		Classroom:      c.Classroom.Grade.Name + " - " + c.Classroom.Section.Label,
	}
	if c.ResolutionNote != nil {
		row.ResolutionNote = *c.ResolutionNote
	}
	return row
}

func (s *Service) noteFailure(ctx context.Context, sess *auth.Session, action string, err error) {
	stdErr := errors.AsStandardError(err)
	metrics.DashboardActions.WithLabelValues(Component, action, string(stdErr.Code)).Inc()

	if errors.IsAuthError(err) {
		_ = s.sessions.Invalidate(ctx, sess)
	}

	s.logger.WithError(err).Warn("action failed", map[string]interface{}{
		"action":    action,
		"retryable": stdErr.Retryable,
	})
}
