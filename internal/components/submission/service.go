package submission

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

const Component = "submission"

// Service is the student-facing surface: view my complaint history, submit
// a new complaint. It never assigns a status; the store forces open.
type Service struct {
	config   *Config
	logger   logger.Logger
	backend  *backend.Client
	sessions *auth.Store
}

func NewService(deps ServiceDependencies, config *Config) (*Service, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for submission: %w", err)
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
	}, nil
}

// session loads the student credential for this page lifecycle. A missing
// or expired credential resolves to a login redirect, never a retry.
func (s *Service) session(ctx context.Context) (*auth.Session, error) {
	sess, err := s.sessions.Load(ctx, auth.RoleStudent)
	if err != nil {
		if err == auth.ErrNoSession {
			return nil, errors.NewAuthRequiredError(auth.LoginPathForRole(auth.RoleStudent))
		}
		return nil, errors.NewNetworkError("session.load", err)
	}
	return sess, nil
}

// ListMine returns the caller's complaint history in store order. On
// transport failure the caller keeps whatever it rendered before; only the
// very first load renders empty.
func (s *Service) ListMine(ctx context.Context) (*ListOutput, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	sess, err := s.session(ctx)
	if err != nil {
		metrics.DashboardActions.WithLabelValues(Component, "list", "auth_error").Inc()
		return nil, err
	}

	list, err := s.backend.ListMyComplaints(ctx, sess)
	if err != nil {
		s.noteFailure(ctx, sess, "list", err)
		return nil, err
	}

	metrics.DashboardActions.WithLabelValues(Component, "list", "success").Inc()
	return &ListOutput{Total: list.Total, Items: list.Items}, nil
}

// Submit validates the compose form, creates the complaint and re-issues
// the listing so store-assigned fields (id, createdAt, the forced open
// status) are authoritative. There is no optimistic local insert.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*ListOutput, error) {
	in.Description = strings.TrimSpace(in.Description)

	if err := s.validateInput(in); err != nil {
		metrics.DashboardActions.WithLabelValues(Component, "submit", "validation_error").Inc()
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	sess, err := s.session(ctx)
	if err != nil {
		metrics.DashboardActions.WithLabelValues(Component, "submit", "auth_error").Inc()
		return nil, err
	}

	created, err := s.backend.CreateComplaint(ctx, sess, backend.CreateComplaintInput{
		Category:    in.Category,
		Description: in.Description,
		IsAnonymous: in.IsAnonymous,
	})
	if err != nil {
		s.noteFailure(ctx, sess, "submit", err)
		return nil, err
	}

	s.logger.Info("complaint submitted", map[string]interface{}{
		"complaintId": created.ID,
		"category":    created.Category,
		"anonymous":   created.IsAnonymous,
	})
	metrics.DashboardActions.WithLabelValues(Component, "submit", "success").Inc()

	list, err := s.backend.ListMyComplaints(ctx, sess)
	if err != nil {
		// The create succeeded; surface the refresh failure so the user
		// re-fetches instead of trusting a locally fabricated row.
		s.noteFailure(ctx, sess, "refresh", err)
		return nil, err
	}

	return &ListOutput{Total: list.Total, Items: list.Items}, nil
}

// FilterMine is a display convenience: case-insensitive substring match
// over the category label and description of an already fetched history.
func (s *Service) FilterMine(items []models.Complaint, query string) []models.Complaint {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return items
	}

	filtered := make([]models.Complaint, 0, len(items))
	for _, c := range items {
		if strings.Contains(strings.ToLower(c.Category.Label()), query) ||
			strings.Contains(strings.ToLower(c.Description), query) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

func (s *Service) validateInput(in SubmitInput) error {
	if in.Description == "" {
		return errors.NewValidationFailedError("description must be non-empty")
	}
	if !in.Category.Valid() {
		return errors.NewValidationFailedError(fmt.Sprintf("unknown category: %s", in.Category))
	}

	result := validation.ValidateInput(map[string]interface{}{
		"category":    string(in.Category),
		"description": in.Description,
		"isAnonymous": in.IsAnonymous,
	}, GetInputSchema())
	if !result.Valid {
		return errors.NewValidationFailedError(fmt.Sprintf("%v", result.Errors))
	}
	return nil
}

func (s *Service) noteFailure(ctx context.Context, sess *auth.Session, action string, err error) {
	stdErr := errors.AsStandardError(err)
	metrics.DashboardActions.WithLabelValues(Component, action, string(stdErr.Code)).Inc()

	if errors.IsAuthError(err) {
		// The backend rejected the credential; drop it so the next page
		// load goes straight to login.
		_ = s.sessions.Invalidate(ctx, sess)
	}

	s.logger.WithError(err).Warn("action failed", map[string]interface{}{
		"action":    action,
		"retryable": stdErr.Retryable,
	})
}
