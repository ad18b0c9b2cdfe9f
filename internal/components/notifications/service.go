package notifications

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pragati-dashboard/internal/backend"
	"pragati-dashboard/internal/common/auth"
	"pragati-dashboard/internal/common/errors"
	"pragati-dashboard/internal/common/logger"
	"pragati-dashboard/internal/common/metrics"
	"pragati-dashboard/internal/models"
)

const Component = "notifications"

// Service covers both ends of the broadcast surface: students read the
// active feed, principals publish into it.
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
		return nil, fmt.Errorf("invalid configuration for notifications: %w", err)
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

func (s *Service) session(ctx context.Context, role string) (*auth.Session, error) {
	sess, err := s.sessions.Load(ctx, role)
	if err != nil {
		if err == auth.ErrNoSession {
			return nil, errors.NewAuthRequiredError(auth.LoginPathForRole(role))
		}
		return nil, errors.NewNetworkError("session.load", err)
	}
	return sess, nil
}

// ActiveFeed fetches the broadcasts currently inside their window and groups
// them into priority bands. The window filter is the store's; the client
// never re-checks activeFrom/activeTill.
func (s *Service) ActiveFeed(ctx context.Context, role string) (*Feed, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	sess, err := s.session(ctx, role)
	if err != nil {
		metrics.DashboardActions.WithLabelValues(Component, "feed", "auth_error").Inc()
		return nil, err
	}

	items, err := s.backend.ListActiveNotifications(ctx, sess)
	if err != nil {
		s.noteFailure(ctx, sess, "feed", err)
		return nil, err
	}

	metrics.DashboardActions.WithLabelValues(Component, "feed", "success").Inc()
	return buildFeed(items), nil
}

func buildFeed(items []models.Notification) *Feed {
	feed := &Feed{Total: len(items)}
	for _, n := range items {
		switch n.PriorityBand() {
		case "urgent":
			feed.Urgent = append(feed.Urgent, n)
		case "announcement":
			feed.Announcements = append(feed.Announcements, n)
		default:
			feed.General = append(feed.General, n)
		}
	}
	return feed
}

// Publish validates the compose form and creates the broadcast. schoolId and
// createdBy come from the publishing credential, never from the form. On
// success the feed is re-fetched so the new item renders store-shaped.
func (s *Service) Publish(ctx context.Context, in ComposeInput) (*Feed, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Body = strings.TrimSpace(in.Body)

	if err := s.validateCompose(in); err != nil {
		metrics.DashboardActions.WithLabelValues(Component, "publish", "validation_error").Inc()
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	sess, err := s.session(ctx, auth.RolePrincipal)
	if err != nil {
		metrics.DashboardActions.WithLabelValues(Component, "publish", "auth_error").Inc()
		return nil, err
	}

	created, err := s.backend.CreateNotification(ctx, sess, backend.CreateNotificationInput{
		SchoolID:   sess.SchoolID,
		Title:      in.Title,
		Body:       in.Body,
		Category:   in.Category,
		Priority:   in.Priority,
		IsPublic:   in.IsPublic,
		ActiveFrom: in.ActiveFrom.UTC().Format(time.RFC3339),
		ActiveTill: in.ActiveTill.UTC().Format(time.RFC3339),
		CreatedBy:  sess.UserID,
		Targets:    in.Targets,
	})
	if err != nil {
		s.noteFailure(ctx, sess, "publish", err)
		return nil, err
	}

	s.logger.Info("notification published", map[string]interface{}{
		"notificationId": created.ID,
		"category":       created.Category,
		"priority":       created.Priority,
		"public":         created.IsPublic,
	})
	metrics.DashboardActions.WithLabelValues(Component, "publish", "success").Inc()

	items, err := s.backend.ListActiveNotifications(ctx, sess)
	if err != nil {
		s.noteFailure(ctx, sess, "refresh", err)
		return nil, err
	}
	return buildFeed(items), nil
}

func (s *Service) validateCompose(in ComposeInput) error {
	if in.Title == "" {
		return errors.NewValidationFailedError("title must be non-empty")
	}
	if in.Body == "" {
		return errors.NewValidationFailedError("body must be non-empty")
	}
	if !in.Category.Valid() {
		return errors.NewValidationFailedError(fmt.Sprintf("unknown category: %s", in.Category))
	}
	if in.Priority < 1 || in.Priority > 5 {
		return errors.NewValidationFailedError("priority must be between 1 and 5")
	}
	if in.ActiveFrom.IsZero() || in.ActiveTill.IsZero() {
		return errors.NewValidationFailedError("active window is required")
	}
	if !in.ActiveTill.After(in.ActiveFrom) {
		return errors.NewValidationFailedError("activeTill must be after activeFrom")
	}
	if !in.IsPublic && len(in.Targets) == 0 {
		return errors.NewValidationFailedError("non-public notifications require at least one target")
	}
	for _, t := range in.Targets {
		if t.Type != "student" && t.Type != "classroom" {
			return errors.NewValidationFailedError(fmt.Sprintf("unknown target type: %s", t.Type))
		}
	}

	targets := make([]interface{}, 0, len(in.Targets))
	for _, t := range in.Targets {
		targets = append(targets, map[string]interface{}{"type": t.Type})
	}
	return validateSchema(composeSchema(), map[string]interface{}{
		"title":      in.Title,
		"body":       in.Body,
		"category":   string(in.Category),
		"priority":   in.Priority,
		"isPublic":   in.IsPublic,
		"activeFrom": in.ActiveFrom.UTC().Format(time.RFC3339),
		"activeTill": in.ActiveTill.UTC().Format(time.RFC3339),
		"targets":    targets,
	})
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
