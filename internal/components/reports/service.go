package reports

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"pragati-dashboard/internal/backend"
	"pragati-dashboard/internal/common/auth"
	"pragati-dashboard/internal/common/errors"
	"pragati-dashboard/internal/common/logger"
	"pragati-dashboard/internal/common/metrics"
	"pragati-dashboard/internal/models"
)

const Component = "reports"

const dateLayout = "2006-01-02"

// Service is the principal-facing attendance report surface. All numbers
// are server-computed aggregates; this side only fetches, filters for
// display and streams the rendered document.
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
		return nil, fmt.Errorf("invalid configuration for reports: %w", err)
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

func validateRange(r RangeInput) error {
	start, err := time.Parse(dateLayout, r.Start)
	if err != nil {
		return errors.NewValidationFailedError(fmt.Sprintf("start date %q is not YYYY-MM-DD", r.Start))
	}
	end, err := time.Parse(dateLayout, r.End)
	if err != nil {
		return errors.NewValidationFailedError(fmt.Sprintf("end date %q is not YYYY-MM-DD", r.End))
	}
	if end.Before(start) {
		return errors.NewValidationFailedError("end date must not precede start date")
	}
	return nil
}

// Summary fetches the attendance aggregate for the range.
func (s *Service) Summary(ctx context.Context, r RangeInput) (*models.AttendanceReport, error) {
	if err := validateRange(r); err != nil {
		metrics.DashboardActions.WithLabelValues(Component, "summary", "validation_error").Inc()
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	sess, err := s.session(ctx)
	if err != nil {
		metrics.DashboardActions.WithLabelValues(Component, "summary", "auth_error").Inc()
		return nil, err
	}

	report, err := s.backend.AttendanceSummary(ctx, sess, r.Start, r.End)
	if err != nil {
		s.noteFailure(ctx, sess, "summary", err)
		return nil, err
	}

	metrics.DashboardActions.WithLabelValues(Component, "summary", "success").Inc()
	return report, nil
}

// FilterClassrooms is a display convenience over an already fetched report:
// case-insensitive substring match on "Grade - Section". Never refetches.
func (s *Service) FilterClassrooms(rows []models.ClassroomReport, query string) []models.ClassroomReport {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return rows
	}

	filtered := make([]models.ClassroomReport, 0, len(rows))
	for _, row := range rows {
		label := strings.ToLower(row.GradeName + " - " + row.SectionLabel)
		if strings.Contains(label, query) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// DownloadPDF streams the rendered report document into w. The bytes pass
// through untouched; the server owns the document format.
func (s *Service) DownloadPDF(ctx context.Context, r RangeInput, w io.Writer) error {
	if err := validateRange(r); err != nil {
		metrics.DashboardActions.WithLabelValues(Component, "download", "validation_error").Inc()
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.DownloadTimeout)
	defer cancel()

	sess, err := s.session(ctx)
	if err != nil {
		metrics.DashboardActions.WithLabelValues(Component, "download", "auth_error").Inc()
		return err
	}

	if err := s.backend.AttendanceReportPDF(ctx, sess, r.Start, r.End, w); err != nil {
		s.noteFailure(ctx, sess, "download", err)
		return err
	}

	s.logger.Info("report downloaded", map[string]interface{}{
		"start": r.Start,
		"end":   r.End,
	})
	metrics.DashboardActions.WithLabelValues(Component, "download", "success").Inc()
	return nil
}

// SuggestedFilename names the saved document after its range.
func SuggestedFilename(r RangeInput) string {
	return fmt.Sprintf("attendance-report-%s-to-%s.pdf", r.Start, r.End)
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
