// internal/backend/client.go
package backend

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"pragati-dashboard/internal/common/auth"
	"pragati-dashboard/internal/common/errors"
	commonhttp "pragati-dashboard/internal/common/http"
	"pragati-dashboard/internal/common/logger"
	"pragati-dashboard/internal/models"
)

// Client is the typed surface over the remote school-platform backend.
// Every method takes the explicit session credential; there is no ambient
// auth state. A non-2xx response is a uniform failure; the client never
// inspects error bodies.
type Client struct {
	http   *commonhttp.Client
	logger logger.Logger
}

func NewClient(baseURL string, timeout time.Duration, log logger.Logger) *Client {
	return &Client{
		http:   commonhttp.NewClient(baseURL, timeout),
		logger: log.WithFields(map[string]interface{}{"client": "backend"}),
	}
}

// ComplaintList is the student-scoped listing response.
type ComplaintList struct {
	Total int                `json:"total"`
	Items []models.Complaint `json:"items"`
}

// SchoolComplaintList is the school-wide listing response.
type SchoolComplaintList struct {
	SchoolID string             `json:"schoolId"`
	Total    int                `json:"total"`
	Items    []models.Complaint `json:"items"`
}

// CreateComplaintInput is the create payload. Note there is no status
// field: the store forces new complaints to open.
type CreateComplaintInput struct {
	Category    models.ComplaintCategory `json:"category"`
	Description string                   `json:"description"`
	IsAnonymous bool                     `json:"isAnonymous"`
}

// UpdateComplaintInput is the PATCH payload. ResolutionNote is a pointer so
// a blank note is omitted entirely rather than sent as "". The wire
// contract cannot express clearing a note.
type UpdateComplaintInput struct {
	Status         models.ComplaintStatus `json:"status"`
	ResolutionNote *string                `json:"resolutionNote,omitempty"`
}

// CreateNotificationInput is the broadcast create payload.
type CreateNotificationInput struct {
	SchoolID   string                      `json:"schoolId"`
	Title      string                      `json:"title"`
	Body       string                      `json:"body"`
	Category   models.NotificationCategory `json:"category"`
	Priority   int                         `json:"priority"`
	IsPublic   bool                        `json:"isPublic"`
	ActiveFrom string                      `json:"activeFrom"`
	ActiveTill string                      `json:"activeTill"`
	CreatedBy  string                      `json:"createdBy"`
	Targets    []models.NotificationTarget `json:"targets,omitempty"`
}

func requireSession(sess *auth.Session, fallbackRole string) error {
	if sess == nil || sess.Token == "" {
		return errors.NewAuthRequiredError(auth.LoginPathForRole(fallbackRole))
	}
	if sess.IsExpired() {
		return errors.NewSessionExpiredError(sess.LoginPath(), "credential expired")
	}
	return nil
}

// ListMyComplaints returns the calling student's complaint history.
func (c *Client) ListMyComplaints(ctx context.Context, sess *auth.Session) (*ComplaintList, error) {
	if err := requireSession(sess, auth.RoleStudent); err != nil {
		return nil, err
	}

	var out ComplaintList
	err := c.http.DoJSON(ctx, commonhttp.Request{
		Operation: "complaints.mine",
		Method:    "GET",
		Path:      "/api/complaints/mine",
		Token:     sess.Token,
		LoginPath: sess.LoginPath(),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListComplaints returns the school-wide complaint set, optionally filtered
// by status on the server. The filter is never applied client-side: the
// superset the client holds may be stale or unbounded.
func (c *Client) ListComplaints(ctx context.Context, sess *auth.Session, status *models.ComplaintStatus) (*SchoolComplaintList, error) {
	if err := requireSession(sess, auth.RolePrincipal); err != nil {
		return nil, err
	}

	path := "/api/complaints"
	if status != nil {
		path += "?status=" + url.QueryEscape(string(*status))
	}

	var out SchoolComplaintList
	err := c.http.DoJSON(ctx, commonhttp.Request{
		Operation: "complaints.list",
		Method:    "GET",
		Path:      path,
		Token:     sess.Token,
		LoginPath: sess.LoginPath(),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateComplaint submits a new complaint. The store assigns id, createdAt
// and the open status.
func (c *Client) CreateComplaint(ctx context.Context, sess *auth.Session, in CreateComplaintInput) (*models.Complaint, error) {
	if err := requireSession(sess, auth.RoleStudent); err != nil {
		return nil, err
	}

	var out models.Complaint
	err := c.http.DoJSON(ctx, commonhttp.Request{
		Operation: "complaints.create",
		Method:    "POST",
		Path:      "/api/complaints",
		Token:     sess.Token,
		LoginPath: sess.LoginPath(),
		Body:      in,
	}, &out)
	if err != nil {
		return nil, err
	}

	c.logger.Info("complaint created", map[string]interface{}{
		"complaintId": out.ID,
		"category":    out.Category,
	})
	return &out, nil
}

// UpdateComplaint transitions a complaint's status and optionally sets a
// resolution note. resolvedBy/resolvedAt are store-computed.
func (c *Client) UpdateComplaint(ctx context.Context, sess *auth.Session, id string, in UpdateComplaintInput) (*models.Complaint, error) {
	if err := requireSession(sess, auth.RolePrincipal); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, errors.NewValidationFailedError("complaint id is required")
	}

	var out models.Complaint
	err := c.http.DoJSON(ctx, commonhttp.Request{
		Operation: "complaints.update",
		Method:    "PATCH",
		Path:      fmt.Sprintf("/api/complaints/%s", url.PathEscape(id)),
		Token:     sess.Token,
		LoginPath: sess.LoginPath(),
		Body:      in,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListActiveNotifications returns the broadcasts currently inside their
// active window. Window filtering is the store's job.
func (c *Client) ListActiveNotifications(ctx context.Context, sess *auth.Session) ([]models.Notification, error) {
	if err := requireSession(sess, auth.RoleStudent); err != nil {
		return nil, err
	}

	var out []models.Notification
	err := c.http.DoJSON(ctx, commonhttp.Request{
		Operation: "notifications.active",
		Method:    "GET",
		Path:      "/api/communications/notifications/active",
		Token:     sess.Token,
		LoginPath: sess.LoginPath(),
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CreateNotification publishes a new broadcast.
func (c *Client) CreateNotification(ctx context.Context, sess *auth.Session, in CreateNotificationInput) (*models.Notification, error) {
	if err := requireSession(sess, auth.RolePrincipal); err != nil {
		return nil, err
	}

	var out models.Notification
	err := c.http.DoJSON(ctx, commonhttp.Request{
		Operation: "notifications.create",
		Method:    "POST",
		Path:      "/api/communications/notifications",
		Token:     sess.Token,
		LoginPath: sess.LoginPath(),
		Body:      in,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AttendanceSummary fetches the aggregate attendance report for a range.
func (c *Client) AttendanceSummary(ctx context.Context, sess *auth.Session, start, end string) (*models.AttendanceReport, error) {
	if err := requireSession(sess, auth.RolePrincipal); err != nil {
		return nil, err
	}

	var out models.AttendanceReport
	err := c.http.DoJSON(ctx, commonhttp.Request{
		Operation: "reports.attendance",
		Method:    "GET",
		Path:      fmt.Sprintf("/api/reports/attendance/principal?start=%s&end=%s", url.QueryEscape(start), url.QueryEscape(end)),
		Token:     sess.Token,
		LoginPath: sess.LoginPath(),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AttendanceReportPDF streams the rendered report document into w.
func (c *Client) AttendanceReportPDF(ctx context.Context, sess *auth.Session, start, end string, w io.Writer) error {
	if err := requireSession(sess, auth.RolePrincipal); err != nil {
		return err
	}

	return c.http.DoStream(ctx, commonhttp.Request{
		Operation: "reports.attendance.pdf",
		Method:    "GET",
		Path:      fmt.Sprintf("/api/reports/attendance/principal/pdf?start=%s&end=%s", url.QueryEscape(start), url.QueryEscape(end)),
		Token:     sess.Token,
		LoginPath: sess.LoginPath(),
	}, w)
}
