// internal/common/http/client.go
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"pragati-dashboard/internal/common/errors"
	"pragati-dashboard/internal/common/metrics"

	"github.com/google/uuid"
)

// Client is the bearer-auth JSON transport shared by every backend operation.
// Non-2xx responses are mapped uniformly: 401 becomes an auth error carrying
// the caller's login path, everything else a retryable backend error.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
	}
}

// Request describes one backend call.
type Request struct {
	Operation string // metric label, e.g. "complaints.list"
	Method    string
	Path      string // starts with /, may include a query string
	Token     string
	LoginPath string // redirect target for a 401
	Body      interface{}
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req)
}

// DoJSON executes the request and decodes a 2xx JSON body into out.
// out may be nil when the response body is not needed.
func (c *Client) DoJSON(ctx context.Context, r Request, out interface{}) error {
	resp, err := c.execute(ctx, r, "application/json")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.BackendRequestFailures.WithLabelValues(r.Operation, string(errors.ErrCodeSerializationError)).Inc()
		return errors.NewSerializationError(err)
	}
	return nil
}

// DoStream executes the request and copies the raw 2xx body to w.
// Used for binary document downloads.
func (c *Client) DoStream(ctx context.Context, r Request, w io.Writer) error {
	resp, err := c.execute(ctx, r, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if _, err := io.Copy(w, resp.Body); err != nil {
		metrics.BackendRequestFailures.WithLabelValues(r.Operation, string(errors.ErrCodeNetworkError)).Inc()
		return errors.NewNetworkError(r.Operation, err)
	}
	return nil
}

func (c *Client) execute(ctx context.Context, r Request, accept string) (*http.Response, error) {
	startTime := time.Now()
	metrics.BackendRequestsTotal.WithLabelValues(r.Operation).Inc()

	var bodyReader io.Reader
	if r.Body != nil {
		jsonData, err := json.Marshal(r.Body)
		if err != nil {
			metrics.BackendRequestFailures.WithLabelValues(r.Operation, string(errors.ErrCodeSerializationError)).Inc()
			return nil, errors.NewSerializationError(err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, c.baseURL+r.Path, bodyReader)
	if err != nil {
		metrics.BackendRequestFailures.WithLabelValues(r.Operation, string(errors.ErrCodeHTTPRequestError)).Inc()
		return nil, errors.NewHTTPRequestError(err)
	}

	if r.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	req.Header.Set("Authorization", "Bearer "+r.Token)
	req.Header.Set("X-Request-ID", uuid.New().String())

	resp, err := c.httpClient.Do(req)
	metrics.BackendRequestDuration.WithLabelValues(r.Operation).Observe(time.Since(startTime).Seconds())
	if err != nil {
		metrics.BackendRequestFailures.WithLabelValues(r.Operation, string(errors.ErrCodeNetworkError)).Inc()
		return nil, errors.NewNetworkError(r.Operation, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		metrics.BackendRequestFailures.WithLabelValues(r.Operation, string(errors.ErrCodeSessionExpired)).Inc()
		return nil, errors.NewSessionExpiredError(r.LoginPath, fmt.Sprintf("operation: %s", r.Operation))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		metrics.BackendRequestFailures.WithLabelValues(r.Operation, string(errors.ErrCodeBackendStatus)).Inc()
		return nil, errors.NewBackendStatusError(r.Operation, resp.StatusCode, string(body))
	}

	return resp, nil
}
