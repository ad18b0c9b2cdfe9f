package notifications

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pragati-dashboard/internal/backend"
	"pragati-dashboard/internal/common/auth"
	"pragati-dashboard/internal/common/config"
	"pragati-dashboard/internal/common/database"
	"pragati-dashboard/internal/common/errors"
	"pragati-dashboard/internal/common/logger"
	"pragati-dashboard/internal/models"
)

// ==========================
// Test Helpers
// ==========================

func newTestSessions(t *testing.T) *auth.Store {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb, err := database.NewRedis(config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { rdb.Close() })

	store := auth.NewStore(rdb)
	require.NoError(t, store.Save(context.Background(), &auth.Session{
		Token:     "tok-principal",
		Role:      auth.RolePrincipal,
		UserID:    "u-p",
		SchoolID:  "sch-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}))
	require.NoError(t, store.Save(context.Background(), &auth.Session{
		Token:     "tok-student",
		Role:      auth.RoleStudent,
		UserID:    "u-s",
		SchoolID:  "sch-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}))
	return store
}

func newTestService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc, err := NewService(ServiceDependencies{
		Logger:   logger.NewTestLogger(t),
		Backend:  backend.NewClient(server.URL, 5*time.Second, logger.NewTestLogger(t)),
		Sessions: newTestSessions(t),
	}, DefaultConfig())
	require.NoError(t, err)
	return svc
}

func validComposeInput() ComposeInput {
	return ComposeInput{
		Title:      "Exam schedule",
		Body:       "Finals start Monday. Check the notice board.",
		Category:   models.NotificationAcademic,
		Priority:   3,
		IsPublic:   true,
		ActiveFrom: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		ActiveTill: time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
	}
}

// ==========================
// ActiveFeed Tests
// ==========================

func TestActiveFeed_GroupsByPriorityBand(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/communications/notifications/active", r.URL.Path)
		assert.Equal(t, "Bearer tok-student", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]models.Notification{
			{ID: "n-1", Priority: 5},
			{ID: "n-2", Priority: 4},
			{ID: "n-3", Priority: 3},
			{ID: "n-4", Priority: 1},
		})
	})

	feed, err := svc.ActiveFeed(context.Background(), auth.RoleStudent)
	require.NoError(t, err)

	assert.Equal(t, 4, feed.Total)
	require.Len(t, feed.Urgent, 2)
	require.Len(t, feed.Announcements, 1)
	require.Len(t, feed.General, 1)
	assert.Equal(t, "n-1", feed.Urgent[0].ID)
	assert.Equal(t, "n-3", feed.Announcements[0].ID)
	assert.Equal(t, "n-4", feed.General[0].ID)
}

func TestActiveFeed_NoSession(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no backend call expected without a session")
	})

	_, err := svc.ActiveFeed(context.Background(), auth.RoleTeacher)
	require.Error(t, err)
	assert.True(t, errors.IsAuthError(err))
	assert.Equal(t, "/login/teacher", errors.RedirectPath(err))
}

// ==========================
// Publish Tests
// ==========================

func TestPublish_SessionSuppliesIdentity(t *testing.T) {
	var createPayload map[string]interface{}
	listCalls := 0

	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/communications/notifications":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&createPayload))
			json.NewEncoder(w).Encode(models.Notification{ID: "n-new", Priority: 3})
		case r.Method == http.MethodGet && r.URL.Path == "/api/communications/notifications/active":
			listCalls++
			json.NewEncoder(w).Encode([]models.Notification{{ID: "n-new", Priority: 3}})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})

	feed, err := svc.Publish(context.Background(), validComposeInput())
	require.NoError(t, err)

	// schoolId and createdBy come from the credential, never the form.
	assert.Equal(t, "sch-1", createPayload["schoolId"])
	assert.Equal(t, "u-p", createPayload["createdBy"])
	assert.Equal(t, "2026-08-01T00:00:00Z", createPayload["activeFrom"])

	// The feed is re-fetched after the create.
	assert.Equal(t, 1, listCalls)
	assert.Equal(t, 1, feed.Total)
}

func TestPublish_ValidationErrors(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid input must never reach the backend")
	})

	tests := []struct {
		name   string
		mutate func(*ComposeInput)
	}{
		{
			name:   "empty title",
			mutate: func(in *ComposeInput) { in.Title = "  " },
		},
		{
			name:   "empty body",
			mutate: func(in *ComposeInput) { in.Body = "" },
		},
		{
			name:   "unknown category",
			mutate: func(in *ComposeInput) { in.Category = "sports" },
		},
		{
			name:   "priority too low",
			mutate: func(in *ComposeInput) { in.Priority = 0 },
		},
		{
			name:   "priority too high",
			mutate: func(in *ComposeInput) { in.Priority = 6 },
		},
		{
			name:   "missing window",
			mutate: func(in *ComposeInput) { in.ActiveFrom = time.Time{} },
		},
		{
			name:   "inverted window",
			mutate: func(in *ComposeInput) { in.ActiveFrom, in.ActiveTill = in.ActiveTill, in.ActiveFrom },
		},
		{
			name: "private without targets",
			mutate: func(in *ComposeInput) {
				in.IsPublic = false
				in.Targets = nil
			},
		},
		{
			name: "unknown target type",
			mutate: func(in *ComposeInput) {
				in.IsPublic = false
				in.Targets = []models.NotificationTarget{{Type: "school"}}
			},
		},
		{
			// Only the schema enforces the length cap, so this case
			// must still classify as a validation failure.
			name:   "title too long",
			mutate: func(in *ComposeInput) { in.Title = strings.Repeat("x", 201) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validComposeInput()
			tt.mutate(&in)

			_, err := svc.Publish(context.Background(), in)
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeValidationFailed, errors.AsStandardError(err).Code)
		})
	}
}

func TestPublish_TargetedBroadcast(t *testing.T) {
	var createPayload map[string]interface{}

	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&createPayload))
			json.NewEncoder(w).Encode(models.Notification{ID: "n-new"})
			return
		}
		json.NewEncoder(w).Encode([]models.Notification{})
	})

	in := validComposeInput()
	in.IsPublic = false
	in.Targets = []models.NotificationTarget{
		{Type: "classroom", ClassroomID: "cls-7a"},
		{Type: "student", StudentID: "s-1"},
	}

	_, err := svc.Publish(context.Background(), in)
	require.NoError(t, err)

	targets, ok := createPayload["targets"].([]interface{})
	require.True(t, ok)
	assert.Len(t, targets, 2)
}

func TestBuildFeed_Empty(t *testing.T) {
	feed := buildFeed(nil)
	assert.Zero(t, feed.Total)
	assert.Empty(t, feed.Urgent)
	assert.Empty(t, feed.Announcements)
	assert.Empty(t, feed.General)
}
