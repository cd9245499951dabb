package transport

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/clinicdesk/internal/credentials"
	"github.com/clinicdesk/clinicdesk/internal/session"
)

func newStore(t *testing.T) *credentials.Store {
	t.Helper()
	store, err := credentials.NewStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func save(t *testing.T, store *credentials.Store, role session.Role, token string) {
	t.Helper()
	require.NoError(t, store.Save(&session.Session{
		UserID:      "u-1",
		Username:    "jane",
		Role:        role,
		AccessToken: token,
	}))
}

func TestBearer_RoundTrip(t *testing.T) {
	t.Run("attaches the scoped bearer token", func(t *testing.T) {
		var gotAuth, gotRequestID string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotRequestID = r.Header.Get("X-Request-Id")
		}))
		defer srv.Close()

		store := newStore(t)
		save(t, store, session.RoleAdmin, "admin-token")
		save(t, store, session.RolePatient, "patient-token")

		client := NewClient(store, 5*time.Second, WithScope(session.RolePatient))

		resp, err := client.Get(srv.URL)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, "Bearer patient-token", gotAuth)
		assert.NotEmpty(t, gotRequestID)
	})

	t.Run("sends no header when no token is resident", func(t *testing.T) {
		var gotAuth string
		hasAuth := true
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			_, hasAuth = r.Header["Authorization"]
		}))
		defer srv.Close()

		client := NewClient(newStore(t), 5*time.Second, WithScope(session.RoleAdmin))

		resp, err := client.Get(srv.URL)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Empty(t, gotAuth)
		assert.False(t, hasAuth)
	})

	t.Run("unscoped transport uses any resident session", func(t *testing.T) {
		var gotAuth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
		}))
		defer srv.Close()

		store := newStore(t)
		save(t, store, session.RoleDoctor, "doctor-token")

		client := NewClient(store, 5*time.Second)

		resp, err := client.Get(srv.URL)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, "Bearer doctor-token", gotAuth)
	})

	t.Run("does not mutate the caller's request", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		defer srv.Close()

		store := newStore(t)
		save(t, store, session.RoleAdmin, "admin-token")

		req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
		require.NoError(t, err)

		client := NewClient(store, 5*time.Second, WithScope(session.RoleAdmin))
		resp, err := client.Do(req)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Empty(t, req.Header.Get("Authorization"))
		assert.Empty(t, req.Header.Get("X-Request-Id"))
	})
}

func TestBearer_UnauthorizedHandling(t *testing.T) {
	t.Run("401 clears all credentials and fires the hook", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		store := newStore(t)
		save(t, store, session.RoleAdmin, "admin-token")
		save(t, store, session.RolePatient, "patient-token")

		hookCalls := 0
		client := NewClient(store, 5*time.Second,
			WithScope(session.RoleAdmin),
			WithUnauthorizedHook(func() { hookCalls++ }),
		)

		// The caller never inspects the response beyond closing it; the side
		// effect must happen regardless.
		resp, err := client.Get(srv.URL)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, 1, hookCalls)

		// Every role's credentials are gone, not just the rejected scope.
		for _, role := range session.Roles {
			got, err := store.Load(role)
			require.NoError(t, err)
			assert.Nil(t, got)
		}
	})

	t.Run("non-401 failures leave credentials alone", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer srv.Close()

		store := newStore(t)
		save(t, store, session.RoleAdmin, "admin-token")

		hookCalls := 0
		client := NewClient(store, 5*time.Second,
			WithScope(session.RoleAdmin),
			WithUnauthorizedHook(func() { hookCalls++ }),
		)

		resp, err := client.Get(srv.URL)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Zero(t, hookCalls)

		got, err := store.Load(session.RoleAdmin)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "admin-token", got.AccessToken)
	})
}
