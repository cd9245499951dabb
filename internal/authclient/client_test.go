package authclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/clinicdesk/internal/session"
)

func validResponse() map[string]any {
	return map[string]any{
		"id":           "u-1",
		"username":     "jane",
		"email":        "jane@example.com",
		"fullName":     "Jane Doe",
		"role":         "PATIENT",
		"token":        "access-token",
		"refreshToken": "refresh-token",
	}
}

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return New(Config{BaseURL: srv.URL}), srv
}

func TestClient_Login(t *testing.T) {
	t.Run("returns a fully populated session", func(t *testing.T) {
		var gotPath string
		var gotBody map[string]string

		client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			require.NoError(t, json.NewEncoder(w).Encode(validResponse()))
		})
		defer srv.Close()

		sess, err := client.Login(context.Background(), "jane", "secret")
		require.NoError(t, err)

		assert.Equal(t, "/auth/login", gotPath)
		assert.Equal(t, map[string]string{"username": "jane", "password": "secret"}, gotBody)

		assert.Equal(t, "u-1", sess.UserID)
		assert.Equal(t, session.RolePatient, sess.Role)
		assert.Equal(t, "access-token", sess.AccessToken)
		assert.Equal(t, "refresh-token", sess.RefreshToken)
		assert.True(t, sess.Valid())
	})

	t.Run("401 maps to invalid credentials", func(t *testing.T) {
		client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		defer srv.Close()

		_, err := client.Login(context.Background(), "jane", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("5xx maps to server unavailable", func(t *testing.T) {
		client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
		defer srv.Close()

		_, err := client.Login(context.Background(), "jane", "secret")
		assert.ErrorIs(t, err, ErrServerUnavailable)
	})

	t.Run("transport failure maps to server unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close() // nothing is listening any more

		client := New(Config{BaseURL: srv.URL})

		_, err := client.Login(context.Background(), "jane", "secret")
		assert.ErrorIs(t, err, ErrServerUnavailable)
	})

	t.Run("missing token is a malformed response", func(t *testing.T) {
		client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			resp := validResponse()
			delete(resp, "token")
			require.NoError(t, json.NewEncoder(w).Encode(resp))
		})
		defer srv.Close()

		_, err := client.Login(context.Background(), "jane", "secret")
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})

	t.Run("missing role is a malformed response", func(t *testing.T) {
		client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			resp := validResponse()
			delete(resp, "role")
			require.NoError(t, json.NewEncoder(w).Encode(resp))
		})
		defer srv.Close()

		_, err := client.Login(context.Background(), "jane", "secret")
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})

	t.Run("unknown role is a malformed response", func(t *testing.T) {
		client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			resp := validResponse()
			resp["role"] = "SUPERUSER"
			require.NoError(t, json.NewEncoder(w).Encode(resp))
		})
		defer srv.Close()

		_, err := client.Login(context.Background(), "jane", "secret")
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})
}

func TestClient_Register(t *testing.T) {
	t.Run("posts the profile and returns the issued session", func(t *testing.T) {
		var gotPath string
		var gotBody map[string]any

		client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			require.NoError(t, json.NewEncoder(w).Encode(validResponse()))
		})
		defer srv.Close()

		sess, err := client.Register(context.Background(), session.Profile{
			Username: "jane",
			Password: "secret",
			Email:    "jane@example.com",
			FullName: "Jane Doe",
			Role:     session.RolePatient,
		})
		require.NoError(t, err)

		assert.Equal(t, "/auth/register", gotPath)
		assert.Equal(t, "jane", gotBody["username"])
		assert.Equal(t, "PATIENT", gotBody["role"])
		assert.True(t, sess.Valid())
	})

	t.Run("rejection surfaces the server message", func(t *testing.T) {
		client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			require.NoError(t, json.NewEncoder(w).Encode(map[string]string{"message": "username taken"}))
		})
		defer srv.Close()

		_, err := client.Register(context.Background(), session.Profile{Username: "jane"})
		require.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Contains(t, err.Error(), "username taken")
	})
}
