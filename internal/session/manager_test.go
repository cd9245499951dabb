package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/clinicdesk/internal/authclient"
	"github.com/clinicdesk/clinicdesk/internal/credentials"
	"github.com/clinicdesk/clinicdesk/internal/session"
)

// stubAuth is an Authenticator returning canned results.
type stubAuth struct {
	sess    *session.Session
	err     error
	calls   int
	started chan struct{}
	release chan struct{}
}

func (s *stubAuth) Login(ctx context.Context, username, password string) (*session.Session, error) {
	s.calls++
	if s.started != nil {
		close(s.started)
		<-s.release
	}
	return s.sess, s.err
}

func (s *stubAuth) Register(ctx context.Context, profile session.Profile) (*session.Session, error) {
	return s.sess, s.err
}

func newSession(role session.Role) *session.Session {
	return &session.Session{
		UserID:      "u-1",
		Username:    "jane",
		Email:       "jane@example.com",
		FullName:    "Jane Doe",
		Role:        role,
		AccessToken: "tok-" + string(role),
	}
}

func newStore(t *testing.T) *credentials.Store {
	t.Helper()
	store, err := credentials.NewStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestManager_Init(t *testing.T) {
	t.Run("becomes ready with no resident session", func(t *testing.T) {
		mgr := session.NewManager(newStore(t), &stubAuth{})
		assert.False(t, mgr.Ready())

		require.NoError(t, mgr.Init(""))
		assert.True(t, mgr.Ready())
		assert.Nil(t, mgr.Current())
	})

	t.Run("prefers the scoped slot over the fallback", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Save(newSession(session.RoleAdmin)))
		require.NoError(t, store.Save(newSession(session.RolePatient)))

		mgr := session.NewManager(store, &stubAuth{})
		require.NoError(t, mgr.Init(session.RolePatient))

		require.NotNil(t, mgr.Current())
		assert.Equal(t, session.RolePatient, mgr.Current().Role)
	})

	t.Run("falls back to any resident session", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Save(newSession(session.RoleDoctor)))

		mgr := session.NewManager(store, &stubAuth{})
		require.NoError(t, mgr.Init(session.RolePatient))

		require.NotNil(t, mgr.Current())
		assert.Equal(t, session.RoleDoctor, mgr.Current().Role)
	})
}

func TestManager_Login(t *testing.T) {
	t.Run("persists before updating memory, survives a reload", func(t *testing.T) {
		store := newStore(t)
		auth := &stubAuth{sess: newSession(session.RoleAdmin)}

		mgr := session.NewManager(store, auth)
		require.NoError(t, mgr.Init(""))

		sess, err := mgr.Login(context.Background(), "jane", "secret")
		require.NoError(t, err)
		assert.Equal(t, auth.sess, sess)
		assert.Equal(t, auth.sess, mgr.Current())

		// Simulated reload: a fresh manager over the same store sees the session.
		reloaded := session.NewManager(store, auth)
		require.NoError(t, reloaded.Init(session.RoleAdmin))
		assert.Equal(t, auth.sess, reloaded.Current())
	})

	t.Run("auth failure writes nothing to the store", func(t *testing.T) {
		store := newStore(t)
		auth := &stubAuth{err: authclient.ErrMalformedResponse}

		mgr := session.NewManager(store, auth)
		require.NoError(t, mgr.Init(""))

		_, err := mgr.Login(context.Background(), "jane", "secret")
		require.ErrorIs(t, err, authclient.ErrMalformedResponse)

		got, err := store.LoadAny()
		require.NoError(t, err)
		assert.Nil(t, got)
		assert.Nil(t, mgr.Current())
	})

	t.Run("errors propagate unchanged", func(t *testing.T) {
		sentinel := errors.New("boom")
		mgr := session.NewManager(newStore(t), &stubAuth{err: sentinel})
		require.NoError(t, mgr.Init(""))

		_, err := mgr.Login(context.Background(), "jane", "secret")
		assert.ErrorIs(t, err, sentinel)
	})

	t.Run("rejects a second login while one is in flight", func(t *testing.T) {
		auth := &stubAuth{
			sess:    newSession(session.RoleAdmin),
			started: make(chan struct{}),
			release: make(chan struct{}),
		}
		mgr := session.NewManager(newStore(t), auth)
		require.NoError(t, mgr.Init(""))

		done := make(chan error, 1)
		go func() {
			_, err := mgr.Login(context.Background(), "jane", "secret")
			done <- err
		}()

		<-auth.started
		_, err := mgr.Login(context.Background(), "jane", "secret")
		assert.ErrorIs(t, err, session.ErrAuthInFlight)

		close(auth.release)
		require.NoError(t, <-done)
	})

	t.Run("discards the result when the context is gone", func(t *testing.T) {
		store := newStore(t)
		auth := &stubAuth{
			sess:    newSession(session.RoleAdmin),
			started: make(chan struct{}),
			release: make(chan struct{}),
		}
		mgr := session.NewManager(store, auth)
		require.NoError(t, mgr.Init(""))

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			_, err := mgr.Login(ctx, "jane", "secret")
			done <- err
		}()

		<-auth.started
		cancel()
		close(auth.release)

		require.ErrorIs(t, <-done, context.Canceled)
		assert.Nil(t, mgr.Current())

		got, err := store.LoadAny()
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestManager_Logout(t *testing.T) {
	t.Run("clearing the resident role blanks memory", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Save(newSession(session.RoleAdmin)))

		mgr := session.NewManager(store, &stubAuth{})
		require.NoError(t, mgr.Init(session.RoleAdmin))
		require.NotNil(t, mgr.Current())

		require.NoError(t, mgr.Logout(session.RoleAdmin))
		assert.Nil(t, mgr.Current())

		got, err := store.Load(session.RoleAdmin)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("clearing another role keeps the current identity", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Save(newSession(session.RoleAdmin)))
		require.NoError(t, store.Save(newSession(session.RolePatient)))

		mgr := session.NewManager(store, &stubAuth{})
		require.NoError(t, mgr.Init(session.RoleAdmin))

		require.NoError(t, mgr.Logout(session.RolePatient))

		require.NotNil(t, mgr.Current())
		assert.Equal(t, session.RoleAdmin, mgr.Current().Role)

		got, err := store.Load(session.RolePatient)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("logout all clears every slot and memory", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Save(newSession(session.RoleAdmin)))
		require.NoError(t, store.Save(newSession(session.RoleDoctor)))

		mgr := session.NewManager(store, &stubAuth{})
		require.NoError(t, mgr.Init(session.RoleAdmin))

		require.NoError(t, mgr.LogoutAll())
		assert.Nil(t, mgr.Current())

		got, err := store.LoadAny()
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("is idempotent", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Save(newSession(session.RoleAdmin)))

		mgr := session.NewManager(store, &stubAuth{})
		require.NoError(t, mgr.Init(session.RoleAdmin))

		require.NoError(t, mgr.Logout(session.RoleAdmin))
		require.NoError(t, mgr.Logout(session.RoleAdmin))

		got, err := store.Load(session.RoleAdmin)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestSession_Valid(t *testing.T) {
	assert.False(t, (*session.Session)(nil).Valid())
	assert.False(t, (&session.Session{Role: session.RoleAdmin}).Valid())
	assert.False(t, (&session.Session{AccessToken: "tok"}).Valid())
	assert.False(t, (&session.Session{AccessToken: "tok", Role: "INTERN"}).Valid())
	assert.True(t, (&session.Session{AccessToken: "tok", Role: session.RoleAdmin}).Valid())
}

func TestParseRole(t *testing.T) {
	role, err := session.ParseRole("admin")
	require.NoError(t, err)
	assert.Equal(t, session.RoleAdmin, role)

	role, err = session.ParseRole(" Doctor ")
	require.NoError(t, err)
	assert.Equal(t, session.RoleDoctor, role)

	_, err = session.ParseRole("root")
	assert.ErrorIs(t, err, session.ErrUnknownRole)
}
