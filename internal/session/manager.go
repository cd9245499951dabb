package session

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
)

// ErrAuthInFlight is returned when a login or register call is issued while
// another one is still pending. Callers are expected to disable whatever
// triggered the first call rather than queueing a second.
var ErrAuthInFlight = errors.New("authentication already in progress")

// Store is the durable session persistence the manager reads on startup and
// writes through on login. Absent sessions are (nil, nil), not errors.
type Store interface {
	Save(*Session) error
	Load(Role) (*Session, error)
	LoadAny() (*Session, error)
	Clear(Role) error
	ClearAll() error
}

// Authenticator performs the identity network calls. It does not persist.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*Session, error)
	Register(ctx context.Context, profile Profile) (*Session, error)
}

// Manager is the process-wide holder of the current session. Construct one
// at startup and pass it down explicitly; there is no package-level instance.
//
// The manager starts uninitialized. Init loads persisted state and moves it
// to ready; ready is the only stable state, and login/register/logout only
// move between ready states.
type Manager struct {
	store Store
	auth  Authenticator

	mu       sync.Mutex
	current  *Session
	ready    bool
	inFlight bool
}

// NewManager creates an uninitialized manager.
func NewManager(store Store, auth Authenticator) *Manager {
	return &Manager{store: store, auth: auth}
}

// Init loads persisted state. When scope names a role, that role's slot is
// tried first so the identity relevant to the area being entered wins over
// whatever happens to sort first; an unscoped lookup is the fallback.
// Init always completes: finding nothing still transitions to ready.
func (m *Manager) Init(scope Role) error {
	var sess *Session

	if scope.Known() {
		var err error
		sess, err = m.store.Load(scope)
		if err != nil {
			return err
		}
	}

	if sess == nil {
		var err error
		sess, err = m.store.LoadAny()
		if err != nil {
			return err
		}
	}

	m.mu.Lock()
	m.current = sess
	m.ready = true
	m.mu.Unlock()

	if sess != nil {
		log.Debug().
			Str("role", string(sess.Role)).
			Str("username", sess.Username).
			Msg("restored session")
	} else {
		log.Debug().Msg("no resident session")
	}

	return nil
}

// Ready reports whether Init has completed.
func (m *Manager) Ready() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ready
}

// Current returns the in-memory session, or nil when none is resident.
func (m *Manager) Current() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Login authenticates, persists the new session, then updates in-memory
// state, in that order. A crash between the network call and the store write
// is the only window where the two can desync; that risk is accepted rather
// than made transactional.
func (m *Manager) Login(ctx context.Context, username, password string) (*Session, error) {
	return m.authenticate(ctx, func(ctx context.Context) (*Session, error) {
		return m.auth.Login(ctx, username, password)
	})
}

// Register creates an account and adopts the issued session, with the same
// persistence ordering as Login.
func (m *Manager) Register(ctx context.Context, profile Profile) (*Session, error) {
	return m.authenticate(ctx, func(ctx context.Context) (*Session, error) {
		return m.auth.Register(ctx, profile)
	})
}

func (m *Manager) authenticate(ctx context.Context, op func(context.Context) (*Session, error)) (*Session, error) {
	m.mu.Lock()
	if m.inFlight {
		m.mu.Unlock()
		return nil, ErrAuthInFlight
	}
	m.inFlight = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.inFlight = false
		m.mu.Unlock()
	}()

	sess, err := op(ctx)
	if err != nil {
		return nil, err
	}

	// The caller may have gone away while the request was in flight. Drop
	// the result instead of mutating state nobody is watching.
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if err := m.store.Save(sess); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.current = sess
	m.mu.Unlock()

	return sess, nil
}

// Logout clears one role's slot. In-memory state is blanked only when the
// resident session actually has that role, so clearing another scope does
// not blank the identity the current screen is using.
func (m *Manager) Logout(role Role) error {
	if err := m.store.Clear(role); err != nil {
		return err
	}

	m.mu.Lock()
	if m.current != nil && m.current.Role == role {
		m.current = nil
	}
	m.mu.Unlock()

	log.Debug().Str("role", string(role)).Msg("logged out")

	return nil
}

// LogoutAll clears every slot and the in-memory session.
func (m *Manager) LogoutAll() error {
	if err := m.store.ClearAll(); err != nil {
		return err
	}

	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()

	log.Debug().Msg("logged out of all roles")

	return nil
}
