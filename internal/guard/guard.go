// Package guard decides whether a role-scoped area may be entered.
package guard

import (
	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinicdesk/internal/credentials"
	"github.com/clinicdesk/clinicdesk/internal/session"
)

// Decision is the outcome of an admission check.
type Decision int

const (
	// DecisionWait means session state is still loading; the caller should
	// hold rendering rather than redirect prematurely.
	DecisionWait Decision = iota

	// DecisionAllow admits the caller to the protected area.
	DecisionAllow

	// DecisionLogin means no usable session exists for the required scope;
	// the caller should be sent to the login flow.
	DecisionLogin

	// DecisionUnauthorized means a session exists but its role does not
	// grant access to the required scope.
	DecisionUnauthorized
)

func (d Decision) String() string {
	switch d {
	case DecisionWait:
		return "wait"
	case DecisionAllow:
		return "allow"
	case DecisionLogin:
		return "login"
	case DecisionUnauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

// SessionSource looks up the resident session for one role scope.
// *credentials.Store satisfies it.
type SessionSource interface {
	Load(session.Role) (*session.Session, error)
}

// State exposes whether session initialization has completed.
// *session.Manager satisfies it.
type State interface {
	Ready() bool
}

// Guard performs the admission check for role-scoped areas. It reads the
// required role's slot from the store directly rather than trusting the
// manager's resident session, because multiple roles' sessions may coexist
// and the in-memory value alone cannot disambiguate.
type Guard struct {
	creds  SessionSource
	state  State
	logger zerolog.Logger
}

// New creates a guard. Every decision is logged through the supplied logger.
func New(creds SessionSource, state State, logger zerolog.Logger) *Guard {
	return &Guard{creds: creds, state: state, logger: logger}
}

// Check evaluates admission for the required role. It must be re-run on
// every entry into a protected area; decisions are never cached.
func (g *Guard) Check(required session.Role) Decision {
	if !g.state.Ready() {
		g.log(required, DecisionWait, nil)
		return DecisionWait
	}

	sess, err := g.creds.Load(required)
	if err != nil {
		// A store read failure means we cannot prove a session exists;
		// treat it the same as absent.
		g.logger.Warn().Err(err).
			Str("required_role", string(required)).
			Msg("session lookup failed")
		sess = nil
	}

	if !sess.Valid() {
		g.log(required, DecisionLogin, sess)
		return DecisionLogin
	}

	// The role-keyed lookup above is already filtered, so this branch only
	// fires on a corrupted or hand-edited store entry. It stays anyway.
	if sess.Role != required {
		g.log(required, DecisionUnauthorized, sess)
		return DecisionUnauthorized
	}

	g.log(required, DecisionAllow, sess)
	return DecisionAllow
}

func (g *Guard) log(required session.Role, d Decision, sess *session.Session) {
	evt := g.logger.Debug().
		Str("required_role", string(required)).
		Str("decision", d.String())
	if sess != nil {
		evt = evt.
			Str("session_role", string(sess.Role)).
			Str("fingerprint", credentials.Fingerprint(sess.AccessToken))
	}
	evt.Msg("guard decision")
}
