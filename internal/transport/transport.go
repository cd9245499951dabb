// Package transport wraps outgoing HTTP with bearer authentication and
// global 401 handling.
package transport

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gregjones/httpcache"
	"github.com/rs/zerolog/log"

	"github.com/clinicdesk/clinicdesk/internal/credentials"
	"github.com/clinicdesk/clinicdesk/internal/session"
)

// CredentialSource provides tokens for outgoing requests and is cleared
// wholesale on an authorization failure. *credentials.Store satisfies it.
type CredentialSource interface {
	Load(session.Role) (*session.Session, error)
	LoadAny() (*session.Session, error)
	ClearAll() error
}

// Bearer is an http.RoundTripper that attaches the stored access token to
// every request and intercepts authorization failures.
//
// On a 401 response it clears ALL stored credentials and fires the
// OnUnauthorized hook, regardless of which role's token was rejected and of
// whether the caller inspects the response. In multi-role use this evicts
// every resident session at once; that matches the original client and is a
// known sharp edge.
type Bearer struct {
	next  http.RoundTripper
	creds CredentialSource
	scope session.Role

	onUnauthorized func()
}

// Option configures a Bearer transport.
type Option func(*Bearer)

// WithScope pins the transport to one role's token. Without it the transport
// uses whichever session is resident.
func WithScope(role session.Role) Option {
	return func(b *Bearer) { b.scope = role }
}

// WithUnauthorizedHook sets the callback fired after a 401 response has
// force-cleared the stored credentials.
func WithUnauthorizedHook(fn func()) Option {
	return func(b *Bearer) { b.onUnauthorized = fn }
}

// WithBase sets the underlying round tripper. Defaults to
// http.DefaultTransport.
func WithBase(rt http.RoundTripper) Option {
	return func(b *Bearer) { b.next = rt }
}

// WithCache layers an in-memory HTTP cache under the bearer transport so
// cacheable GET responses are reused across calls.
func WithCache() Option {
	return func(b *Bearer) {
		b.next = httpcache.NewMemoryCacheTransport()
	}
}

// NewBearer creates the transport.
func NewBearer(creds CredentialSource, opts ...Option) *Bearer {
	b := &Bearer{
		next:  http.DefaultTransport,
		creds: creds,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// RoundTrip implements http.RoundTripper.
func (b *Bearer) RoundTrip(req *http.Request) (*http.Response, error) {
	// Per the RoundTripper contract the request must not be mutated.
	out := req.Clone(req.Context())
	out.Header.Set("X-Request-Id", uuid.NewString())

	sess := b.load()
	if sess.Valid() {
		out.Header.Set("Authorization", "Bearer "+sess.AccessToken)
	}
	// No token resident: send the request bare and let the server reject it.

	resp, err := b.next.RoundTrip(out)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		log.Warn().
			Str("url", out.URL.Path).
			Msg("authorization failure, clearing stored credentials")

		if err := b.creds.ClearAll(); err != nil {
			log.Error().Err(err).Msg("failed to clear credentials")
		}
		if b.onUnauthorized != nil {
			b.onUnauthorized()
		}
	}

	return resp, nil
}

func (b *Bearer) load() *session.Session {
	var (
		sess *session.Session
		err  error
	)
	if b.scope.Known() {
		sess, err = b.creds.Load(b.scope)
	} else {
		sess, err = b.creds.LoadAny()
	}
	if err != nil {
		log.Warn().Err(err).Msg("failed to load session for request")
		return nil
	}
	if sess.Valid() {
		log.Trace().
			Str("fingerprint", credentials.Fingerprint(sess.AccessToken)).
			Msg("attaching bearer token")
	}
	return sess
}

// NewClient builds an http.Client using the bearer transport.
func NewClient(creds CredentialSource, timeout time.Duration, opts ...Option) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: NewBearer(creds, opts...),
	}
}
