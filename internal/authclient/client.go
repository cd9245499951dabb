package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/clinicdesk/clinicdesk/internal/session"
)

// Sentinel errors
var (
	// ErrInvalidCredentials is returned when the identity service rejects
	// the supplied credentials or registration data.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrServerUnavailable is returned on transport failure or a 5xx response.
	ErrServerUnavailable = errors.New("identity service unavailable")

	// ErrMalformedResponse is returned when a success response is missing
	// required identity fields (id, role, token).
	ErrMalformedResponse = errors.New("malformed auth response")
)

// Config holds auth client configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client is the network boundary for identity operations. It performs no
// persistence; storing the returned session is the caller's job.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates an auth client for the given identity service.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// authResponse mirrors the identity service's login/register payload.
type authResponse struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	FullName     string `json:"fullName"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// Login exchanges credentials for a session. A failed login is terminal for
// this call; no retry is performed.
func (c *Client) Login(ctx context.Context, username, password string) (*session.Session, error) {
	log.Debug().Str("username", username).Msg("logging in")

	return c.post(ctx, "/auth/login", loginRequest{Username: username, Password: password})
}

// Register creates an account and returns the session issued for it.
// Input validation is server-side; the client only transports the profile.
func (c *Client) Register(ctx context.Context, profile session.Profile) (*session.Session, error) {
	log.Debug().Str("username", profile.Username).Msg("registering")

	return c.post(ctx, "/auth/register", profile)
}

func (c *Client) post(ctx context.Context, path string, body any) (*session.Session, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrServerUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: status %d", ErrServerUnavailable, resp.StatusCode)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrInvalidCredentials
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("%w: %s", ErrInvalidCredentials, readErrorMessage(resp.Body))
	}

	var auth authResponse
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	sess, err := auth.toSession()
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("username", sess.Username).
		Str("role", string(sess.Role)).
		Msg("authenticated")

	return sess, nil
}

// toSession validates the payload before accepting it. A success response
// missing id, role, or token is a login failure, not a partial session.
func (a authResponse) toSession() (*session.Session, error) {
	if a.ID == "" || a.Role == "" || a.Token == "" {
		return nil, fmt.Errorf("%w: missing id, role, or token", ErrMalformedResponse)
	}

	role, err := session.ParseRole(a.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return &session.Session{
		UserID:       a.ID,
		Username:     a.Username,
		Email:        a.Email,
		FullName:     a.FullName,
		Role:         role,
		AccessToken:  a.Token,
		RefreshToken: a.RefreshToken,
	}, nil
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func readErrorMessage(r io.Reader) string {
	var body errorBody
	if err := json.NewDecoder(io.LimitReader(r, 4096)).Decode(&body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return "request rejected"
}
