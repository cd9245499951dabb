package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/clinicdesk/clinicdesk/internal/api"
	"github.com/clinicdesk/clinicdesk/internal/authclient"
	"github.com/clinicdesk/clinicdesk/internal/config"
	"github.com/clinicdesk/clinicdesk/internal/credentials"
	"github.com/clinicdesk/clinicdesk/internal/guard"
	"github.com/clinicdesk/clinicdesk/internal/session"
	"github.com/clinicdesk/clinicdesk/internal/transport"
)

type Globals struct {
	Debug   bool
	Version string
}

func setupLogging(globals *Globals) {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).With().Timestamp().Logger()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if globals.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

// runtime wires together the pieces every command needs: resolved config,
// the session store, and a session manager over the auth client.
type runtime struct {
	cfg     config.Config
	store   *credentials.Store
	manager *session.Manager
}

func newRuntime(globals *Globals, serverOverride string) (*runtime, error) {
	setupLogging(globals)

	cfg, err := config.Resolve(serverOverride)
	if err != nil {
		return nil, err
	}

	store, err := credentials.NewStore("")
	if err != nil {
		return nil, err
	}

	authc := authclient.New(authclient.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
	})

	return &runtime{
		cfg:     cfg,
		store:   store,
		manager: session.NewManager(store, authc),
	}, nil
}

// enterScope is the command-layer equivalent of navigating into a protected
// route: initialize session state for the role's scope, run the guard, and
// only on an allow decision hand back an authenticated API client.
func (r *runtime) enterScope(role session.Role) (*api.Client, error) {
	if err := r.manager.Init(role); err != nil {
		return nil, err
	}

	g := guard.New(r.store, r.manager, log.Logger)

	switch decision := g.Check(role); decision {
	case guard.DecisionAllow:
	case guard.DecisionLogin:
		return nil, fmt.Errorf("no %s session found, run \"clinicdesk login\" first", role)
	case guard.DecisionUnauthorized:
		return nil, fmt.Errorf("the resident session does not grant %s access", role)
	default:
		return nil, fmt.Errorf("session state not ready (%s)", decision)
	}

	httpClient := transport.NewClient(r.store, r.cfg.Timeout,
		transport.WithScope(role),
		transport.WithCache(),
		transport.WithUnauthorizedHook(func() {
			fmt.Fprintln(os.Stderr, "Session rejected by the server. Stored credentials were cleared; run \"clinicdesk login\" again.")
		}),
	)

	return api.New(api.Config{BaseURL: r.cfg.BaseURL}, httpClient), nil
}

// dashboardHint tells the user where to go after login, mirroring the role
// based redirect of the web client.
func dashboardHint(role session.Role) string {
	switch role {
	case session.RoleAdmin:
		return "clinicdesk admin --help"
	case session.RoleDoctor:
		return "clinicdesk doctor --help"
	case session.RolePatient:
		return "clinicdesk patient --help"
	default:
		return "clinicdesk --help"
	}
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max-3] + "..."
	}
	return s
}
