package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/clinicdesk/clinicdesk/internal/authclient"
)

type LoginCmd struct {
	Username string `help:"Account username" required:""`
	Password string `help:"Account password" required:"" env:"CLINICDESK_PASSWORD"`
	Server   string `help:"API base URL (overrides config file)" default:""`
}

func (l *LoginCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals, l.Server)
	if err != nil {
		return err
	}

	if err := rt.manager.Init(""); err != nil {
		return err
	}

	sess, err := rt.manager.Login(ctx, l.Username, l.Password)
	if err != nil {
		switch {
		case errors.Is(err, authclient.ErrInvalidCredentials):
			return errors.New("login failed: invalid username or password")
		case errors.Is(err, authclient.ErrServerUnavailable):
			return fmt.Errorf("login failed: cannot reach %s, try again", rt.cfg.BaseURL)
		case errors.Is(err, authclient.ErrMalformedResponse):
			return fmt.Errorf("login failed: the server returned an incomplete identity: %w", err)
		}
		return err
	}

	fmt.Printf("Logged in as %s (%s)\n", sess.Username, sess.Role)
	fmt.Printf("Get started with: %s\n", dashboardHint(sess.Role))

	return nil
}
