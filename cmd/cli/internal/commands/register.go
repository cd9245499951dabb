package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/clinicdesk/clinicdesk/internal/authclient"
	"github.com/clinicdesk/clinicdesk/internal/session"
)

type RegisterCmd struct {
	Username string `help:"Account username" required:""`
	Password string `help:"Account password" required:"" env:"CLINICDESK_PASSWORD"`
	Email    string `help:"Email address" required:""`
	FullName string `help:"Full name" required:""`
	Phone    string `help:"Phone number" default:""`
	Role     string `help:"Account role" default:"PATIENT"`
	Server   string `help:"API base URL (overrides config file)" default:""`
}

func (r *RegisterCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals, r.Server)
	if err != nil {
		return err
	}

	role, err := session.ParseRole(r.Role)
	if err != nil {
		return err
	}

	if err := rt.manager.Init(""); err != nil {
		return err
	}

	sess, err := rt.manager.Register(ctx, session.Profile{
		Username: r.Username,
		Password: r.Password,
		Email:    r.Email,
		FullName: r.FullName,
		Phone:    r.Phone,
		Role:     role,
	})
	if err != nil {
		switch {
		case errors.Is(err, authclient.ErrInvalidCredentials):
			return fmt.Errorf("registration rejected: %w", err)
		case errors.Is(err, authclient.ErrServerUnavailable):
			return fmt.Errorf("registration failed: cannot reach %s, try again", rt.cfg.BaseURL)
		case errors.Is(err, authclient.ErrMalformedResponse):
			return fmt.Errorf("registration failed: the server returned an incomplete identity: %w", err)
		}
		return err
	}

	fmt.Printf("Registered and logged in as %s (%s)\n", sess.Username, sess.Role)
	fmt.Printf("Get started with: %s\n", dashboardHint(sess.Role))

	return nil
}
