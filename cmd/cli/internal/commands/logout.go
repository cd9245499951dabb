package commands

import (
	"context"
	"fmt"

	"github.com/clinicdesk/clinicdesk/internal/session"
)

type LogoutCmd struct {
	Role string `help:"Log out only this role (ADMIN, DOCTOR, PATIENT); omit to log out everywhere" default:""`
}

func (l *LogoutCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals, "")
	if err != nil {
		return err
	}

	if err := rt.manager.Init(""); err != nil {
		return err
	}

	if l.Role == "" {
		if err := rt.manager.LogoutAll(); err != nil {
			return err
		}
		fmt.Println("Logged out of all roles.")
		return nil
	}

	role, err := session.ParseRole(l.Role)
	if err != nil {
		return err
	}

	if err := rt.manager.Logout(role); err != nil {
		return err
	}

	fmt.Printf("Logged out of %s.\n", role)
	return nil
}
