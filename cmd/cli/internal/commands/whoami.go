package commands

import (
	"context"
	"fmt"

	"github.com/clinicdesk/clinicdesk/internal/session"
)

type WhoamiCmd struct {
	Role string `help:"Show the session for this role instead of the first resident one" default:""`
}

func (w *WhoamiCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals, "")
	if err != nil {
		return err
	}

	var scope session.Role
	if w.Role != "" {
		scope, err = session.ParseRole(w.Role)
		if err != nil {
			return err
		}
	}

	if err := rt.manager.Init(scope); err != nil {
		return err
	}

	sess := rt.manager.Current()
	if sess == nil {
		fmt.Println("Not logged in.")
		return nil
	}

	fmt.Printf("User:  %s\n", sess.Username)
	fmt.Printf("Name:  %s\n", sess.FullName)
	fmt.Printf("Email: %s\n", sess.Email)
	fmt.Printf("Role:  %s\n", sess.Role)

	return nil
}
