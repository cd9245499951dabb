package commands

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/clinicdesk/clinicdesk/internal/credentials"
	"github.com/clinicdesk/clinicdesk/internal/session"
)

type SessionsCmd struct{}

func (s *SessionsCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals, "")
	if err != nil {
		return err
	}

	fmt.Printf("%-10s %-20s %-25s %-14s %-20s\n",
		"Role", "Username", "Full Name", "Token", "Expires")

	found := 0
	for _, role := range session.Roles {
		sess, err := rt.store.Load(role)
		if err != nil {
			return err
		}
		if sess == nil {
			continue
		}
		found++

		fmt.Printf("%-10s %-20s %-25s %-14s %-20s\n",
			sess.Role,
			truncate(sess.Username, 20),
			truncate(sess.FullName, 25),
			credentials.Fingerprint(sess.AccessToken),
			tokenExpiry(sess.AccessToken))
	}

	if found == 0 {
		fmt.Println("No resident sessions.")
	}

	return nil
}

// tokenExpiry decodes the expiry claim without verifying the signature.
// Verification is the server's job; this is display only. Tokens that are
// not JWTs are simply reported as opaque.
func tokenExpiry(token string) string {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return "opaque"
	}
	if claims.ExpiresAt == nil {
		return "none"
	}
	return claims.ExpiresAt.Local().Format("2006-01-02 15:04:05")
}
