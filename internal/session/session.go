package session

import (
	"errors"
	"fmt"
	"strings"
)

// Role identifies which dashboard a session grants access to.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleDoctor  Role = "DOCTOR"
	RolePatient Role = "PATIENT"
)

// Roles lists all known roles in a stable order.
var Roles = []Role{RoleAdmin, RoleDoctor, RolePatient}

// ErrUnknownRole is returned when a role string is not one of the known roles.
var ErrUnknownRole = errors.New("unknown role")

// ParseRole converts a user-supplied role name into a Role.
// Matching is case-insensitive.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleDoctor:
		return RoleDoctor, nil
	case RolePatient:
		return RolePatient, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// Known reports whether the role is one of the closed enumeration.
func (r Role) Known() bool {
	return r == RoleAdmin || r == RoleDoctor || r == RolePatient
}

// Session is the authenticated identity for one role scope.
type Session struct {
	UserID       string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	FullName     string `json:"fullName"`
	Role         Role   `json:"role"`
	AccessToken  string `json:"token"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// Valid reports whether the session is usable. A session needs both a role
// and an access token; anything less is treated as not authenticated.
func (s *Session) Valid() bool {
	return s != nil && s.AccessToken != "" && s.Role.Known()
}

// Profile carries the registration fields collected from the user.
// Validation happens server-side; the client only transports them.
type Profile struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone,omitempty"`
	Role     Role   `json:"role,omitempty"`
}
