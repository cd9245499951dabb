package credentials

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mr-tron/base58"
	"github.com/rs/zerolog/log"

	"github.com/clinicdesk/clinicdesk/internal/session"
)

// ErrInvalidSession is returned when asked to save a session that fails the
// validity invariant (missing role or token).
var ErrInvalidSession = errors.New("invalid session")

// storedSession is the on-disk shape of one role slot.
type storedSession struct {
	UserID       string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FullName     string    `json:"fullName"`
	Role         string    `json:"role"`
	Token        string    `json:"token"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	SavedAt      time.Time `json:"saved_at"`
}

// storeFile is the sessions file layout. Slots are keyed by role, so up to
// one session per role may be resident at a time.
type storeFile struct {
	Version  int                      `json:"version"`
	Sessions map[string]storedSession `json:"sessions"`
}

// Store persists sessions on the local filesystem, one slot per role.
//
// The file is shared by every clinicdesk process of the same user. There is
// no locking between processes; the last writer wins. That matches the
// behaviour of the browser client this replaces and is a documented caveat,
// not something the store tries to fix.
type Store struct {
	path string
}

// NewStore creates a session store rooted at baseDir.
// If baseDir is empty, uses ~/.clinicdesk/
func NewStore(baseDir string) (*Store, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		baseDir = filepath.Join(home, ".clinicdesk")
	}

	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	store := &Store{path: filepath.Join(baseDir, "sessions.json")}

	log.Debug().Str("path", store.path).Msg("session store initialized")

	return store, nil
}

// Save writes the session into the slot for its role, replacing any session
// already resident for that role. Other roles' slots are untouched.
func (s *Store) Save(sess *session.Session) error {
	if !sess.Valid() {
		return ErrInvalidSession
	}

	file := s.loadFile()
	file.Sessions[string(sess.Role)] = storedSession{
		UserID:       sess.UserID,
		Username:     sess.Username,
		Email:        sess.Email,
		FullName:     sess.FullName,
		Role:         string(sess.Role),
		Token:        sess.AccessToken,
		RefreshToken: sess.RefreshToken,
		SavedAt:      time.Now().UTC(),
	}

	if err := s.saveFile(file); err != nil {
		return err
	}

	log.Debug().
		Str("role", string(sess.Role)).
		Str("username", sess.Username).
		Str("fingerprint", Fingerprint(sess.AccessToken)).
		Msg("session saved")

	return nil
}

// Load returns the session resident in the given role's slot, or (nil, nil)
// when the slot is empty. Entries that fail shape validation are treated as
// absent, not as errors.
func (s *Store) Load(role session.Role) (*session.Session, error) {
	file := s.loadFile()

	entry, ok := file.Sessions[string(role)]
	if !ok {
		return nil, nil
	}

	sess := entry.toSession()
	if !sess.Valid() {
		log.Warn().
			Str("role", string(role)).
			Msg("stored session failed validation, treating as absent")
		return nil, nil
	}

	return sess, nil
}

// LoadAny returns the first valid resident session in role order
// (ADMIN, DOCTOR, PATIENT), or (nil, nil) when no slot holds one.
func (s *Store) LoadAny() (*session.Session, error) {
	for _, role := range session.Roles {
		sess, err := s.Load(role)
		if err != nil {
			return nil, err
		}
		if sess != nil {
			return sess, nil
		}
	}
	return nil, nil
}

// Clear empties the given role's slot. Clearing an already empty slot is a
// no-op, so the operation is idempotent.
func (s *Store) Clear(role session.Role) error {
	file := s.loadFile()

	if _, ok := file.Sessions[string(role)]; !ok {
		return nil
	}

	delete(file.Sessions, string(role))

	if err := s.saveFile(file); err != nil {
		return err
	}

	log.Debug().Str("role", string(role)).Msg("session cleared")

	return nil
}

// ClearAll empties every slot.
func (s *Store) ClearAll() error {
	file := s.loadFile()

	if len(file.Sessions) == 0 {
		return nil
	}

	file.Sessions = make(map[string]storedSession)

	if err := s.saveFile(file); err != nil {
		return err
	}

	log.Debug().Msg("all sessions cleared")

	return nil
}

// loadFile reads the sessions file. A missing file yields an empty store.
// A file that fails to parse also yields an empty store: corrupt local state
// means "not logged in", never a fatal error surfaced to the user.
func (s *Store) loadFile() *storeFile {
	empty := &storeFile{Version: 1, Sessions: make(map[string]storedSession)}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", s.path).Msg("failed to read sessions file")
		}
		return empty
	}

	var file storeFile
	if err := json.Unmarshal(data, &file); err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("sessions file is corrupt, treating as empty")
		return empty
	}

	if file.Sessions == nil {
		file.Sessions = make(map[string]storedSession)
	}

	return &file
}

// saveFile writes the sessions file atomically.
func (s *Store) saveFile(file *storeFile) error {
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal sessions: %w", err)
	}

	tempPath := s.path + ".tmp"

	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write sessions: %w", err)
	}

	if err := os.Rename(tempPath, s.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to save sessions: %w", err)
	}

	return nil
}

func (e storedSession) toSession() *session.Session {
	return &session.Session{
		UserID:       e.UserID,
		Username:     e.Username,
		Email:        e.Email,
		FullName:     e.FullName,
		Role:         session.Role(e.Role),
		AccessToken:  e.Token,
		RefreshToken: e.RefreshToken,
	}
}

// Fingerprint returns a short Base58-encoded SHA256 digest of a token,
// safe to put in logs where the raw token must never appear.
func Fingerprint(token string) string {
	if token == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(token))
	return base58.Encode(hash[:8])
}
