package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/peterbourgon/diskv/v3"
)

// Fixed client storage keys.
const (
	KeyToken = "auth_token"
	KeyUser  = "user"
	KeyTheme = "theme"
)

const tempDirName = ".tmp"

// Storage is the string key/value store holding client state.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(keys ...string) error
}

// Sessions persists the token and serialized user as one unit.
type Sessions interface {
	Storage
	SaveSession(token string, user []byte) error
	LoadSession() (token string, user []byte, ok bool)
	ClearSession() error
}

// Load opens the diskv-backed storage rooted at cfg.BasePath().
func Load(cfg Config) (*Disk, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig(nil)
		if err != nil {
			return nil, err
		}
	}
	base := cfg.BasePath()
	if base == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(base, 0o700); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &Disk{d: diskv.New(diskv.Options{
		BasePath:          base,
		TempDir:           filepath.Join(base, tempDirName),
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		FilePerm:          0o600,
		PathPerm:          0o700,
	}), basePath: base}, nil
}

// Disk stores each key as a file. Writes go through a temp file and rename,
// so a reader never sees a half written value. Nothing is cached in memory
// because another process may change the files under us.
type Disk struct {
	mu       sync.Mutex
	d        *diskv.Diskv
	basePath string
}

var _ Sessions = (*Disk)(nil)

// BasePath returns the directory holding the key files.
func (s *Disk) BasePath() string { return s.basePath }

func (s *Disk) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(key)
}

func (s *Disk) get(key string) (string, bool) {
	if !s.d.Has(key) {
		return "", false
	}
	val, err := s.d.Read(key)
	if err != nil {
		return "", false
	}
	return string(val), true
}

func (s *Disk) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.d.Write(key, []byte(value))
}

func (s *Disk) Delete(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.erase(keys...)
}

func (s *Disk) erase(keys ...string) error {
	var errs []error
	for _, key := range keys {
		if !s.d.Has(key) {
			continue
		}
		if err := s.d.Erase(key); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, fmt.Errorf("store: erase %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

// SaveSession writes the user first and the token last. The token file acts
// as the commit marker: LoadSession ignores a user without a token.
func (s *Disk) SaveSession(token string, user []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.d.Write(KeyUser, user); err != nil {
		return fmt.Errorf("store: write user: %w", err)
	}
	if err := s.d.Write(KeyToken, []byte(token)); err != nil {
		_ = s.erase(KeyUser)
		return fmt.Errorf("store: write token: %w", err)
	}
	return nil
}

// LoadSession reports ok only when both halves are present. A lone half is
// removed so the next launch starts clean.
func (s *Disk) LoadSession() (string, []byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	token, hasToken := s.get(KeyToken)
	user, hasUser := s.get(KeyUser)
	if hasToken && hasUser && token != "" && user != "" {
		return token, []byte(user), true
	}
	if hasToken || hasUser {
		_ = s.erase(KeyToken, KeyUser)
	}
	return "", nil, false
}

// ClearSession removes the token before the user, mirroring SaveSession.
func (s *Disk) ClearSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.erase(KeyToken, KeyUser)
}

func keyToPathTransform(key string) *diskv.PathKey {
	return &diskv.PathKey{Path: []string{}, FileName: key}
}

func pathToKeyTransform(pk *diskv.PathKey) string {
	return pk.FileName
}
