package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	appDir     = "eightyseven"
	configFile = "conf.json"
)

// fileBackend rewrites a JSON file on every save.
type fileBackend struct {
	path string
}

func (f fileBackend) save(entries map[string]any) error {
	return writeJSON(f.path, entries, 0o600)
}

// ConfigDir returns ${XDG_CONFIG_HOME:-~/.config}/eightyseven.
func ConfigDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		base = "~/.config"
	}
	if base == "~" || strings.HasPrefix(base, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("store: resolve home: %w", err)
		}
		base = filepath.Join(home, strings.TrimPrefix(base, "~"))
	}
	return filepath.Join(base, appDir), nil
}

// ConfigPath returns the location of the store file, creating its directory
// when it does not exist yet.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("store: create %s: %w", dir, err)
	}
	return filepath.Join(dir, configFile), nil
}

// Load opens the default store file and namespaces it by identity.
func Load(identity string) (*Store, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return Open(path, identity)
}

// Open reads the store at path (an absent file yields an empty store) and
// namespaces it by identity.
func Open(path, identity string) (*Store, error) {
	data := make(map[string]any)
	if _, err := readJSON(path, &data); err != nil {
		return nil, fmt.Errorf("store: read %s: %w", path, err)
	}
	s := newStore(fileBackend{path: path}, data)
	s.SetPrefix(identity)
	return s, nil
}

// Path returns the backing file of a store opened with Load or Open, or ""
// for a memory store.
func (s *Store) Path() string {
	if fb, ok := s.backend.(fileBackend); ok {
		return fb.path
	}
	return ""
}
