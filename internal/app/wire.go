package app

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"eightyseven/internal/store"
	"eightyseven/internal/transport"
)

// Keys the CLI keeps in the store.
const (
	KeyHost     = "host"
	KeyUsername = "username"
	KeyPassword = "password"
)

// ErrNotConfigured is returned when no API host is known.
var ErrNotConfigured = errors.New("no host configured (run `eightyseven configure --host URL`)")

// Deps are the collaborators that do not come from the environment.
type Deps struct {
	HTTP   *http.Client // optional; a client with Config.Timeout is built otherwise
	Logger *slog.Logger // optional; defaults to slog.Default()
}

// Wire bundles the store and the API transport for the CLI.
type Wire struct {
	Config Config
	Store  *store.Store
	Logger *slog.Logger

	http *http.Client
}

// NewWire opens the store for cfg.Identity and registers the validators of
// the keys the CLI owns.
func NewWire(cfg Config, deps Deps) (*Wire, error) {
	var (
		s   *store.Store
		err error
	)
	if cfg.ConfigFile != "" {
		s, err = store.Open(cfg.ConfigFile, cfg.Identity)
	} else {
		s, err = store.Load(cfg.Identity)
	}
	if err != nil {
		return nil, err
	}
	s.SetValidator(KeyHost, store.HTTPURL)
	s.SetValidator(KeyUsername, store.NonEmpty)

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Wire{Config: cfg, Store: s, Logger: logger, http: deps.HTTP}, nil
}

// Host returns the API host: the environment override, else the stored one.
func (w *Wire) Host() (string, error) {
	if w.Config.Host != "" {
		return w.Config.Host, nil
	}
	host, err := w.Store.GetString(KeyHost)
	if errors.Is(err, store.ErrKeyNotFound) {
		return "", ErrNotConfigured
	}
	return host, err
}

// Transport builds the API client for the configured host and credentials.
func (w *Wire) Transport() (*transport.Client, error) {
	host, err := w.Host()
	if err != nil {
		return nil, err
	}

	base := strings.TrimRight(host, "/")
	if p := strings.Trim(w.Config.APIPath, "/"); p != "" {
		base += "/" + p
	}

	opts := []transport.Option{
		transport.WithTimeout(w.Config.Timeout),
		transport.WithHTTPClient(w.http),
		transport.WithLogger(w.Logger),
		transport.WithHeader("User-Agent", "eightyseven-cli"),
	}
	user, userErr := w.Store.GetString(KeyUsername)
	pass, passErr := w.Store.GetString(KeyPassword)
	if userErr == nil && passErr == nil {
		opts = append(opts, transport.WithBasicAuth(user, pass))
	}

	c, err := transport.New(base, opts...)
	if err != nil {
		return nil, fmt.Errorf("build transport: %w", err)
	}
	return c, nil
}
