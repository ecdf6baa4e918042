package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"

	"eightyseven/internal/devapi"
)

type config struct {
	Addr     string `env:"EIGHTYSEVEN_DEV_ADDR" envDefault:":8087"`
	Backend  string `env:"EIGHTYSEVEN_DEV_BACKEND" envDefault:"memory"`
	DataDir  string `env:"EIGHTYSEVEN_DEV_DATA" envDefault:"."`
	APIPath  string `env:"EIGHTYSEVEN_API_PATH" envDefault:"/api/v1"`
	Username string `env:"EIGHTYSEVEN_DEV_USER"`
	Password string `env:"EIGHTYSEVEN_DEV_PASSWORD"`
	Debug    bool   `env:"EIGHTYSEVEN_DEBUG"`
}

// parseConfig reads the environment, then lets flags override it.
func parseConfig(fs *flag.FlagSet, args []string) (config, error) {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return config{}, fmt.Errorf("parse env: %w", err)
	}
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	fs.StringVar(&cfg.Backend, "backend", cfg.Backend, "storage backend: memory or sqlite")
	fs.StringVar(&cfg.DataDir, "data", cfg.DataDir, "directory for the sqlite database")
	fs.StringVar(&cfg.APIPath, "api-path", cfg.APIPath, "path the API is mounted at")
	fs.StringVar(&cfg.Username, "user", cfg.Username, "require basic auth with this username")
	fs.StringVar(&cfg.Password, "password", cfg.Password, "basic auth password")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "debug logging")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}
	if cfg.Username != "" && cfg.Password == "" {
		return config{}, errors.New("-user needs -password")
	}
	return cfg, nil
}

func run(ctx context.Context, cfg config, logger *slog.Logger) error {
	storage, err := devapi.NewStorage(cfg.Backend, cfg.DataDir)
	if err != nil {
		return err
	}
	defer storage.Close()

	srv := &http.Server{
		Addr: cfg.Addr,
		Handler: devapi.New(storage, devapi.Config{
			APIPath:  cfg.APIPath,
			Username: cfg.Username,
			Password: cfg.Password,
			Logger:   logger,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("devserver listening", "addr", cfg.Addr, "backend", cfg.Backend, "api", cfg.APIPath)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func main() {
	cfg, err := parseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "devserver: %v\n", err)
		os.Exit(2)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("devserver stopped", "err", err)
		os.Exit(1)
	}
}
