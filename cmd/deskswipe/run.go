package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/frudas24/deskswipe/internal/app"
	"github.com/frudas24/deskswipe/internal/config"
	"github.com/frudas24/deskswipe/internal/session"
	"github.com/frudas24/deskswipe/internal/settings"
	"github.com/frudas24/deskswipe/internal/tui"
)

// run wires the server and blocks until shutdown.
func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logStartup(logger, cfg)

	sess := session.New(cfg.UIPassword)
	if cfg.PasswordMode == config.PasswordOff {
		sess = session.NewOpen()
	}
	sess.SetInputEnabled(cfg.InputEnabled)

	appInstance, err := app.New(cfg, sess, logger)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	appInstance.RegisterRoutes(mux, cfg.StaticDir)
	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	errCh := make(chan error, 2)
	go func() {
		if err := appInstance.Run(ctx); err != nil {
			errCh <- err
		}
	}()
	go func() {
		if err := server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// runTUI starts the terminal page switcher. A missing UI password is fine
// here since nothing listens on the network.
func runTUI(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil && !errors.Is(err, config.ErrPasswordRequired) {
		return err
	}
	s, err := settings.Load(cfg.SettingsPath)
	if err != nil {
		logger.Warn("settings: using defaults", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return tui.Run(ctx, tui.Options{
		Pages:         cfg.Pages,
		Preferences:   s.Preferences(),
		Scroll:        cfg.ScrollOptions(),
		DragThreshold: cfg.DragThreshold,
		Logger:        logger,
	})
}

// logStartup prints startup checks and connection info.
func logStartup(logger *slog.Logger, cfg config.Config) {
	logger.Info("deskswipe starting", "pages", cfg.Pages, "input", cfg.InputEnabled)
	logEnvStatus(logger, cfg)
	logSettingsStatus(logger, cfg.SettingsPath)
	logListenStatus(logger, cfg.ListenAddr)
}

// logEnvStatus reports whether a .env file was found and the password mode.
func logEnvStatus(logger *slog.Logger, cfg config.Config) {
	envPath := filepath.Join(cfg.DataDir, ".env")
	if fileExists(envPath) {
		logger.Info("env check: ok", "path", envPath)
	} else {
		logger.Info("env check: missing", "path", envPath)
	}
	if cfg.PasswordMode == config.PasswordOff {
		logger.Warn("env PASSWORD_MODE: disabled (dev mode)")
	}
}

// logSettingsStatus reports where swipe preferences are read from.
func logSettingsStatus(logger *slog.Logger, path string) {
	if fileExists(path) {
		logger.Info("settings: ok", "path", path)
		return
	}
	logger.Info("settings: defaults until file is written", "path", path)
}

// logListenStatus reports the listen address and a local URL helper.
func logListenStatus(logger *slog.Logger, addr string) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		logger.Info("listen addr", "addr", addr)
		return
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	logger.Info("listen addr", "addr", addr, "url", "http://"+net.JoinHostPort(host, port))
}

// fileExists reports whether a path exists and is a file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
