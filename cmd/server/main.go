// Package main is the entry point for the myfunds-ui server.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/jamesprial/myfunds-ui/internal/ajax"
	"github.com/jamesprial/myfunds-ui/internal/alerts"
	"github.com/jamesprial/myfunds-ui/internal/auth"
	"github.com/jamesprial/myfunds-ui/internal/config"
	"github.com/jamesprial/myfunds-ui/internal/icons"
	"github.com/jamesprial/myfunds-ui/internal/logging"
	"github.com/jamesprial/myfunds-ui/internal/safety"
	"github.com/jamesprial/myfunds-ui/internal/schedule"
	"github.com/jamesprial/myfunds-ui/internal/tools"
	"github.com/jamesprial/myfunds-ui/internal/web"
	"github.com/jamesprial/myfunds-ui/internal/widgets"
)

const (
	defaultConfigPath = "/config/config.yaml"
	version           = "1.0.0"
)

func main() {
	cfg, path, cfgErr := loadConfig()
	config.ApplyEnvOverrides(cfg)

	log := logging.New(cfg.Log, os.Stderr)
	if cfgErr != nil {
		log.Warn().Err(cfgErr).Str("path", path).Msg("could not load config, using defaults")
	} else {
		log.Info().Str("path", path).Msg("loaded config")
	}

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	tokenBefore := cfg.Server.AuthToken
	token, err := config.EnsureAuthToken(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("could not generate auth token, running without authentication")
	} else if tokenBefore == "" {
		log.Info().Str("token", token).Msg("generated auth token (set MYFUNDS_UI_AUTH_TOKEN to persist)")
	}

	var auditLogger *safety.AuditLogger
	if cfg.Audit.Enabled {
		a, closer, err := safety.OpenAuditLog(cfg.Audit.LogPath)
		if err != nil {
			log.Warn().Err(err).Msg("audit logging disabled")
		} else {
			auditLogger = a
			defer closeQuietly(closer)
		}
	}

	// Notification center.
	container := alerts.NewMarkupContainer(cfg.Alerts.Container)
	replacer := icons.NewFeather(cfg.UI.IconSize)
	center := alerts.NewCenter(container, schedule.Real(), replacer, log)
	center.Initialize(alerts.OptionsFromConfig(cfg.Alerts))
	defer center.Teardown()

	// Ajax client.
	apiClient, err := ajax.NewClient(cfg.API, log)
	if err != nil {
		return fmt.Errorf("build ajax client: %w", err)
	}
	opFilter, err := safety.NewFilter(cfg.API.Allowlist, cfg.API.Denylist)
	if err != nil {
		return fmt.Errorf("build operation filter: %w", err)
	}

	panels := widgets.NewPanelSet(cfg.UI.Panels...)

	// MCP server.
	mcpServer := server.NewMCPServer(
		"myfunds-ui",
		version,
		server.WithToolCapabilities(false),
	)
	names := tools.RegisterAll(mcpServer,
		alerts.AlertTools(center, auditLogger),
		ajax.APITools(apiClient, opFilter, center, auditLogger),
		widgets.WidgetTools(cfg.UI, panels, auditLogger),
	)
	log.Debug().Strs("tools", names).Msg("registered MCP tools")

	router := web.NewRouter(web.Deps{
		Alerts:    center,
		Container: container,
		UI:        cfg.UI,
		Panels:    panels,
		Log:       log,
	})
	router.Handle("/mcp", server.NewStreamableHTTPServer(mcpServer))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           auth.Middleware(cfg.Server.AuthToken, log, "/health")(router),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Str("origin", cfg.API.Origin).Msg("myfunds-ui listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("graceful shutdown error")
	}
	log.Info().Msg("server stopped")
	return nil
}

// loadConfig reads the file named by MYFUNDS_UI_CONFIG_PATH or the default
// /config/config.yaml. When it cannot be loaded, DefaultConfig is returned
// along with the error.
func loadConfig() (*config.Config, string, error) {
	path := os.Getenv("MYFUNDS_UI_CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return config.DefaultConfig(), path, err
	}
	return cfg, path, nil
}

func closeQuietly(c io.Closer) { _ = c.Close() }
