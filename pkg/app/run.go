// Package app provides the shared entry point for the walletclaw binary.
package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/flemzord/walletclaw/internal/config"
	"github.com/flemzord/walletclaw/internal/core"
)

// RunParams configures the main application loop.
type RunParams struct {
	// ConfigPath is an explicit path to the YAML configuration file.
	// If empty, ResolveConfigPath is called automatically.
	ConfigPath string

	// Version, Commit, and Date are injected at build time via ldflags.
	Version string
	Commit  string
	Date    string

	// LogLevel sets the minimum log level. Defaults to slog.LevelInfo.
	LogLevel slog.Level
}

// Run loads configuration, starts all modules, and blocks until a
// shutdown signal is received.
func Run(params RunParams) error {
	cfgPath := params.ConfigPath
	if cfgPath == "" {
		resolved, err := ResolveConfigPath()
		if err != nil {
			return err
		}
		cfgPath = resolved
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: params.LogLevel,
	}))
	logger.Info("walletclaw starting",
		"version", params.Version,
		"config", cfgPath,
	)

	appCtx := core.NewAppContext(logger)
	appCtx = appCtx.WithModuleConfigs(cfg.Modules)

	application := core.NewApp(appCtx)
	ids := cfg.ModuleIDs()
	if err := application.LoadModules(ids); err != nil {
		return err
	}

	// Wire the router between LoadModules and Start: discover channels,
	// build the agent pipeline, call SetInbox on every channel, and
	// append the router to the app lifecycle.
	if err := wireRouter(application, appCtx, ids, logger); err != nil {
		return err
	}

	return application.Run()
}

// CheckConfig loads and validates the configuration without starting
// anything. Used by the "config check" subcommand.
func CheckConfig(cfgPath string) error {
	if cfgPath == "" {
		resolved, err := ResolveConfigPath()
		if err != nil {
			return err
		}
		cfgPath = resolved
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	return config.Validate(cfg)
}

// ResolveConfigPath searches for a config file in standard locations.
// Search order: $XDG_CONFIG_HOME/walletclaw/walletclaw.yaml →
// ~/.config/walletclaw/walletclaw.yaml → ./walletclaw.yaml
func ResolveConfigPath() (string, error) {
	var candidates []string

	if xdg, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok {
		candidates = append(candidates, filepath.Join(xdg, "walletclaw", "walletclaw.yaml"))
	} else if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "walletclaw", "walletclaw.yaml"))
	}

	candidates = append(candidates, "walletclaw.yaml")

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("no configuration file found (searched: %v)", candidates)
}
