package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"ecb/internal/complete"
	"ecb/internal/config"
	"ecb/internal/docs"
	"ecb/internal/manifest"
	"ecb/internal/modules"
	"ecb/internal/slogutil"
	"ecb/internal/source"
)

// workspace bundles the loaded configuration with everything a command needs
// to serve completions from it.
type workspace struct {
	root    string
	cfg     *config.Config
	overlay *source.Overlay
	loader  *manifest.Loader
	engine  *complete.Engine
}

// resolveWorkspaceRoot makes the --workspace flag absolute.
func resolveWorkspaceRoot() (string, error) {
	root, err := filepath.Abs(workspaceFlag)
	if err != nil {
		return "", fmt.Errorf("failed to resolve workspace root: %w", err)
	}
	return root, nil
}

// buildWorkspace assembles the completion pipeline on top of an already
// loaded configuration.
func buildWorkspace(root string, result *config.LoadResult, logger *slog.Logger) (*workspace, error) {
	cfg := result.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if result.UsedDefaults {
		logger.Debug("no config file found, using defaults")
	} else {
		logger.Debug("config loaded", "path", result.ConfigPath)
	}
	for _, ov := range result.EnvOverrides {
		logger.Debug("config overridden from environment", "var", ov.EnvVar, "path", ov.Path, "value", ov.Value)
	}

	wf, err := config.LoadWorkspaceFile(root)
	if err != nil {
		return nil, fmt.Errorf("failed to load workspace declaration: %w", err)
	}

	loader := manifest.NewLoader(manifest.Options{
		Roots:       config.EffectiveRoots(root, cfg, wf),
		ExcludeDirs: cfg.Workspace.ExcludeDirs,
		PackageRoot: cfg.Packages.Root,
	}, logger)

	overlay := source.NewOverlay(source.OS())
	store := modules.NewStore(loader, overlay, logger)
	engine := complete.NewEngine(store, docs.NewIndex(store), logger)

	return &workspace{root: root, cfg: cfg, overlay: overlay, loader: loader, engine: engine}, nil
}

// openWorkspace loads the workspace config and builds the completion
// pipeline in one step.
func openWorkspace(logger *slog.Logger) (*workspace, error) {
	root, err := resolveWorkspaceRoot()
	if err != nil {
		return nil, err
	}

	result, err := config.LoadConfigWithDetails(root)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return buildWorkspace(root, result, logger)
}

// mustOpenWorkspace returns the workspace or exits on error.
func mustOpenWorkspace(logger *slog.Logger) *workspace {
	ws, err := openWorkspace(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening workspace: %v\n", err)
		os.Exit(1)
	}
	return ws
}

// newContext creates a new context for command execution.
func newContext() context.Context {
	return context.Background()
}

// newLogger creates a stderr logger at the named level.
func newLogger(level string) *slog.Logger {
	return slogutil.NewLogger(os.Stderr, slogutil.LevelFromString(level))
}
