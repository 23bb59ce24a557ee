package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"ecb/internal/config"
	"ecb/internal/lsp"
	"ecb/internal/slogutil"
)

var (
	lspLogLevel string
	lspLogFile  string
)

var lspCmd = &cobra.Command{
	Use:   "lsp",
	Short: "Start the language server",
	Long: `Start the Language Server Protocol server.

The server speaks LSP over stdio: stdout carries protocol traffic only and
all logs go to stderr, optionally mirrored into --log-file. It serves
textDocument/completion, completionItem/resolve and textDocument/hover for
the Elm projects discovered under the workspace root.

Example usage:
  ecb lsp
  ecb lsp --log-level=debug --log-file=/tmp/ecb.log

This command is typically invoked by an editor's LSP client and not
directly by users.`,
	RunE: runLsp,
}

func init() {
	rootCmd.AddCommand(lspCmd)
	lspCmd.Flags().StringVar(&lspLogLevel, "log-level", "", "Log level: debug, info, warn, or error (default from config)")
	lspCmd.Flags().StringVar(&lspLogFile, "log-file", "", "Mirror logs into this file (default from config)")
}

func runLsp(cmd *cobra.Command, args []string) error {
	root, err := resolveWorkspaceRoot()
	if err != nil {
		return err
	}

	result, err := config.LoadConfigWithDetails(root)
	if err != nil {
		return err
	}

	// Flags win over config
	level := result.Config.Logging.Level
	if lspLogLevel != "" {
		level = lspLogLevel
	}
	file := result.Config.Logging.File
	if lspLogFile != "" {
		file = lspLogFile
	}

	logger, closeLog, err := newServerLogger(level, file)
	if err != nil {
		return err
	}
	if closeLog != nil {
		defer closeLog()
	}

	ws, err := buildWorkspace(root, result, logger)
	if err != nil {
		logger.Error("workspace initialization failed", "error", err)
		return err
	}

	server := lsp.NewServer(ws.engine, ws.overlay, ws.loader, logger)
	if err := server.Start(); err != nil {
		logger.Error("language server error", "error", err)
		return err
	}
	return nil
}

// newServerLogger builds the lsp command's logger. Stdout carries protocol
// traffic, so logs always go to stderr, teed into a file when one is
// configured.
func newServerLogger(level, file string) (*slog.Logger, func(), error) {
	slogLevel := slogutil.LevelFromString(level)
	stderrHandler := slogutil.NewECBHandler(os.Stderr, &slog.HandlerOptions{Level: slogLevel})
	if file == "" {
		return slog.New(stderrHandler), nil, nil
	}

	f, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}
	fileHandler := slogutil.NewECBHandler(f, &slog.HandlerOptions{Level: slogLevel})
	return slogutil.NewTeeLogger(stderrHandler, fileHandler), func() { f.Close() }, nil
}
