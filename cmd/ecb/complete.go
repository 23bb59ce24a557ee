package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"ecb/internal/complete"
)

var (
	completeFile    string
	completeOffset  int
	completeResolve bool
	completeFormat  string
)

var completeCmd = &cobra.Command{
	Use:   "complete",
	Short: "Compute completions for a position in a file",
	Long: `Compute completion candidates for a byte offset in an Elm file.

This is the one-shot CLI equivalent of textDocument/completion, useful for
scripting and for debugging what the language server would offer.

Examples:
  ecb complete --file=src/Main.elm --offset=120
  ecb complete --file=src/Main.elm --offset=120 --resolve
  ecb complete --file=src/Main.elm --offset=120 --format=human`,
	Run: runComplete,
}

func init() {
	completeCmd.Flags().StringVar(&completeFile, "file", "", "Elm file to complete in (required)")
	completeCmd.Flags().IntVar(&completeOffset, "offset", 0, "Byte offset of the cursor (required)")
	completeCmd.Flags().BoolVar(&completeResolve, "resolve", false, "Resolve details and documentation for every candidate")
	completeCmd.Flags().StringVar(&completeFormat, "format", "json", "Output format (json, human)")
	_ = completeCmd.MarkFlagRequired("file")
	_ = completeCmd.MarkFlagRequired("offset")
	rootCmd.AddCommand(completeCmd)
}

func runComplete(cmd *cobra.Command, args []string) {
	start := time.Now()
	logger := newLogger("info")

	path, err := filepath.Abs(completeFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving file path: %v\n", err)
		os.Exit(1)
	}

	ws := mustOpenWorkspace(logger)
	ctx := newContext()

	candidates := ws.engine.Provide(ctx, path, completeOffset)
	if completeResolve {
		for i := range candidates {
			ws.engine.Resolve(ctx, &candidates[i])
		}
	}

	response := &CompleteResponseCLI{
		File:       path,
		Offset:     completeOffset,
		Candidates: candidates,
	}

	output, err := FormatResponse(response, OutputFormat(completeFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(output)

	logger.Debug("completion request completed",
		"file", path,
		"offset", completeOffset,
		"candidates", len(candidates),
		"duration", time.Since(start).Milliseconds(),
	)
}

// CompleteResponseCLI contains completion candidates for CLI output
type CompleteResponseCLI struct {
	File       string               `json:"file"`
	Offset     int                  `json:"offset"`
	Candidates []complete.Candidate `json:"candidates"`
}
