package main

import (
	"encoding/json"
	"fmt"
	"strings"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
)

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// formatJSON formats the response as JSON
func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

// formatHuman formats the response in human-readable format
func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *ProjectsResponseCLI:
		return formatProjectsHuman(v)
	case *CompleteResponseCLI:
		return formatCompleteHuman(v)
	default:
		// For unknown types, fall back to JSON
		return formatJSON(resp)
	}
}

// formatProjectsHuman formats a ProjectsResponseCLI in human-readable format
func formatProjectsHuman(resp *ProjectsResponseCLI) (string, error) {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Workspace: %s\n", resp.WorkspaceRoot))
	b.WriteString(strings.Repeat("=", 60) + "\n\n")
	b.WriteString(fmt.Sprintf("Found %d project(s)\n\n", len(resp.Projects)))

	for i, p := range resp.Projects {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, p.ManifestPath))
		b.WriteString(fmt.Sprintf("   Kind: %s (elm %s)\n", p.Kind, p.ElmVersion))
		if len(p.SourceDirs) > 0 {
			b.WriteString(fmt.Sprintf("   Source dirs: %s\n", strings.Join(p.SourceDirs, ", ")))
		}
		if len(p.Dependencies) > 0 {
			b.WriteString("   Dependencies:\n")
			for _, d := range p.Dependencies {
				b.WriteString(fmt.Sprintf("     - %s %s (%d modules)\n", d.Name, d.Version, d.Modules))
			}
		}
		b.WriteString("\n")
	}

	return b.String(), nil
}

// formatCompleteHuman formats a CompleteResponseCLI in human-readable format
func formatCompleteHuman(resp *CompleteResponseCLI) (string, error) {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Completions at %s:%d\n", resp.File, resp.Offset))
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	if len(resp.Candidates) == 0 {
		b.WriteString("(no candidates)\n")
		return b.String(), nil
	}

	for _, c := range resp.Candidates {
		b.WriteString(fmt.Sprintf("  %-8s %s\n", c.Kind, c.Label))
		if c.Detail != "" {
			b.WriteString(fmt.Sprintf("           %s\n", c.Detail))
		}
	}

	return b.String(), nil
}
