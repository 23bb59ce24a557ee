package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"ecb/internal/manifest"
)

var projectsFormat string

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List the Elm projects in the workspace",
	Long: `Discover and list the Elm projects under the workspace roots.

Each project is reported with its manifest path, kind, tooling version,
source directories, and direct dependencies.

Examples:
  ecb projects
  ecb projects --workspace=../frontend
  ecb projects --format=human`,
	Run: runProjects,
}

func init() {
	projectsCmd.Flags().StringVar(&projectsFormat, "format", "json", "Output format (json, human)")
	rootCmd.AddCommand(projectsCmd)
}

func runProjects(cmd *cobra.Command, args []string) {
	start := time.Now()
	logger := newLogger("info")

	ws := mustOpenWorkspace(logger)
	ctx := newContext()

	projects := ws.loader.Projects(ctx)
	response := convertProjectsResponse(ws.root, projects)

	output, err := FormatResponse(response, OutputFormat(projectsFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(output)

	logger.Debug("project listing completed",
		"projects", len(projects),
		"duration", time.Since(start).Milliseconds(),
	)
}

// ProjectsResponseCLI lists workspace projects for CLI output
type ProjectsResponseCLI struct {
	WorkspaceRoot string       `json:"workspaceRoot"`
	Projects      []ProjectCLI `json:"projects"`
}

type ProjectCLI struct {
	ManifestPath string          `json:"manifestPath"`
	Kind         string          `json:"kind"`
	ElmVersion   string          `json:"elmVersion"`
	SourceDirs   []string        `json:"sourceDirs"`
	Dependencies []DependencyCLI `json:"dependencies"`
}

type DependencyCLI struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Modules int    `json:"modules"`
}

func convertProjectsResponse(root string, projects []*manifest.Project) *ProjectsResponseCLI {
	result := &ProjectsResponseCLI{
		WorkspaceRoot: root,
		Projects:      make([]ProjectCLI, 0, len(projects)),
	}

	for _, p := range projects {
		proj := ProjectCLI{
			ManifestPath: p.ManifestPath,
			Kind:         string(p.Kind),
			ElmVersion:   p.ElmVersion,
			SourceDirs:   p.SourceDirs,
			Dependencies: make([]DependencyCLI, 0, len(p.Dependencies)),
		}
		for _, d := range p.Dependencies {
			proj.Dependencies = append(proj.Dependencies, DependencyCLI{
				Name:    d.Name,
				Version: d.Version,
				Modules: len(d.ExposedModules),
			})
		}
		result.Projects = append(result.Projects, proj)
	}

	return result
}
