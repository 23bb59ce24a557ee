package main

import (
	"strings"
	"testing"

	"ecb/internal/complete"
)

func TestFormatResponse_JSON(t *testing.T) {
	resp := map[string]interface{}{
		"key": "value",
		"num": 42,
	}

	result, err := FormatResponse(resp, FormatJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(result, `"key": "value"`) {
		t.Error("JSON output missing expected key")
	}
	if !strings.Contains(result, `"num": 42`) {
		t.Error("JSON output missing expected number")
	}
}

func TestFormatResponse_UnsupportedFormat(t *testing.T) {
	resp := map[string]string{"key": "value"}

	_, err := FormatResponse(resp, "xml")
	if err == nil {
		t.Error("expected error for unsupported format")
	}
	if !strings.Contains(err.Error(), "unsupported format") {
		t.Errorf("error should mention unsupported format, got: %v", err)
	}
}

func TestFormatHuman_UnknownType(t *testing.T) {
	// For unknown types, should fall back to JSON
	resp := struct {
		Foo string `json:"foo"`
	}{Foo: "bar"}

	result, err := formatHuman(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(result, `"foo": "bar"`) {
		t.Error("missing JSON content")
	}
}

func TestFormatProjectsHuman(t *testing.T) {
	resp := &ProjectsResponseCLI{
		WorkspaceRoot: "/work/app",
		Projects: []ProjectCLI{
			{
				ManifestPath: "/work/app/elm.json",
				Kind:         "application",
				ElmVersion:   "0.19.1",
				SourceDirs:   []string{"/work/app/src"},
				Dependencies: []DependencyCLI{
					{Name: "elm/html", Version: "1.0.0", Modules: 5},
				},
			},
		},
	}

	result, err := formatProjectsHuman(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(result, "Workspace: /work/app") {
		t.Error("missing header")
	}
	if !strings.Contains(result, "Found 1 project(s)") {
		t.Error("missing project count")
	}
	if !strings.Contains(result, "1. /work/app/elm.json") {
		t.Error("missing manifest path")
	}
	if !strings.Contains(result, "Kind: application (elm 0.19.1)") {
		t.Error("missing kind and tooling version")
	}
	if !strings.Contains(result, "Source dirs: /work/app/src") {
		t.Error("missing source dirs")
	}
	if !strings.Contains(result, "elm/html 1.0.0 (5 modules)") {
		t.Error("missing dependency line")
	}
}

func TestFormatProjectsHuman_Empty(t *testing.T) {
	resp := &ProjectsResponseCLI{WorkspaceRoot: "/work/empty"}

	result, err := formatProjectsHuman(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(result, "Found 0 project(s)") {
		t.Error("missing zero project count")
	}
}

func TestFormatCompleteHuman(t *testing.T) {
	resp := &CompleteResponseCLI{
		File:   "/work/app/src/Main.elm",
		Offset: 120,
		Candidates: []complete.Candidate{
			{Label: "text", Kind: complete.KindValue, Detail: "text : String -> Html msg"},
			{Label: "Html", Kind: complete.KindModule},
		},
	}

	result, err := formatCompleteHuman(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(result, "Completions at /work/app/src/Main.elm:120") {
		t.Error("missing header")
	}
	if !strings.Contains(result, "text") {
		t.Error("missing candidate label")
	}
	if !strings.Contains(result, "text : String -> Html msg") {
		t.Error("missing resolved detail")
	}
	if !strings.Contains(result, "module") {
		t.Error("missing candidate kind")
	}
}

func TestFormatCompleteHuman_Empty(t *testing.T) {
	resp := &CompleteResponseCLI{File: "/work/app/src/Main.elm", Offset: 3}

	result, err := formatCompleteHuman(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(result, "(no candidates)") {
		t.Error("missing empty marker")
	}
}
