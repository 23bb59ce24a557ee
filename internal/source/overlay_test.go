package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOSReader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Main.elm")
	if err := os.WriteFile(path, []byte("module Main exposing (..)\n"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	text, err := OS().ReadText(path)
	if err != nil {
		t.Fatalf("ReadText failed: %v", err)
	}
	if text != "module Main exposing (..)\n" {
		t.Errorf("unexpected content: %q", text)
	}

	if _, err := OS().ReadText(filepath.Join(dir, "Missing.elm")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestOverlayShadowsDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Main.elm")
	if err := os.WriteFile(path, []byte("on disk"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	overlay := NewOverlay(OS())

	// No buffer: falls through to disk
	text, err := overlay.ReadText(path)
	if err != nil {
		t.Fatalf("ReadText failed: %v", err)
	}
	if text != "on disk" {
		t.Errorf("expected disk content, got %q", text)
	}

	// Open buffer shadows disk
	overlay.Set(path, "in buffer")
	text, err = overlay.ReadText(path)
	if err != nil {
		t.Fatalf("ReadText failed: %v", err)
	}
	if text != "in buffer" {
		t.Errorf("expected buffer content, got %q", text)
	}

	// Closing the buffer falls back to disk again
	overlay.Delete(path)
	text, err = overlay.ReadText(path)
	if err != nil {
		t.Fatalf("ReadText failed: %v", err)
	}
	if text != "on disk" {
		t.Errorf("expected disk content after delete, got %q", text)
	}
}

func TestOverlayUnsavedFile(t *testing.T) {
	// A buffer with no file behind it is still readable
	overlay := NewOverlay(OS())
	overlay.Set("/nowhere/Untitled.elm", "module Untitled exposing (..)")

	text, err := overlay.ReadText("/nowhere/Untitled.elm")
	if err != nil {
		t.Fatalf("ReadText failed: %v", err)
	}
	if text != "module Untitled exposing (..)" {
		t.Errorf("unexpected content: %q", text)
	}

	// Deleting an unknown path is a no-op
	overlay.Delete("/never/seen")
}
