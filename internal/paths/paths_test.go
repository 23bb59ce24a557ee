package paths

import (
	"path/filepath"
	"testing"
)

func envFrom(m map[string]string) func(string) string {
	return func(key string) string {
		return m[key]
	}
}

func TestPackageCacheRoot(t *testing.T) {
	tests := []struct {
		name    string
		goos    string
		env     map[string]string
		version string
		want    string
	}{
		{
			name:    "linux home",
			goos:    "linux",
			env:     map[string]string{"HOME": "/home/kate"},
			version: "0.19.1",
			want:    filepath.Join("/home/kate", ".elm", "0.19.1", "packages"),
		},
		{
			name:    "darwin home",
			goos:    "darwin",
			env:     map[string]string{"HOME": "/Users/kate"},
			version: "0.19.1",
			want:    filepath.Join("/Users/kate", ".elm", "0.19.1", "packages"),
		},
		{
			name:    "windows appdata",
			goos:    "windows",
			env:     map[string]string{"APPDATA": `C:\Users\kate\AppData\Roaming`},
			version: "0.19.1",
			want:    filepath.Join(`C:\Users\kate\AppData\Roaming`, "elm", "0.19.1", "packages"),
		},
		{
			name:    "elm home override wins",
			goos:    "linux",
			env:     map[string]string{"HOME": "/home/kate", "ELM_HOME": "/opt/elm"},
			version: "0.19.1",
			want:    filepath.Join("/opt/elm", "0.19.1", "packages"),
		},
		{
			name:    "elm home override on windows",
			goos:    "windows",
			env:     map[string]string{"APPDATA": `C:\x`, "ELM_HOME": `D:\elm`},
			version: "0.18.0",
			want:    filepath.Join(`D:\elm`, "0.18.0", "packages"),
		},
		{
			name:    "legacy version",
			goos:    "linux",
			env:     map[string]string{"HOME": "/home/kate"},
			version: "0.18.0",
			want:    filepath.Join("/home/kate", ".elm", "0.18.0", "packages"),
		},
		{
			name:    "no home",
			goos:    "linux",
			env:     map[string]string{},
			version: "0.19.1",
			want:    "",
		},
		{
			name:    "no appdata",
			goos:    "windows",
			env:     map[string]string{},
			version: "0.19.1",
			want:    "",
		},
		{
			name:    "no tooling version",
			goos:    "linux",
			env:     map[string]string{"HOME": "/home/kate"},
			version: "",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PackageCacheRoot(tt.goos, envFrom(tt.env), tt.version)
			if got != tt.want {
				t.Errorf("PackageCacheRoot(%q, env, %q) = %q, want %q", tt.goos, tt.version, got, tt.want)
			}
		})
	}
}

func TestPackageCacheRootDeterministic(t *testing.T) {
	env := envFrom(map[string]string{"HOME": "/home/kate"})
	first := PackageCacheRoot("linux", env, "0.19.1")
	for i := 0; i < 3; i++ {
		if got := PackageCacheRoot("linux", env, "0.19.1"); got != first {
			t.Fatalf("expected deterministic result, got %q then %q", first, got)
		}
	}
}

func TestIsWithinDir(t *testing.T) {
	tests := []struct {
		name string
		path string
		dir  string
		want bool
	}{
		{"direct child", "/ws/app/src/Main.elm", "/ws/app/src", true},
		{"nested child", "/ws/app/src/Page/Home.elm", "/ws/app/src", true},
		{"dir itself", "/ws/app/src", "/ws/app/src", true},
		{"sibling", "/ws/app/tests/Main.elm", "/ws/app/src", false},
		{"prefix but not component", "/ws/app/srcx/Main.elm", "/ws/app/src", false},
		{"parent", "/ws/app", "/ws/app/src", false},
		{"unclean inputs", "/ws/app/./src/Main.elm", "/ws/app/src/", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsWithinDir(tt.path, tt.dir); got != tt.want {
				t.Errorf("IsWithinDir(%q, %q) = %v, want %v", tt.path, tt.dir, got, tt.want)
			}
		})
	}
}
