package config

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestDefaultPaths(t *testing.T) {
	paths := DefaultPaths()

	if paths.ConfigDir == "" {
		t.Error("ConfigDir is empty")
	}
	if paths.CacheDir == "" {
		t.Error("CacheDir is empty")
	}
	if paths.Home == "" {
		t.Error("Home is empty")
	}

	if !filepath.IsAbs(paths.ConfigDir) {
		t.Errorf("ConfigDir should be absolute: %s", paths.ConfigDir)
	}
}

func TestDefaultPaths_XDG(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG test not applicable on Windows")
	}

	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	t.Setenv("XDG_CACHE_HOME", "/custom/cache")

	paths := DefaultPaths()

	if paths.ConfigDir != "/custom/config/hstr" {
		t.Errorf("ConfigDir should respect XDG_CONFIG_HOME: %s", paths.ConfigDir)
	}
	if paths.CacheDir != "/custom/cache/hstr" {
		t.Errorf("CacheDir should respect XDG_CACHE_HOME: %s", paths.CacheDir)
	}
}

func TestPaths_Files(t *testing.T) {
	paths := &Paths{
		Home:      "/home/u",
		ConfigDir: "/home/u/.config/hstr",
		CacheDir:  "/home/u/.cache/hstr",
	}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"config", paths.ConfigFile(), "/home/u/.config/hstr/config.yaml"},
		{"log", paths.LogFile(), "/home/u/.cache/hstr/hstr.log"},
		{"lock", paths.LockFile(), "/home/u/.cache/hstr/hstr.lock"},
		{"favorites", paths.FavoritesFile(), "/home/u/.hstr_favorites"},
		{"commands", paths.CommandsFile(), "/home/u/.hstr_mycommand"},
		{"blacklist", paths.BlacklistFile(), "/home/u/.hstr_blacklist"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %s, want %s", tt.got, tt.want)
			}
		})
	}
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	paths := &Paths{
		ConfigDir: filepath.Join(dir, "config", "hstr"),
		CacheDir:  filepath.Join(dir, "cache", "hstr"),
	}

	if err := paths.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories() error = %v", err)
	}
	for _, d := range []string{paths.ConfigDir, paths.CacheDir} {
		if !strings.HasPrefix(d, dir) {
			t.Errorf("unexpected dir %s", d)
		}
		if !dirExists(d) {
			t.Errorf("directory %s was not created", d)
		}
	}
}
