package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func dirExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvConfig, "")
	t.Setenv(EnvPrompt, "")
	t.Setenv(EnvHistFile, "")
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.UI.Theme != "color" {
		t.Errorf("Expected theme=color, got %s", cfg.UI.Theme)
	}
	if cfg.Search.View != "ranking" {
		t.Errorf("Expected view=ranking, got %s", cfg.Search.View)
	}
	if cfg.Search.Matching != "keywords" {
		t.Errorf("Expected matching=keywords, got %s", cfg.Search.Matching)
	}
	if cfg.Log.Level != "none" {
		t.Errorf("Expected log level none, got %s", cfg.Log.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if cfg.Search.View != "ranking" {
		t.Errorf("expected defaults, got view=%s", cfg.Search.View)
	}
}

func TestReadFile_IgnoresEnv(t *testing.T) {
	t.Setenv(EnvConfig, "hicolor,regexp-matching")
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("ui:\n  theme: mono\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if cfg.UI.Theme != "mono" {
		t.Errorf("expected file theme mono, got %s", cfg.UI.Theme)
	}
	if cfg.Search.Matching != "keywords" {
		t.Errorf("expected default matching, got %s", cfg.Search.Matching)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if loaded.UI.Theme != "hicolor" || loaded.Search.Matching != "regexp" {
		t.Errorf("expected env overrides, got theme=%s matching=%s", loaded.UI.Theme, loaded.Search.Matching)
	}
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `ui:
  theme: mono
  prompt_bottom: true
search:
  view: favorites
  matching: regexp
history:
  no_confirm: true
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.UI.Theme != "mono" || !cfg.UI.PromptBottom {
		t.Errorf("ui not loaded: %+v", cfg.UI)
	}
	if cfg.Search.View != "favorites" || cfg.Search.Matching != "regexp" {
		t.Errorf("search not loaded: %+v", cfg.Search)
	}
	if !cfg.History.NoConfirm {
		t.Error("history.no_confirm not loaded")
	}
	if cfg.History.Format != "auto" {
		t.Errorf("unset fields keep defaults, got format=%s", cfg.History.Format)
	}
}

func TestLoadFromFile_Invalid(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("search:\n  view: sideways\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFromFile(path)
	if err == nil || !strings.Contains(err.Error(), "search.view") {
		t.Errorf("expected search.view validation error, got %v", err)
	}
}

func TestLoadFromFile_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("ui: [\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFromFile(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestSaveAndReload(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := DefaultConfig()
	cfg.Search.CaseSensitive = true

	if err := cfg.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}
	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if !loaded.Search.CaseSensitive {
		t.Error("case_sensitive lost on round trip")
	}
}

func TestApplyEnvOverrides_HstrConfig(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvConfig, "hicolor,prompt-bottom, raw-history-view,regexp-matching case-sensitive,hide-help,warning")

	cfg := DefaultConfig()
	cfg.ApplyEnvOverrides()

	if cfg.UI.Theme != "hicolor" {
		t.Errorf("theme = %s", cfg.UI.Theme)
	}
	if !cfg.UI.PromptBottom {
		t.Error("prompt-bottom not applied")
	}
	if cfg.Search.View != "history" {
		t.Errorf("view = %s", cfg.Search.View)
	}
	if cfg.Search.Matching != "regexp" {
		t.Errorf("matching = %s", cfg.Search.Matching)
	}
	if !cfg.Search.CaseSensitive {
		t.Error("case-sensitive not applied")
	}
	if !cfg.UI.HideBasicHelp || !cfg.UI.HideHistoryHelp {
		t.Error("hide-help should hide both help lines")
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log level = %s", cfg.Log.Level)
	}
}

func TestApplyEnvOverrides_Precedence(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvConfig, "hicolor,monochromatic,keywords-matching,substring-matching,favorites-view,raw-history-view,debug,warning")

	cfg := DefaultConfig()
	cfg.ApplyEnvOverrides()

	if cfg.UI.Theme != "mono" {
		t.Errorf("monochromatic wins over hicolor, got %s", cfg.UI.Theme)
	}
	if cfg.Search.Matching != "substring" {
		t.Errorf("substring wins over keywords, got %s", cfg.Search.Matching)
	}
	if cfg.Search.View != "history" {
		t.Errorf("raw-history-view wins over favorites-view, got %s", cfg.Search.View)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("debug wins over warning, got %s", cfg.Log.Level)
	}
}

func TestApplyEnvOverrides_Flags(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvConfig, "blacklist,keep-page,no-confirm,static-favorites,skip-favorites-comments,verbose-kill,duplicates,help-on-opposite-side,hide-basic-help")

	cfg := DefaultConfig()
	cfg.ApplyEnvOverrides()

	checks := map[string]bool{
		"blacklist":               cfg.History.Blacklist,
		"keep-page":               cfg.UI.KeepPage,
		"no-confirm":              cfg.History.NoConfirm,
		"static-favorites":        cfg.Favorites.Static,
		"skip-favorites-comments": cfg.Favorites.SkipComments,
		"verbose-kill":            cfg.History.VerboseKill,
		"duplicates":              cfg.Search.Duplicates,
		"help-on-opposite-side":   cfg.UI.HelpOnOppositeSide,
		"hide-basic-help":         cfg.UI.HideBasicHelp,
	}
	for name, ok := range checks {
		if !ok {
			t.Errorf("%s not applied", name)
		}
	}
	if cfg.UI.HideHistoryHelp {
		t.Error("hide-basic-help must keep the history help line")
	}
}

func TestApplyEnvOverrides_PromptAndHistfile(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvPrompt, "hh> ")
	t.Setenv(EnvHistFile, "/tmp/hist")

	cfg := DefaultConfig()
	cfg.ApplyEnvOverrides()

	if cfg.UI.Prompt != "hh> " {
		t.Errorf("prompt = %q", cfg.UI.Prompt)
	}
	if cfg.History.File != "/tmp/hist" {
		t.Errorf("history file = %q", cfg.History.File)
	}

	cfg = DefaultConfig()
	cfg.History.File = "/from/config"
	cfg.ApplyEnvOverrides()
	if cfg.History.File != "/from/config" {
		t.Errorf("config file value should win over HISTFILE, got %q", cfg.History.File)
	}
}

func TestConfigGetSet(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		key   string
		value string
	}{
		{"ui.theme", "mono"},
		{"ui.prompt", "$ "},
		{"ui.prompt_bottom", "true"},
		{"ui.keep_page", "true"},
		{"search.view", "timeline"},
		{"search.matching", "substring"},
		{"search.case_sensitive", "true"},
		{"favorites.file", "/tmp/favs"},
		{"favorites.static", "true"},
		{"history.format", "zsh"},
		{"history.no_confirm", "true"},
		{"log.level", "debug"},
		{"log.file", "/tmp/hstr.log"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if err := cfg.Set(tt.key, tt.value); err != nil {
				t.Fatalf("Set(%s) error = %v", tt.key, err)
			}
			got, err := cfg.Get(tt.key)
			if err != nil {
				t.Fatalf("Get(%s) error = %v", tt.key, err)
			}
			if got != tt.value {
				t.Errorf("Get(%s) = %s, want %s", tt.key, got, tt.value)
			}
		})
	}
}

func TestConfigSet_Errors(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		key   string
		value string
	}{
		{"theme", "mono"},
		{"nope.theme", "mono"},
		{"ui.nope", "x"},
		{"ui.theme", "rainbow"},
		{"search.view", "sideways"},
		{"search.case_sensitive", "maybe"},
		{"log.level", "info"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			if err := cfg.Set(tt.key, tt.value); err == nil {
				t.Errorf("Set(%s, %s) should fail", tt.key, tt.value)
			}
		})
	}
}

func TestListKeys_AllGettable(t *testing.T) {
	cfg := DefaultConfig()
	for _, key := range ListKeys() {
		if _, err := cfg.Get(key); err != nil {
			t.Errorf("Get(%s) error = %v", key, err)
		}
	}
}

func TestResolvedPaths(t *testing.T) {
	paths := &Paths{Home: "/home/u", CacheDir: "/home/u/.cache/hstr"}
	cfg := DefaultConfig()

	if got := cfg.FavoritesPath(paths); got != "/home/u/.hstr_favorites" {
		t.Errorf("FavoritesPath() = %s", got)
	}
	if got := cfg.LogPath(paths); got != "/home/u/.cache/hstr/hstr.log" {
		t.Errorf("LogPath() = %s", got)
	}

	cfg.Favorites.CommandsFile = "/etc/hstr/commands"
	if got := cfg.CommandsPath(paths); got != "/etc/hstr/commands" {
		t.Errorf("CommandsPath() = %s", got)
	}

	t.Setenv("HOME", "/home/other")
	cfg.History.BlacklistFile = "~/bl"
	if got := cfg.BlacklistPath(paths); got != "/home/other/bl" {
		t.Errorf("BlacklistPath() = %s", got)
	}
}
