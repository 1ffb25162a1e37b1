// Package config provides configuration management for hstr.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Paths holds all the path configurations for hstr.
type Paths struct {
	// Home is the user's home directory, where the dotfiles shared with
	// other hstr installations live.
	Home string

	// ConfigDir is the directory for configuration files (~/.config/hstr)
	ConfigDir string

	// CacheDir is the directory for the log and lock files (~/.cache/hstr)
	CacheDir string
}

// DefaultPaths returns the default paths following the XDG Base Directory layout.
// On Windows, it uses %APPDATA% instead.
func DefaultPaths() *Paths {
	home := homeDir()

	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(home, "AppData", "Local")
		}

		return &Paths{
			Home:      home,
			ConfigDir: filepath.Join(appData, "hstr"),
			CacheDir:  filepath.Join(localAppData, "hstr", "cache"),
		}
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}

	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		cacheHome = filepath.Join(home, ".cache")
	}

	return &Paths{
		Home:      home,
		ConfigDir: filepath.Join(configHome, "hstr"),
		CacheDir:  filepath.Join(cacheHome, "hstr"),
	}
}

// ConfigFile returns the path to the main configuration file.
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.ConfigDir, "config.yaml")
}

// LogFile returns the path to the diagnostics log.
func (p *Paths) LogFile() string {
	return filepath.Join(p.CacheDir, "hstr.log")
}

// LockFile returns the path to the single-instance lock.
func (p *Paths) LockFile() string {
	return filepath.Join(p.CacheDir, "hstr.lock")
}

// FavoritesFile returns ~/.hstr_favorites.
func (p *Paths) FavoritesFile() string {
	return filepath.Join(p.Home, ".hstr_favorites")
}

// CommandsFile returns ~/.hstr_mycommand, the custom command list.
func (p *Paths) CommandsFile() string {
	return filepath.Join(p.Home, ".hstr_mycommand")
}

// BlacklistFile returns ~/.hstr_blacklist.
func (p *Paths) BlacklistFile() string {
	return filepath.Join(p.Home, ".hstr_blacklist")
}

// EnsureDirectories creates all necessary directories.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.ConfigDir, p.CacheDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		if runtime.GOOS == "windows" {
			return os.Getenv("USERPROFILE")
		}
		return os.Getenv("HOME")
	}
	return home
}
