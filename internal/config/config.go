package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables read on top of the config file.
const (
	EnvConfig   = "HSTR_CONFIG"
	EnvPrompt   = "HSTR_PROMPT"
	EnvHistFile = "HISTFILE"
)

// Config represents the hstr configuration.
type Config struct {
	UI        UIConfig        `yaml:"ui"`
	Search    SearchConfig    `yaml:"search"`
	Favorites FavoritesConfig `yaml:"favorites"`
	History   HistoryConfig   `yaml:"history"`
	Log       LogConfig       `yaml:"log"`
}

// UIConfig holds screen layout and theme settings.
type UIConfig struct {
	Theme              string `yaml:"theme"`                 // mono, color or hicolor
	PromptBottom       bool   `yaml:"prompt_bottom"`         // Prompt on the last row
	HelpOnOppositeSide bool   `yaml:"help_on_opposite_side"` // Help lines opposite to the prompt
	HideBasicHelp      bool   `yaml:"hide_basic_help"`
	HideHistoryHelp    bool   `yaml:"hide_history_help"`
	KeepPage           bool   `yaml:"keep_page"` // Draw inline instead of on the alternate screen
	Prompt             string `yaml:"prompt"`    // Empty means user@host$
}

// SearchConfig holds the initial search state.
type SearchConfig struct {
	View          string `yaml:"view"`           // ranking, history, favorites, commands, timeline, directory
	Matching      string `yaml:"matching"`       // substring, regexp or keywords
	CaseSensitive bool   `yaml:"case_sensitive"` // Start in case-sensitive mode
	Duplicates    bool   `yaml:"duplicates"`     // Show duplicate lines in the raw history view
}

// FavoritesConfig holds favorites settings.
type FavoritesConfig struct {
	File         string `yaml:"file"`          // Empty means ~/.hstr_favorites
	CommandsFile string `yaml:"commands_file"` // Empty means ~/.hstr_mycommand
	Static       bool   `yaml:"static"`        // Do not reorder on choice
	SkipComments bool   `yaml:"skip_comments"` // Ignore '#' lines
}

// HistoryConfig holds history file settings.
type HistoryConfig struct {
	File          string `yaml:"file"`           // Empty means $HISTFILE or the shell default
	Format        string `yaml:"format"`         // auto, bash or zsh
	Blacklist     bool   `yaml:"blacklist"`      // Use BlacklistFile instead of the defaults
	BlacklistFile string `yaml:"blacklist_file"` // Empty means ~/.hstr_blacklist
	NoConfirm     bool   `yaml:"no_confirm"`     // Delete without asking
	VerboseKill   bool   `yaml:"verbose_kill"`   // Print the command removed by --kill-last-command
}

// LogConfig holds diagnostics settings.
type LogConfig struct {
	Level string `yaml:"level"` // none, warn or debug
	File  string `yaml:"file"`  // Empty means the cache directory
}

var (
	validThemes   = []string{"mono", "color", "hicolor"}
	validViews    = []string{"ranking", "history", "favorites", "commands", "timeline", "directory"}
	validMatching = []string{"substring", "regexp", "keywords"}
	validFormats  = []string{"auto", "bash", "zsh"}
	validLevels   = []string{"none", "warn", "debug"}
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			Theme: "color",
		},
		Search: SearchConfig{
			View:     "ranking",
			Matching: "keywords",
		},
		History: HistoryConfig{
			Format: "auto",
		},
		Log: LogConfig{
			Level: "none",
		},
	}
}

// Load loads configuration from the default path.
func Load() (*Config, error) {
	paths := DefaultPaths()
	return LoadFromFile(paths.ConfigFile())
}

// LoadFromFile loads configuration from the specified file.
// If the file doesn't exist, returns default configuration.
// Environment variable overrides are applied after file loading.
func LoadFromFile(path string) (*Config, error) {
	cfg, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// ReadFile loads the file values on top of the defaults, without
// environment overrides.
func ReadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save saves the configuration to the default path.
func (c *Config) Save() error {
	paths := DefaultPaths()
	return c.SaveToFile(paths.ConfigFile())
}

// SaveToFile saves the configuration to the specified file.
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !slices.Contains(validThemes, c.UI.Theme) {
		return fmt.Errorf("ui.theme must be mono, color, or hicolor (got: %s)", c.UI.Theme)
	}
	if !slices.Contains(validViews, c.Search.View) {
		return fmt.Errorf("search.view must be one of %s (got: %s)", strings.Join(validViews, ", "), c.Search.View)
	}
	if !slices.Contains(validMatching, c.Search.Matching) {
		return fmt.Errorf("search.matching must be substring, regexp, or keywords (got: %s)", c.Search.Matching)
	}
	if !slices.Contains(validFormats, c.History.Format) {
		return fmt.Errorf("history.format must be auto, bash, or zsh (got: %s)", c.History.Format)
	}
	if !slices.Contains(validLevels, c.Log.Level) {
		return fmt.Errorf("log.level must be none, warn, or debug (got: %s)", c.Log.Level)
	}
	return nil
}

// ApplyEnvOverrides applies HSTR_CONFIG, HSTR_PROMPT and HISTFILE on top of
// the file values. HSTR_CONFIG is a comma or space separated list of option
// names; unknown names are ignored.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv(EnvConfig); v != "" {
		c.applyOptions(parseOptions(v))
	}
	if v := os.Getenv(EnvPrompt); v != "" {
		c.UI.Prompt = v
	}
	if v := os.Getenv(EnvHistFile); v != "" && c.History.File == "" {
		c.History.File = v
	}
}

func parseOptions(v string) map[string]bool {
	opts := make(map[string]bool)
	for _, tok := range strings.FieldsFunc(v, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == ';'
	}) {
		opts[strings.ToLower(tok)] = true
	}
	return opts
}

// applyOptions mirrors the precedence of the HSTR_CONFIG option names:
// within each group the first listed option wins.
func (c *Config) applyOptions(opts map[string]bool) {
	switch {
	case opts["monochromatic"]:
		c.UI.Theme = "mono"
	case opts["hicolor"]:
		c.UI.Theme = "hicolor"
	}

	if opts["case-sensitive"] {
		c.Search.CaseSensitive = true
	}

	switch {
	case opts["regexp-matching"]:
		c.Search.Matching = "regexp"
	case opts["substring-matching"]:
		c.Search.Matching = "substring"
	case opts["keywords-matching"]:
		c.Search.Matching = "keywords"
	}

	switch {
	case opts["raw-history-view"]:
		c.Search.View = "history"
	case opts["favorites-view"]:
		c.Search.View = "favorites"
	}

	if opts["verbose-kill"] {
		c.History.VerboseKill = true
	}
	if opts["blacklist"] {
		c.History.Blacklist = true
	}
	if opts["keep-page"] {
		c.UI.KeepPage = true
	}
	if opts["no-confirm"] {
		c.History.NoConfirm = true
	}
	if opts["static-favorites"] {
		c.Favorites.Static = true
	}
	if opts["skip-favorites-comments"] {
		c.Favorites.SkipComments = true
	}

	switch {
	case opts["debug"]:
		c.Log.Level = "debug"
	case opts["warning"]:
		c.Log.Level = "warn"
	}

	if opts["duplicates"] {
		c.Search.Duplicates = true
	}
	if opts["prompt-bottom"] {
		c.UI.PromptBottom = true
	}
	if opts["help-on-opposite-side"] {
		c.UI.HelpOnOppositeSide = true
	}

	switch {
	case opts["hide-help"]:
		c.UI.HideBasicHelp = true
		c.UI.HideHistoryHelp = true
	case opts["hide-basic-help"]:
		c.UI.HideBasicHelp = true
	}
}

// Get retrieves a configuration value by dot-separated key.
// For example: "ui.theme" or "search.case_sensitive"
func (c *Config) Get(key string) (string, error) {
	section, field, err := splitKey(key)
	if err != nil {
		return "", err
	}

	switch section {
	case "ui":
		return c.getUIField(field)
	case "search":
		return c.getSearchField(field)
	case "favorites":
		return c.getFavoritesField(field)
	case "history":
		return c.getHistoryField(field)
	case "log":
		return c.getLogField(field)
	default:
		return "", fmt.Errorf("unknown section: %s", section)
	}
}

// Set sets a configuration value by dot-separated key.
func (c *Config) Set(key, value string) error {
	section, field, err := splitKey(key)
	if err != nil {
		return err
	}

	switch section {
	case "ui":
		return c.setUIField(field, value)
	case "search":
		return c.setSearchField(field, value)
	case "favorites":
		return c.setFavoritesField(field, value)
	case "history":
		return c.setHistoryField(field, value)
	case "log":
		return c.setLogField(field, value)
	default:
		return fmt.Errorf("unknown section: %s", section)
	}
}

func splitKey(key string) (string, string, error) {
	parts := strings.Split(key, ".")
	if len(parts) != 2 {
		return "", "", errors.New("key must be in format 'section.key'")
	}
	return parts[0], parts[1], nil
}

// boolFields maps keys to the boolean settings they address.
func (c *Config) boolFields() map[string]*bool {
	return map[string]*bool{
		"ui.prompt_bottom":         &c.UI.PromptBottom,
		"ui.help_on_opposite_side": &c.UI.HelpOnOppositeSide,
		"ui.hide_basic_help":       &c.UI.HideBasicHelp,
		"ui.hide_history_help":     &c.UI.HideHistoryHelp,
		"ui.keep_page":             &c.UI.KeepPage,
		"search.case_sensitive":    &c.Search.CaseSensitive,
		"search.duplicates":        &c.Search.Duplicates,
		"favorites.static":         &c.Favorites.Static,
		"favorites.skip_comments":  &c.Favorites.SkipComments,
		"history.blacklist":        &c.History.Blacklist,
		"history.no_confirm":       &c.History.NoConfirm,
		"history.verbose_kill":     &c.History.VerboseKill,
	}
}

func (c *Config) getBool(section, field string) (string, error) {
	p, ok := c.boolFields()[section+"."+field]
	if !ok {
		return "", fmt.Errorf("unknown field: %s.%s", section, field)
	}
	return strconv.FormatBool(*p), nil
}

func (c *Config) setBool(section, field, value string) error {
	p, ok := c.boolFields()[section+"."+field]
	if !ok {
		return fmt.Errorf("unknown field: %s.%s", section, field)
	}
	v, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", field, err)
	}
	*p = v
	return nil
}

func setEnum(dst *string, field, value string, valid []string) error {
	if !slices.Contains(valid, value) {
		return fmt.Errorf("invalid %s: %s (must be %s)", field, value, strings.Join(valid, ", "))
	}
	*dst = value
	return nil
}

func (c *Config) getUIField(field string) (string, error) {
	switch field {
	case "theme":
		return c.UI.Theme, nil
	case "prompt":
		return c.UI.Prompt, nil
	default:
		return c.getBool("ui", field)
	}
}

func (c *Config) setUIField(field, value string) error {
	switch field {
	case "theme":
		return setEnum(&c.UI.Theme, field, value, validThemes)
	case "prompt":
		c.UI.Prompt = value
		return nil
	default:
		return c.setBool("ui", field, value)
	}
}

func (c *Config) getSearchField(field string) (string, error) {
	switch field {
	case "view":
		return c.Search.View, nil
	case "matching":
		return c.Search.Matching, nil
	default:
		return c.getBool("search", field)
	}
}

func (c *Config) setSearchField(field, value string) error {
	switch field {
	case "view":
		return setEnum(&c.Search.View, field, value, validViews)
	case "matching":
		return setEnum(&c.Search.Matching, field, value, validMatching)
	default:
		return c.setBool("search", field, value)
	}
}

func (c *Config) getFavoritesField(field string) (string, error) {
	switch field {
	case "file":
		return c.Favorites.File, nil
	case "commands_file":
		return c.Favorites.CommandsFile, nil
	default:
		return c.getBool("favorites", field)
	}
}

func (c *Config) setFavoritesField(field, value string) error {
	switch field {
	case "file":
		c.Favorites.File = value
		return nil
	case "commands_file":
		c.Favorites.CommandsFile = value
		return nil
	default:
		return c.setBool("favorites", field, value)
	}
}

func (c *Config) getHistoryField(field string) (string, error) {
	switch field {
	case "file":
		return c.History.File, nil
	case "format":
		return c.History.Format, nil
	case "blacklist_file":
		return c.History.BlacklistFile, nil
	default:
		return c.getBool("history", field)
	}
}

func (c *Config) setHistoryField(field, value string) error {
	switch field {
	case "file":
		c.History.File = value
		return nil
	case "format":
		return setEnum(&c.History.Format, field, value, validFormats)
	case "blacklist_file":
		c.History.BlacklistFile = value
		return nil
	default:
		return c.setBool("history", field, value)
	}
}

func (c *Config) getLogField(field string) (string, error) {
	switch field {
	case "level":
		return c.Log.Level, nil
	case "file":
		return c.Log.File, nil
	default:
		return "", fmt.Errorf("unknown field: log.%s", field)
	}
}

func (c *Config) setLogField(field, value string) error {
	switch field {
	case "level":
		return setEnum(&c.Log.Level, field, value, validLevels)
	case "file":
		c.Log.File = value
		return nil
	default:
		return fmt.Errorf("unknown field: log.%s", field)
	}
}

// ListKeys returns user-facing configuration keys.
func ListKeys() []string {
	return []string{
		"ui.theme",
		"ui.prompt",
		"ui.prompt_bottom",
		"ui.help_on_opposite_side",
		"ui.hide_basic_help",
		"ui.hide_history_help",
		"ui.keep_page",
		"search.view",
		"search.matching",
		"search.case_sensitive",
		"search.duplicates",
		"favorites.file",
		"favorites.commands_file",
		"favorites.static",
		"favorites.skip_comments",
		"history.file",
		"history.format",
		"history.blacklist",
		"history.blacklist_file",
		"history.no_confirm",
		"history.verbose_kill",
		"log.level",
		"log.file",
	}
}

// FavoritesPath resolves the favorites file.
func (c *Config) FavoritesPath(p *Paths) string {
	return orDefault(c.Favorites.File, p.FavoritesFile())
}

// CommandsPath resolves the custom commands file.
func (c *Config) CommandsPath(p *Paths) string {
	return orDefault(c.Favorites.CommandsFile, p.CommandsFile())
}

// BlacklistPath resolves the blacklist file.
func (c *Config) BlacklistPath(p *Paths) string {
	return orDefault(c.History.BlacklistFile, p.BlacklistFile())
}

// LogPath resolves the log file.
func (c *Config) LogPath(p *Paths) string {
	return orDefault(c.Log.File, p.LogFile())
}

func orDefault(v, def string) string {
	if v != "" {
		return expandHome(v)
	}
	return def
}

// expandHome replaces a leading ~/ with the home directory.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir(), strings.TrimPrefix(path, "~"))
	}
	return path
}
