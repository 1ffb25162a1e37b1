package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/user"

	"github.com/runger/hstr/internal/config"
	"github.com/runger/hstr/internal/favorites"
	"github.com/runger/hstr/internal/history"
	"github.com/runger/hstr/internal/layout"
	"github.com/runger/hstr/internal/log"
	"github.com/runger/hstr/internal/match"
	"github.com/runger/hstr/internal/session"
	"github.com/runger/hstr/internal/source"
)

// app holds the loaded configuration and the logger of one run.
type app struct {
	cfg   *config.Config
	paths *config.Paths
	log   *slog.Logger
	logs  io.Closer
}

func newApp() (*app, error) {
	paths := config.DefaultPaths()
	cfg, err := config.LoadFromFile(paths.ConfigFile())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, closer, err := log.Open(cfg.LogPath(paths), cfg.Log.Level)
	if err != nil {
		// Diagnostics are optional.
		logger, closer = log.Discard(), io.NopCloser(nil)
	}
	return &app{cfg: cfg, paths: paths, log: logger, logs: closer}, nil
}

func (a *app) close() {
	_ = a.logs.Close()
}

// historyPath returns the configured history file, $HISTFILE or the login
// shell default.
func (a *app) historyPath() string {
	if a.cfg.History.File != "" {
		return a.cfg.History.File
	}
	return history.DefaultPath()
}

func (a *app) historyFormat(path string) history.Format {
	switch a.cfg.History.Format {
	case "bash":
		return history.FormatBash
	case "zsh":
		return history.FormatZsh
	default:
		return history.DetectFormat(path)
	}
}

// blacklist returns the blacklist file when the blacklist option is on, the
// built-in list otherwise.
func (a *app) blacklist() (*history.Blacklist, error) {
	if !a.cfg.History.Blacklist {
		return history.NewBlacklist(history.DefaultBlacklist), nil
	}
	return history.LoadBlacklist(a.cfg.BlacklistPath(a.paths))
}

func (a *app) historyBackend() (*history.Backend, error) {
	bl, err := a.blacklist()
	if err != nil {
		return nil, fmt.Errorf("failed to load blacklist: %w", err)
	}
	path := a.historyPath()
	return history.NewBackend(history.Options{
		Path:      path,
		Format:    a.historyFormat(path),
		Blacklist: bl,
	}), nil
}

// sessionOptions maps the configuration onto session options.
func (a *app) sessionOptions(pattern string) (session.Options, error) {
	backend, err := a.historyBackend()
	if err != nil {
		return session.Options{}, err
	}

	view, err := session.ParseView(a.cfg.Search.View)
	if err != nil {
		return session.Options{}, err
	}
	if rootOpts.favorites {
		view = session.ViewFavorites
	}
	mode, err := match.ParseMode(a.cfg.Search.Matching)
	if err != nil {
		return session.Options{}, err
	}
	cs := match.CaseInsensitive
	if a.cfg.Search.CaseSensitive {
		cs = match.CaseSensitive
	}

	opts := session.Options{
		History: backend,
		Favorites: favorites.New(favorites.Options{
			Path:         a.cfg.FavoritesPath(a.paths),
			Static:       a.cfg.Favorites.Static,
			SkipComments: a.cfg.Favorites.SkipComments,
		}),
		Commands: source.FileLoader(a.cfg.CommandsPath(a.paths)),
		Timeline: history.TimelineLoader(backend.Path(), a.historyFormat(backend.Path()), nil),
		Logger:   a.log,

		View:       view,
		Matching:   mode,
		Case:       cs,
		Duplicates: a.cfg.Search.Duplicates,
		NoConfirm:  a.cfg.History.NoConfirm,
		Layout: layout.Flags{
			PromptBottom:       a.cfg.UI.PromptBottom,
			HelpOnOppositeSide: a.cfg.UI.HelpOnOppositeSide,
			HideBasicHelp:      a.cfg.UI.HideBasicHelp,
			HideHistoryHelp:    a.cfg.UI.HideHistoryHelp,
		},
		Prompt:  a.prompt(),
		Pattern: pattern,
	}
	if cwd, err := os.Getwd(); err == nil {
		opts.Directory = source.DirLoader(cwd)
	}
	return opts, nil
}

// prompt returns the configured prompt or "user@host$ ".
func (a *app) prompt() string {
	if a.cfg.UI.Prompt != "" {
		return a.cfg.UI.Prompt
	}
	name := os.Getenv("USER")
	if u, err := user.Current(); err == nil && u.Username != "" {
		name = u.Username
	}
	host, _ := os.Hostname()
	return fmt.Sprintf("%s@%s$ ", name, host)
}
