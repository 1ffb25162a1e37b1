package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/runger/hstr/internal/history"
	"github.com/runger/hstr/internal/picker"
	"github.com/runger/hstr/internal/session"
)

// showBlacklist prints the commands kept out of the ranked view.
func showBlacklist(w io.Writer, a *app) error {
	bl, err := a.blacklist()
	if err != nil {
		return fmt.Errorf("failed to load blacklist: %w", err)
	}
	for _, line := range bl.Lines() {
		fmt.Fprintln(w, line)
	}
	return nil
}

// killLastCommand deletes the most recent history entry. With verbose-kill
// the removed command is printed.
func killLastCommand(w io.Writer, a *app) error {
	backend, err := a.historyBackend()
	if err != nil {
		return err
	}
	entry, ok, err := backend.KillLast()
	if err != nil {
		a.log.Error("kill last command failed", "path", backend.Path(), "error", err)
		return fmt.Errorf("failed to delete last command: %w", err)
	}
	if !ok {
		return &ExitError{Message: "history is empty", Code: 1}
	}
	a.log.Debug("last command killed", "command", entry.Command)
	if a.cfg.History.VerboseKill {
		fmt.Fprintf(w, "History item '%s' deleted\n", entry.Command)
	}
	return nil
}

// listMatches prints every line of the active view matching pattern.
func listMatches(w io.Writer, a *app, pattern string) error {
	opts, err := a.sessionOptions(pattern)
	if err != nil {
		return err
	}
	s, err := session.New(opts, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	lines, err := s.SelectAll()
	if err != nil {
		return err
	}
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
	return nil
}

// runInteractive runs the search on /dev/tty and prints the chosen command
// to w. The exit code tells the shell what to do with it.
func runInteractive(ctx context.Context, w io.Writer, a *app, pattern string) error {
	if err := checkTerminal(); err != nil {
		return &ExitError{Message: err.Error(), Code: ExitFallback}
	}

	if err := a.paths.EnsureDirectories(); err != nil {
		return &ExitError{Message: fmt.Sprintf("failed to create directories: %v", err), Code: ExitFallback}
	}
	lockFd, err := acquireLock(a.paths.LockFile())
	if err != nil {
		return &ExitError{Message: err.Error(), Code: ExitFallback}
	}
	defer releaseLock(lockFd)

	// Open /dev/tty for TUI input/output since stdout carries the result.
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return &ExitError{Message: fmt.Sprintf("cannot open /dev/tty: %v", err), Code: ExitFallback}
	}
	defer tty.Close()

	rows, cols, err := terminalSize(tty)
	if err != nil {
		return &ExitError{Message: err.Error(), Code: ExitFallback}
	}

	opts, err := a.sessionOptions(pattern)
	if err != nil {
		return &ExitError{Message: err.Error(), Code: ExitFallback}
	}
	frame := picker.NewFrame(rows, cols)
	s, err := session.New(opts, frame)
	if err != nil {
		a.log.Error("session start failed", "error", err)
		return &ExitError{Message: err.Error(), Code: ExitFallback}
	}
	defer func() {
		if err := s.Close(); err != nil {
			a.log.Error("history flush failed", "error", err)
			fmt.Fprintf(os.Stderr, "hstr: %v\n", err)
		}
	}()

	// When invoked via $(hstr ...), stdout is a pipe so lipgloss defaults
	// to Ascii. Detect the profile from the real tty instead.
	lipgloss.SetColorProfile(termenv.NewOutput(tty).ColorProfile())

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	progOpts := []tea.ProgramOption{
		tea.WithInput(tty),
		tea.WithOutput(tty),
		tea.WithContext(ctx),
	}
	if !a.cfg.UI.KeepPage {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	p := tea.NewProgram(picker.NewModel(s, frame, picker.NewStyles(a.cfg.UI.Theme)), progOpts...)

	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
			a.log.Debug("session terminated", "error", err)
			return &ExitError{Code: ExitCancelled}
		}
		return &ExitError{Message: fmt.Sprintf("TUI error: %v", err), Code: ExitFallback}
	}
	m, ok := final.(picker.Model)
	if !ok {
		return &ExitError{Message: "unexpected model type", Code: ExitFallback}
	}
	return writeResult(w, m.Action())
}

// writeResult prints a committed line and maps the action to an exit code.
func writeResult(w io.Writer, act session.Action) error {
	if act.Kind != session.ActionCommit {
		return &ExitError{Code: ExitCancelled}
	}
	line := act.Line
	if act.Fix {
		line = fixCommand(line)
	}
	fmt.Fprintln(w, line)
	if act.Edit {
		return &ExitError{Code: ExitEdit}
	}
	return nil
}

// fixCommand wraps line as an fc invocation that edits it in $FCEDIT.
func fixCommand(line string) string {
	return fmt.Sprintf("fc \"%s\"", line)
}

// detectShell returns the parent shell, falling back to bash.
func detectShell() string {
	if sh := history.DetectShell(); sh != "" {
		return sh
	}
	return "bash"
}
