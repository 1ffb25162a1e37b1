package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

// Exit codes of the interactive search. Shell integration scripts depend on
// them:
//
//	0 = run the printed command
//	1 = cancelled (keep the original input)
//	2 = fallback (no TTY, error)
//	3 = put the printed command on the command line for editing
const (
	ExitExecute   = 0
	ExitCancelled = 1
	ExitFallback  = 2
	ExitEdit      = 3
)

// maxCmdlinePattern caps the pattern assembled from command-line words.
const maxCmdlinePattern = 2048

// ExitError is an error that carries a specific exit code.
// cobra.RunE returns this so the caller can set the process exit code.
type ExitError struct {
	Message string
	Code    int
}

func (e *ExitError) Error() string {
	return e.Message
}

const groupSetup = "setup"

var rootOpts struct {
	favorites      bool
	killLast       bool
	nonInteractive bool
	showConfig     bool
	showZshConfig  bool
	showBlacklist  bool
	version        bool
}

var rootCmd = &cobra.Command{
	Use:   "hstr [flags] [--] [pattern...]",
	Short: "Easily view, navigate and search your command history",
	Long: `hstr - easily view, navigate, search and manage your command history

Start typing to filter the history, press Enter to run the highlighted
command or TAB to edit it first. Words given on the command line become
the initial pattern.

Run 'hstr --show-configuration >> ~/.bashrc' to bind hstr to Ctrl-r.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	f := rootCmd.Flags()
	f.BoolVarP(&rootOpts.favorites, "favorites", "f", false, "Show favorites view")
	f.BoolVarP(&rootOpts.killLast, "kill-last-command", "k", false, "Delete the last command in history")
	f.BoolVarP(&rootOpts.nonInteractive, "non-interactive", "n", false, "Print filtered history and exit")
	f.BoolVarP(&rootOpts.showConfig, "show-configuration", "s", false, "Show configuration to be added to ~/.bashrc or ~/.zshrc")
	f.BoolVarP(&rootOpts.showZshConfig, "show-zsh-configuration", "z", false, "Show zsh configuration to be added to ~/.zshrc")
	f.BoolVarP(&rootOpts.showBlacklist, "show-blacklist", "b", false, "Show commands to skip on history indexation")
	f.BoolVarP(&rootOpts.version, "version", "V", false, "Show version information")

	rootCmd.AddGroup(&cobra.Group{ID: groupSetup, Title: "Setup:"})
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(versionCmd)
}

func runRoot(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	switch {
	case rootOpts.version:
		printVersion(out)
		return nil
	case rootOpts.showConfig:
		return writeShellConfig(out, detectShell())
	case rootOpts.showZshConfig:
		return writeShellConfig(out, "zsh")
	}

	a, err := newApp()
	if err != nil {
		return &ExitError{Message: err.Error(), Code: ExitFallback}
	}
	defer a.close()

	switch {
	case rootOpts.showBlacklist:
		return showBlacklist(out, a)
	case rootOpts.killLast:
		return killLastCommand(out, a)
	}

	pattern := cmdlinePattern(args)
	if rootOpts.nonInteractive {
		return listMatches(out, a, pattern)
	}
	return runInteractive(cmd.Context(), out, a, pattern)
}

// cmdlinePattern joins the command-line words into the initial pattern.
// Words containing a space are double-quoted. Words that would push the
// pattern past maxCmdlinePattern are dropped.
func cmdlinePattern(args []string) string {
	var b strings.Builder
	for _, arg := range args {
		word := arg
		if strings.Contains(arg, " ") {
			word = `"` + arg + `"`
		}
		n := len(word)
		if b.Len() > 0 {
			n++
		}
		if b.Len()+n > maxCmdlinePattern {
			break
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(word)
	}
	return b.String()
}
