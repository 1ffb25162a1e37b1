package cmd

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
)

//go:embed shell/hstr.bash shell/hstr.zsh
var shellScripts embed.FS

// installMarker is the first line of every shell snippet.
const installMarker = "# HSTR configuration"

var installShell string

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install shell integration",
	Long: `Append the hstr shell configuration to your shell's rc file.

The snippet binds hstr to Ctrl-r and 'kill last command' to Ctrl-x k (bash).
It is the same text printed by 'hstr --show-configuration'.

By default, the command detects your current shell. Use --shell to specify
a different shell.

Examples:
  hstr install              # Auto-detect shell
  hstr install --shell=zsh  # Install for zsh
  hstr install --shell=bash # Install for bash`,
	GroupID: groupSetup,
	RunE:    runInstall,
}

func init() {
	installCmd.Flags().StringVar(&installShell, "shell", "", "Shell to install for (zsh, bash)")
}

func runInstall(cmd *cobra.Command, args []string) error {
	shell := installShell
	if shell == "" {
		shell = detectShell()
	}
	snippet, err := shellConfig(shell)
	if err != nil {
		return err
	}

	rcFile := getRCFile(shell)
	if rcFile == "" {
		return fmt.Errorf("could not determine rc file for %s", shell)
	}

	installed, err := isInstalled(rcFile)
	if err != nil {
		return fmt.Errorf("failed to check rc file: %w", err)
	}
	out := cmd.OutOrStdout()
	if installed {
		fmt.Fprintf(out, "hstr is already configured in %s\n", rcFile)
		return nil
	}

	if err := appendSnippet(rcFile, snippet); err != nil {
		return err
	}

	fmt.Fprintf(out, "%sInstalled successfully!%s\n", colorGreen, colorReset)
	fmt.Fprintf(out, "  Added to: %s\n", rcFile)
	fmt.Fprintf(out, "\nTo activate, start a new terminal session or run: %ssource %s%s\n", colorCyan, rcFile, colorReset)
	return nil
}

// writeShellConfig prints the shell snippet for shell.
func writeShellConfig(w io.Writer, shell string) error {
	snippet, err := shellConfig(shell)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n"+snippet+"\n")
	return err
}

func shellConfig(shell string) (string, error) {
	switch shell {
	case "zsh", "bash":
	default:
		return "", fmt.Errorf("unsupported shell: %s (supported: zsh, bash)", shell)
	}
	content, err := shellScripts.ReadFile("shell/hstr." + shell)
	if err != nil {
		return "", fmt.Errorf("shell script not found for %s: %w", shell, err)
	}
	return string(content), nil
}

func getRCFile(shell string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	switch shell {
	case "zsh":
		return filepath.Join(home, ".zshrc")
	case "bash":
		bashrc := filepath.Join(home, ".bashrc")
		if _, err := os.Stat(bashrc); err == nil {
			return bashrc
		}
		// On macOS, check .bash_profile
		if runtime.GOOS == "darwin" {
			bashProfile := filepath.Join(home, ".bash_profile")
			if _, err := os.Stat(bashProfile); err == nil {
				return bashProfile
			}
		}
		return bashrc
	default:
		return ""
	}
}

func isInstalled(rcFile string) (bool, error) {
	f, err := os.Open(rcFile)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if strings.HasPrefix(strings.TrimSpace(scanner.Text()), installMarker) {
			return true, nil
		}
	}
	return false, scanner.Err()
}

func appendSnippet(rcFile, snippet string) error {
	content, err := os.ReadFile(rcFile)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read %s: %w", rcFile, err)
	}

	f, err := os.OpenFile(rcFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", rcFile, err)
	}
	defer f.Close()

	var b strings.Builder
	if len(content) > 0 && content[len(content)-1] != '\n' {
		b.WriteByte('\n')
	}
	b.WriteString("\n")
	b.WriteString(snippet)
	if _, err := f.WriteString(b.String()); err != nil {
		return fmt.Errorf("failed to write to %s: %w", rcFile, err)
	}
	return nil
}
