package source

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ReadLines reads a newline-separated file. A trailing line without a
// terminating newline is kept. Embedded carriage returns are not stripped.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from config
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	lines := strings.Split(string(data), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}

// WriteLines rewrites path with one line per entry, each terminated by a
// newline. An empty list truncates an existing file to zero length and
// leaves a missing file missing.
func WriteLines(path string, lines []string) error {
	if len(lines) == 0 {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return fmt.Errorf("stat %s: %w", path, err)
		}
		if err := os.Truncate(path, 0); err != nil {
			return fmt.Errorf("truncate %s: %w", path, err)
		}
		return nil
	}

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil { //nolint:gosec // G306: user-readable dotfile like the shell history
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// FileLoader loads lines from a line-oriented file.
func FileLoader(path string) Loader {
	return LoaderFunc(func() ([]string, error) {
		return ReadLines(path)
	})
}

// DirLoader lists the subdirectories of dir as "cd <name>" commands, in
// reverse name order.
func DirLoader(dir string) Loader {
	return LoaderFunc(func() ([]string, error) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", dir, err)
		}
		var lines []string
		for _, e := range entries {
			if !isDir(dir, e) {
				continue
			}
			lines = append(lines, "cd "+shellQuote(e.Name()))
		}
		slices.Reverse(lines)
		return lines, nil
	})
}

// isDir follows symlinks so linked directories are listed too.
func isDir(dir string, e os.DirEntry) bool {
	if e.IsDir() {
		return true
	}
	if e.Type()&os.ModeSymlink == 0 {
		return false
	}
	fi, err := os.Stat(filepath.Join(dir, e.Name()))
	return err == nil && fi.IsDir()
}

func shellQuote(name string) string {
	if !strings.ContainsAny(name, " \t'\"\\$`&;|<>()*?[]!#~") {
		return name
	}
	return "'" + strings.ReplaceAll(name, "'", `'\''`) + "'"
}
