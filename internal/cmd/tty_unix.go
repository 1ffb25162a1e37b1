//go:build !windows

package cmd

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// minWidth is the narrowest terminal the search screen supports.
const minWidth = 20

// checkTerminal verifies that /dev/tty is usable and wide enough.
func checkTerminal() error {
	if os.Getenv("TERM") == "dumb" {
		return fmt.Errorf("TERM=dumb is not supported")
	}
	f, err := os.Open("/dev/tty")
	if err != nil {
		return fmt.Errorf("no TTY available: %w", err)
	}
	defer f.Close()

	_, cols, err := terminalSize(f)
	if err != nil {
		return err
	}
	if cols < minWidth {
		return fmt.Errorf("terminal too narrow (%d columns, need at least %d)", cols, minWidth)
	}
	return nil
}

// terminalSize returns the rows and columns of the terminal f.
func terminalSize(f *os.File) (rows, cols int, err error) {
	cols, rows, err = term.GetSize(int(f.Fd())) //nolint:gosec // G115: fd fits in int
	if err != nil {
		return 0, 0, fmt.Errorf("cannot get terminal size: %w", err)
	}
	return rows, cols, nil
}

// acquireLock acquires an advisory file lock using flock.
// Returns the file descriptor (kept open for the duration of the process).
func acquireLock(path string) (int, error) {
	fd, err := unix.Open(path, unix.O_CREAT|unix.O_RDWR|unix.O_CLOEXEC, 0o600)
	if err != nil {
		return -1, fmt.Errorf("cannot open lock file: %w", err)
	}

	if err := unix.Flock(fd, unix.LOCK_EX|unix.LOCK_NB); err != nil {
		_ = unix.Close(fd)
		return -1, fmt.Errorf("another instance of hstr is running")
	}

	return fd, nil
}

// releaseLock releases the advisory file lock.
func releaseLock(fd int) {
	if fd >= 0 {
		_ = unix.Flock(fd, unix.LOCK_UN)
		_ = unix.Close(fd)
	}
}
