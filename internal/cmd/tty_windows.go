//go:build windows

package cmd

import (
	"errors"
	"os"
)

var errNoTTY = errors.New("interactive mode needs a Unix terminal")

func checkTerminal() error {
	return errNoTTY
}

func terminalSize(*os.File) (rows, cols int, err error) {
	return 0, 0, errNoTTY
}

func acquireLock(string) (int, error) {
	return -1, errNoTTY
}

func releaseLock(int) {}
