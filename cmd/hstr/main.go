// Package main is the entry point for the hstr CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/runger/hstr/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		var exitErr *cmd.ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Message != "" {
				fmt.Fprintf(os.Stderr, "hstr: %s\n", exitErr.Message)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "hstr: %v\n", err)
		os.Exit(1)
	}
}
