package cmd

import (
	"testing"
)

func TestCommandsRegistered(t *testing.T) {
	expected := map[string]bool{
		"config":  false,
		"install": false,
		"version": false,
	}

	for _, cmd := range rootCmd.Commands() {
		if _, ok := expected[cmd.Name()]; ok {
			expected[cmd.Name()] = true
		}
	}

	for name, found := range expected {
		if !found {
			t.Errorf("Expected command %q to be registered", name)
		}
	}
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Short == "" {
		t.Error("Root command should have a short description")
	}
	if rootCmd.Long == "" {
		t.Error("Root command should have a long description")
	}
	if rootCmd.Name() != "hstr" {
		t.Errorf("Root command name should be 'hstr', got %q", rootCmd.Name())
	}
}

func TestRootFlags(t *testing.T) {
	flags := map[string]string{
		"favorites":              "f",
		"kill-last-command":      "k",
		"non-interactive":        "n",
		"show-configuration":     "s",
		"show-zsh-configuration": "z",
		"show-blacklist":         "b",
		"version":                "V",
	}

	for name, short := range flags {
		f := rootCmd.Flags().Lookup(name)
		if f == nil {
			t.Errorf("Expected flag --%s", name)
			continue
		}
		if f.Shorthand != short {
			t.Errorf("Flag --%s shorthand = %q, want %q", name, f.Shorthand, short)
		}
	}
}

func TestSubcommandsHaveGroups(t *testing.T) {
	for _, cmd := range rootCmd.Commands() {
		switch cmd.Name() {
		case "config", "install", "version":
			if cmd.GroupID != groupSetup {
				t.Errorf("Command %q should be in group %q, got %q", cmd.Name(), groupSetup, cmd.GroupID)
			}
		}
	}
}
