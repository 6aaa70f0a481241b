// Package config holds the configuration values of the rpn REPL. There is
// no configuration file: values are built in code and passed to the REPL.
package config

import (
	"fmt"

	"github.com/atinylittleshell/rpn/internal/calc"
	"github.com/atinylittleshell/rpn/internal/core"
)

// Config holds all REPL configuration.
type Config struct {
	// Prompt is shown when reading a new line.
	Prompt string

	// VariablePrompt is a format string with one %s verb for the identifier
	// whose value is requested.
	VariablePrompt string

	// Commands are the completion candidates, in the order they are offered.
	Commands []string

	// HistoryFile is the path of the history database. Empty disables history.
	HistoryFile string

	// HistoryLimit is the number of lines loaded at startup and kept on disk.
	HistoryLimit int

	// ExitKeys are key combinations that end the session like an empty line.
	ExitKeys []string

	// FailFast makes the first evaluation error end the REPL. Otherwise a
	// failing line prints a diagnostic and the REPL reads the next line.
	FailFast bool

	// BuildVersion is shown in the banner.
	BuildVersion string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Prompt:         "> ",
		VariablePrompt: "\t%s? ",
		Commands:       calc.Commands(),
		HistoryFile:    core.HistoryFile(),
		HistoryLimit:   500,
		ExitKeys:       []string{"ctrl+x"},
		FailFast:       false,
		BuildVersion:   "dev",
	}
}

// VariablePromptFor returns the prompt used to ask for the value of name.
func (c *Config) VariablePromptFor(name string) string {
	return fmt.Sprintf(c.VariablePrompt, name)
}
