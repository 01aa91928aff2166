// Package common holds helpers shared by the CLI commands.
package common

import (
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"
)

// NewLogger builds the logger every command uses, honouring the --debug and
// --quiet verbosity toggles. Debug wins when both are given.
func NewLogger(c *cli.Context) *slog.Logger {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	if c.Bool("debug") {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}
