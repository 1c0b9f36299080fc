/*
Copyright © 2025 carrier-prerequest authors
SPDX-License-Identifier: Apache-2.0
*/

// Package cli implements the prereq command surface.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/ElangoShush/carrier-prerequest/pkg/logging"
)

const name = "prereq"

// overridden during build with ldflags
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// New builds the root command.
func New() *cli.Command {
	return &cli.Command{
		Name:    name,
		Version: version,
		Usage:   "Collect a host diagnostic snapshot and deliver it to object storage",
		Description: fmt.Sprintf(`prereq - carrier prerequisite checker

Version: %s
Commit:  %s
Built:   %s

Collects a diagnostic snapshot of this host (OS, network identity,
tooling inventory, container/orchestrator state) and delivers it to a
remote object store via a pre-authorized signed link or a credentialed
bucket upload. Optional tools that are missing degrade individual
findings; they never abort the run.`, version, commit, date),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error)",
				Sources: cli.EnvVars("LOG_LEVEL"),
				Value:   "info",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))
			slog.Debug("starting", "name", name, "version", version, "commit", commit, "date", date)
			return ctx, nil
		},
		Commands: []*cli.Command{
			collectCmd(),
		},
	}
}

// Execute runs the root command. It is called by main.main() exactly once.
// Logging is configured from LOG_LEVEL up front so that flag-parsing
// failures already emit structured records; the Before hook re-installs
// the logger once --log-level is known.
func Execute(ctx context.Context) error {
	logging.SetDefaultStructuredLogger(name, version)
	return New().Run(ctx, os.Args)
}
