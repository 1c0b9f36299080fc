/*
Copyright © 2025 carrier-prerequest authors
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/ElangoShush/carrier-prerequest/pkg/defaults"
	"github.com/ElangoShush/carrier-prerequest/pkg/run"
)

func collectCmd() *cli.Command {
	return &cli.Command{
		Name:                  "collect",
		EnableShellCompletion: true,
		Usage:                 "Run the diagnostic probes and deliver the report",
		ArgsUsage:             "[carrier]",
		Description: `Run the full probe set against this host and deliver the finalized
report. The carrier identifier namespaces the report and (for the
credentialed strategy) the storage bucket; it may also be supplied via
PREREQ_CARRIER.

Delivery strategies (mutually exclusive, both optional):
  --signed-url   single PUT to a pre-authorized link. The content type
                 sent must byte-match the value the link was signed with.
  --bucket       credentialed upload using a pre-provisioned service
                 account key, creating the carrier bucket if needed.

With neither configured the report is kept on local disk only.

# Examples

Quick collection, local report only:
  prereq collect --quick "Mint Mobile"

Deliver via signed link:
  prereq collect "Mint Mobile" --signed-url "https://storage.googleapis.com/...&X-Goog-Signature=..."

Deliver via credentialed bucket:
  prereq collect "Mint Mobile" --bucket --credentials /etc/prereq/gcs-credentials.json`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "quick",
				Aliases: []string{"q"},
				Usage:   "Skip the long-running network trace probe",
				Sources: cli.EnvVars("PREREQ_QUICK"),
			},
			&cli.StringFlag{
				Name:    "signed-url",
				Usage:   "Pre-authorized single-use PUT URL for the report",
				Sources: cli.EnvVars("PREREQ_SIGNED_URL"),
			},
			&cli.StringFlag{
				Name:    "content-type",
				Usage:   "Upload content type; must equal the value the link was signed with",
				Sources: cli.EnvVars("PREREQ_CONTENT_TYPE"),
				Value:   defaults.ContentType,
			},
			&cli.BoolFlag{
				Name:    "bucket",
				Usage:   "Deliver via credentialed bucket upload instead of a signed link",
				Sources: cli.EnvVars("PREREQ_BUCKET"),
			},
			&cli.StringFlag{
				Name:    "credentials",
				Usage:   "Path to the pre-provisioned service account key",
				Sources: cli.EnvVars("PREREQ_CREDENTIALS"),
				Value:   defaults.CredentialsPath,
			},
			&cli.StringFlag{
				Name:    "output-dir",
				Aliases: []string{"o"},
				Usage:   "Directory for the local report artifact (default: system temp dir)",
				Sources: cli.EnvVars("PREREQ_OUTPUT_DIR"),
			},
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Optional YAML file supplying delivery settings (flags take precedence)",
				Sources: cli.EnvVars("PREREQ_CONFIG"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			// The carrier comes from the positional argument, or from the
			// environment when running unattended.
			rawCarrier := cmd.Args().First()
			if rawCarrier == "" {
				rawCarrier = os.Getenv("PREREQ_CARRIER")
			}

			cfg, err := buildConfig(cmd, rawCarrier)
			if err != nil {
				return err
			}

			return run.Run(ctx, *cfg)
		},
	}
}

func buildConfig(cmd *cli.Command, rawCarrier string) (*run.Config, error) {
	cfg := &run.Config{
		RawCarrier: rawCarrier,
		Quick:      cmd.Bool("quick"),
		SignedURL:  cmd.String("signed-url"),
		UseBucket:  cmd.Bool("bucket"),
		OutputDir:  cmd.String("output-dir"),
		Version:    version,
	}

	// Flags with a default value only take precedence over the config
	// file when the operator actually set them; otherwise the default
	// would mask the file value.
	if cmd.IsSet("content-type") {
		cfg.ContentType = cmd.String("content-type")
	}
	if cmd.IsSet("credentials") {
		cfg.CredentialsPath = cmd.String("credentials")
	}

	if path := cmd.String("config"); path != "" {
		fc, err := run.LoadFileConfig(path)
		if err != nil {
			return nil, fmt.Errorf("invalid --config: %w", err)
		}
		cfg.MergeFile(fc)
	}

	cfg.ApplyDefaults()
	return cfg, nil
}
