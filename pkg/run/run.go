/*
Copyright © 2025 carrier-prerequest authors
SPDX-License-Identifier: Apache-2.0
*/

// Package run drives one collection run through its state machine:
// Init → ValidateInput → Collect → Finalize → Deliver → Done. There is no
// retry transition anywhere in this machine.
package run

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/ElangoShush/carrier-prerequest/pkg/carrier"
	"github.com/ElangoShush/carrier-prerequest/pkg/cluster"
	"github.com/ElangoShush/carrier-prerequest/pkg/delivery"
	"github.com/ElangoShush/carrier-prerequest/pkg/errors"
	"github.com/ElangoShush/carrier-prerequest/pkg/probe"
	"github.com/ElangoShush/carrier-prerequest/pkg/report"
)

// defaultProbes is the fixed probe table in registration order, which is
// also the report's section order.
func defaultProbes() []probe.Probe {
	return []probe.Probe{
		probe.SystemProbe(),
		probe.ToolsProbe(),
		probe.NetworkProbe(),
		probe.DNSProbe(),
		probe.PingProbe(),
		probe.TraceProbe(),
		probe.ServicesProbe(),
		cluster.NewProbe(cluster.NewInspector()),
	}
}

// Run executes one full collection and delivery pass. Validation and
// fatal-probe errors abort before any delivery attempt; delivery errors
// surface after the report is already on local disk.
func Run(ctx context.Context, cfg Config) error {
	// ValidateInput: fail fast before any probing or delivery setup.
	slug, err := carrier.Sanitize(cfg.RawCarrier)
	if err != nil {
		return err
	}

	target, err := resolveTarget(cfg, slug)
	if err != nil {
		return err
	}

	host, err := os.Hostname()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to resolve hostname", err)
	}

	slog.Info("starting collection",
		"carrier", slug.String(),
		"host", host,
		"quick", cfg.Quick)

	// Collect.
	builder := report.NewBuilder(report.Metadata{
		RunID:   uuid.NewString(),
		Host:    host,
		Carrier: slug.String(),
		Start:   time.Now().UTC(),
		Quick:   cfg.Quick,
	})

	runner := &probe.Runner{Probes: defaultProbes(), Quick: cfg.Quick}
	results, err := runner.Run(ctx, builder)
	if err != nil {
		return err
	}

	for _, r := range results {
		if r.Status != probe.StatusOK {
			slog.Info("probe did not complete cleanly",
				"probe", r.ProbeID, "status", string(r.Status), "reason", r.Reason)
		}
	}

	// Finalize.
	rep := builder.Finalize()

	bucketName := ""
	if cb, ok := target.(delivery.CredentialedBucket); ok {
		bucketName = cb.Bucket
	}

	text := rep.Render()
	if line, err := rep.SummaryLine(bucketName); err == nil {
		text += "\n" + line + "\n"
	}

	path, err := report.WriteArtifact(cfg.OutputDir, host, rep.Meta.End, text)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to persist report", err)
	}

	// Deliver.
	outcome, err := delivery.New().Deliver(ctx, target, filepath.Base(path), []byte(text))
	if err != nil {
		// The report survives on local disk even when delivery fails.
		slog.Error("delivery failed, report kept locally", "path", path)
		return err
	}

	if outcome.Skipped {
		fmt.Println(delivery.SkipGuidance())
		fmt.Printf("report: %s\n", path)
		return nil
	}

	fmt.Printf("report delivered (%s)\nlocal copy: %s\n", deliveryDetail(outcome), path)
	return nil
}

// resolveTarget maps configuration to the active delivery strategy. The
// two strategies are mutually exclusive per run; neither configured means
// delivery is skipped.
func resolveTarget(cfg Config, slug carrier.Slug) (delivery.Target, error) {
	if cfg.SignedURL != "" && cfg.UseBucket {
		return nil, errors.New(errors.ErrCodeValidation,
			"signed-url and bucket delivery are mutually exclusive, configure one")
	}

	switch {
	case cfg.SignedURL != "":
		return delivery.SignedLink{
			URL:         cfg.SignedURL,
			ContentType: cfg.ContentType,
		}, nil
	case cfg.UseBucket:
		return delivery.CredentialedBucket{
			Bucket:          delivery.BucketName(slug),
			CredentialsPath: cfg.CredentialsPath,
			Location:        cfg.BucketLocation,
		}, nil
	default:
		return nil, nil
	}
}

func deliveryDetail(outcome *delivery.Outcome) string {
	if outcome.Detail != "" {
		return outcome.Detail
	}
	return fmt.Sprintf("status %d", outcome.HTTPStatus)
}
