/*
Copyright © 2025 carrier-prerequest authors
SPDX-License-Identifier: Apache-2.0
*/

package run

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ElangoShush/carrier-prerequest/pkg/defaults"
	"github.com/ElangoShush/carrier-prerequest/pkg/delivery"
	"github.com/ElangoShush/carrier-prerequest/pkg/errors"
)

func TestResolveTarget(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		want    delivery.Target
		wantErr bool
	}{
		{
			name: "no target means skip",
			cfg:  Config{},
			want: nil,
		},
		{
			name: "signed url selects signed link",
			cfg:  Config{SignedURL: "https://storage.example/signed", ContentType: "text/plain"},
			want: delivery.SignedLink{URL: "https://storage.example/signed", ContentType: "text/plain"},
		},
		{
			name: "bucket flag selects credentialed strategy with derived name",
			cfg:  Config{UseBucket: true, CredentialsPath: "/etc/prereq/key.json", BucketLocation: "US"},
			want: delivery.CredentialedBucket{
				Bucket:          "carrier-prereq-mint-mobile",
				CredentialsPath: "/etc/prereq/key.json",
				Location:        "US",
			},
		},
		{
			name:    "both strategies is a validation error",
			cfg:     Config{SignedURL: "https://x", UseBucket: true},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveTarget(tt.cfg, "mint-mobile")
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, errors.ErrCodeValidation, errors.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunRejectsInvalidCarrier(t *testing.T) {
	err := Run(context.Background(), Config{RawCarrier: "---"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeValidation, errors.CodeOf(err))
}

func TestRunRejectsConflictingTargetsBeforeProbing(t *testing.T) {
	err := Run(context.Background(), Config{
		RawCarrier: "mint mobile",
		SignedURL:  "https://x",
		UseBucket:  true,
	})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeValidation, errors.CodeOf(err))
}

func TestDefaultProbesOrder(t *testing.T) {
	probes := defaultProbes()

	ids := make([]string, 0, len(probes))
	for _, p := range probes {
		ids = append(ids, p.ID)
	}

	// Registration order is the report section order.
	assert.Equal(t, []string{
		"system", "tools", "network", "dns", "ping", "trace", "services", "cluster",
	}, ids)

	// Only the trace probe is quick-suppressible.
	for _, p := range probes {
		assert.Equal(t, p.ID == "trace", p.QuickSkip, "probe %s", p.ID)
	}
}

func TestLoadFileConfigAndMerge(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prereq.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
signed_url: https://storage.example/from-file
content_type: text/plain
bucket:
  enabled: false
  credentials: /etc/prereq/key.json
  location: US
`), 0o600))

	fc, err := LoadFileConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://storage.example/from-file", fc.SignedURL)

	// Flag value wins over file value.
	cfg := Config{SignedURL: "https://storage.example/from-flag"}
	cfg.MergeFile(fc)
	assert.Equal(t, "https://storage.example/from-flag", cfg.SignedURL)
	assert.Equal(t, "text/plain", cfg.ContentType)
	assert.Equal(t, "/etc/prereq/key.json", cfg.CredentialsPath)
	assert.Equal(t, "US", cfg.BucketLocation)
}

func TestApplyDefaultsAfterMerge(t *testing.T) {
	fc := &FileConfig{ContentType: "application/json"}
	fc.Bucket.Credentials = "/opt/keys/alt.json"
	fc.Bucket.Location = "EU"

	// Merge first, default last: file values must survive defaulting.
	var cfg Config
	cfg.MergeFile(fc)
	cfg.ApplyDefaults()
	assert.Equal(t, "application/json", cfg.ContentType)
	assert.Equal(t, "/opt/keys/alt.json", cfg.CredentialsPath)
	assert.Equal(t, "EU", cfg.BucketLocation)

	// Without a file, defaulting fills every delivery field.
	var bare Config
	bare.ApplyDefaults()
	assert.Equal(t, defaults.ContentType, bare.ContentType)
	assert.Equal(t, defaults.CredentialsPath, bare.CredentialsPath)
	assert.Equal(t, defaults.BucketLocation, bare.BucketLocation)
}

func TestLoadFileConfigErrors(t *testing.T) {
	_, err := LoadFileConfig("/definitely/not/a/real/config.yaml")
	assert.Error(t, err)

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("signed_url: [unterminated"), 0o600))
	_, err = LoadFileConfig(bad)
	assert.Error(t, err)
}
