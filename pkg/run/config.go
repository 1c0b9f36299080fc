package run

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ElangoShush/carrier-prerequest/pkg/defaults"
)

// Config is the immutable run configuration, constructed once at startup
// from flags, environment, and the optional config file, then passed by
// reference to every component.
type Config struct {
	// RawCarrier is the operator-supplied carrier identifier before
	// sanitization.
	RawCarrier string

	// Quick suppresses the long-running trace probe.
	Quick bool

	// SignedURL selects the signed-link strategy when non-empty.
	SignedURL string

	// ContentType is the upload content type; must byte-match the value
	// the signed link was generated with.
	ContentType string

	// UseBucket selects the credentialed bucket strategy.
	UseBucket bool

	// CredentialsPath is the pre-provisioned service account key location.
	CredentialsPath string

	// BucketLocation is the location used when the bucket must be created.
	BucketLocation string

	// OutputDir is where the local report artifact is written.
	OutputDir string

	// Version is the tool version recorded in logs.
	Version string
}

// FileConfig is the optional YAML configuration file shape. Flags and
// environment variables take precedence over file values.
type FileConfig struct {
	SignedURL   string `yaml:"signed_url"`
	ContentType string `yaml:"content_type"`
	Bucket      struct {
		Enabled     bool   `yaml:"enabled"`
		Credentials string `yaml:"credentials"`
		Location    string `yaml:"location"`
	} `yaml:"bucket"`
}

// LoadFileConfig reads and decodes a YAML config file.
func LoadFileConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &fc, nil
}

// MergeFile fills unset Config fields from the file values.
func (c *Config) MergeFile(fc *FileConfig) {
	if fc == nil {
		return
	}
	if c.SignedURL == "" {
		c.SignedURL = fc.SignedURL
	}
	if c.ContentType == "" {
		c.ContentType = fc.ContentType
	}
	if !c.UseBucket {
		c.UseBucket = fc.Bucket.Enabled
	}
	if c.CredentialsPath == "" {
		c.CredentialsPath = fc.Bucket.Credentials
	}
	if c.BucketLocation == "" {
		c.BucketLocation = fc.Bucket.Location
	}
}

// ApplyDefaults fills fields still unset after flags and the config file
// have been applied. It must run after MergeFile, or the defaults would
// mask the file values.
func (c *Config) ApplyDefaults() {
	if c.ContentType == "" {
		c.ContentType = defaults.ContentType
	}
	if c.CredentialsPath == "" {
		c.CredentialsPath = defaults.CredentialsPath
	}
	if c.BucketLocation == "" {
		c.BucketLocation = defaults.BucketLocation
	}
}
