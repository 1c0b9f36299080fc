/*
Copyright © 2025 carrier-prerequest authors
SPDX-License-Identifier: Apache-2.0
*/

// Package delivery transports the finalized report artifact via one of two
// mutually exclusive strategies: a pre-authorized single-use signed link,
// or a credentialed client with bucket provisioning. No strategy retries.
package delivery

import (
	"context"
	"net/http"

	"github.com/ElangoShush/carrier-prerequest/pkg/carrier"
	"github.com/ElangoShush/carrier-prerequest/pkg/defaults"
	"github.com/ElangoShush/carrier-prerequest/pkg/errors"
)

// Target is the tagged union of delivery strategies. Exactly one variant
// is active per run; a nil Target means delivery is skipped.
type Target interface {
	deliveryTarget()
}

// SignedLink is a pre-authorized, verb-and-header-bound PUT URL. The
// ContentType must byte-match the value used when the link was generated:
// the signature covers the header value.
type SignedLink struct {
	URL         string
	ContentType string
}

func (SignedLink) deliveryTarget() {}

// CredentialedBucket uploads with a pre-provisioned service account key
// and provisions the bucket when it does not exist yet.
type CredentialedBucket struct {
	Bucket          string
	CredentialsPath string
	Location        string
}

func (CredentialedBucket) deliveryTarget() {}

// Outcome is the terminal result of a delivery attempt. It is never
// retried.
type Outcome struct {
	Delivered  bool
	Skipped    bool
	HTTPStatus int
	Detail     string
}

// BucketName derives the deterministic bucket identifier for a carrier.
func BucketName(slug carrier.Slug) string {
	return defaults.BucketPrefix + slug.String()
}

// Deliverer executes delivery strategies. The zero value is not usable;
// construct with New.
type Deliverer struct {
	httpClient *http.Client
}

// New creates a Deliverer with the standard upload transport.
func New() *Deliverer {
	return &Deliverer{httpClient: newHTTPClient()}
}

// Deliver transmits the artifact according to the configured target.
// A nil target yields a skip outcome, not an error.
func (d *Deliverer) Deliver(ctx context.Context, target Target, objectName string, body []byte) (*Outcome, error) {
	switch t := target.(type) {
	case nil:
		return &Outcome{Skipped: true, Detail: "no delivery target configured"}, nil
	case SignedLink:
		return d.putSignedLink(ctx, t, body)
	case CredentialedBucket:
		return d.uploadToBucket(ctx, t, objectName, body)
	default:
		return nil, errors.Newf(errors.ErrCodeInternal, "unknown delivery target %T", target)
	}
}
