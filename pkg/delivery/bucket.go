package delivery

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/ElangoShush/carrier-prerequest/pkg/defaults"
	"github.com/ElangoShush/carrier-prerequest/pkg/errors"
)

// serviceAccountKey is the subset of the credential file the strategy
// needs: bucket creation requires the owning project.
type serviceAccountKey struct {
	ProjectID string `json:"project_id"`
}

// uploadToBucket implements the credentialed strategy: fail fast on a
// missing credential artifact, ensure the bucket exists (creating it in
// the fixed location when not), then upload the artifact to the bucket
// root. Creation is racy under concurrent first-runs for the same carrier;
// acceptable because an already-existing, accessible bucket short-circuits
// creation.
func (d *Deliverer) uploadToBucket(ctx context.Context, cb CredentialedBucket, objectName string, body []byte) (*Outcome, error) {
	key, err := readServiceAccountKey(cb.CredentialsPath)
	if err != nil {
		return nil, err
	}

	client, err := storage.NewClient(ctx, option.WithCredentialsFile(cb.CredentialsPath))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDelivery, "failed to create storage client", err)
	}
	defer client.Close()

	bucket := client.Bucket(cb.Bucket)

	if err := ensureBucket(ctx, bucket, cb, key.ProjectID); err != nil {
		return nil, err
	}

	uctx, cancel := context.WithTimeout(ctx, defaults.UploadTimeout)
	defer cancel()

	w := bucket.Object(objectName).NewWriter(uctx)
	w.ContentType = defaults.ContentType
	if _, err := w.Write(body); err != nil {
		_ = w.Close()
		return nil, errors.WrapWithContext(errors.ErrCodeDelivery, "failed to upload report", err,
			map[string]any{"bucket": cb.Bucket, "object": objectName})
	}
	if err := w.Close(); err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeDelivery, "failed to finalize upload", err,
			map[string]any{"bucket": cb.Bucket, "object": objectName})
	}

	slog.Info("report uploaded", "bucket", cb.Bucket, "object", objectName, "bytes", len(body))
	return &Outcome{Delivered: true, Detail: fmt.Sprintf("gs://%s/%s", cb.Bucket, objectName)}, nil
}

// readServiceAccountKey loads the pre-provisioned credential artifact,
// failing fast with a distinct error when it is absent.
func readServiceAccountKey(path string) (*serviceAccountKey, error) {
	if path == "" {
		path = defaults.CredentialsPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDelivery,
			fmt.Sprintf("credential artifact not available at %s (pre-provision the service account key)", path), err)
	}

	var key serviceAccountKey
	if err := json.Unmarshal(data, &key); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDelivery,
			fmt.Sprintf("credential artifact at %s is not a valid service account key", path), err)
	}
	if key.ProjectID == "" {
		return nil, errors.Newf(errors.ErrCodeDelivery,
			"credential artifact at %s carries no project_id", path)
	}

	return &key, nil
}

// ensureBucket checks accessibility and creates the bucket in the fixed
// location when it is not. Creation failure is fatal; a global name
// collision and insufficient permission are not distinguished beyond the
// underlying error.
func ensureBucket(ctx context.Context, bucket *storage.BucketHandle, cb CredentialedBucket, projectID string) error {
	bctx, cancel := context.WithTimeout(ctx, defaults.BucketOperationTimeout)
	defer cancel()

	if _, err := bucket.Attrs(bctx); err == nil {
		return nil
	}

	location := cb.Location
	if location == "" {
		location = defaults.BucketLocation
	}

	slog.Info("bucket not accessible, creating", "bucket", cb.Bucket, "location", location)

	cctx, cancel := context.WithTimeout(ctx, defaults.BucketOperationTimeout)
	defer cancel()

	if err := bucket.Create(cctx, projectID, &storage.BucketAttrs{Location: location}); err != nil {
		return errors.WrapWithContext(errors.ErrCodeDelivery, "failed to create bucket", err,
			map[string]any{"bucket": cb.Bucket, "location": location})
	}

	return nil
}
