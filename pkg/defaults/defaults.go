package defaults

import "time"

const (
	// ProbeCommandTimeout bounds a single external command invoked by a probe.
	ProbeCommandTimeout = 10 * time.Second

	// TraceTimeout bounds the network trace probe, the longest-running check.
	TraceTimeout = 60 * time.Second

	// ClusterQueryTimeout bounds a single cluster backend node listing.
	ClusterQueryTimeout = 30 * time.Second

	// SystemdTimeout bounds the systemd unit state query.
	SystemdTimeout = 5 * time.Second

	// DNSTimeout bounds the DNS resolution probe.
	DNSTimeout = 5 * time.Second
)

const (
	// HTTPClientTimeout is the total timeout for the signed-link upload.
	HTTPClientTimeout = 120 * time.Second

	// HTTPConnectTimeout is the TCP connect timeout.
	HTTPConnectTimeout = 10 * time.Second

	// HTTPKeepAlive is the keep-alive period for upload connections.
	HTTPKeepAlive = 30 * time.Second

	// HTTPTLSHandshakeTimeout bounds the TLS handshake.
	HTTPTLSHandshakeTimeout = 10 * time.Second

	// HTTPResponseHeaderTimeout bounds the wait for response headers.
	HTTPResponseHeaderTimeout = 30 * time.Second

	// HTTPIdleConnTimeout is how long idle connections are kept.
	HTTPIdleConnTimeout = 90 * time.Second
)

const (
	// BucketOperationTimeout bounds a single bucket metadata or create call.
	BucketOperationTimeout = 30 * time.Second

	// UploadTimeout bounds the credentialed object upload.
	UploadTimeout = 120 * time.Second
)

const (
	// BucketPrefix namespaces report buckets by carrier slug.
	BucketPrefix = "carrier-prereq-"

	// BucketLocation is the fixed location for newly created report buckets.
	BucketLocation = "US"

	// CredentialsPath is the expected location of the pre-provisioned
	// service account key for the credentialed bucket strategy.
	CredentialsPath = "/etc/prereq/gcs-credentials.json"

	// ContentType is the default upload content type. It must byte-match
	// the value used when a signed link was generated.
	ContentType = "text/plain"

	// ConnectivityHost is the endpoint used for reachability checks; it is
	// also the storage frontend the report is ultimately delivered to.
	ConnectivityHost = "storage.googleapis.com"
)
