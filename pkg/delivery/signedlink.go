package delivery

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/ElangoShush/carrier-prerequest/pkg/defaults"
	"github.com/ElangoShush/carrier-prerequest/pkg/errors"
)

// signedLinkCauses are the four standard reasons a signed PUT is rejected.
// The server does not disambiguate them, so neither do we.
var signedLinkCauses = []string{
	"expired link",
	"content-type mismatch",
	"wrong HTTP verb signed",
	"wrong object path signed",
}

func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: defaults.HTTPClientTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   defaults.HTTPConnectTimeout,
				KeepAlive: defaults.HTTPKeepAlive,
			}).DialContext,
			TLSHandshakeTimeout:   defaults.HTTPTLSHandshakeTimeout,
			ResponseHeaderTimeout: defaults.HTTPResponseHeaderTimeout,
			IdleConnTimeout:       defaults.HTTPIdleConnTimeout,
			ForceAttemptHTTP2:     true,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
	}
}

// putSignedLink performs the single blocking PUT. Any 2xx status is
// success; anything else is a delivery error with the candidate causes
// enumerated and the response body surfaced verbatim. The link is assumed
// single-use and short-lived, so there is no retry.
func (d *Deliverer) putSignedLink(ctx context.Context, link SignedLink, body []byte) (*Outcome, error) {
	contentType := link.ContentType
	if contentType == "" {
		contentType = defaults.ContentType
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, link.URL, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDelivery, "failed to build signed link request", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = int64(len(body))

	slog.Info("uploading via signed link", "bytes", len(body), "contentType", contentType)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDelivery, "signed link request failed", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 8192))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		slog.Info("signed link upload accepted", "status", resp.StatusCode)
		return &Outcome{Delivered: true, HTTPStatus: resp.StatusCode}, nil
	}

	return &Outcome{HTTPStatus: resp.StatusCode, Detail: string(respBody)},
		errors.Newf(errors.ErrCodeDelivery,
			"signed link upload rejected with status %d; likely causes: %s; response: %s",
			resp.StatusCode, strings.Join(signedLinkCauses, ", "), strings.TrimSpace(string(respBody)))
}

// SkipGuidance is printed when no delivery target is configured.
func SkipGuidance() string {
	return fmt.Sprintf(`no delivery target configured, report kept on local disk only.
To deliver the report, either:
  - supply a pre-authorized link: --signed-url <url> (or PREREQ_SIGNED_URL)
  - enable the credentialed strategy: --bucket with a service account key at %s`,
		defaults.CredentialsPath)
}
