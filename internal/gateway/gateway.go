// Package gateway provides HTTP client adapters for the external inventory
// and payment systems. The adapters translate between the checkout core's
// gateway contracts and each system's JSON-over-HTTP API; business refusals
// (out of stock, declined) travel in response bodies, while transport and
// non-2xx failures surface as errors.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// maxErrorBodyBytes caps how much of an error response body is read for
// diagnostics.
const maxErrorBodyBytes = 4 << 10

// newHTTPClient returns a client with an OpenTelemetry-instrumented
// transport. Timeouts here bound single calls; the checkout core itself
// never retries.
func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

// postJSON marshals the request body, issues a POST, and decodes the 2xx
// response into out. When out is nil the response body is discarded.
func postJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return errors.Wrap(err, "marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "create request")
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return errors.Wrap(err, "do request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return errors.Errorf("unexpected status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}
