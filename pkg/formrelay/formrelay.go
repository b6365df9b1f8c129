// Package formrelay posts form submissions to a third-party relay
// endpoint (e.g. formsubmit.co). The relay has no programmatic response
// contract beyond its HTTP status, so only success/failure is reported.
package formrelay

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"sort"
	"time"

	"inmueblesv-catalog/pkg/logger"
	"inmueblesv-catalog/pkg/metrics"
)

// Client manages submissions to the configured relay endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a relay client for the given endpoint.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Endpoint returns the configured relay target.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Send posts fields as a multipart form. Repeated values (image URLs)
// are appended under the repeated key. Retries transient transport
// failures with linear backoff.
func (c *Client) Send(ctx context.Context, fields map[string]string, repeated map[string][]string) error {
	if c.endpoint == "" {
		return fmt.Errorf("relay endpoint is not configured")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	// Deterministic field order keeps the payloads diffable in logs.
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := writer.WriteField(name, fields[name]); err != nil {
			return fmt.Errorf("failed to write form field %q: %v", name, err)
		}
	}
	for name, values := range repeated {
		for _, value := range values {
			if err := writer.WriteField(name, value); err != nil {
				return fmt.Errorf("failed to write form field %q: %v", name, err)
			}
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize form body: %v", err)
	}

	maxRetries := 3
	payload := body.Bytes()

	for attempt := 1; attempt <= maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("failed to create relay request: %v", err)
		}
		req.Header.Set("Content-Type", writer.FormDataContentType())

		resp, err := c.httpClient.Do(req)
		if err != nil {
			logger.GlobalLogger.Errorf("Relay request failed (attempt %d/%d): endpoint=%s, error=%v", attempt, maxRetries, c.endpoint, err)
			if attempt == maxRetries {
				metrics.LeadRelayTotal.WithLabelValues("error").Inc()
				return fmt.Errorf("failed to reach relay after %d attempts: %v", maxRetries, err)
			}
			select {
			case <-ctx.Done():
				metrics.LeadRelayTotal.WithLabelValues("canceled").Inc()
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
			continue
		}
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			metrics.LeadRelayTotal.WithLabelValues("ok").Inc()
			return nil
		}

		logger.GlobalLogger.Errorf("Relay rejected submission (attempt %d/%d): endpoint=%s, status=%s", attempt, maxRetries, c.endpoint, resp.Status)
		// Client errors will not improve with retries.
		if resp.StatusCode < 500 || attempt == maxRetries {
			metrics.LeadRelayTotal.WithLabelValues("rejected").Inc()
			return fmt.Errorf("relay rejected submission: %s", resp.Status)
		}
		select {
		case <-ctx.Done():
			metrics.LeadRelayTotal.WithLabelValues("canceled").Inc()
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * time.Second):
		}
	}

	return fmt.Errorf("relay submission failed: max retries exceeded")
}
