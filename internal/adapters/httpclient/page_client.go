package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
)

const maxPageSize = 4 << 20

// StatusError is returned for a non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d for %s", e.StatusCode, e.URL)
}

// PageClient downloads web pages as text. Throttling responses (429, 503) are
// retried with exponential backoff, anything else fails immediately.
type PageClient struct {
	http       *http.Client
	maxRetries uint64
	newBackOff func() backoff.BackOff
}

func (c *PageClient) DownloadFrom(ctx context.Context, url string) (string, error) {
	var page string
	operation := func() error {
		body, err := c.get(ctx, url)
		if err != nil {
			return err
		}
		page = body
		return nil
	}

	b := backoff.WithContext(backoff.WithMaxRetries(c.newBackOff(), c.maxRetries), ctx)
	notify := func(err error, wait time.Duration) {
		logrus.WithError(err).WithFields(logrus.Fields{"url": url, "retry_in": wait}).Warn("rate page request throttled")
	}
	if err := backoff.RetryNotify(operation, b, notify); err != nil {
		return "", err
	}
	return page, nil
}

func (c *PageClient) get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", backoff.Permanent(fmt.Errorf("failed to create request for %s: %w", url, err))
	}
	req.Header.Set("Accept", "text/html,text/plain")

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", backoff.Permanent(fmt.Errorf("failed to execute request for %s: %w", url, err))
		}
		return "", fmt.Errorf("failed to execute request for %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &StatusError{URL: url, StatusCode: resp.StatusCode}
		if isThrottled(resp.StatusCode) {
			return "", statusErr
		}
		return "", backoff.Permanent(statusErr)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		return "", fmt.Errorf("failed to read response body of %s: %w", url, err)
	}
	return string(body), nil
}

func isThrottled(code int) bool {
	return code == http.StatusTooManyRequests || code == http.StatusServiceUnavailable
}

func NewPageClient(httpClient *http.Client, maxRetries uint64) *PageClient {
	return &PageClient{
		http:       httpClient,
		maxRetries: maxRetries,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = time.Second
			b.MaxInterval = 30 * time.Second
			return b
		},
	}
}
