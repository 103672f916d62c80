// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"context"
	"errors"
	"hash/fnv"
	"io"
	"math"
	"net"
	"net/http"
	"time"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// retryable failures. Tests override this to avoid real sleeps.
var RetryBaseDelay = 1 * time.Second

const defaultMaxRetries = 2

// userAgents are realistic browser identities rotated across enrichment and
// scrape requests so sites are less likely to block the fetcher. Best-effort
// politeness, not correctness-bearing.
var userAgents = []string{
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
}

// UserAgent picks a browser User-Agent deterministically from the URL, so a
// given page always sees the same identity across retries and re-runs.
func UserAgent(url string) string {
	h := fnv.New32a()
	h.Write([]byte(url))
	return userAgents[int(h.Sum32())%len(userAgents)]
}

// DoWithRetry executes an HTTP request and retries on HTTP 429, 5xx, and
// network timeouts with exponential backoff starting at RetryBaseDelay.
// Client errors (4xx) are returned immediately so the caller can move to
// its next strategy. When maxRetries is 0 the default (2) is used. If the
// context is cancelled during a backoff wait the function returns ctx.Err().
// After exhausting retries the last response or error is returned as-is.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	for attempt := 0; ; attempt++ {
		clone := req.Clone(ctx)
		if attempt > 0 && req.GetBody != nil {
			body, bodyErr := req.GetBody()
			if bodyErr != nil {
				return nil, bodyErr
			}
			clone.Body = body
		}
		resp, err := client.Do(clone)

		if err != nil {
			if attempt >= maxRetries || !isTimeout(err) {
				return nil, err
			}
		} else {
			if !retryableStatus(resp.StatusCode) {
				return resp, nil
			}
			if attempt >= maxRetries {
				return resp, nil
			}
			// Drain and close the body before retrying.
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}

		backoff := time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

// Get issues a GET for url with a rotated User-Agent and retry policy.
func Get(ctx context.Context, client *http.Client, url string, maxRetries int) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", UserAgent(url))
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	return DoWithRetry(ctx, client, req, maxRetries)
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
