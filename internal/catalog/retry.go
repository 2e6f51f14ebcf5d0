// Package catalog provides HTTP clients for the two podcast directory
// providers the Search stage queries: Listen Notes and Podscan.
package catalog

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	perrors "github.com/lueurxax/telegram-digest-bot/internal/core/errors"
)

// RetryConfig controls the shared backoff policy every catalog client
// uses for transient failures.
type RetryConfig struct {
	MaxRetries   int
	BaseBackoff  time.Duration
}

// doWithRetry executes req, retrying transient failures up to
// cfg.MaxRetries times with exponential backoff from cfg.BaseBackoff.
// A 429 honors the server's Retry-After header when present. A 401
// fails immediately (it will never succeed on retry); other 4xx codes
// also fail immediately as client errors. 5xx and network errors are
// retried.
func doWithRetry(ctx context.Context, client *http.Client, req *http.Request, cfg RetryConfig, logger *zerolog.Logger) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := backoffDelay(cfg.BaseBackoff, attempt, lastErr, req)
			if err := sleepCtx(ctx, delay); err != nil {
				return nil, err
			}
		}

		body, retryable, err := attemptOnce(client, req)
		if err == nil {
			return body, nil
		}

		lastErr = err

		if !retryable {
			return nil, err
		}

		if logger != nil {
			logger.Warn().Err(err).Int("attempt", attempt+1).Str("url", req.URL.String()).Msg("catalog request failed, retrying")
		}
	}

	return nil, fmt.Errorf("catalog request exhausted retries: %w", lastErr)
}

// retryableError is stashed on errors so backoffDelay can read Retry-After
// without threading the *http.Response through every return path.
type retryableError struct {
	err        error
	retryAfter time.Duration
}

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

func attemptOnce(client *http.Client, req *http.Request) ([]byte, bool, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("%w: %w", perrors.ErrDependencyUnavailable, err)
	}

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("reading response body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, false, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		return nil, true, &retryableError{err: perrors.ErrProviderRateLimited, retryAfter: retryAfter}
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, false, fmt.Errorf("%w: status %d", perrors.ErrProviderUnauthorized, resp.StatusCode)
	case resp.StatusCode >= 500:
		return nil, true, fmt.Errorf("%w: status %d", perrors.ErrProviderServerError, resp.StatusCode)
	case resp.StatusCode >= 400:
		return nil, false, fmt.Errorf("%w: status %d: %s", perrors.ErrProviderBadRequest, resp.StatusCode, body)
	default:
		return nil, false, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
}

func backoffDelay(base time.Duration, attempt int, lastErr error, _ *http.Request) time.Duration {
	var retryErr *retryableError
	if lastErr != nil {
		if asRetryable(lastErr, &retryErr) && retryErr.retryAfter > 0 {
			return retryErr.retryAfter
		}
	}

	return time.Duration(float64(base) * math.Pow(2, float64(attempt-1)))
}

func asRetryable(err error, target **retryableError) bool {
	re, ok := err.(*retryableError)
	if !ok {
		return false
	}

	*target = re

	return true
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}

	if secs, err := strconv.Atoi(header); err == nil {
		return time.Duration(secs) * time.Second
	}

	if when, err := http.ParseTime(header); err == nil {
		return time.Until(when)
	}

	return 0
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("waiting for retry backoff: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}
