package social

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	perrors "github.com/lueurxax/telegram-digest-bot/internal/core/errors"
)

// apifyBaseURL is Apify's synchronous actor-run endpoint: it runs the
// named actor and returns the resulting dataset items directly in the
// response body, sparing callers the run/poll/fetch dance the actor
// API exposes for long-running or asynchronous jobs.
const apifyBaseURL = "https://api.apify.com/v2/acts"

// retryConfig drives the same exponential backoff shape as the catalog
// package: retry 429, 5xx and network errors, fail fast on 401 and
// other 4xx. A 429's Retry-After header is not read; the next attempt
// waits the ordinary backoff delay.
type retryConfig struct {
	maxRetries  int
	baseBackoff time.Duration
}

// apifyClient runs Apify actors synchronously and decodes their
// dataset-item output as a slice of raw JSON objects, leaving
// platform-specific shape interpretation to each scraper adapter.
type apifyClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	retry      retryConfig
	logger     *zerolog.Logger
}

func newApifyClient(token string, timeout time.Duration, logger *zerolog.Logger) *apifyClient {
	return &apifyClient{
		baseURL:    apifyBaseURL,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		retry:      retryConfig{maxRetries: 2, baseBackoff: time.Second},
		logger:     logger,
	}
}

func (c *apifyClient) isAvailable() bool { return c.token != "" }

// runActor POSTs input to actorID's run-sync-get-dataset-items endpoint
// and decodes the dataset items into a slice of raw JSON objects.
func (c *apifyClient) runActor(ctx context.Context, actorID string, input interface{}) ([]json.RawMessage, error) {
	payload, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("encoding apify actor input: %w", err)
	}

	fullURL := fmt.Sprintf("%s/%s/run-sync-get-dataset-items?token=%s", c.baseURL, actorID, c.token)

	var lastErr error

	for attempt := 0; attempt <= c.retry.maxRetries; attempt++ {
		if attempt > 0 {
			if err := sleepCtx(ctx, backoffDelay(c.retry.baseBackoff, attempt)); err != nil {
				return nil, err
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("building apify request: %w", err)
		}

		req.Header.Set("Content-Type", "application/json")

		items, retryable, err := c.attemptOnce(req)
		if err == nil {
			return items, nil
		}

		lastErr = err

		if !retryable {
			return nil, err
		}

		if c.logger != nil {
			c.logger.Warn().Err(err).Str("actor", actorID).Int("attempt", attempt+1).Msg("social: apify run failed, retrying")
		}
	}

	return nil, fmt.Errorf("apify actor run exhausted retries: %w", lastErr)
}

func (c *apifyClient) attemptOnce(req *http.Request) ([]json.RawMessage, bool, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("%w: %w", perrors.ErrDependencyUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("reading apify response body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		var items []json.RawMessage
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, false, fmt.Errorf("%w: %w", perrors.ErrMalformedResponse, err)
		}

		return items, false, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, true, fmt.Errorf("%w: status %d", perrors.ErrProviderRateLimited, resp.StatusCode)
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, false, fmt.Errorf("%w: status %d", perrors.ErrProviderUnauthorized, resp.StatusCode)
	case resp.StatusCode >= 500:
		return nil, true, fmt.Errorf("%w: status %d", perrors.ErrProviderServerError, resp.StatusCode)
	case resp.StatusCode >= 400:
		return nil, false, fmt.Errorf("%w: status %d", perrors.ErrProviderBadRequest, resp.StatusCode)
	default:
		return nil, false, fmt.Errorf("unexpected apify status %d", resp.StatusCode)
	}
}

func backoffDelay(base time.Duration, attempt int) time.Duration {
	return time.Duration(float64(base) * math.Pow(2, float64(attempt-1)))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("waiting for apify retry backoff: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}

func safeInt64(v interface{}) *int64 {
	switch n := v.(type) {
	case float64:
		i := int64(n)
		return &i
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return nil
		}

		return &i
	default:
		return nil
	}
}

func safeBool(v interface{}) *bool {
	b, ok := v.(bool)
	if !ok {
		return nil
	}

	return &b
}

func safeString(v interface{}) *string {
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}

	return &s
}
