package tmdb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	unrollerrors "github.com/lepinkainen/unroll/internal/errors"
)

// validator is implemented by response envelopes with required fields.
type validator interface {
	validate() error
}

func (c *Client) getJSON(ctx context.Context, op, path string, params []QueryParam, target any) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + EncodeQuery(params)
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return unrollerrors.NewNetworkError(op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &unrollerrors.CatalogError{Kind: unrollerrors.KindInvalidInput, Op: op, Err: err}
	}
	req.Header.Set("accept", "application/json")
	if c.authorization != "" {
		req.Header.Set("Authorization", c.authorization)
	}

	requestID := uuid.NewString()
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Debug("TMDB request failed", "request_id", requestID, "op", op, "url", endpoint, "error", err)
		return unrollerrors.NewNetworkError(op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	slog.Debug("TMDB request",
		"request_id", requestID,
		"op", op,
		"url", endpoint,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode != http.StatusOK {
		return statusError(op, resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return unrollerrors.NewNetworkError(op, err)
	}
	if err := decodeStrict(body, target); err != nil {
		return unrollerrors.NewDecodeError(op, err)
	}
	if v, ok := target.(validator); ok {
		if err := v.validate(); err != nil {
			return unrollerrors.NewDecodeError(op, err)
		}
	}
	return nil
}

// decodeStrict decodes exactly one non-null JSON value from body into target.
func decodeStrict(body []byte, target any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return errors.New("null payload")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after JSON value")
	}
	return json.Unmarshal(raw, target)
}

func statusError(op string, resp *http.Response) error {
	if resp.StatusCode == http.StatusTooManyRequests {
		return unrollerrors.NewStatusError(op, resp.StatusCode,
			unrollerrors.NewRateLimitErrorWithRetry("tmdb: rate limited", retryAfter(resp.Header.Get("Retry-After"))))
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	var cause error
	if msg := strings.TrimSpace(string(body)); msg != "" {
		cause = errors.New(msg)
	}
	return unrollerrors.NewStatusError(op, resp.StatusCode, cause)
}

// retryAfter parses the delay-seconds form of Retry-After.
func retryAfter(value string) time.Duration {
	seconds, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
