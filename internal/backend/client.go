package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/georgemunganga/pharmacy-storefront/internal/logger"
)

type Options struct {
	BaseURL string
	Timeout time.Duration
	// Retries bounds how often a failed GET is repeated. Writes are never
	// retried.
	Retries   int
	RetryWait time.Duration
	// RPS caps outbound calls per second across all requests.
	RPS     float64
	Metrics *Metrics
}

// Client calls one backend service over JSON/HTTP.
type Client struct {
	base    string
	reads   *retryablehttp.Client
	writes  *http.Client
	limiter *rate.Limiter
	metrics *Metrics
	log     *logrus.Entry
}

func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.RetryWait <= 0 {
		opts.RetryWait = 100 * time.Millisecond
	}
	limit, burst := rate.Inf, 1
	if opts.RPS > 0 {
		limit, burst = rate.Limit(opts.RPS), int(math.Ceil(opts.RPS))
	}
	log := logger.Log.WithField("backend", opts.BaseURL)

	reads := retryablehttp.NewClient()
	reads.RetryMax = max(opts.Retries, 0)
	reads.RetryWaitMin = opts.RetryWait
	reads.RetryWaitMax = 20 * opts.RetryWait
	reads.HTTPClient.Timeout = opts.Timeout
	reads.Logger = logger.Leveled{Entry: log}
	reads.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &Client{
		base:    strings.TrimRight(opts.BaseURL, "/"),
		reads:   reads,
		writes:  &http.Client{Timeout: opts.Timeout},
		limiter: rate.NewLimiter(limit, burst),
		metrics: opts.Metrics,
		log:     log,
	}
}

// Get fetches path into out. params is nil, url.Values, or a struct with
// `url` tags.
func (c *Client) Get(ctx context.Context, op, path string, params any, out any) error {
	q, err := encodeParams(params)
	if err != nil {
		return errors.Wrapf(err, "%s: encode params", op)
	}
	return c.do(ctx, op, http.MethodGet, path, q, nil, out)
}

func (c *Client) Post(ctx context.Context, op, path string, body, out any) error {
	return c.do(ctx, op, http.MethodPost, path, nil, body, out)
}

func (c *Client) Patch(ctx context.Context, op, path string, body, out any) error {
	return c.do(ctx, op, http.MethodPatch, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, op, path string, body, out any) error {
	return c.do(ctx, op, http.MethodPut, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, op, path string, out any) error {
	return c.do(ctx, op, http.MethodDelete, path, nil, nil, out)
}

func (c *Client) do(ctx context.Context, op, method, path string, q url.Values, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return errors.Wrapf(err, "%s: rate limit", op)
	}

	target := c.base + path
	if len(q) > 0 {
		target += "?" + q.Encode()
	}
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return errors.Wrapf(err, "%s: encode body", op)
		}
	}

	requestID := uuid.NewString()
	start := time.Now()
	resp, err := c.send(ctx, method, target, payload, requestID)
	if err != nil {
		c.metrics.observe(method, op, "error", time.Since(start))
		c.log.WithFields(logrus.Fields{"op": op, "request_id": requestID}).WithError(err).Warn("backend call failed")
		return errors.Wrapf(err, "%s: %s %s", op, method, path)
	}
	defer resp.Body.Close()
	c.metrics.observe(method, op, strconv.Itoa(resp.StatusCode), time.Since(start))

	if resp.StatusCode >= http.StatusMultipleChoices {
		return decodeError(op, resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "%s: decode response", op)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, target string, payload []byte, requestID string) (*http.Response, error) {
	if method == http.MethodGet {
		req, err := retryablehttp.NewRequestWithContext(ctx, method, target, nil)
		if err != nil {
			return nil, err
		}
		decorate(ctx, req.Request, requestID)
		return c.reads.Do(req)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	decorate(ctx, req, requestID)
	return c.writes.Do(req)
}

func decorate(ctx context.Context, req *http.Request, requestID string) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	creds := CredentialsFrom(ctx)
	if creds.Cookie != "" {
		req.Header.Set("Cookie", creds.Cookie)
	}
	if creds.Token != "" {
		req.Header.Set("Authorization", creds.Token)
	}
}

func encodeParams(params any) (url.Values, error) {
	switch p := params.(type) {
	case nil:
		return nil, nil
	case url.Values:
		return p, nil
	}
	return query.Values(params)
}
