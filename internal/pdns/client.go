/*
Copyright 2026 The PowerDNS Migrator Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package pdns

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	pgo "github.com/ffledgling/pdns-go"
	"github.com/hashicorp/go-retryablehttp"
	log "github.com/sirupsen/logrus"

	"github.com/railadeividas/powerdns-migrator/internal/pdnserr"
)

// retryableStatuses mirrors _should_retry_status in the Python original:
// only these statuses are worth a second attempt, everything else 4xx/5xx
// is treated as final.
var retryableStatuses = map[int]bool{
	http.StatusRequestTimeout:      true, // 408
	http.StatusTooManyRequests:     true, // 429
	http.StatusInternalServerError: true, // 500
	http.StatusBadGateway:          true, // 502
	http.StatusServiceUnavailable:  true, // 503
	http.StatusGatewayTimeout:      true, // 504
}

// ClientConfig holds the per-client retry policy and timeout, matching the
// constructor arguments of AsyncPowerDNSClient in async_client.py.
type ClientConfig struct {
	Timeout         time.Duration
	Retries         int
	RetryBackoff    time.Duration
	RetryMaxBackoff time.Duration
	RetryJitter     time.Duration
}

// DefaultClientConfig mirrors the Python defaults (timeout=10, retries=3,
// backoff=0.5s, max_backoff=5s, jitter=0.1s).
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Timeout:         10 * time.Second,
		Retries:         3,
		RetryBackoff:    500 * time.Millisecond,
		RetryMaxBackoff: 5 * time.Second,
		RetryJitter:     100 * time.Millisecond,
	}
}

// Client is a typed PowerDNS API client, built on the generated
// github.com/ffledgling/pdns-go ZonesApi rather than hand-rolled
// request/response plumbing. Retry/backoff/jitter is supplied underneath
// the generated client by handing it an *http.Client backed by
// retryablehttp, so the §4.1 retry formula still governs every attempt the
// generated client makes. One Client owns one connection pool, opened at
// construction and released by Close.
type Client struct {
	conn      ConnectionDescriptor
	api       *pgo.APIClient
	innerHTTP *http.Client
	retries   int
}

// NewClient builds a Client bound to a single PowerDNS server.
func NewClient(conn ConnectionDescriptor, cfg ClientConfig) *Client {
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}
	if cfg.RetryBackoff < 0 {
		cfg.RetryBackoff = 0
	}
	if cfg.RetryMaxBackoff < 0 {
		cfg.RetryMaxBackoff = 0
	}
	if cfg.RetryJitter < 0 {
		cfg.RetryJitter = 0
	}

	transport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: !conn.VerifySSL}, //nolint:gosec // driven by --insecure-* flags
	}

	rc := retryablehttp.NewClient()
	rc.HTTPClient = &http.Client{
		Transport: transport,
		Timeout:   cfg.Timeout,
	}
	rc.RetryMax = cfg.Retries
	rc.CheckRetry = checkRetry
	rc.Backoff = makeBackoff(cfg.RetryBackoff, cfg.RetryMaxBackoff, cfg.RetryJitter)
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.Logger = nil
	rc.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
		if attempt > 0 {
			log.WithFields(log.Fields{
				"method":  req.Method,
				"url":     req.URL.String(),
				"attempt": attempt,
			}).Debug("retrying PowerDNS API request")
		}
	}

	pgoCfg := pgo.NewConfiguration()
	pgoCfg.BasePath = strings.TrimRight(conn.BaseURL, "/") + "/api/v1"
	pgoCfg.HTTPClient = rc.StandardClient()

	return &Client{
		conn:      conn,
		api:       pgo.NewAPIClient(pgoCfg),
		innerHTTP: rc.HTTPClient,
		retries:   cfg.Retries,
	}
}

// Close releases the client's connection pool.
func (c *Client) Close() error {
	c.innerHTTP.CloseIdleConnections()
	return nil
}

func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		// A non-nil err is retried as a transport failure (connect error,
		// read timeout, peer reset) unless retryablehttp's default policy
		// classifies it as terminal (e.g. too-many-redirects, unsupported
		// protocol scheme), in which case it is returned without a retry.
		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}
	if resp != nil && retryableStatuses[resp.StatusCode] {
		return true, nil
	}
	return false, nil
}

func makeBackoff(base, max, jitter time.Duration) retryablehttp.Backoff {
	return func(_, _ time.Duration, attemptNum int, resp *http.Response) time.Duration {
		shift := attemptNum
		if shift > 32 {
			shift = 32
		}
		delay := base * time.Duration(int64(1)<<uint(shift))
		if delay > max || (delay <= 0 && base > 0) {
			delay = max
		}
		if jitter > 0 {
			delay += time.Duration(rand.Int63n(int64(jitter))) //nolint:gosec // jitter, not a security boundary
		}
		if resp != nil {
			if ra := resp.Header.Get("Retry-After"); ra != "" {
				if secs, err := strconv.Atoi(ra); err == nil {
					raDelay := time.Duration(secs) * time.Second
					if raDelay > delay {
						delay = raDelay
					}
				}
			}
		}
		return delay
	}
}

// authCtx attaches the PowerDNS API key the way the generated client
// expects it: as a context value under pgo.ContextAPIKey.
func (c *Client) authCtx(ctx context.Context) context.Context {
	return context.WithValue(ctx, pgo.ContextAPIKey, pgo.APIKey{Key: c.conn.APIKey})
}

// swaggerBodyError is satisfied by the generated client's error type, which
// carries the raw response body alongside the error string.
type swaggerBodyError interface {
	error
	Body() []byte
}

// translateError maps a generated-client error into this tool's taxonomy:
// a non-nil resp means the server answered with a 4xx/5xx (APIError), a nil
// resp means the request never completed (ConnectionError).
func (c *Client) translateError(method, url string, resp *http.Response, err error) error {
	if resp == nil {
		return &pdnserr.ConnectionError{
			Method:           method,
			URL:              url,
			CauseType:        fmt.Sprintf("%T", err),
			CauseMessage:     err.Error(),
			RetriesAttempted: c.retries,
		}
	}
	body := ""
	if be, ok := err.(swaggerBodyError); ok {
		body = string(be.Body())
	}
	return &pdnserr.APIError{
		Method: method,
		URL:    url,
		Status: resp.StatusCode,
		Body:   body,
	}
}

// GetZone fetches the full zone document for zoneName.
func (c *Client) GetZone(ctx context.Context, zoneName string) (*Zone, error) {
	zone := Normalize(zoneName)
	z, resp, err := c.api.ZonesApi.ListZone(c.authCtx(ctx), c.conn.ServerID, zone)
	if err != nil {
		return nil, c.translateError(http.MethodGet, c.conn.Endpoint("/zones/"+zone), resp, err)
	}
	out := fromPgoZone(z)
	return &out, nil
}

// ZoneExists fetches a zone, returning (nil, nil) on a 404 and any other
// error unchanged.
func (c *Client) ZoneExists(ctx context.Context, zoneName string) (*Zone, error) {
	zone, err := c.GetZone(ctx, zoneName)
	if err != nil {
		var apiErr *pdnserr.APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return zone, nil
}

// CreateZone POSTs a sanitized zone document to /zones.
func (c *Client) CreateZone(ctx context.Context, zone Zone) (*Zone, error) {
	created, resp, err := c.api.ZonesApi.CreateZone(c.authCtx(ctx), c.conn.ServerID, toPgoZone(zone))
	if err != nil {
		return nil, c.translateError(http.MethodPost, c.conn.Endpoint("/zones"), resp, err)
	}
	out := fromPgoZone(created)
	return &out, nil
}

// DeleteZone removes a zone entirely.
func (c *Client) DeleteZone(ctx context.Context, zoneName string) error {
	zone := Normalize(zoneName)
	resp, err := c.api.ZonesApi.DeleteZone(c.authCtx(ctx), c.conn.ServerID, zone)
	if err != nil {
		return c.translateError(http.MethodDelete, c.conn.Endpoint("/zones/"+zone), resp, err)
	}
	return nil
}

// PatchZoneRrsets submits a change set as a single PATCH request; PowerDNS
// applies the rrsets list atomically per call.
func (c *Client) PatchZoneRrsets(ctx context.Context, zoneName string, ops []ChangeOp) error {
	zone := Normalize(zoneName)
	patch := pgo.Zone{Rrsets: make([]pgo.RrSet, len(ops))}
	for i, op := range ops {
		patch.Rrsets[i] = toPgoChangeOp(op)
	}
	resp, err := c.api.ZonesApi.PatchZone(c.authCtx(ctx), c.conn.ServerID, zone, patch)
	if err != nil {
		return c.translateError(http.MethodPatch, c.conn.Endpoint("/zones/"+zone), resp, err)
	}
	return nil
}
