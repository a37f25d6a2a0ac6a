// Package client implements the resilient HTTP client for the LIOMS API:
// bearer credential attachment, entity-aware body normalization, and a
// single-flight token refresh shared by every request that fails with 401.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	gopath "path"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/liomshq/lioms-client/internal/errs"
	"github.com/liomshq/lioms-client/internal/model"
	"github.com/liomshq/lioms-client/internal/routes"
	"github.com/liomshq/lioms-client/internal/tokenstore"
)

// Request is one logical API request. Body is any JSON-serializable value;
// RawBody (with ContentType) carries pre-encoded payloads such as multipart
// forms and bypasses normalization entirely.
type Request struct {
	Method      string
	Path        string
	Body        any
	RawBody     []byte
	ContentType string
	Header      http.Header

	// retried is the one-shot flag: a request refreshes and replays at most
	// once, no matter how many 401s it collects.
	retried bool
}

// Response is the post-transform view of an HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       json.RawMessage
}

// APIError is a non-2xx response surfaced verbatim to the caller.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

// Unwrap maps well-known statuses onto sentinels so callers can errors.Is
// without inspecting codes.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return errs.ErrUnauthorized
	case http.StatusForbidden:
		return errs.ErrForbidden
	case http.StatusNotFound:
		return errs.ErrNotFound
	}
	return nil
}

// Options configures a Client. Store and BaseURL are required.
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	Store      *tokenstore.Store
	Logger     *zap.Logger

	// OnSessionExpired fires after a forced logout (missing pair or failed
	// refresh); the embedding program decides what "redirect to login"
	// means for it.
	OnSessionExpired func()

	// RequestTransforms and ResponseTransforms override the default
	// pipeline when non-nil. Stages run in order.
	RequestTransforms  []RequestTransform
	ResponseTransforms []ResponseTransform
}

// Client is a resilient API client. Safe for concurrent use; the refresh
// slot is single-flighted across all requests.
type Client struct {
	baseURL *url.URL
	hc      *http.Client
	store   *tokenstore.Store
	log     *zap.Logger

	reqTransforms  []RequestTransform
	respTransforms []ResponseTransform

	refresh          singleflight.Group
	onSessionExpired func()
}

// New builds a Client from opts.
func New(opts Options) (*Client, error) {
	if opts.Store == nil {
		return nil, errors.New("client: token store is required")
	}
	u, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("client: parse base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("client: invalid base URL %q", opts.BaseURL)
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	c := &Client{
		baseURL:          u,
		hc:               hc,
		store:            opts.Store,
		log:              log,
		onSessionExpired: opts.OnSessionExpired,
	}
	c.reqTransforms = opts.RequestTransforms
	if c.reqTransforms == nil {
		c.reqTransforms = []RequestTransform{RequestID(), Bearer(opts.Store), WrapEntityBody()}
	}
	c.respTransforms = opts.ResponseTransforms
	if c.respTransforms == nil {
		c.respTransforms = []ResponseTransform{UnwrapEnvelope()}
	}
	return c, nil
}

// Do runs the request through the transform pipeline, dispatches it, and
// applies the 401 refresh-and-replay protocol. Transport errors propagate
// unchanged; statuses >= 400 yield an *APIError alongside the response.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if req.Header == nil {
		req.Header = make(http.Header)
	}
	for _, tr := range c.reqTransforms {
		if err := tr(req); err != nil {
			return nil, err
		}
	}
	body, contentType, err := encodeBody(req)
	if err != nil {
		return nil, err
	}

	resp, err := c.send(ctx, req, body, contentType)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && !req.retried {
		req.retried = true
		if _, ok := c.store.Pair(); !ok {
			// No usable pair: refreshing is pointless, end the session now.
			c.forceLogout()
			return c.endSession(resp)
		}
		newTok := c.refreshAccessToken(ctx)
		if newTok == "" {
			return c.endSession(resp)
		}
		req.Header.Set("Authorization", "Bearer "+newTok)
		resp, err = c.send(ctx, req, body, contentType)
		if err != nil {
			return nil, err
		}
	}
	return c.finish(resp)
}

// DoJSON is the common path: dispatch and decode the (unwrapped) body into
// out. A nil out or empty body skips decoding.
func (c *Client) DoJSON(ctx context.Context, method, path string, body, out any) error {
	resp, err := c.Do(ctx, &Request{Method: method, Path: path, Body: body})
	if err != nil {
		return err
	}
	if out == nil || len(resp.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("client: decode %s %s: %w", method, path, err)
	}
	return nil
}

// Get issues a GET and decodes into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.DoJSON(ctx, http.MethodGet, path, nil, out)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.DoJSON(ctx, http.MethodDelete, path, nil, nil)
}

func encodeBody(req *Request) ([]byte, string, error) {
	if req.RawBody != nil {
		return req.RawBody, req.ContentType, nil
	}
	if req.Body == nil {
		return nil, "", nil
	}
	b, err := json.Marshal(req.Body)
	if err != nil {
		return nil, "", fmt.Errorf("client: encode %s %s: %w", req.Method, req.Path, err)
	}
	return b, "application/json", nil
}

// resolve joins a request path onto the base URL's path.
func (c *Client) resolve(p string) string {
	u := *c.baseURL
	u.Path = gopath.Join("/", u.Path, p)
	return u.String()
}

// send performs one HTTP exchange and logs its metadata.
func (c *Client) send(ctx context.Context, req *Request, body []byte, contentType string) (*Response, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	hreq, err := http.NewRequestWithContext(ctx, req.Method, c.resolve(req.Path), rd)
	if err != nil {
		return nil, err
	}
	for k, vs := range req.Header {
		hreq.Header[k] = vs
	}
	if contentType != "" {
		hreq.Header.Set("Content-Type", contentType)
	}
	hreq.Header.Set("Accept", "application/json")

	start := time.Now()
	hresp, err := c.hc.Do(hreq)
	if err != nil {
		c.log.Warn("http",
			zap.String("method", req.Method),
			zap.String("path", req.Path),
			zap.Duration("dur", time.Since(start)),
			zap.Error(err),
		)
		return nil, err
	}
	defer hresp.Body.Close()

	data, err := io.ReadAll(hresp.Body)
	if err != nil {
		return nil, err
	}
	c.log.Info("http",
		zap.String("method", req.Method),
		zap.String("path", req.Path),
		zap.Int("status", hresp.StatusCode),
		zap.Duration("dur", time.Since(start)),
		zap.Bool("retry", req.retried),
	)
	return &Response{
		StatusCode: hresp.StatusCode,
		Header:     hresp.Header,
		Body:       data,
	}, nil
}

// finish applies response transforms and maps error statuses.
func (c *Client) finish(resp *Response) (*Response, error) {
	for _, tr := range c.respTransforms {
		if err := tr(resp); err != nil {
			return nil, err
		}
	}
	if resp.StatusCode >= 400 {
		return resp, &APIError{Status: resp.StatusCode, Message: errorMessage(resp)}
	}
	return resp, nil
}

// errorMessage pulls a human-readable message out of an error body: a JSON
// string, a {message} object, raw text, or the status text as last resort.
func errorMessage(resp *Response) string {
	body := bytes.TrimSpace(resp.Body)
	if len(body) > 0 {
		var s string
		if json.Unmarshal(body, &s) == nil && s != "" {
			return s
		}
		var obj struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &obj) == nil && obj.Message != "" {
			return obj.Message
		}
		if !bytes.HasPrefix(body, []byte("{")) && !bytes.HasPrefix(body, []byte("[")) {
			return string(body)
		}
	}
	return http.StatusText(resp.StatusCode)
}

// refreshAccessToken joins (or starts) the shared refresh and returns the
// new access token, or "" when the session could not be saved. Exactly one
// call reaches the refresh endpoint per burst of concurrent 401s; every
// waiter observes the same outcome.
func (c *Client) refreshAccessToken(ctx context.Context) string {
	v, _, _ := c.refresh.Do("refresh", func() (any, error) {
		pair, ok := c.store.Pair()
		if !ok {
			c.forceLogout()
			return "", nil
		}
		// The refresh outlives any single waiter's context: its result is
		// shared, so one caller's cancellation must not fail the rest.
		tp, err := c.callRefresh(context.WithoutCancel(ctx), pair)
		if err != nil {
			c.log.Warn("token refresh failed", zap.Error(err))
			c.forceLogout()
			return "", nil
		}
		if err := c.store.SetTokens(tp.AccessToken, tp.RefreshToken); err != nil {
			c.log.Warn("persist refreshed tokens", zap.Error(err))
		}
		return tp.AccessToken, nil
	})
	tok, _ := v.(string)
	return tok
}

// callRefresh posts the current pair to the refresh endpoint on the bare
// transport: no auth header, no normalization, no retry.
func (c *Client) callRefresh(ctx context.Context, pair tokenstore.Pair) (model.TokenPair, error) {
	body, err := json.Marshal(model.RefreshRequest{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
	if err != nil {
		return model.TokenPair{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resolve(routes.Refresh), bytes.NewReader(body))
	if err != nil {
		return model.TokenPair{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return model.TokenPair{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return model.TokenPair{}, &APIError{
			Status:  resp.StatusCode,
			Message: strings.TrimSpace(string(data)),
		}
	}
	var tp model.TokenPair
	if err := json.NewDecoder(resp.Body).Decode(&tp); err != nil {
		return model.TokenPair{}, err
	}
	if tp.AccessToken == "" || tp.RefreshToken == "" {
		return model.TokenPair{}, errors.New("refresh response missing tokens")
	}
	return tp, nil
}

// endSession finalizes a terminal 401. The returned error carries both the
// session-expired sentinel and the underlying API error so callers can match
// either.
func (c *Client) endSession(resp *Response) (*Response, error) {
	r, err := c.finish(resp)
	if err != nil {
		err = errors.Join(errs.ErrSessionExpired, err)
	}
	return r, err
}

func (c *Client) forceLogout() {
	c.store.Logout()
	if c.onSessionExpired != nil {
		c.onSessionExpired()
	}
}
