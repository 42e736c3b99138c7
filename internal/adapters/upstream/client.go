package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"fitfront/internal/adapters/http/perf"
)

// Transport errors. Missing or malformed data inside a 2xx body is never an
// error here; only the call itself failing is.
var (
	ErrUnauthorized = errors.New("upstream rejected the credentials")
	ErrNotFound     = errors.New("upstream record not found")
)

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream returned %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("upstream returned %d", e.Code)
}

// DefaultTimeout bounds every upstream call.
const DefaultTimeout = 15 * time.Second

// Client is the thin HTTP wrapper over the upstream REST service.
type Client struct {
	httpClient *http.Client
	endpoints  Endpoints
	collector  *perf.Collector
}

// NewClient creates a client for the given upstream base URL.
func NewClient(base string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoints:  NewEndpoints(base),
	}
}

// WithCollector enables call timing instrumentation for the perf panel.
func (c *Client) WithCollector(collector *perf.Collector) *Client {
	c.collector = collector
	return c
}

// record reports one outbound call to the collector, when configured.
func (c *Client) record(method, url string, status int, start time.Time) {
	if c.collector == nil {
		return
	}
	c.collector.Record(perf.Entry{
		Kind:       perf.KindUpstream,
		Path:       method + " " + url,
		StatusCode: status,
		DurationMs: float64(time.Since(start).Microseconds()) / 1000.0,
		Timestamp:  start,
	})
}

// Endpoints returns the URL builder map for this client's base URL.
func (c *Client) Endpoints() Endpoints {
	return c.endpoints
}

// listEnvelopeKeys are the wrapper fields a list payload may hide under.
// Which one an endpoint uses is not consistent; all are tolerated.
var listEnvelopeKeys = []string{
	"data", "users", "admins", "products", "courses", "requests", "orders",
	"services", "blogs", "bookings", "categories", "items",
}

// FetchList GETs a collection URL and unwraps whichever envelope variant the
// endpoint chose. A bare array, or an object wrapping an array under any
// known key, both decode to the same result.
// POST: returns a non-nil slice on success; objects inside the list that are
// not JSON objects are dropped
func (c *Client) FetchList(ctx context.Context, token, url string) ([]map[string]any, error) {
	payload, err := c.fetch(ctx, token, url)
	if err != nil {
		return nil, err
	}
	return unwrapList(payload), nil
}

// FetchOne GETs a detail URL and returns the decoded payload as-is. Shape
// normalization is the reconciler's job, not the client's.
func (c *Client) FetchOne(ctx context.Context, token, url string) (any, error) {
	return c.fetch(ctx, token, url)
}

// MutationResult is the status/message envelope mutation endpoints return.
type MutationResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ErrRejected reports a mutation the upstream accepted at the HTTP level but
// failed in its status envelope, without saying why.
var ErrRejected = errors.New("upstream rejected the change")

// Err interprets the status envelope. The upstream reports failures both as
// non-2xx responses and as 200s with status "error" in the body; a blank,
// "success", or "ok" status is success.
func (r MutationResult) Err() error {
	status := strings.ToLower(strings.TrimSpace(r.Status))
	if status == "" || status == "success" || status == "ok" {
		return nil
	}
	if r.Message != "" {
		return errors.New(r.Message)
	}
	return ErrRejected
}

// Mutate POSTs a mutation (add, update, delete, approve, cancel) and decodes
// the status envelope. An empty body with an OK status is implicit success.
func (c *Client) Mutate(ctx context.Context, token, method, url string, body any) (MutationResult, error) {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return MutationResult{}, fmt.Errorf("encode mutation body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return MutationResult{}, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req, token)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("upstream_call_failed", "method", method, "url", url, "error", err.Error())
		return MutationResult{}, fmt.Errorf("upstream request: %w", err)
	}
	defer resp.Body.Close()
	slog.Debug("upstream_call", "method", method, "url", url, "status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())
	c.record(method, url, resp.StatusCode, start)

	if err := checkStatus(resp); err != nil {
		return MutationResult{}, err
	}

	var result MutationResult
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return MutationResult{}, fmt.Errorf("read upstream response: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		// No body, HTTP OK: implicit success.
		return MutationResult{Status: "success"}, nil
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		// A non-envelope body on a 2xx is still success; keep it for logs.
		slog.Debug("upstream_nonenvelope_body", "url", url)
		return MutationResult{Status: "success"}, nil
	}
	return result, nil
}

// LoginResult carries the upstream-issued session material.
type LoginResult struct {
	Token string
	Name  string
	Email string
	Role  string
}

// Login exchanges credentials for a bearer token. The token field name
// varies across upstream versions.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	payload, err := c.post(ctx, "", c.endpoints.User().Login, map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return LoginResult{}, err
	}

	obj, _ := payload.(map[string]any)
	result := LoginResult{
		Token: firstString(obj, "token", "access_token", "accessToken", "jwt"),
		Name:  firstString(obj, "name", "full_name", "username"),
		Email: firstString(obj, "email"),
		Role:  firstString(obj, "role", "user_role"),
	}
	if result.Token == "" {
		if nested, ok := obj["data"].(map[string]any); ok {
			result.Token = firstString(nested, "token", "access_token", "accessToken", "jwt")
			if result.Role == "" {
				result.Role = firstString(nested, "role", "user_role")
			}
		}
	}
	if result.Token == "" {
		return LoginResult{}, ErrUnauthorized
	}
	if result.Email == "" {
		result.Email = email
	}
	return result, nil
}

// Upload sends a multipart form with the mixed field set the upstream image
// endpoints expect: an explicit URL string plus an optional binary override.
func (c *Client) Upload(ctx context.Context, token, url, imageURL string, file io.Reader, filename string) (MutationResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if err := mw.WriteField("image_url", imageURL); err != nil {
		return MutationResult{}, err
	}
	if file != nil {
		part, err := mw.CreateFormFile("image", filename)
		if err != nil {
			return MutationResult{}, err
		}
		if _, err := io.Copy(part, file); err != nil {
			return MutationResult{}, err
		}
	}
	if err := mw.Close(); err != nil {
		return MutationResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return MutationResult{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.authorize(req, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return MutationResult{}, fmt.Errorf("upstream upload: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return MutationResult{}, err
	}
	return MutationResult{Status: "success"}, nil
}

// CancelCourseRequest cancels a course request, walking the historical
// near-duplicate endpoint paths until one answers with success. See
// Endpoints.CourseRequestCancelPaths.
func (c *Client) CancelCourseRequest(ctx context.Context, token, id string) error {
	var lastErr error
	for _, url := range c.endpoints.CourseRequestCancelPaths(id) {
		result, err := c.Mutate(ctx, token, http.MethodPost, url, nil)
		if err == nil {
			// The path answered; an envelope failure here is the real
			// verdict, not a reason to try the next spelling.
			return result.Err()
		}
		if !errors.Is(err, ErrNotFound) {
			return err
		}
		lastErr = err
	}
	return lastErr
}

// fetch GETs and decodes an arbitrary JSON payload.
func (c *Client) fetch(ctx context.Context, token, url string) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	c.authorize(req, token)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("upstream_call_failed", "method", "GET", "url", url, "error", err.Error())
		return nil, fmt.Errorf("upstream request: %w", err)
	}
	defer resp.Body.Close()
	slog.Debug("upstream_call", "method", "GET", "url", url, "status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())
	c.record(http.MethodGet, url, resp.StatusCode, start)

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var payload any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode upstream payload: %w", err)
	}
	return payload, nil
}

// post sends a JSON body and decodes an arbitrary JSON response.
func (c *Client) post(ctx context.Context, token, url string, body any) (any, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(encoded))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var payload any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode upstream payload: %w", err)
	}
	return payload, nil
}

func (c *Client) authorize(req *http.Request, token string) {
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	default:
		msg := ""
		var envelope MutationResult
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
			msg = envelope.Message
		}
		return &StatusError{Code: resp.StatusCode, Message: msg}
	}
}

// unwrapList tolerates every known list payload variant: a bare array, or an
// object wrapping the array under any of the known envelope keys.
func unwrapList(payload any) []map[string]any {
	list, ok := payload.([]any)
	if !ok {
		if obj, isObj := payload.(map[string]any); isObj {
			for _, key := range listEnvelopeKeys {
				if inner, found := obj[key].([]any); found {
					list = inner
					break
				}
			}
		}
	}
	records := make([]map[string]any, 0, len(list))
	for _, el := range list {
		if obj, isObj := el.(map[string]any); isObj {
			records = append(records, obj)
		}
	}
	return records
}

func firstString(obj map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := obj[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
