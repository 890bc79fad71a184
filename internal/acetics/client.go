package acetics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"acetics-cli/internal/model"

	"github.com/google/uuid"
)

// CreateTaskPath is the creation endpoint, relative to the configured endpoint.
const CreateTaskPath = "tasks/create"

// Client is a thin JSON transport: one attempt per call, default transport settings.
type Client struct {
	endpoint   string
	token      string
	userAgent  string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = strings.TrimSpace(ua) }
}

func New(endpoint, token string, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		token:      token,
		httpClient: http.DefaultClient,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(string(e.Body))
	if len(body) > 512 {
		body = body[:512] + "…"
	}
	if body == "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("%s %s: %d %s: %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode), body)
}

// JoinURL joins endpoint and path with exactly one "/".
func JoinURL(endpoint, path string) string {
	return strings.TrimRight(endpoint, "/") + "/" + strings.TrimLeft(path, "/")
}

// Request sends body as JSON and decodes the JSON response into Res.
func Request[Req, Res any](ctx context.Context, c *Client, method, path string, body Req) (Res, error) {
	var out Res

	payload, err := json.Marshal(body)
	if err != nil {
		return out, fmt.Errorf("encode request body: %w", err)
	}

	u := JoinURL(c.endpoint, path)
	req, err := http.NewRequestWithContext(ctx, method, u, bytes.NewReader(payload))
	if err != nil {
		return out, err
	}
	reqID := uuid.NewString()
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", reqID)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	log.Printf("http: %s %s request-id=%s bytes=%d", method, u, reqID, len(payload))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return out, fmt.Errorf("read response body: %w", err)
	}
	log.Printf("http: %s %s -> %d (%d bytes)", method, u, resp.StatusCode, len(respBody))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return out, &StatusError{Method: method, URL: u, StatusCode: resp.StatusCode, Body: respBody}
	}
	if err := json.Unmarshal(respBody, &out); err != nil {
		return out, fmt.Errorf("decode response from %s: %w", u, err)
	}
	return out, nil
}

// CreateTask submits task and returns the raw JSON response.
func (c *Client) CreateTask(ctx context.Context, task model.Task) (json.RawMessage, error) {
	return Request[model.Task, json.RawMessage](ctx, c, http.MethodPost, CreateTaskPath, task)
}
