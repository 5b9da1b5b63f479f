package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	v1 "github.com/kubev2v/handoff/api/v1"
	srvErrors "github.com/kubev2v/handoff/pkg/errors"
)

// RequestEditorFn is called on every request before it is sent.
type RequestEditorFn func(ctx context.Context, req *http.Request) error

type ClientOption func(*Client)

func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

func WithRequestEditorFn(fn RequestEditorFn) ClientOption {
	return func(cl *Client) {
		cl.editors = append(cl.editors, fn)
	}
}

// WithBearerToken adds "Authorization: Bearer <token>" to every request.
func WithBearerToken(token string) ClientOption {
	return WithRequestEditorFn(func(_ context.Context, req *http.Request) error {
		if token == "" {
			return nil
		}
		req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", token))
		return nil
	})
}

// Client talks to the handoff HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	editors    []RequestEditorFn
}

func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("failed to initialize handoff client: empty base url")
	}

	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/") + "/api/v1",
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// SubmitWork queues a work item
// POST /api/v1/work
func (c *Client) SubmitWork(ctx context.Context, req v1.WorkRequest) (*v1.Work, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode work request: %w", err)
	}

	var work v1.Work
	if err := c.do(ctx, http.MethodPost, "/work", body, &work, uuid.Nil); err != nil {
		return nil, err
	}
	return &work, nil
}

// GetWork returns a work item
// GET /api/v1/work/{id}
func (c *Client) GetWork(ctx context.Context, id uuid.UUID) (*v1.Work, error) {
	var work v1.Work
	if err := c.do(ctx, http.MethodGet, "/work/"+id.String(), nil, &work, id); err != nil {
		return nil, err
	}
	return &work, nil
}

// GetStatus returns the controller status
// GET /api/v1/status
func (c *Client) GetStatus(ctx context.Context) (*v1.Status, error) {
	var s v1.Status
	if err := c.do(ctx, http.MethodGet, "/status", nil, &s, uuid.Nil); err != nil {
		return nil, err
	}
	return &s, nil
}

// WaitForWork polls GetWork every interval until the item leaves the pending state
// or ctx is done. Not found and unauthorized errors stop the polling.
func (c *Client) WaitForWork(ctx context.Context, id uuid.UUID, interval time.Duration) (*v1.Work, error) {
	return backoff.Retry(ctx, func() (*v1.Work, error) {
		work, err := c.GetWork(ctx, id)
		if err != nil {
			if srvErrors.IsResourceNotFoundError(err) || srvErrors.IsUnauthorizedError(err) {
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}
		if work.State == v1.WorkStatePending || work.State == v1.WorkStateRunning {
			return nil, fmt.Errorf("work %s is %s", id, work.State)
		}
		return work, nil
	}, backoff.WithBackOff(backoff.NewConstantBackOff(interval)), backoff.WithMaxElapsedTime(0))
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any, id uuid.UUID) error {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, edit := range c.editors {
		if err := edit(ctx, req); err != nil {
			return err
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		return nil
	}

	msg := resp.Status
	var apiErr v1.Error
	if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
		msg = apiErr.Error
	}
	zap.S().Named("client").Debugw("api error", "method", method, "path", path, "status", resp.StatusCode, "error", msg)

	switch resp.StatusCode {
	case http.StatusNotFound:
		if id != uuid.Nil {
			return srvErrors.NewWorkNotFoundError(id)
		}
	case http.StatusUnauthorized:
		return srvErrors.NewUnauthorizedError()
	case http.StatusTooManyRequests:
		return srvErrors.NewThrottledError()
	case http.StatusServiceUnavailable:
		return srvErrors.NewWorkerStoppedError()
	}
	return &RequestError{StatusCode: resp.StatusCode, Message: msg}
}

// RequestError is returned for responses without a dedicated error type.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Message)
}
