// Package client calls the content API. Requests are built from the routes
// in pkg/api and every response is checked against pkg/schema, the same
// rules the server applies.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/inclusionhub/backend/pkg/api"
	"github.com/inclusionhub/backend/pkg/schema"
)

const defaultTimeout = 10 * time.Second

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 4 << 20

// Client talks to one API server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default 10 second timeout client. Nil is
// ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// New returns a Client for baseURL, e.g. "http://localhost:5000".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ResponseError is a documented non-success response other than a
// validation failure, such as 413.
type ResponseError struct {
	Route      string
	StatusCode int
	Message    string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%s: %d %s", e.Route, e.StatusCode, e.Message)
}

// SubmitContact validates in locally and posts it. Invalid input fails
// with *schema.ValidationError before any request is sent; a 400 from the
// server is returned the same way.
func (c *Client) SubmitContact(ctx context.Context, in schema.MessageInput) (*schema.Message, error) {
	in, err := schema.ValidateMessageInput(in)
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encode contact input: %w", err)
	}

	status, v, err := c.do(ctx, api.ContactSubmit, body)
	if err != nil {
		return nil, err
	}
	switch v := v.(type) {
	case schema.Message:
		return &v, nil
	case schema.ErrorResponse:
		if status == http.StatusBadRequest {
			return nil, &schema.ValidationError{Field: v.Field, Message: v.Message}
		}
		return nil, &ResponseError{Route: api.ContactSubmit.Name, StatusCode: status, Message: v.Message}
	default:
		return nil, fmt.Errorf("%s: unexpected response type %T", api.ContactSubmit.Name, v)
	}
}

// ListPrograms fetches every program.
func (c *Client) ListPrograms(ctx context.Context) ([]schema.Program, error) {
	_, v, err := c.do(ctx, api.ProgramsList, nil)
	if err != nil {
		return nil, err
	}
	programs, ok := v.([]schema.Program)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected response type %T", api.ProgramsList.Name, v)
	}
	return programs, nil
}

// ListStories fetches every story.
func (c *Client) ListStories(ctx context.Context) ([]schema.Story, error) {
	_, v, err := c.do(ctx, api.StoriesList, nil)
	if err != nil {
		return nil, err
	}
	stories, ok := v.([]schema.Story)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected response type %T", api.StoriesList.Name, v)
	}
	return stories, nil
}

// do sends one request for route and decodes the response with the
// route's validator for the returned status.
func (c *Client) do(ctx context.Context, route api.Route, body []byte) (int, any, error) {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, route.Method, route.URL(c.baseURL), r)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: build request: %w", route.Name, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: %w", route.Name, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("%s: read response: %w", route.Name, err)
	}

	v, err := route.Decode(resp.StatusCode, raw)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("%s: invalid response: %w", route.Name, err)
	}
	return resp.StatusCode, v, nil
}
