// Package hub is the client SDK for the hub collaboration backend: an HTTP
// transport plus one cached, retrying access facade per entity kind (gate,
// class, board) and a friends/social client.
package hub

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/no-thing-project/hub-frontend/shared/api"
	"github.com/no-thing-project/hub-frontend/shared/domain"
	internal_errors "github.com/no-thing-project/hub-frontend/shared/errors"
)

const defaultHTTPTimeout = 30 * time.Second

// TokenSource supplies the bearer token attached to every request. Returning
// an empty token means the caller is logged out.
type TokenSource interface {
	Token() domain.Token
}

// StaticToken is a TokenSource holding a fixed token, mostly for tests and
// one-shot tooling.
type StaticToken string

func (t StaticToken) Token() domain.Token { return domain.Token(t) }

// Client handles all communication with the backend API.
type Client struct {
	BaseURL    string
	HttpClient *http.Client
	Tokens     TokenSource
	// ApiKey, when set, is attached as X-Api-Key on every request for
	// service-to-service auth in front of the user bearer token.
	ApiKey string
}

// NewClient creates a new client for interacting with the backend.
func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		BaseURL:    baseURL,
		HttpClient: &http.Client{Timeout: defaultHTTPTimeout},
		Tokens:     tokens,
	}
}

// do is the single, unified helper for making API requests. Non-2xx
// responses are turned into *errors.ErrorWithStatusCode carrying the backend
// message when one is present. A canceled context surfaces as the context
// sentinel so callers can classify it as silent.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("failed to create API request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if token := c.Tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if c.ApiKey != "" {
		req.Header.Set("X-Api-Key", c.ApiKey)
	}
	if method == http.MethodPost {
		// The backend dedupes replayed creates on this key.
		req.Header.Set("X-Idempotency-Key", uuid.NewString())
	}

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("backend unavailable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("cannot decode response: %w", err)
	}
	return nil
}

func statusError(resp *http.Response) error {
	msg := fmt.Sprintf("backend returned status %d", resp.StatusCode)
	var errBody api.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil && errBody.Message != "" {
		msg = errBody.Message
	}
	return &internal_errors.ErrorWithStatusCode{Message: msg, StatusCode: resp.StatusCode}
}

// doJSON performs a request and unwraps the {"content": ...} envelope.
func doJSON[T any](ctx context.Context, c *Client, method, path string, query url.Values, body any) (T, error) {
	var env api.Response[T]
	if err := c.do(ctx, method, path, query, body, &env); err != nil {
		var zero T
		return zero, err
	}
	return env.Content, nil
}
