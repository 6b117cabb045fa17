// Package api implements the typed client for the cash flow backend's
// JSON REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrUnauthenticated = errors.New("the session is missing or expired, please sign in again")
	ErrNotFound        = errors.New("the requested resource does not exist")
	ErrNoToken         = errors.New("no bearer token is available for the request")
)

// TokenSource provides the bearer token attached to every request. The
// session provider owns token acquisition and refresh; the client only asks
// for the current token.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource that always returns the same token.
type StaticToken string

func (s StaticToken) Token(_ context.Context) (string, error) {
	if s == "" {
		return "", ErrNoToken
	}

	return string(s), nil
}

// Error is a non-2xx response from the backend that is neither an
// authentication failure nor a missing resource.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("the backend returned status %d", e.Status)
	}

	return fmt.Sprintf("the backend returned status %d: %s", e.Status, e.Message)
}

// errorBody is the error shape the backend uses. Older endpoints return
// "message" instead of "error".
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Client calls the backend REST API. All methods attach the bearer token
// from the TokenSource and honor the passed context.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

// New returns a Client for the API served at baseURL. The "/api/v1" prefix
// is appended here so that callers configure the bare host.
func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/") + "/api/v1",
		http:    &http.Client{Timeout: 30 * time.Second},
		tokens:  tokens,
	}
}

// newRequest builds a request with auth and tracing headers set.
func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnauthenticated, err.Error())
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Request-Id", uuid.NewString())
	return req, nil
}

// do sends a JSON request and decodes the response into out when out is not
// nil. Status codes are mapped to sentinel errors so that callers can
// distinguish the session expired path from everything else.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := c.newRequest(ctx, method, path, query, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	log.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Str("request-id", req.Header.Get("X-Request-Id")).
		Msg("api request")

	if err := checkStatus(resp); err != nil {
		return err
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthenticated
	case http.StatusNotFound:
		return ErrNotFound
	}

	var body errorBody
	message := ""
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		message = body.Error
		if message == "" {
			message = body.Message
		}
	}

	return &Error{Status: resp.StatusCode, Message: message}
}
