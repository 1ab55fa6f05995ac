// Package foodapi is an HTTP client for the food collection served under /foods.
package foodapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/food-dashboard/internal/models"
	"github.com/google/uuid"
)

var (
	// ErrNetwork marks requests that never got an HTTP response
	ErrNetwork = errors.New("food api unreachable")
	// ErrValidation marks requests the API rejected with a 4xx status
	ErrValidation = errors.New("food api rejected request")
	// ErrNotFound marks requests for a food the API does not know
	ErrNotFound = errors.New("food not found")
)

const requestIDHeader = "X-Request-ID"

// StatusError is returned when the API answers with a non-success status
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
}

// Is lets callers match a StatusError against ErrValidation and ErrNotFound
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrValidation:
		return e.StatusCode >= 400 && e.StatusCode < 500
	}
	return false
}

// Client talks to the food API
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the timeout of the default http.Client
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// New creates a client for the API rooted at baseURL
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url: %q must be absolute", baseURL)
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// List fetches every food in API order
func (c *Client) List(ctx context.Context) ([]models.FoodItem, error) {
	var foods []models.FoodItem
	if err := c.do(ctx, http.MethodGet, "/foods", nil, &foods); err != nil {
		return nil, err
	}
	if foods == nil {
		foods = []models.FoodItem{}
	}
	return foods, nil
}

// Create posts a new food and returns it with its assigned ID
func (c *Client) Create(ctx context.Context, food models.NewFood) (*models.FoodItem, error) {
	var created models.FoodItem
	if err := c.do(ctx, http.MethodPost, "/foods", food, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Replace puts the full record under id and returns the stored version
func (c *Client) Replace(ctx context.Context, id int64, food models.FoodItem) (*models.FoodItem, error) {
	var updated models.FoodItem
	if err := c.do(ctx, http.MethodPut, foodPath(id), food, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the food with id
func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, foodPath(id), nil, nil)
}

func foodPath(id int64) string {
	return "/foods/" + strconv.FormatInt(id, 10)
}

// do sends one JSON request; out may be nil when the response body is ignored
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, uuid.New().String())
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrNetwork, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.Body),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

// errorMessage reads the {"error": "..."} body the API sends on failure
func errorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}

	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &payload) == nil && payload.Error != "" {
		return payload.Error
	}
	return strings.TrimSpace(string(raw))
}
