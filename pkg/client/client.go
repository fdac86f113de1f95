// Package client is a typed Go client for the plot API, plus the session
// and plot store a dashboard needs on top of it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	defaultTimeout = 15 * time.Second
	maxErrorBody   = 64 << 10
)

// Client calls the plot API. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu             sync.RWMutex
	token          string
	onUnauthorized []func()
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithToken starts the client with an existing bearer token.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithUnauthorizedHandler registers fn to run whenever a request carrying the
// current token is rejected with 401.
func WithUnauthorizedHandler(fn func()) Option {
	return func(c *Client) {
		c.onUnauthorized = append(c.onUnauthorized, fn)
	}
}

// New creates a Client for baseURL, the API root including the /api prefix
// (for example http://localhost:3000/api).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken sets the bearer token sent with every request. An empty token
// sends none.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// OnUnauthorized registers fn like WithUnauthorizedHandler, after
// construction. Handlers run without any client lock held.
func (c *Client) OnUnauthorized(fn func()) {
	c.mu.Lock()
	c.onUnauthorized = append(c.onUnauthorized, fn)
	c.mu.Unlock()
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) Health(ctx context.Context) (*Health, error) {
	var out Health
	if err := c.do(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Config(ctx context.Context) (*Config, error) {
	var out Config
	if err := c.do(ctx, http.MethodGet, "/config", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var out AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/register", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	var out AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the user behind the current token.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Crops(ctx context.Context) ([]Crop, error) {
	var out []Crop
	err := c.do(ctx, http.MethodGet, "/crops", nil, &out)
	return out, err
}

func (c *Client) Users(ctx context.Context) ([]User, error) {
	var out []User
	err := c.do(ctx, http.MethodGet, "/users", nil, &out)
	return out, err
}

func (c *Client) Sensors(ctx context.Context) ([]Sensor, error) {
	var out []Sensor
	err := c.do(ctx, http.MethodGet, "/sensors", nil, &out)
	return out, err
}

func (c *Client) LiveSensors(ctx context.Context) (*LiveSnapshot, error) {
	var out LiveSnapshot
	if err := c.do(ctx, http.MethodGet, "/sensors/live", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Plots lists plots by status. An empty status lists active plots.
func (c *Client) Plots(ctx context.Context, status string) ([]Plot, error) {
	path := "/plots"
	if status != "" {
		path += "?" + url.Values{"status": {status}}.Encode()
	}
	var out []Plot
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

// DeletedPlots lists soft-deleted plots, most recently deleted first.
func (c *Client) DeletedPlots(ctx context.Context) ([]Plot, error) {
	var out []Plot
	err := c.do(ctx, http.MethodGet, "/plots/deleted", nil, &out)
	return out, err
}

func (c *Client) Plot(ctx context.Context, id uint64) (*Plot, error) {
	return c.plotCall(ctx, http.MethodGet, plotPath(id), nil)
}

func (c *Client) CreatePlot(ctx context.Context, input PlotInput) (*Plot, error) {
	return c.plotCall(ctx, http.MethodPost, "/plots", input)
}

func (c *Client) UpdatePlot(ctx context.Context, id uint64, patch PlotPatch) (*Plot, error) {
	return c.plotCall(ctx, http.MethodPut, plotPath(id), patch)
}

// DeletePlot soft-deletes a plot.
func (c *Client) DeletePlot(ctx context.Context, id uint64) (*Plot, error) {
	return c.plotCall(ctx, http.MethodDelete, plotPath(id), nil)
}

func (c *Client) RestorePlot(ctx context.Context, id uint64) (*Plot, error) {
	return c.plotCall(ctx, http.MethodPatch, plotPath(id)+"/restore", nil)
}

// HardDeletePlot permanently removes a soft-deleted plot. Requires an admin
// token.
func (c *Client) HardDeletePlot(ctx context.Context, id uint64) error {
	return c.do(ctx, http.MethodDelete, plotPath(id)+"/hard", nil, nil)
}

func (c *Client) plotCall(ctx context.Context, method, path string, body any) (*Plot, error) {
	var out Plot
	if err := c.do(ctx, method, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func plotPath(id uint64) string {
	return "/plots/" + strconv.FormatUint(id, 10)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	token := c.Token()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// A late 401 for a token that was already replaced is not a logout.
		if resp.StatusCode == http.StatusUnauthorized && token != "" && token == c.Token() {
			c.unauthorized()
		}
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) unauthorized() {
	c.mu.RLock()
	handlers := slices.Clone(c.onUnauthorized)
	c.mu.RUnlock()

	for _, fn := range handlers {
		fn()
	}
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if len(raw) > 0 {
		// Non-JSON bodies keep only the status.
		_ = json.Unmarshal(raw, apiErr)
	}
	return apiErr
}
