package sensors

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
)

// maxBodyBytes caps how much of an upstream response is read.
const maxBodyBytes = 1 << 20

// Client reads raw samples from the external sensor API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the sensor API rooted at baseURL.
// A nil httpClient uses http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type sample struct {
	Value *float64 `json:"value"`
}

// Average fetches every sample of one sensor feed and returns their mean
// rounded to two decimals. An empty feed yields a nil value and no error.
func (c *Client) Average(ctx context.Context, source string) (*float64, error) {
	endpoint := fmt.Sprintf("%s/api/sensors/%s", c.baseURL, url.PathEscape(source))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", source, err)
	}
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", source, resp.StatusCode)
	}

	// The upstream sometimes streams; read everything first, then parse.
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", source, err)
	}

	var samples []sample
	if err := json.Unmarshal(body, &samples); err != nil {
		return nil, fmt.Errorf("decode %s: %w", source, err)
	}

	return average(samples), nil
}

func average(samples []sample) *float64 {
	var sum float64
	var n int
	for _, s := range samples {
		if s.Value == nil || math.IsNaN(*s.Value) || math.IsInf(*s.Value, 0) {
			continue
		}
		sum += *s.Value
		n++
	}
	if n == 0 {
		return nil
	}

	avg := math.Round(sum/float64(n)*100) / 100
	return &avg
}
