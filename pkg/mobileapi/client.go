package mobileapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	// BaseURL is the MobileAPI.dev base URL.
	BaseURL = "https://mobileapi.dev"
)

// Client is a minimal HTTP client for the MobileAPI.dev device database,
// used to refresh catalog specs and imagery.
type Client struct {
	httpClient *http.Client
	apiKey     string
}

// NewClient constructs a new MobileAPI.dev client with sane defaults.
func NewClient(apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiKey:     apiKey,
	}
}

// Device is a MobileAPI.dev device record. ImageB64 holds the product
// render as base64-encoded JPEG.
type Device struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Brand       string   `json:"brand"`
	Description string   `json:"description"`
	Specs       []string `json:"specs"`
	ReleasedAt  string   `json:"released_at"`
	ImageB64    string   `json:"image_b64"`
}

// SearchDevice looks a device up by name.
func (c *Client) SearchDevice(ctx context.Context, name string) (*Device, error) {
	endpoint := fmt.Sprintf("%s/devices/search/?name=%s", BaseURL, url.QueryEscape(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mobileapi error: status %d", resp.StatusCode)
	}

	var device Device
	if err := json.Unmarshal(body, &device); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &device, nil
}
