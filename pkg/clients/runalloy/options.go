package runalloy

import (
	"net/http"
	"time"
)

// ClientOption represents an option for configuring the RunAlloy client
type ClientOption func(*ClientConfig)

// ClientConfig holds the configuration for the RunAlloy client
type ClientConfig struct {
	BaseURL        string
	APIKey         string
	APIVersion     string
	Timeout        time.Duration
	DefaultHeaders map[string]string
	HTTPClient     *http.Client
	UserAgent      string
}

// DefaultConfig returns the production endpoint with a 30 second budget per call
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:    "https://production.runalloy.com",
		APIVersion: "2025-06",
		Timeout:    30 * time.Second,
		DefaultHeaders: map[string]string{
			"Content-Type": "application/json",
		},
		UserAgent: "alloybridge/1.0",
	}
}

func WithBaseURL(baseURL string) ClientOption {
	return func(c *ClientConfig) {
		c.BaseURL = baseURL
	}
}

func WithAPIKey(apiKey string) ClientOption {
	return func(c *ClientConfig) {
		c.APIKey = apiKey
	}
}

func WithAPIVersion(version string) ClientOption {
	return func(c *ClientConfig) {
		if version != "" {
			c.APIVersion = version
		}
	}
}

// WithTimeout sets the per-request timeout; non-positive values keep the default
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *ClientConfig) {
		if timeout > 0 {
			c.Timeout = timeout
		}
	}
}

func WithHeader(key, value string) ClientOption {
	return func(c *ClientConfig) {
		if c.DefaultHeaders == nil {
			c.DefaultHeaders = make(map[string]string)
		}
		c.DefaultHeaders[key] = value
	}
}

// WithHTTPClient sets a custom HTTP client. Its own Timeout is left untouched.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *ClientConfig) {
		c.HTTPClient = httpClient
	}
}

func WithUserAgent(userAgent string) ClientOption {
	return func(c *ClientConfig) {
		c.UserAgent = userAgent
	}
}
