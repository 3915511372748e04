package runalloy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// ClientInterface is the slice of the RunAlloy API the bridge consumes
type ClientInterface interface {
	ExecuteAction(ctx context.Context, req *ExecuteActionRequest) (any, error)
	ListUserCredentials(ctx context.Context, userID string) (*ListCredentialsResponse, error)
	CreateCredential(ctx context.Context, connectorID string, req *CreateCredentialRequest) (*CreateCredentialResponse, error)
}

type ExecuteActionRequest struct {
	ConnectorID string
	ActionID    string
	Payload     any
	// Headers are extra outbound HTTP headers, e.g. x-alloy-userid
	Headers map[string]string
}

// Client talks to the RunAlloy HTTP API. It never retries.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
}

var _ ClientInterface = (*Client)(nil)

func NewClient(options ...ClientOption) *Client {
	config := DefaultConfig()

	for _, option := range options {
		option(config)
	}

	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: config.Timeout,
		}
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
	}
}

func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// ExecuteAction posts the payload to /connectors/{connector}/actions/{action}/execute
// and returns the decoded 2xx body as-is.
func (c *Client) ExecuteAction(ctx context.Context, req *ExecuteActionRequest) (any, error) {
	path := fmt.Sprintf("/connectors/%s/actions/%s/execute",
		url.PathEscape(req.ConnectorID), url.PathEscape(req.ActionID))

	return c.do(ctx, http.MethodPost, path, req.Payload, req.Headers)
}

func (c *Client) ListUserCredentials(ctx context.Context, userID string) (*ListCredentialsResponse, error) {
	path := fmt.Sprintf("/users/%s/credentials", url.PathEscape(userID))

	body, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var result ListCredentialsResponse
	if err := remarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode credentials response: %w", err)
	}

	return &result, nil
}

func (c *Client) CreateCredential(ctx context.Context, connectorID string, req *CreateCredentialRequest) (*CreateCredentialResponse, error) {
	path := fmt.Sprintf("/connectors/%s/credentials", url.PathEscape(connectorID))

	body, err := c.do(ctx, http.MethodPost, path, req, nil)
	if err != nil {
		return nil, err
	}

	var result CreateCredentialResponse
	if err := remarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode credential creation response: %w", err)
	}

	return &result, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, headers map[string]string) (any, error) {
	var requestBody io.Reader

	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		requestBody = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, requestBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range c.config.DefaultHeaders {
		req.Header.Set(key, value)
	}

	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.Header.Set("API-KEY", c.config.APIKey)
	req.Header.Set("x-api-version", c.config.APIVersion)

	for key, value := range headers {
		if value != "" {
			req.Header.Set(key, value)
		}
	}

	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.transportError(err)
	}

	return c.handleResponse(resp)
}

func (c *Client) handleResponse(resp *http.Response) (any, error) {
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.transportError(err)
	}

	success := resp.StatusCode >= 200 && resp.StatusCode < 300

	if len(bytes.TrimSpace(raw)) == 0 {
		if success {
			return nil, nil
		}

		return nil, &Error{
			Type:       ErrorTypeInvalidResponse,
			StatusCode: resp.StatusCode,
			Message:    messageInvalidResponse,
			Details:    "",
		}
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		log.Error().Err(err).Int("status", resp.StatusCode).Msg("RunAlloy: failed to parse response")

		statusCode := resp.StatusCode
		if success {
			statusCode = http.StatusBadGateway
		}

		return nil, &Error{
			Type:       ErrorTypeInvalidResponse,
			StatusCode: statusCode,
			Message:    messageInvalidResponse,
			Details:    string(raw),
			Cause:      err,
		}
	}

	if success {
		return decoded, nil
	}

	return nil, &Error{
		Type:       ErrorTypeAPI,
		StatusCode: resp.StatusCode,
		Message:    errorMessage(decoded),
		Details:    decoded,
	}
}

func (c *Client) transportError(err error) *Error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &Error{
			Type:       ErrorTypeTimeout,
			StatusCode: http.StatusRequestTimeout,
			Message:    messageTimeout,
			Details:    fmt.Sprintf("Request took longer than %d seconds", int(c.timeout().Seconds())),
			Cause:      err,
		}
	}

	return &Error{
		Type:       ErrorTypeNetwork,
		StatusCode: http.StatusInternalServerError,
		Message:    messageNetworkError,
		Details:    err.Error(),
		Cause:      err,
	}
}

func (c *Client) timeout() time.Duration {
	if c.httpClient.Timeout > 0 {
		return c.httpClient.Timeout
	}
	return c.config.Timeout
}

// errorMessage picks the body's error, then message field.
func errorMessage(body any) string {
	object, ok := body.(map[string]any)
	if !ok {
		return messageAPIError
	}

	for _, key := range []string{"error", "message"} {
		if message, ok := object[key].(string); ok && message != "" {
			return message
		}
	}

	return messageAPIError
}

func remarshal(source any, target any) error {
	encoded, err := json.Marshal(source)
	if err != nil {
		return err
	}

	return json.Unmarshal(encoded, target)
}
