package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/flowbaker/alloybridge/pkg/domain"
	"github.com/rs/zerolog/log"
)

// ClientOption represents an option for configuring the bridge client
type ClientOption func(*ClientConfig)

// ClientConfig holds the configuration for the bridge client
type ClientConfig struct {
	BaseURL     string
	RoutePrefix string
	Timeout     time.Duration
	HTTPClient  *http.Client
	UserAgent   string
}

func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:     "http://localhost:8888",
		RoutePrefix: "/api",
		Timeout:     30 * time.Second,
		UserAgent:   "alloybridge-cli/1.0",
	}
}

func WithBaseURL(baseURL string) ClientOption {
	return func(c *ClientConfig) {
		c.BaseURL = baseURL
	}
}

// WithRoutePrefix selects where the function routes are mounted, e.g. /.netlify/functions
func WithRoutePrefix(prefix string) ClientOption {
	return func(c *ClientConfig) {
		c.RoutePrefix = prefix
	}
}

func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *ClientConfig) {
		if timeout > 0 {
			c.Timeout = timeout
		}
	}
}

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

// Error is a non-2xx answer from the bridge, decoded from {error, details}.
type Error struct {
	StatusCode int
	Message    string
	Details    any
}

func (e *Error) Error() string {
	return fmt.Sprintf("bridge: %s (status: %d)", e.Message, e.StatusCode)
}

// Client talks to a running alloybridge server.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
}

func NewClient(options ...ClientOption) *Client {
	config := DefaultConfig()

	for _, option := range options {
		option(config)
	}

	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	config.RoutePrefix = "/" + strings.Trim(config.RoutePrefix, "/")

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

func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var result HealthResponse
	if err := c.do(ctx, http.MethodGet, c.config.BaseURL+"/health", nil, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *Client) CheckStatus(ctx context.Context, email string, connector domain.ConnectorID) (*CredentialStatusResponse, error) {
	var result CredentialStatusResponse

	err := c.do(ctx, http.MethodGet, c.route("runalloy-auth", url.Values{
		"action":    {"check-status"},
		"email":     {email},
		"connector": {string(connector)},
	}), nil, &result)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *Client) CreateLink(ctx context.Context, email string, connector domain.ConnectorID) (*CreateLinkResponse, error) {
	var result CreateLinkResponse

	err := c.do(ctx, http.MethodGet, c.route("runalloy-auth", url.Values{
		"action":    {"create-link"},
		"email":     {email},
		"connector": {string(connector)},
	}), nil, &result)
	if err != nil {
		return nil, err
	}

	if result.LinkURL == "" {
		return nil, &Error{StatusCode: http.StatusBadGateway, Message: "Response carried no linkUrl"}
	}

	return &result, nil
}

func (c *Client) ListTasks(ctx context.Context, email string) ([]domain.Task, error) {
	var result DataResponse[[]domain.Task]
	if err := c.do(ctx, http.MethodGet, c.route("zoho-tasks", identity(email)), nil, &result); err != nil {
		return nil, err
	}

	return result.Data, nil
}

func (c *Client) CreateTask(ctx context.Context, email, name string) (any, error) {
	var result DataResponse[any]
	if err := c.do(ctx, http.MethodPost, c.route("zoho-tasks", identity(email)), CreateTaskRequest{Name: name}, &result); err != nil {
		return nil, err
	}

	return result.Data, nil
}

func (c *Client) UpdateTask(ctx context.Context, email string, req UpdateTaskRequest) (any, error) {
	var result DataResponse[any]
	if err := c.do(ctx, http.MethodPut, c.route("zoho-tasks", identity(email)), req, &result); err != nil {
		return nil, err
	}

	return result.Data, nil
}

func (c *Client) DeleteTask(ctx context.Context, email, taskID string) (any, error) {
	query := identity(email)
	query.Set("taskId", taskID)

	var result DataResponse[any]
	if err := c.do(ctx, http.MethodDelete, c.route("zoho-tasks", query), nil, &result); err != nil {
		return nil, err
	}

	return result.Data, nil
}

func (c *Client) ListBoards(ctx context.Context, email string) ([]domain.Board, error) {
	var result DataResponse[[]domain.Board]
	if err := c.do(ctx, http.MethodGet, c.route("monday-boards", identity(email)), nil, &result); err != nil {
		return nil, err
	}

	return result.Data, nil
}

func (c *Client) CreateBoard(ctx context.Context, email, name string) (any, error) {
	var result DataResponse[any]
	if err := c.do(ctx, http.MethodPost, c.route("monday-boards", identity(email)), CreateBoardRequest{Name: name}, &result); err != nil {
		return nil, err
	}

	return result.Data, nil
}

func (c *Client) UpdateBoard(ctx context.Context, email, boardID, name string) (any, error) {
	req := UpdateBoardRequest{ID: FlexibleID(boardID), Name: name}

	var result DataResponse[any]
	if err := c.do(ctx, http.MethodPut, c.route("monday-boards", identity(email)), req, &result); err != nil {
		return nil, err
	}

	return result.Data, nil
}

func (c *Client) DeleteBoard(ctx context.Context, email, boardID string) (any, error) {
	query := identity(email)
	query.Set("boardId", boardID)

	var result DataResponse[any]
	if err := c.do(ctx, http.MethodDelete, c.route("monday-boards", query), nil, &result); err != nil {
		return nil, err
	}

	return result.Data, nil
}

func (c *Client) ListItems(ctx context.Context, email, boardID string) ([]domain.Item, error) {
	query := identity(email)
	query.Set("boardId", boardID)

	var result DataResponse[[]domain.Item]
	if err := c.do(ctx, http.MethodGet, c.route("monday-items", query), nil, &result); err != nil {
		return nil, err
	}

	return result.Data, nil
}

func (c *Client) CreateItem(ctx context.Context, email, boardID, name string) (any, error) {
	query := identity(email)
	query.Set("boardId", boardID)

	var result DataResponse[any]
	if err := c.do(ctx, http.MethodPost, c.route("monday-items", query), CreateItemRequest{Name: name}, &result); err != nil {
		return nil, err
	}

	return result.Data, nil
}

func (c *Client) UpdateItem(ctx context.Context, email string, req UpdateItemRequest) (any, error) {
	var result DataResponse[any]
	if err := c.do(ctx, http.MethodPut, c.route("monday-items", identity(email)), req, &result); err != nil {
		return nil, err
	}

	return result.Data, nil
}

func (c *Client) DeleteItem(ctx context.Context, email, itemID string) (any, error) {
	query := identity(email)
	query.Set("itemId", itemID)

	var result DataResponse[any]
	if err := c.do(ctx, http.MethodDelete, c.route("monday-items", query), nil, &result); err != nil {
		return nil, err
	}

	return result.Data, nil
}

func identity(email string) url.Values {
	query := url.Values{}
	if email != "" {
		query.Set("email", email)
	}

	return query
}

func (c *Client) route(name string, query url.Values) string {
	target := c.config.BaseURL + c.config.RoutePrefix + "/" + name
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	return target
}

func (c *Client) do(ctx context.Context, method, target string, body any, out any) error {
	var requestBody io.Reader

	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		requestBody = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, requestBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach bridge: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

		var errorBody ErrorResponse
		if json.Unmarshal(raw, &errorBody) == nil && errorBody.Error != "" {
			apiErr.Message = errorBody.Error
			apiErr.Details = errorBody.Details
		}

		log.Debug().Str("method", method).Str("url", target).Int("status", resp.StatusCode).Msg("Bridge request failed")

		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
