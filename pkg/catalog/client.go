package catalog

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

	"github.com/catalogwire/catalogwire/pkg/logger"
)

// DefaultBaseURL is where a locally running catalog listens.
const DefaultBaseURL = "http://localhost:8585/api/v1"

// DefaultTimeout bounds a single catalog request.
const DefaultTimeout = 30 * time.Second

// Client talks to the metadata catalog's REST API.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
	logger  *logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithToken sets the bearer token sent on every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithLogger attaches a logger for request tracing.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.client.Timeout = d
	}
}

// New creates a catalog client. An empty baseURL falls back to
// DefaultBaseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the catalog endpoint this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// APIError is an error response from the catalog.
type APIError struct {
	Status   int    `json:"status"`
	Message  string `json:"message"`
	Code     string `json:"code"`
	ErrorMsg string `json:"error"`
}

func (e APIError) Error() string {
	// Prioritize the most descriptive error message
	message := e.Message
	if message == "" {
		message = e.ErrorMsg
	}
	if message == "" {
		message = fmt.Sprintf("HTTP %d error", e.Status)
	}
	return message
}

// AsAPIError unwraps err into an APIError when it is one.
func AsAPIError(err error) (APIError, bool) {
	var apiErr APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return APIError{}, false
}

// IsNotFound reports whether err is a catalog 404.
func IsNotFound(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Status == http.StatusNotFound
}

// IsConflict reports whether err is a catalog 409.
func IsConflict(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Status == http.StatusConflict
}

// makeRequest performs an HTTP request against the catalog
func (c *Client) makeRequest(ctx context.Context, method, path string, query url.Values, body interface{}) (*http.Response, error) {
	var reqBody io.Reader

	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	reqURL := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	if c.logger != nil {
		c.logger.Debugf("catalog request: %s %s", method, reqURL)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform request: %v", err)
	}

	return resp, nil
}

// handleResponse processes the HTTP response and handles errors
func (c *Client) handleResponse(resp *http.Response, result interface{}) error {
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %v", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr APIError
		if err := json.Unmarshal(body, &apiErr); err != nil {
			// If we can't parse the error response, return a generic error
			return APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(body))}
		}
		apiErr.Status = resp.StatusCode
		return apiErr
	}

	if result != nil && len(body) > 0 {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("failed to unmarshal response: %v", err)
		}
	}

	return nil
}

// get performs a GET request
func (c *Client) get(ctx context.Context, path string, query url.Values, result interface{}) error {
	resp, err := c.makeRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	return c.handleResponse(resp, result)
}

// post performs a POST request
func (c *Client) post(ctx context.Context, path string, body, result interface{}) error {
	resp, err := c.makeRequest(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return err
	}
	return c.handleResponse(resp, result)
}
