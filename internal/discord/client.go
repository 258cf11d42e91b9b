// Package discord posts messages to Discord channels and direct messages
// through the bot REST API.
package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	// BaseURL is the Discord REST API base URL.
	BaseURL = "https://discord.com/api/v9"

	// DefaultTimeout bounds each request on its own.
	DefaultTimeout = 30 * time.Second

	// RateLimit spaces the requests of a single run (requests per second).
	RateLimit = 5.0

	// DefaultUserAgent identifies the bot client to Discord.
	DefaultUserAgent = "DiscordBot (https://github.com/matsen/dnotify, dev)"

	// maxErrorBody bounds how much of an error response is read.
	maxErrorBody = 64 * 1024
)

// HTTPDoer sends an HTTP request. *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a rate-limited HTTP client for the Discord bot API.
type Client struct {
	httpClient HTTPDoer
	limiter    *rate.Limiter
	token      string
	baseURL    string
	userAgent  string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom transport.
func WithHTTPClient(hc HTTPDoer) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a client authenticated with a bot token.
func NewClient(token string, opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		token:      token,
		baseURL:    BaseURL,
		userAgent:  DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// openDMRequest is the body of POST /users/@me/channels.
type openDMRequest struct {
	RecipientID string `json:"recipient_id"`
}

// createMessageRequest is the body of POST /channels/{id}/messages.
type createMessageRequest struct {
	Content string `json:"content"`
}

// apiErrorBody is the error payload Discord returns with 4xx responses.
type apiErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// OpenDM opens (or fetches) the DM channel with a user and returns its ID.
func (c *Client) OpenDM(ctx context.Context, recipientID string) (string, error) {
	body, err := c.post(ctx, StageOpenDM, "/users/@me/channels", openDMRequest{RecipientID: recipientID})
	if err != nil {
		return "", err
	}

	return extractChannelID(body)
}

// PostMessage posts content to a channel. The response body is not used.
func (c *Client) PostMessage(ctx context.Context, channelID, content string) error {
	path := "/channels/" + url.PathEscape(channelID) + "/messages"
	_, err := c.post(ctx, StagePost, path, createMessageRequest{Content: content})
	return err
}

// extractChannelID reads the required string field "id" from an open-channel response.
func extractChannelID(body []byte) (string, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return "", fmt.Errorf("%s: %w: %v", StageOpenDM, ErrMalformedResponse, err)
	}

	raw, ok := fields["id"]
	if !ok {
		return "", fmt.Errorf("%s: %w: no \"id\" field", StageOpenDM, ErrMalformedResponse)
	}

	var id string
	if err := json.Unmarshal(raw, &id); err != nil {
		return "", fmt.Errorf("%s: %w: \"id\" is not a string", StageOpenDM, ErrMalformedResponse)
	}
	if id == "" {
		return "", fmt.Errorf("%s: %w: empty \"id\"", StageOpenDM, ErrMalformedResponse)
	}
	return id, nil
}

// post sends payload as JSON and returns the response body of a 2xx answer.
func (c *Client) post(ctx context.Context, stage, path string, payload any) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%s: rate limiter: %w", stage, err)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: marshaling request: %w", stage, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: creating request: %w", stage, err)
	}
	req.Header.Set("Authorization", "Bot "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", stage, ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newHTTPError(stage, resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: reading response: %v", stage, ErrNetwork, err)
	}
	return body, nil
}

// newHTTPError builds an HTTPError, keeping Discord's message when the body has one.
func newHTTPError(stage string, resp *http.Response) *HTTPError {
	httpErr := &HTTPError{
		Stage:      stage,
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return httpErr
	}
	var apiErr apiErrorBody
	if json.Unmarshal(data, &apiErr) == nil {
		httpErr.Message = apiErr.Message
	}
	return httpErr
}
