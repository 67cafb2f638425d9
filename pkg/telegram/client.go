package telegram

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
)

const (
	DefaultBaseURL = "https://api.telegram.org"
	ParseModeHTML  = "HTML"

	// cap on how much of a provider reply is read into memory
	maxResponseBytes = 1 << 20
)

// SendMessageRequest is the body of the Bot API sendMessage method.
type SendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode,omitempty"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

// APIResponse is the envelope every Bot API method answers with.
type APIResponse struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description,omitempty"`
	ErrorCode   int             `json:"error_code,omitempty"`
	Result      json.RawMessage `json:"result,omitempty"`
}

// Client talks to the Telegram Bot API over HTTPS
type Client struct {
	baseURL    string
	botToken   string
	httpClient *http.Client
}

// NewClient creates a Bot API client. A zero timeout leaves the transport
// to decide when a call has failed.
func NewClient(baseURL, botToken string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		botToken:   botToken,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// IsConfigured reports whether a bot token was supplied.
func (c *Client) IsConfigured() bool {
	return c.botToken != ""
}

// SendMessage performs exactly one sendMessage call. A non-nil error means the
// call could not be completed or the reply was not a Bot API envelope; a
// provider-side rejection comes back as a response with OK == false.
func (c *Client) SendMessage(ctx context.Context, msg SendMessageRequest) (*APIResponse, error) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshaling payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", redact(err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", redact(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var result APIResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parsing response (status %d): %w", resp.StatusCode, err)
	}

	return &result, nil
}

// redact strips the request URL from transport errors; it embeds the bot token.
func redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}
	return err
}
