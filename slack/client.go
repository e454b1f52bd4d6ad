package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const apiBaseURL = "https://slack.com/api"

// Client is a minimal Slack Web API client covering what the bot needs:
// opening a Socket Mode connection, replying in a thread, and reading prior
// thread messages for context.
type Client struct {
	httpClient *http.Client
	botToken   string
	appToken   string
	baseURL    string
}

func NewClient(botToken, appToken string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		botToken:   botToken,
		appToken:   appToken,
		baseURL:    apiBaseURL,
	}
}

type apiResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
	URL   string `json:"url"`
}

// ConnectionsOpen requests a Socket Mode websocket URL. Requires the
// app-level token.
func (c *Client) ConnectionsOpen(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/apps.connections.open", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.appToken)

	var resp apiResponse
	if err := c.do(req, &resp); err != nil {
		return "", err
	}
	if !resp.OK {
		return "", fmt.Errorf("apps.connections.open failed: %s", resp.Error)
	}
	return resp.URL, nil
}

// PostMessage sends text to a channel, threaded under threadTS when set.
func (c *Client) PostMessage(ctx context.Context, channel, text, threadTS string) error {
	payload := map[string]string{
		"channel": channel,
		"text":    text,
	}
	if threadTS != "" {
		payload["thread_ts"] = threadTS
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat.postMessage", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.botToken)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	var resp apiResponse
	if err := c.do(req, &resp); err != nil {
		return err
	}
	if !resp.OK {
		return fmt.Errorf("chat.postMessage failed: %s", resp.Error)
	}
	return nil
}

// ThreadMessage is one prior message of a thread.
type ThreadMessage struct {
	User string `json:"user"`
	Text string `json:"text"`
}

type repliesResponse struct {
	OK       bool            `json:"ok"`
	Error    string          `json:"error"`
	Messages []ThreadMessage `json:"messages"`
}

// ThreadReplies returns the messages of a thread, oldest first, bounded to
// limit.
func (c *Client) ThreadReplies(ctx context.Context, channel, threadTS string, limit int) ([]ThreadMessage, error) {
	params := url.Values{}
	params.Set("channel", channel)
	params.Set("ts", threadTS)
	params.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/conversations.replies?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.botToken)

	var resp repliesResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	if !resp.OK {
		return nil, fmt.Errorf("conversations.replies failed: %s", resp.Error)
	}
	return resp.Messages, nil
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("slack API returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
