// Package notify pings a Telegram admin chat about new submissions.
// Best-effort like the confirmation email: failures are logged, never
// surfaced to the visitor.
package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type Client struct {
	token  string
	chatID int64
	apiURL string
	httpc  *http.Client
}

// NewClient returns nil when token or chat are missing, and every method on
// a nil client is a no-op, so callers don't need to guard.
func NewClient(token string, chatID int64) *Client {
	if token == "" || chatID == 0 {
		return nil
	}
	return &Client{
		token:  token,
		chatID: chatID,
		apiURL: "https://api.telegram.org/bot" + token,
		httpc:  &http.Client{Timeout: 10 * time.Second},
	}
}

// SendMessage posts a plain-text message to the admin chat.
func (c *Client) SendMessage(text string) error {
	if c == nil {
		return nil
	}
	payload := map[string]any{
		"chat_id": c.chatID,
		"text":    text,
	}
	b, _ := json.Marshal(payload)
	req, _ := http.NewRequest(http.MethodPost, c.apiURL+"/sendMessage", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("telegram sendMessage: %s", resp.Status)
	}
	return nil
}
