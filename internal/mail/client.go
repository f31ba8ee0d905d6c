package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrNoEndpoint is returned when the mail endpoint is not configured.
var ErrNoEndpoint = errors.New("mail endpoint not configured")

// Client calls the mail service from the website. Failures are the caller's
// problem to swallow: form submissions never depend on this succeeding.
type Client struct {
	endpoint string
	httpc    *http.Client
}

// NewClient points at the mail service base URL (e.g. http://localhost:5179).
// An empty endpoint yields a client whose Send always fails with
// ErrNoEndpoint, which the dispatcher records as skipped.
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		httpc:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Send posts the message to the service and returns an error unless the
// service answered {ok:true}.
func (c *Client) Send(ctx context.Context, msg Message) error {
	if c == nil || c.endpoint == "" {
		return ErrNoEndpoint
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/api/send-confirmation", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var out sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("mail service: %s", resp.Status)
	}
	if !out.OK {
		if out.Error != "" {
			return fmt.Errorf("mail service: %s", out.Error)
		}
		return fmt.Errorf("mail service: %s", resp.Status)
	}
	return nil
}
