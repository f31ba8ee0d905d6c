package mail

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type stubSender struct {
	lastMsg *Message
	id      string
	err     error
}

func (s *stubSender) Send(msg *Message) (string, error) {
	s.lastMsg = msg
	return s.id, s.err
}

func newTestService(sender Sender) http.Handler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(sender, log).Router()
}

func postJSON(t *testing.T, h http.Handler, body string) (*httptest.ResponseRecorder, sendResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/send-confirmation", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var out sendResponse
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return rec, out
}

func TestSendOK(t *testing.T) {
	sender := &stubSender{id: "abc123@swimtest.sk"}
	h := newTestService(sender)
	rec, out := postJSON(t, h, `{"to":"parent@example.sk","subject":"Potvrdenie","text":"Dobrý deň"}`)
	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !out.OK || out.ID != "abc123@swimtest.sk" {
		t.Fatalf("unexpected response: %+v", out)
	}
	if sender.lastMsg == nil || sender.lastMsg.To != "parent@example.sk" {
		t.Fatalf("sender did not get the message")
	}
}

func TestSendValidation(t *testing.T) {
	cases := []struct {
		body string
		want string
	}{
		{`{"subject":"s","text":"t"}`, "Invalid recipient"},
		{`{"to":"nonsense","subject":"s","text":"t"}`, "Invalid recipient"},
		{`{"to":"a@b.sk","text":"t"}`, "Missing subject"},
		{`{"to":"a@b.sk","subject":"s"}`, "Missing message body"},
		{`{"to":"a@b.sk","subject":"s","text":"t","attachment":{"filename":"f.pdf","content_base64":"!!!"}}`, "Invalid attachment encoding"},
		{`not json at all`, "Invalid JSON"},
	}
	sender := &stubSender{}
	h := newTestService(sender)
	for _, tc := range cases {
		rec, out := postJSON(t, h, tc.body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", tc.want, rec.Code)
		}
		if out.OK || out.Error != tc.want {
			t.Errorf("expected error %q, got %+v", tc.want, out)
		}
	}
	if sender.lastMsg != nil {
		t.Error("invalid requests must not reach the sender")
	}
}

func TestSendTransportFailure(t *testing.T) {
	h := newTestService(&stubSender{err: errors.New("relay down")})
	rec, out := postJSON(t, h, `{"to":"a@b.sk","subject":"s","text":"t"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if out.OK || out.Error != "Send failed" {
		t.Fatalf("transport failures must map to the opaque Send failed, got %+v", out)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestService(&stubSender{})
	req := httptest.NewRequest(http.MethodGet, "/api/send-confirmation", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Method Not Allowed") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	h := newTestService(&stubSender{})
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != 200 || !strings.Contains(rec.Body.String(), `"ok":true`) {
		t.Fatalf("health failed: %d %s", rec.Code, rec.Body.String())
	}
}

func TestClientAgainstService(t *testing.T) {
	sender := &stubSender{id: "id1@swimtest.sk"}
	ts := httptest.NewServer(newTestService(sender))
	defer ts.Close()

	c := NewClient(ts.URL)
	err := c.Send(context.Background(), Message{To: "a@b.sk", Subject: "s", Text: "t"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	err = c.Send(context.Background(), Message{To: "a@b.sk", Subject: "", Text: "t"})
	if err == nil || !strings.Contains(err.Error(), "Missing subject") {
		t.Fatalf("expected the service error surfaced, got %v", err)
	}

	var nilClient *Client
	if err := nilClient.Send(context.Background(), Message{}); !errors.Is(err, ErrNoEndpoint) {
		t.Fatalf("nil client should report ErrNoEndpoint, got %v", err)
	}
}
