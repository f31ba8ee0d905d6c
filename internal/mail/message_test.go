package mail

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

var testFrom = Identity{Name: "SwimShark", Address: "swimtest@swimtest.sk"}

func TestValidateContract(t *testing.T) {
	cases := []struct {
		name string
		msg  Message
		want error
	}{
		{"bad recipient", Message{To: "not-an-address", Subject: "s", Text: "t"}, ErrInvalidRecipient},
		{"empty recipient", Message{Subject: "s", Text: "t"}, ErrInvalidRecipient},
		{"missing subject", Message{To: "a@b.sk", Subject: "   ", Text: "t"}, ErrMissingSubject},
		{"missing body", Message{To: "a@b.sk", Subject: "s"}, ErrMissingBody},
		{"incomplete attachment", Message{To: "a@b.sk", Subject: "s", Text: "t",
			Attachment: &Attachment{Filename: "f.pdf"}}, ErrIncompleteAttachment},
		{"bad base64", Message{To: "a@b.sk", Subject: "s", Text: "t",
			Attachment: &Attachment{Filename: "f.pdf", ContentBase64: "!!!"}}, ErrBadAttachment},
		{"ok", Message{To: "a@b.sk", Subject: "s", Text: "t"}, nil},
	}
	for _, tc := range cases {
		err := tc.msg.Validate()
		if !errors.Is(err, tc.want) {
			t.Errorf("%s: got %v, want %v", tc.name, err, tc.want)
		}
		if tc.want != nil && !IsValidation(err) {
			t.Errorf("%s: expected a validation error", tc.name)
		}
	}
}

func TestBuildSinglePart(t *testing.T) {
	msg := Message{To: "parent@example.sk", Subject: "Potvrdenie žiadosti – SwimShark", Text: "Dobrý deň"}
	raw, id, err := msg.Build(testFrom)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if id == "" || !strings.HasSuffix(id, "@swimtest.sk") {
		t.Errorf("message id %q should end with @swimtest.sk", id)
	}
	s := string(raw)
	for _, want := range []string{
		"From: SwimShark <swimtest@swimtest.sk>\r\n",
		"Reply-To: SwimShark <swimtest@swimtest.sk>\r\n",
		"To: parent@example.sk\r\n",
		"Content-Type: text/plain; charset=UTF-8\r\n",
		"Dobrý deň",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("message missing %q", want)
		}
	}
	if strings.Contains(s, "multipart") {
		t.Error("single-part message must not be multipart")
	}
}

func TestBuildHTMLWins(t *testing.T) {
	msg := Message{To: "a@b.sk", Subject: "s", Text: "plain", HTML: "<p>html</p>"}
	raw, _, err := msg.Build(testFrom)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	s := string(raw)
	if !strings.Contains(s, "Content-Type: text/html; charset=UTF-8") {
		t.Error("html body should set text/html")
	}
	if !strings.Contains(s, "<p>html</p>") {
		t.Error("html body missing")
	}
}

func TestBuildAttachment(t *testing.T) {
	content := []byte("PDF-ish content for the camp info sheet")
	msg := Message{
		To:      "a@b.sk",
		Subject: "s",
		Text:    "telo",
		Attachment: &Attachment{
			Filename:      "tabor.pdf",
			ContentBase64: base64.StdEncoding.EncodeToString(content),
			ContentType:   "application/pdf",
		},
	}
	raw, _, err := msg.Build(testFrom)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	s := string(raw)
	if !strings.Contains(s, "Content-Type: multipart/mixed; boundary=") {
		t.Fatal("expected multipart/mixed")
	}
	if !strings.Contains(s, `Content-Disposition: attachment; filename="tabor.pdf"`) {
		t.Error("attachment disposition missing")
	}
	if !strings.Contains(s, "Content-Transfer-Encoding: base64") {
		t.Error("transfer encoding missing")
	}
	// the re-encoded payload must round-trip to the original bytes
	enc := base64.StdEncoding.EncodeToString(content)
	if !strings.Contains(strings.ReplaceAll(s, "\r\n", ""), enc) {
		t.Error("attachment content did not survive the build")
	}
}

func TestBuildSanitizesFilename(t *testing.T) {
	msg := Message{
		To:      "a@b.sk",
		Subject: "s",
		Text:    "telo",
		Attachment: &Attachment{
			Filename:      "evil\r\nBcc: spam@example.com",
			ContentBase64: base64.StdEncoding.EncodeToString([]byte("x")),
		},
	}
	raw, _, err := msg.Build(testFrom)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if strings.Contains(string(raw), "Bcc: spam") && strings.Contains(string(raw), "evil\r\nBcc") {
		t.Error("CRLF in filename must not split headers")
	}
	if !strings.Contains(string(raw), `filename="evilBcc: spam@example.com"`) {
		t.Error("filename should keep the text with CRLF stripped")
	}
}

func TestWrapBase64(t *testing.T) {
	long := strings.Repeat("A", 200)
	wrapped := wrapBase64(long)
	for i, line := range strings.Split(wrapped, "\r\n") {
		if len(line) > 76 {
			t.Errorf("line %d exceeds 76 chars: %d", i, len(line))
		}
	}
	if strings.ReplaceAll(wrapped, "\r\n", "") != long {
		t.Error("wrapping must not change content")
	}
}
