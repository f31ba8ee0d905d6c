// Package mail implements the confirmation-mail pipeline: the message
// format, the two delivery transports (SMTP relay, local sendmail) and the
// HTTP glue endpoint the website calls after a form submission.
package mail

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"mime"
	netmail "net/mail"
	"strings"
	"time"
)

// Identity is the fixed sender put on From/Reply-To of every message. The
// envelope sender uses the same address to keep deliverability up.
type Identity struct {
	Name    string
	Address string
}

func (i Identity) String() string {
	return (&netmail.Address{Name: i.Name, Address: i.Address}).String()
}

// Attachment is one optional base64-encoded file on a message.
type Attachment struct {
	Filename      string `json:"filename"`
	ContentBase64 string `json:"content_base64"`
	ContentType   string `json:"content_type,omitempty"`
}

// Message is the send-email request. At least one of Text/HTML must be
// non-empty; HTML wins when both are present.
type Message struct {
	To         string      `json:"to"`
	Subject    string      `json:"subject"`
	Text       string      `json:"text,omitempty"`
	HTML       string      `json:"html,omitempty"`
	Attachment *Attachment `json:"attachment,omitempty"`
}

// Validation failures. The texts are part of the HTTP contract and end up in
// the {ok:false, error} response body verbatim.
var (
	ErrInvalidRecipient     = errors.New("Invalid recipient")
	ErrMissingSubject       = errors.New("Missing subject")
	ErrMissingBody          = errors.New("Missing message body")
	ErrBadAttachment        = errors.New("Invalid attachment encoding")
	ErrIncompleteAttachment = errors.New("Attachment requires filename and content_base64")
)

var validationErrs = []error{
	ErrInvalidRecipient, ErrMissingSubject, ErrMissingBody,
	ErrBadAttachment, ErrIncompleteAttachment,
}

// IsValidation reports whether err is a request problem (HTTP 400) rather
// than a transport failure (HTTP 500).
func IsValidation(err error) bool {
	for _, v := range validationErrs {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}

// IsHTML reports whether the HTML body is used for rendering.
func (m *Message) IsHTML() bool { return strings.TrimSpace(m.HTML) != "" }

// Validate normalizes To/Subject in place and checks the contract.
func (m *Message) Validate() error {
	m.To = strings.TrimSpace(m.To)
	m.Subject = strings.TrimSpace(m.Subject)
	if _, err := netmail.ParseAddress(m.To); err != nil {
		return ErrInvalidRecipient
	}
	if m.Subject == "" {
		return ErrMissingSubject
	}
	if strings.TrimSpace(m.Text) == "" && strings.TrimSpace(m.HTML) == "" {
		return ErrMissingBody
	}
	if m.Attachment != nil {
		if m.Attachment.Filename == "" || m.Attachment.ContentBase64 == "" {
			return ErrIncompleteAttachment
		}
		if _, err := m.Attachment.decode(); err != nil {
			return ErrBadAttachment
		}
	}
	return nil
}

func (a *Attachment) decode() ([]byte, error) {
	return base64.StdEncoding.DecodeString(strings.TrimSpace(a.ContentBase64))
}

// sanitizeFilename strips CR/LF so a crafted filename cannot inject headers.
func sanitizeFilename(name string) string {
	return strings.NewReplacer("\r", "", "\n", "").Replace(name)
}

func randomToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// Build renders the full RFC 5322 message and returns it together with the
// generated Message-ID. Single-part when there is no attachment, otherwise
// multipart/mixed with the body first and the base64 attachment second.
func (m *Message) Build(from Identity) (raw []byte, id string, err error) {
	if err := m.Validate(); err != nil {
		return nil, "", err
	}

	domain := from.Address
	if at := strings.LastIndex(domain, "@"); at >= 0 {
		domain = domain[at+1:]
	}
	id = fmt.Sprintf("%s@%s", randomToken(), domain)

	body := m.Text
	bodyType := "text/plain"
	if m.IsHTML() {
		body = m.HTML
		bodyType = "text/html"
	}

	var b strings.Builder
	b.WriteString("From: " + from.String() + "\r\n")
	b.WriteString("Reply-To: " + from.String() + "\r\n")
	b.WriteString("To: " + m.To + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", m.Subject) + "\r\n")
	b.WriteString("Date: " + time.Now().Format(time.RFC1123Z) + "\r\n")
	b.WriteString("Message-ID: <" + id + ">\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")

	if m.Attachment == nil {
		b.WriteString("Content-Type: " + bodyType + "; charset=UTF-8\r\n\r\n")
		b.WriteString(body)
		b.WriteString("\r\n")
		return []byte(b.String()), id, nil
	}

	content, err := m.Attachment.decode()
	if err != nil {
		return nil, "", ErrBadAttachment
	}
	contentType := m.Attachment.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	boundary := "=_swimshark_" + randomToken()

	b.WriteString("Content-Type: multipart/mixed; boundary=\"" + boundary + "\"\r\n\r\n")
	b.WriteString("--" + boundary + "\r\n")
	b.WriteString("Content-Type: " + bodyType + "; charset=UTF-8\r\n\r\n")
	b.WriteString(body)
	b.WriteString("\r\n\r\n")
	b.WriteString("--" + boundary + "\r\n")
	b.WriteString("Content-Type: " + contentType + "\r\n")
	b.WriteString("Content-Transfer-Encoding: base64\r\n")
	b.WriteString("Content-Disposition: attachment; filename=\"" + sanitizeFilename(m.Attachment.Filename) + "\"\r\n\r\n")
	b.WriteString(wrapBase64(base64.StdEncoding.EncodeToString(content)))
	b.WriteString("\r\n--" + boundary + "--\r\n")
	return []byte(b.String()), id, nil
}

// wrapBase64 folds encoded content at 76 columns per RFC 2045.
func wrapBase64(s string) string {
	const width = 76
	var b strings.Builder
	for len(s) > width {
		b.WriteString(s[:width])
		b.WriteString("\r\n")
		s = s[width:]
	}
	b.WriteString(s)
	return b.String()
}
