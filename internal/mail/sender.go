package mail

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"os/exec"
	"strings"
)

// Sender hands a validated message to a mail transport. It returns the
// message id when the transport accepted the message. No retries: the
// caller decides whether a failure matters.
type Sender interface {
	Send(msg *Message) (id string, err error)
}

// SMTPSender delivers through an authenticated external relay. Port 465 uses
// implicit TLS, anything else upgrades with STARTTLS when offered.
type SMTPSender struct {
	Host     string
	Port     int
	Username string
	Password string
	From     Identity
}

func (s *SMTPSender) Send(msg *Message) (string, error) {
	raw, id, err := msg.Build(s.From)
	if err != nil {
		return "", err
	}

	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)
	var client *smtp.Client
	if s.Port == 465 {
		conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: s.Host})
		if err != nil {
			return "", err
		}
		client, err = smtp.NewClient(conn, s.Host)
		if err != nil {
			return "", err
		}
	} else {
		var err error
		client, err = smtp.Dial(addr)
		if err != nil {
			return "", err
		}
	}
	defer client.Quit()

	if s.Port != 465 {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(&tls.Config{ServerName: s.Host}); err != nil {
				return "", err
			}
		}
	}
	if s.Username != "" {
		auth := smtp.PlainAuth("", s.Username, s.Password, s.Host)
		if err := client.Auth(auth); err != nil {
			return "", err
		}
	}

	// Envelope sender is the fixed identity, not the recipient-supplied one.
	if err := client.Mail(s.From.Address); err != nil {
		return "", err
	}
	if err := client.Rcpt(msg.To); err != nil {
		return "", err
	}
	w, err := client.Data()
	if err != nil {
		return "", err
	}
	if _, err := w.Write(raw); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	return id, nil
}

// SendmailSender pipes the message to a local MTA binary, the way shared
// hosts deliver mail. The -f flag sets the envelope sender.
type SendmailSender struct {
	Path string
	From Identity
}

func (s *SendmailSender) Send(msg *Message) (string, error) {
	raw, id, err := msg.Build(s.From)
	if err != nil {
		return "", err
	}
	cmd := exec.Command(s.Path, "-i", "-f", s.From.Address, "--", msg.To)
	cmd.Stdin = bytes.NewReader(raw)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if o := strings.TrimSpace(string(out)); o != "" {
			return "", fmt.Errorf("sendmail: %s: %w", o, err)
		}
		return "", fmt.Errorf("sendmail: %w", err)
	}
	return id, nil
}
