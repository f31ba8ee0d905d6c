package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/swimshark/website/internal/mail"
	"github.com/swimshark/website/internal/maillog"
	"github.com/swimshark/website/internal/models"
	"github.com/swimshark/website/internal/notify"
)

// Subjects of the confirmation emails.
const (
	SubjectInquiry = "Potvrdenie žiadosti – SwimShark"
	SubjectContact = "Potvrdenie správy – SwimShark"
)

// Confirm is the process-wide dispatcher, set from main. All methods are
// safe on a nil dispatcher, so handlers never have to guard.
var Confirm *Dispatcher

// Dispatcher queues the best-effort side effects of a successful submission:
// the confirmation email (with the camp info document attached when
// configured) and the Telegram ping to the admins. It runs strictly after
// the store write; its failures go to the mail log, never to the visitor.
type Dispatcher struct {
	mailc    *mail.Client
	notifier *notify.Client
	docURL   string
	log      *slog.Logger
	httpc    *http.Client

	wg sync.WaitGroup
}

func NewDispatcher(mailc *mail.Client, notifier *notify.Client, docURL string, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	return &Dispatcher{
		mailc:    mailc,
		notifier: notifier,
		docURL:   docURL,
		log:      log,
		httpc:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Wait blocks until queued sends finish. Tests and shutdown use it.
func (d *Dispatcher) Wait() {
	if d == nil {
		return
	}
	d.wg.Wait()
}

// LessonSubmitted queues the lesson-inquiry confirmation.
func (d *Dispatcher) LessonSubmitted(inq models.LessonInquiry) {
	if d == nil {
		return
	}
	msg := mail.Message{
		To:      inq.Email,
		Subject: SubjectInquiry,
		Text: fmt.Sprintf("Ahoj %s,\n\nĎakujeme za odoslanie žiadosti o plavecké lekcie. Ozveme sa vám do 1 pracovného dňa.\n\nTím SwimShark",
			inq.FirstName),
		HTML: fmt.Sprintf("<p>Ahoj %s,</p><p>Ďakujeme za odoslanie žiadosti o plavecké lekcie. Ozveme sa vám do 1 pracovného dňa.</p><p>Tím SwimShark</p>",
			html.EscapeString(inq.FirstName)),
	}
	note := fmt.Sprintf("Nová žiadosť o lekcie: %s %s (%s)", inq.FirstName, inq.LastName, inq.Email)
	d.dispatch("lesson", msg, note, false)
}

// CampSubmitted queues the camp-registration confirmation. The configured
// info document gets attached; a failed fetch just means no attachment.
func (d *Dispatcher) CampSubmitted(reg models.CampRegistration) {
	if d == nil {
		return
	}
	names := make([]string, 0, len(reg.Campers))
	for _, c := range reg.Campers {
		names = append(names, c.Name)
	}
	who := strings.Join(names, ", ")
	msg := mail.Message{
		To:      reg.Email,
		Subject: SubjectInquiry,
		Text: fmt.Sprintf("Dobrý deň,\n\nĎakujeme za žiadosť o miesto v letnom tábore (%s) pre %s. Ozveme sa vám do 1 pracovného dňa.\n\nTím SwimShark",
			reg.PreferredWeek, who),
		HTML: fmt.Sprintf("<p>Dobrý deň,</p><p>Ďakujeme za žiadosť o miesto v letnom tábore (%s) pre <b>%s</b>. Ozveme sa vám do 1 pracovného dňa.</p><p>Tím SwimShark</p>",
			html.EscapeString(reg.PreferredWeek), html.EscapeString(who)),
	}
	note := fmt.Sprintf("Nová prihláška do tábora: %s, %d detí, %s", reg.ParentName, len(reg.Campers), reg.PreferredWeek)
	d.dispatch("camp", msg, note, true)
}

// ContactSubmitted queues the contact-form acknowledgement.
func (d *Dispatcher) ContactSubmitted(cm models.ContactMessage) {
	if d == nil {
		return
	}
	msg := mail.Message{
		To:      cm.Email,
		Subject: SubjectContact,
		Text: fmt.Sprintf("Dobrý deň %s,\n\nĎakujeme za vašu správu. Ozveme sa vám čo najskôr.\n\nTím SwimShark",
			cm.Name),
		HTML: fmt.Sprintf("<p>Dobrý deň %s,</p><p>Ďakujeme za vašu správu. Ozveme sa vám čo najskôr.</p><p>Tím SwimShark</p>",
			html.EscapeString(cm.Name)),
	}
	note := fmt.Sprintf("Nová správa z kontaktného formulára: %s (%s)", cm.Name, cm.Email)
	d.dispatch("contact", msg, note, false)
}

func (d *Dispatcher) dispatch(kind string, msg mail.Message, adminNote string, attachDoc bool) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		if attachDoc && d.docURL != "" {
			if att, err := d.fetchDoc(); err != nil {
				d.log.Warn("camp document fetch failed, sending without attachment", "url", d.docURL, "err", err)
			} else {
				msg.Attachment = att
			}
		}

		entry := maillog.Entry{Kind: kind, Recipient: msg.To, Subject: msg.Subject}
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		switch err := d.mailc.Send(ctx, msg); {
		case err == nil:
			entry.Status = maillog.StatusSent
		case errors.Is(err, mail.ErrNoEndpoint):
			entry.Status = maillog.StatusSkipped
		default:
			entry.Status = maillog.StatusFailed
			entry.Error = err.Error()
			d.log.Warn("confirmation email failed", "kind", kind, "to", msg.To, "err", err)
		}
		maillog.Record(entry)

		if err := d.notifier.SendMessage(adminNote); err != nil {
			d.log.Warn("telegram notification failed", "err", err)
		}
	}()
}

func (d *Dispatcher) fetchDoc() (*mail.Attachment, error) {
	resp, err := d.httpc.Get(d.docURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: %s", d.docURL, resp.Status)
	}
	content, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, err
	}
	name := path.Base(d.docURL)
	if name == "." || name == "/" || name == "" {
		name = "informacie.pdf"
	}
	return &mail.Attachment{
		Filename:      name,
		ContentBase64: base64.StdEncoding.EncodeToString(content),
		ContentType:   resp.Header.Get("Content-Type"),
	}, nil
}
