package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/wneessen/go-mail"

	"appintake/internal/filelink"
	"appintake/internal/models"
)

type NotifyOutcome int

const (
	NotifySent NotifyOutcome = iota
	NotifySkipped
	NotifyFailed
)

func (o NotifyOutcome) String() string {
	switch o {
	case NotifySent:
		return "sent"
	case NotifySkipped:
		return "skipped"
	default:
		return "failed"
	}
}

const notifyTimeout = 10 * time.Second

// mailSender is what the Notifier needs from go-mail's Client; tests
// substitute their own.
type mailSender interface {
	DialAndSendWithContext(ctx context.Context, msgs ...*mail.Msg) error
}

// Notifier sends the confirmation email through an authenticated SMTP
// relay. It holds its own configuration; there is no ambient transporter
// state. A nil sender (relay not configured) degrades every send to
// Failed instead of crashing.
type Notifier struct {
	sender  mailSender
	from    string
	baseURL string
	links   *filelink.Signer
}

type NotifierConfig struct {
	Host    string
	Port    int
	User    string
	Pass    string
	From    string
	BaseURL string
}

func NewNotifier(cfg NotifierConfig, links *filelink.Signer) (*Notifier, error) {
	n := &Notifier{from: cfg.From, baseURL: strings.TrimRight(cfg.BaseURL, "/"), links: links}
	if cfg.Host == "" {
		return n, nil
	}
	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.User),
		mail.WithPassword(cfg.Pass),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(notifyTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("mail client: %w", err)
	}
	n.sender = client
	return n, nil
}

// newNotifierWithSender is used by tests to inject a fake relay.
func newNotifierWithSender(sender mailSender, from, baseURL string, links *filelink.Signer) *Notifier {
	return &Notifier{sender: sender, from: from, baseURL: strings.TrimRight(baseURL, "/"), links: links}
}

func (n *Notifier) Configured() bool { return n.sender != nil }

// Notify sends a confirmation referencing the stored files. Best-effort:
// the returned error explains a Failed outcome but callers must not fail
// the submission over it.
func (n *Notifier) Notify(ctx context.Context, rec *models.ApplicationRecord, files []models.StoredFile) (NotifyOutcome, error) {
	if rec.PersonalInfo.Email == "" {
		return NotifySkipped, nil
	}
	if n.sender == nil {
		return NotifyFailed, fmt.Errorf("mail relay not configured")
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat("Application Team", n.from); err != nil {
		return NotifyFailed, fmt.Errorf("from address: %w", err)
	}
	if err := msg.To(rec.PersonalInfo.Email); err != nil {
		return NotifyFailed, fmt.Errorf("recipient: %w", err)
	}
	msg.Subject("Application Received")
	msg.SetBodyString(mail.TypeTextHTML, n.composeBody(rec, files))

	ctx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()
	if err := n.sender.DialAndSendWithContext(ctx, msg); err != nil {
		return NotifyFailed, err
	}
	return NotifySent, nil
}

func (n *Notifier) composeBody(rec *models.ApplicationRecord, files []models.StoredFile) string {
	name := rec.PersonalInfo.FirstName
	if name == "" {
		name = "Applicant"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<p>Hello %s,</p>", html.EscapeString(name))
	b.WriteString("<p>Your application has been successfully received.</p>")
	if len(files) > 0 {
		b.WriteString("<p>Uploaded files:</p><ul>")
		for _, f := range files {
			url := n.fileURL(f.StoredName)
			fmt.Fprintf(&b, `<li>%s: <a href="%s">%s</a></li>`,
				html.EscapeString(f.Field), url, html.EscapeString(f.OriginalName))
		}
		b.WriteString("</ul>")
	}
	return b.String()
}

// fileURL builds a signed, short-lived download link. If signing fails
// the email still goes out, just without a working link.
func (n *Notifier) fileURL(storedName string) string {
	url := n.baseURL + "/uploads/" + storedName
	token, err := n.links.Sign(storedName)
	if err != nil {
		return url
	}
	return url + "?token=" + token
}
