package services

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/sealnote/sealnote/internal/envelope"
)

const defaultNoteSubject = "Someone sent you an encrypted secure note"

// NoteNotification describes a freshly created secure note for the
// recipient. It never contains the note content or the encryption key, the
// URL fragment carries the key only on the recipient side.
type NoteNotification struct {
	Recipient        string
	Sender           string
	Subject          string
	NoteURL          string
	Expire           time.Duration
	RequiresPassword bool
	Algorithm        envelope.Algorithm
	ExpireOnView     bool
}

// MessageSender is the dialing part of gomail, extracted for tests
type MessageSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// MailNotifier composes and sends the note creation email
type MailNotifier struct {
	sender MessageSender
	from   string
}

// NewMailNotifier creates a new MailNotifier sending from the given address
func NewMailNotifier(sender MessageSender, from string) *MailNotifier {
	return &MailNotifier{
		sender: sender,
		from:   from,
	}
}

// NoteCreated sends a single transactional message describing the note
func (n *MailNotifier) NoteCreated(notification NoteNotification) error {
	return n.sender.DialAndSend(buildNoteMessage(n.from, notification))
}

func buildNoteMessage(from string, n NoteNotification) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", from, "Secure Notes")
	m.SetHeader("To", n.Recipient)

	if n.Sender != "" {
		m.SetHeader("Reply-To", n.Sender)
	}

	subject := n.Subject
	if subject == "" {
		subject = defaultNoteSubject
	}
	m.SetHeader("Subject", subject)

	m.SetBody("text/html", buildNoteBody(n))

	return m
}

func buildNoteBody(n NoteNotification) string {
	var b strings.Builder

	b.WriteString(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #e0e0e0; border-radius: 5px;">`)
	b.WriteString(`<h2 style="color: #2c3e50; border-bottom: 1px solid #eee; padding-bottom: 10px;">Encrypted secure note</h2>`)
	b.WriteString(`<p>Someone sent you a confidential encrypted note through our service.</p>`)

	if n.Sender != "" {
		fmt.Fprintf(&b, `<p>This message was sent by: <strong>%s</strong></p>`, n.Sender)
	}

	b.WriteString(`<p>To open the note, follow this link:</p>`)
	fmt.Fprintf(&b, `<p style="text-align: center;"><a href="%s" style="display: inline-block; background-color: #3498db; color: white; padding: 10px 20px; text-decoration: none; border-radius: 4px;">View secure note</a></p>`, n.NoteURL)

	b.WriteString(`<div style="margin: 20px 0; padding: 15px; background-color: #f8f9fa; border-left: 4px solid #2c3e50; border-radius: 3px;">`)
	b.WriteString(`<p style="margin: 0 0 10px 0;"><strong>Important:</strong></p><ul style="margin: 0; padding-left: 20px;">`)

	if n.ExpireOnView {
		b.WriteString(`<li>The note is <strong>destroyed automatically after it is read</strong></li>`)
	} else {
		fmt.Fprintf(&b, `<li>The note <strong>expires in %s</strong> if it is not accessed</li>`, expiryText(n.Expire))
	}

	if n.RequiresPassword {
		b.WriteString(`<li>You will need a <strong>password</strong> to open the note</li>`)
	}

	fmt.Fprintf(&b, `<li>Encrypted with <strong>%s</strong></li>`, strings.ToUpper(string(n.Algorithm)))
	b.WriteString(`</ul></div></div>`)

	return b.String()
}

func expiryText(d time.Duration) string {
	hours := int(d.Hours())
	switch {
	case hours <= 1:
		return "1 hour"
	case hours < 24:
		return fmt.Sprintf("%d hours", hours)
	case hours < 48:
		return "1 day"
	default:
		return fmt.Sprintf("%d days", hours/24)
	}
}
