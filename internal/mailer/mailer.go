// Package mailer delivers drafted outreach emails through an SMTP relay.
// The relay is assumed open (a MailHog-style development relay); no
// authentication is attempted and every transport failure maps to a boolean
// outcome rather than an error.
package mailer

import (
	"fmt"
	"log"
	"net/mail"
	"net/smtp"
	"strings"

	"github.com/nsavic/leadflow/internal/types"
)

// Transport sends a raw mail message. It exists so tests can intercept
// delivery without a live relay.
type Transport interface {
	SendMail(addr, from string, to []string, msg []byte) error
}

// SMTPTransport is the production Transport over net/smtp.
type SMTPTransport struct{}

// SendMail delivers msg through the relay at addr without authentication.
func (SMTPTransport) SendMail(addr, from string, to []string, msg []byte) error {
	return smtp.SendMail(addr, nil, from, to, msg)
}

// Config holds the relay address and sender identity.
type Config struct {
	Addr      string // relay host:port
	FromEmail string
	FromName  string
}

// Mailer renders and sends outreach emails.
type Mailer struct {
	config    Config
	transport Transport
}

// New creates a Mailer using the real SMTP transport.
func New(config Config) *Mailer {
	return NewWithTransport(config, SMTPTransport{})
}

// NewWithTransport creates a Mailer with a custom transport.
func NewWithTransport(config Config, transport Transport) *Mailer {
	return &Mailer{config: config, transport: transport}
}

// SendOutreach sends one lead's personalized email. It returns true only on
// a successful transport-level send. Leads without a recipient address or a
// drafted body are rejected before any network activity.
func (m *Mailer) SendOutreach(lead types.EnrichedLead) bool {
	toEmail := lead.Lead.Get("email", "")
	toName := lead.Lead.Get("name", "there")
	company := lead.Lead.Get("company", "your company")
	body := lead.PersonalizedEmail

	if toEmail == "" || body == "" {
		log.Printf("mailer: missing email or body for %s", toName)
		return false
	}
	if !isValidEmail(toEmail) {
		log.Printf("mailer: invalid recipient address %q", toEmail)
		return false
	}

	subject := fmt.Sprintf("Quick question about %s's growth", company)
	msg := m.buildMessage(toName, toEmail, subject, body)

	if err := m.transport.SendMail(m.config.Addr, m.config.FromEmail, []string{toEmail}, []byte(msg)); err != nil {
		log.Printf("mailer: failed to send to %s (%s): %v", toName, toEmail, err)
		return false
	}

	log.Printf("mailer: email sent to %s (%s)", toName, toEmail)
	return true
}

// SendBatch sequentially sends each lead's outreach and aggregates stats.
func (m *Mailer) SendBatch(leads []types.EnrichedLead) types.BatchStats {
	stats := types.BatchStats{Total: len(leads), SuccessRate: "0%"}

	for _, lead := range leads {
		if m.SendOutreach(lead) {
			stats.Sent++
		} else {
			stats.Failed++
		}
	}

	if stats.Total > 0 {
		stats.SuccessRate = fmt.Sprintf("%.1f%%", float64(stats.Sent)/float64(stats.Total)*100)
	}
	return stats
}

// messageBoundary separates the plain-text and HTML alternatives.
const messageBoundary = "leadflow-alternative-boundary"

// buildMessage renders a multipart/alternative message with CRLF headers.
// Display names go through net/mail so names carrying commas or angle
// brackets stay quoted instead of corrupting the header.
func (m *Mailer) buildMessage(toName, toEmail, subject, body string) string {
	var b strings.Builder

	from := mail.Address{Name: m.config.FromName, Address: m.config.FromEmail}
	to := mail.Address{Name: toName, Address: toEmail}

	b.WriteString(fmt.Sprintf("From: %s\r\n", from.String()))
	b.WriteString(fmt.Sprintf("To: %s\r\n", to.String()))
	b.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=%q\r\n", messageBoundary))
	b.WriteString("\r\n")

	b.WriteString(fmt.Sprintf("--%s\r\n", messageBoundary))
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	b.WriteString(m.textBody(toName, body))
	b.WriteString("\r\n")

	b.WriteString(fmt.Sprintf("--%s\r\n", messageBoundary))
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	b.WriteString(m.htmlBody(toName, body))
	b.WriteString("\r\n")

	b.WriteString(fmt.Sprintf("--%s--\r\n", messageBoundary))
	return b.String()
}

func (m *Mailer) textBody(toName, body string) string {
	return fmt.Sprintf(`Hi %s,

%s

Best regards,
%s

---
This is an automated outreach email from AI Sales CRM
`, toName, body, m.config.FromName)
}

func (m *Mailer) htmlBody(toName, body string) string {
	return fmt.Sprintf(`<html>
  <head></head>
  <body>
    <p>Hi %s,</p>
    %s
    <p>Best regards,<br>
    %s</p>
    <hr>
    <p style="color: #666; font-size: 12px;">
      This is an automated outreach email from AI Sales CRM
    </p>
  </body>
</html>
`, toName, strings.ReplaceAll(body, "\n", "<br>"), m.config.FromName)
}

// isValidEmail performs the minimal local@domain.tld structure check done
// before dialing the relay.
func isValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	if len(parts[0]) == 0 || len(parts[1]) == 0 {
		return false
	}
	return strings.Contains(parts[1], ".")
}
