package notify

import (
	"context"
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/ecotreat/portal-api/internal/application/access"
	"github.com/ecotreat/portal-api/pkg/config"
)

var _ access.Notifier = (*SMTPSender)(nil)

// SMTPSender delivers lifecycle and inquiry notifications over SMTP.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPSender builds the sender from the SMTP configuration.
func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// Send composes the message for kind and delivers it. The context is honored
// only between messages; gomail has no per-dial cancellation.
func (s *SMTPSender) Send(ctx context.Context, kind, recipient string, params map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	subject, body, err := compose(kind, params)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", recipient)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send %s: %w", kind, err)
	}
	return nil
}

// compose returns the subject and plain-text body for a notification kind.
func compose(kind string, p map[string]string) (subject, body string, err error) {
	switch kind {
	case access.KindVerification:
		subject = "Your EcoTreat portal access is active"
		body = fmt.Sprintf(
			"Hello %s,\n\nYour subscription has been approved and is valid until %s.\n\nYour access token:\n%s\n\nYou can now sign in and use the proposal toolkit.\n",
			p["name"], p["expires"], p["token"])
	case access.KindExpiryWarning:
		subject = "Your EcoTreat subscription is about to expire"
		body = fmt.Sprintf(
			"Hello %s,\n\nYour subscription expires in %s day(s), on %s.\nPlease renew to keep access to the calculator tools.\n",
			p["name"], p["days_left"], p["expires"])
	case access.KindRejection:
		subject = "Your EcoTreat portal application"
		body = fmt.Sprintf(
			"Hello %s,\n\nWe are unable to activate your portal account at this time.\nPlease contact our team if you believe this is an error.\n",
			p["name"])
	case access.KindContactInquiry:
		subject = "New contact inquiry from " + p["name"]
		body = fmt.Sprintf(
			"Name: %s\nEmail: %s\nCompany: %s\n\n%s\n",
			p["name"], p["email"], p["company"], p["message"])
	default:
		return "", "", fmt.Errorf("unknown notification kind %q", kind)
	}
	return subject, body, nil
}
