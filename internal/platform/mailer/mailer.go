// Copyright (c) 2026 Revora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package mailer provides outbound email delivery for the Revora platform.

Its single production use is dispatching signup confirmation codes. Delivery
is best-effort: the auth flow treats a failed send as a logged incident, not
a failed signup, because the code can always be re-requested.

Architecture:

  - Mailer: The narrow interface consumed by the auth service.
  - SMTPMailer: gomail-backed implementation for real deployments.
  - LogMailer: development fallback that writes the message to the log.
*/
package mailer

import (
	"fmt"
	"log/slog"
	"time"

	"gopkg.in/gomail.v2"
)

// Mailer is the notification channel consumed by the auth flow.
type Mailer interface {
	// Send delivers a single plain-subject, HTML-body message.
	Send(to, subject, htmlBody string) error
}

// # SMTP Implementation

// SMTPConfig holds the dialer settings for outbound mail.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer delivers messages through an authenticated SMTP relay.
type SMTPMailer struct {
	config SMTPConfig
}

// NewSMTPMailer constructs an [SMTPMailer] from dialer settings.
func NewSMTPMailer(config SMTPConfig) *SMTPMailer {
	return &SMTPMailer{config: config}
}

// Send implements [Mailer] using gomail's DialAndSend.
func (mailer *SMTPMailer) Send(to, subject, htmlBody string) error {
	message := gomail.NewMessage()
	message.SetHeader("From", mailer.config.From)
	message.SetHeader("To", to)
	message.SetHeader("Subject", subject)
	message.SetBody("text/html", htmlBody)

	dialer := gomail.NewDialer(mailer.config.Host, mailer.config.Port, mailer.config.Username, mailer.config.Password)
	if err := dialer.DialAndSend(message); err != nil {
		return fmt.Errorf("mailer: failed to send to %s: %w", to, err)
	}
	return nil
}

// # Development Fallback

// LogMailer writes outbound messages to the structured log instead of SMTP.
// Used when no SMTP host is configured (local development, CI).
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer constructs a [LogMailer].
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send implements [Mailer] by logging the message body.
func (mailer *LogMailer) Send(to, subject, htmlBody string) error {
	mailer.logger.Info("mail_logged_instead_of_sent",
		slog.String("to", to),
		slog.String("subject", subject),
		slog.String("body", htmlBody),
	)
	return nil
}

// # Templates

// ConfirmationCodeHTML renders the signup confirmation-code message body.
func ConfirmationCodeHTML(code string, cooldown time.Duration) string {
	return fmt.Sprintf(
		`<p>Hello,</p><p>Your Revora confirmation code is <b style="font-size:18px;">%s</b>.</p>`+
			`<p>Exchange it together with your username at the token endpoint. `+
			`A new code can be requested in %d minutes. Do not share it with anyone.</p>`,
		code, int(cooldown.Minutes()),
	)
}
