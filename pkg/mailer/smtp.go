package mailer

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"mime/quotedprintable"
	"net"
	"net/smtp"
	"strconv"
)

// Options holds the SMTP connection settings and the values interpolated into
// every message (application name, public base URL for links).
type Options struct {
	// Host is the SMTP server hostname.
	Host string
	// Port is the SMTP server port, typically 587 for STARTTLS submission.
	Port int
	// Username and Password authenticate against the server. Leave empty to
	// skip AUTH (e.g. a local relay in development).
	Username string
	Password string
	// From is the sender address placed in the From header and envelope.
	From string
	// AppName is the product name used in subjects and bodies.
	AppName string
	// BaseURL is the public URL of the service, used to build verification and
	// reset links.
	BaseURL string
}

// SMTP implements Mailer over a plain SMTP submission with STARTTLS.
// Safe for concurrent use; every send opens its own connection.
type SMTP struct {
	options Options
}

// Ensure SMTP implements Mailer.
var _ Mailer = (*SMTP)(nil)

// NewSMTP creates an SMTP-backed mailer.
func NewSMTP(options Options) *SMTP {
	return &SMTP{options: options}
}

// SendVerificationEmail sends the email-confirmation link.
func (s *SMTP) SendVerificationEmail(ctx context.Context, to, username, token string) error {
	body, err := render("verification", templateData{
		AppName:  s.options.AppName,
		Username: username,
		Link:     s.options.BaseURL + "/api/auth/verify-email?token=" + token,
	})
	if err != nil {
		return err
	}

	return s.send(ctx, to, fmt.Sprintf("Verify your %s account", s.options.AppName), body)
}

// SendWelcomeEmail greets a user after their address is verified.
func (s *SMTP) SendWelcomeEmail(ctx context.Context, to, username, firstName string) error {
	body, err := render("welcome", templateData{
		AppName:   s.options.AppName,
		Username:  username,
		FirstName: firstName,
	})
	if err != nil {
		return err
	}

	return s.send(ctx, to, fmt.Sprintf("Welcome to %s", s.options.AppName), body)
}

// SendPasswordResetEmail sends the password-reset link.
func (s *SMTP) SendPasswordResetEmail(ctx context.Context, to, username, token string) error {
	body, err := render("reset", templateData{
		AppName:  s.options.AppName,
		Username: username,
		Link:     s.options.BaseURL + "/reset-password?token=" + token,
	})
	if err != nil {
		return err
	}

	return s.send(ctx, to, fmt.Sprintf("Reset your %s password", s.options.AppName), body)
}

func render(name string, data templateData) (string, error) {
	var buf bytes.Buffer
	if err := emailTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("could not render %s email: %w", name, err)
	}

	return buf.String(), nil
}

// BuildMessage assembles an RFC 5322 message with a quoted-printable HTML body.
func BuildMessage(from, to, subject, htmlBody string) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	buf.WriteString("Content-Transfer-Encoding: quoted-printable\r\n")
	buf.WriteString("\r\n")

	qp := quotedprintable.NewWriter(&buf)
	if _, err := qp.Write([]byte(htmlBody)); err != nil {
		return nil, fmt.Errorf("could not encode body: %w", err)
	}
	if err := qp.Close(); err != nil {
		return nil, fmt.Errorf("could not finish body: %w", err)
	}

	return buf.Bytes(), nil
}

// send delivers a single message. The connection is dialed with the provided
// context; the SMTP conversation itself is bounded by the server's timeouts.
func (s *SMTP) send(ctx context.Context, to, subject, htmlBody string) error {
	msg, err := BuildMessage(s.options.From, to, subject, htmlBody)
	if err != nil {
		return err
	}

	addr := net.JoinHostPort(s.options.Host, strconv.Itoa(s.options.Port))
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("could not dial smtp server: %w", err)
	}

	client, err := smtp.NewClient(conn, s.options.Host)
	if err != nil {
		_ = conn.Close()

		return fmt.Errorf("could not create smtp client: %w", err)
	}
	defer func() {
		_ = client.Close()
	}()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: s.options.Host, MinVersion: tls.VersionTLS12}); err != nil {
			return fmt.Errorf("could not start tls: %w", err)
		}
	}

	if s.options.Username != "" {
		auth := smtp.PlainAuth("", s.options.Username, s.options.Password, s.options.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("could not authenticate: %w", err)
		}
	}

	if err := client.Mail(s.options.From); err != nil {
		return fmt.Errorf("could not set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("could not set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("could not open data stream: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("could not write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("could not finish message: %w", err)
	}

	return client.Quit()
}
