// Package mailer delivers admin-composed e-mails through the configured SMTP relay.
package mailer

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"strconv"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"

	"github.com/MrSnakeDoc/sitecms/internal/domain"
	"github.com/MrSnakeDoc/sitecms/internal/logger"
	"github.com/MrSnakeDoc/sitecms/internal/metrics"
)

// Outgoing is one message to send. HTMLBody is sent as text/html.
type Outgoing struct {
	To       string
	Subject  string
	HTMLBody string
}

// Sender delivers an Outgoing message using cfg.
type Sender interface {
	Send(ctx context.Context, cfg domain.SMTPConfig, msg Outgoing) error
}

// SMTPSender talks to a real relay. Port 465 uses implicit TLS; any other
// port upgrades with STARTTLS when the server offers it.
type SMTPSender struct {
	timeout time.Duration
	logger  logger.Logger
	now     func() time.Time
}

func NewSMTPSender(timeout time.Duration, log logger.Logger) *SMTPSender {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &SMTPSender{timeout: timeout, logger: logger.Component(log, "mailer"), now: time.Now}
}

func (s *SMTPSender) Send(ctx context.Context, cfg domain.SMTPConfig, msg Outgoing) error {
	if !cfg.Configured() {
		return domain.ErrNotConfigured
	}

	body, err := buildMessage(cfg, msg, s.now())
	if err != nil {
		metrics.MailSent.WithLabelValues("failed").Inc()
		return err
	}

	if err := s.deliver(ctx, cfg, msg.To, body); err != nil {
		metrics.MailSent.WithLabelValues("failed").Inc()
		s.logger.Warn("mail delivery failed",
			logger.String("host", cfg.Host),
			logger.Int("port", cfg.Port),
			logger.Error(err))
		return err
	}

	metrics.MailSent.WithLabelValues("sent").Inc()
	s.logger.Info("mail sent", logger.String("host", cfg.Host))
	return nil
}

func (s *SMTPSender) deliver(ctx context.Context, cfg domain.SMTPConfig, to string, body []byte) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	implicitTLS := cfg.Port == 465

	var (
		conn net.Conn
		err  error
	)
	if implicitTLS {
		d := &tls.Dialer{Config: &tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12}}
		conn, err = d.DialContext(ctx, "tcp", addr)
	} else {
		var d net.Dialer
		conn, err = d.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c := smtp.NewClient(conn)
	defer c.Close()

	if !implicitTLS {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err := c.StartTLS(&tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12}); err != nil {
				return fmt.Errorf("starttls: %w", err)
			}
		}
	}

	if cfg.Username != "" {
		if err := c.Auth(sasl.NewPlainClient("", cfg.Username, cfg.Password)); err != nil {
			return fmt.Errorf("auth: %w", err)
		}
	}

	if err := c.Mail(cfg.FromEmail, nil); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := c.Rcpt(to, nil); err != nil {
		return fmt.Errorf("rcpt to: %w", err)
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := w.Write(body); err != nil {
		_ = w.Close()
		return fmt.Errorf("write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("end data: %w", err)
	}

	return c.Quit()
}

func buildMessage(cfg domain.SMTPConfig, msg Outgoing, now time.Time) ([]byte, error) {
	var h mail.Header
	h.SetDate(now)
	h.SetAddressList("From", []*mail.Address{{Name: cfg.FromName, Address: cfg.FromEmail}})
	h.SetAddressList("To", []*mail.Address{{Address: msg.To}})
	h.SetSubject(msg.Subject)
	h.SetContentType("text/html", map[string]string{"charset": "utf-8"})
	if err := h.GenerateMessageID(); err != nil {
		return nil, fmt.Errorf("message id: %w", err)
	}

	var buf bytes.Buffer
	w, err := mail.CreateSingleInlineWriter(&buf, h)
	if err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	if _, err := io.WriteString(w, msg.HTMLBody); err != nil {
		return nil, fmt.Errorf("write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close message: %w", err)
	}
	return buf.Bytes(), nil
}
