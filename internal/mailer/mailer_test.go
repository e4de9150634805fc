package mailer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/emersion/go-smtp"

	"github.com/MrSnakeDoc/sitecms/internal/domain"
	"github.com/MrSnakeDoc/sitecms/internal/logger"
)

type received struct {
	from string
	to   []string
	data string
}

type backend struct {
	mu   sync.Mutex
	msgs []received
}

func (b *backend) NewSession(*smtp.Conn) (smtp.Session, error) {
	return &session{b: b}, nil
}

type session struct {
	b   *backend
	cur received
}

func (s *session) Mail(from string, _ *smtp.MailOptions) error {
	s.cur.from = from
	return nil
}

func (s *session) Rcpt(to string, _ *smtp.RcptOptions) error {
	s.cur.to = append(s.cur.to, to)
	return nil
}

func (s *session) Data(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.cur.data = string(data)
	s.b.mu.Lock()
	s.b.msgs = append(s.b.msgs, s.cur)
	s.b.mu.Unlock()
	return nil
}

func (s *session) Reset()        { s.cur = received{} }
func (s *session) Logout() error { return nil }

func (s *session) AuthPlain(string, string) error { return smtp.ErrAuthUnsupported }

func startServer(t *testing.T) (*backend, string, int) {
	t.Helper()
	be := &backend{}
	srv := smtp.NewServer(be)
	srv.Domain = "localhost"
	srv.ReadTimeout = 5 * time.Second
	srv.WriteTimeout = 5 * time.Second

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	go func() { _ = srv.Serve(ln) }()
	t.Cleanup(func() { _ = srv.Close() })

	host, portStr, _ := net.SplitHostPort(ln.Addr().String())
	port, _ := strconv.Atoi(portStr)
	return be, host, port
}

func TestSMTPSenderDelivers(t *testing.T) {
	be, host, port := startServer(t)
	s := NewSMTPSender(5*time.Second, logger.NewNop())

	cfg := domain.SMTPConfig{Host: host, Port: port, FromEmail: "no-reply@x.com", FromName: "Tilo Live"}
	err := s.Send(context.Background(), cfg, Outgoing{To: "a@x.com", Subject: "Hello", HTMLBody: "<p>Hi</p>"})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	be.mu.Lock()
	defer be.mu.Unlock()
	if len(be.msgs) != 1 {
		t.Fatalf("server received %d messages, want 1", len(be.msgs))
	}
	got := be.msgs[0]
	if got.from != "no-reply@x.com" || len(got.to) != 1 || got.to[0] != "a@x.com" {
		t.Errorf("envelope = %q -> %v", got.from, got.to)
	}
	for _, want := range []string{"Subject: Hello", "text/html", "<p>Hi</p>", "Tilo Live"} {
		if !strings.Contains(got.data, want) {
			t.Errorf("message missing %q:\n%s", want, got.data)
		}
	}
}

func TestSMTPSenderNotConfigured(t *testing.T) {
	s := NewSMTPSender(time.Second, logger.NewNop())
	err := s.Send(context.Background(), domain.SMTPConfig{}, Outgoing{To: "a@x.com"})
	if !errors.Is(err, domain.ErrNotConfigured) {
		t.Errorf("Send() error = %v, want ErrNotConfigured", err)
	}
}

func TestSMTPSenderDialFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().(*net.TCPAddr)
	_ = ln.Close()

	s := NewSMTPSender(time.Second, logger.NewNop())
	cfg := domain.SMTPConfig{Host: "127.0.0.1", Port: addr.Port, FromEmail: "no-reply@x.com"}
	if err := s.Send(context.Background(), cfg, Outgoing{To: "a@x.com"}); err == nil {
		t.Error("Send() to a closed port succeeded")
	}
}

func TestBuildMessage(t *testing.T) {
	cfg := domain.SMTPConfig{FromEmail: "no-reply@x.com", FromName: "Acme"}
	data, err := buildMessage(cfg, Outgoing{To: "a@x.com", Subject: "Héllo", HTMLBody: "<b>x</b>"}, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	if err != nil {
		t.Fatalf("buildMessage() error = %v", err)
	}
	for _, want := range []string{"Acme", "<no-reply@x.com>", "<a@x.com>", "Message-Id:", "02 Jan 2024"} {
		if !bytes.Contains(data, []byte(want)) {
			t.Errorf("message missing %q:\n%s", want, data)
		}
	}
}
