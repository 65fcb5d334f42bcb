package mail

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/99minutos/postboard/internal/core/ports"
)

func TestNew_PicksLogMailerWithoutHost(t *testing.T) {
	m, err := New(SMTPConfig{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := m.(*LogMailer); !ok {
		t.Fatalf("expected *LogMailer, got %T", m)
	}

	m, err = New(SMTPConfig{Host: "smtp.example.com", Port: 587, From: "no-reply@example.com"}, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := m.(*SMTPMailer); !ok {
		t.Fatalf("expected *SMTPMailer, got %T", m)
	}
}

func TestLogMailer_Send(t *testing.T) {
	var buf bytes.Buffer
	m := NewLogMailer(zerolog.New(&buf))

	err := m.Send(context.Background(), ports.MailMessage{To: "a@b.com", Subject: "Change Password", HTML: "<a>x</a>"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "a@b.com") {
		t.Fatalf("recipient not logged: %s", buf.String())
	}
}

func TestBuildMessage(t *testing.T) {
	msg, err := buildMessage("no-reply@example.com", ports.MailMessage{To: "a@b.com", Subject: "Change Password", HTML: "<b>hi</b>"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var buf bytes.Buffer
	if _, err := msg.WriteTo(&buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Subject: Change Password", "<a@b.com>", "text/html"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered message missing %q", want)
		}
	}

	if _, err := buildMessage("not an address", ports.MailMessage{To: "a@b.com"}); err == nil {
		t.Fatalf("expected error for invalid sender")
	}
}
