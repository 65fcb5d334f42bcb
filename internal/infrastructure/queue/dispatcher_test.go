package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/99minutos/postboard/internal/core/ports"
	"github.com/99minutos/postboard/internal/pkg/metrics"
)

type recordingMailer struct {
	mu   sync.Mutex
	sent []ports.MailMessage
	fail map[string]bool
}

func (m *recordingMailer) Send(_ context.Context, msg ports.MailMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail[msg.To] {
		return errors.New("smtp down")
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *recordingMailer) subjectsFor(to string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, msg := range m.sent {
		if msg.To == to {
			out = append(out, msg.Subject)
		}
	}
	return out
}

func TestDispatcher_DeliversAndDrainsOnClose(t *testing.T) {
	mailer := &recordingMailer{}
	d := NewDispatcher(3, mailer, zerolog.Nop())
	d.Start(context.Background())

	for i := range 20 {
		to := fmt.Sprintf("user%d@example.com", i%4)
		if err := d.Enqueue(context.Background(), ports.MailMessage{To: to, Subject: fmt.Sprintf("m%02d", i)}); err != nil {
			t.Fatalf("enqueue: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := d.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}

	total := 0
	for r := range 4 {
		subjects := mailer.subjectsFor(fmt.Sprintf("user%d@example.com", r))
		total += len(subjects)
		for i := 1; i < len(subjects); i++ {
			if subjects[i-1] > subjects[i] {
				t.Fatalf("per-recipient order violated: %v", subjects)
			}
		}
	}
	if total != 20 {
		t.Fatalf("expected 20 deliveries, got %d", total)
	}
}

func TestDispatcher_FailureDoesNotStopWorker(t *testing.T) {
	failed := metrics.MailDeliveriesTotal.WithLabelValues("failed")
	sent := metrics.MailDeliveriesTotal.WithLabelValues("sent")
	failedBefore, sentBefore := testutil.ToFloat64(failed), testutil.ToFloat64(sent)

	mailer := &recordingMailer{fail: map[string]bool{"bad@example.com": true}}
	d := NewDispatcher(1, mailer, zerolog.Nop())
	d.Start(context.Background())

	_ = d.Enqueue(context.Background(), ports.MailMessage{To: "bad@example.com", Subject: "a"})
	_ = d.Enqueue(context.Background(), ports.MailMessage{To: "good@example.com", Subject: "b"})

	if err := d.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}
	if got := mailer.subjectsFor("good@example.com"); len(got) != 1 {
		t.Fatalf("expected delivery after failure, got %v", got)
	}
	if got := testutil.ToFloat64(failed) - failedBefore; got != 1 {
		t.Fatalf("expected 1 failed delivery counted, got %v", got)
	}
	if got := testutil.ToFloat64(sent) - sentBefore; got != 1 {
		t.Fatalf("expected 1 sent delivery counted, got %v", got)
	}
}

func TestDispatcher_EnqueueAfterClose(t *testing.T) {
	d := NewDispatcher(2, &recordingMailer{}, zerolog.Nop())
	d.Start(context.Background())
	if err := d.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := d.Close(context.Background()); err != nil {
		t.Fatalf("second close: %v", err)
	}

	err := d.Enqueue(context.Background(), ports.MailMessage{To: "x@example.com"})
	if !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(8, &recordingMailer{}, zerolog.Nop())
	a := d.shardIndex("Alice@Example.com")
	b := d.shardIndex("alice@example.com")
	if a != b {
		t.Fatalf("recipient casing should not change shard: %d vs %d", a, b)
	}
	if a < 0 || a >= 8 {
		t.Fatalf("shard out of range: %d", a)
	}
}
