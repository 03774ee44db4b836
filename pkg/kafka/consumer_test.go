package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
)

type flakyHandler struct {
	fails int
	calls int
	panic bool
}

func (h *flakyHandler) Topic() string { return "updates" }

func (h *flakyHandler) Handle(_ context.Context, _ []byte) error {
	h.calls++
	if h.panic {
		panic("boom")
	}
	if h.calls <= h.fails {
		return errors.New("transient")
	}
	return nil
}

func newTestConsumer(t *testing.T, retries int) *Consumer {
	t.Helper()
	c, err := NewConsumer(WithConsumerBrokers([]string{"localhost:9092"}), WithConsumerRetry(retries, time.Millisecond, 2*time.Millisecond))
	if err != nil {
		t.Fatalf("new consumer: %v", err)
	}
	return c
}

func TestNewConsumerRequiresBrokers(t *testing.T) {
	if _, err := NewConsumer(); err == nil {
		t.Fatalf("expected error without brokers")
	}
}

func TestHandleWithRetryRecovers(t *testing.T) {
	c := newTestConsumer(t, 3)
	h := &flakyHandler{fails: 2}
	if err := c.handleWithRetry(h, nil); err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if h.calls != 3 {
		t.Fatalf("expected 3 calls, got %d", h.calls)
	}
}

func TestHandleWithRetryGivesUp(t *testing.T) {
	c := newTestConsumer(t, 1)
	h := &flakyHandler{fails: 10}
	if err := c.handleWithRetry(h, nil); err == nil {
		t.Fatalf("expected failure")
	}
	if h.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", h.calls)
	}
}

func TestSafeHandleRecoversPanic(t *testing.T) {
	c := newTestConsumer(t, 0)
	if err := c.safeHandle(&flakyHandler{panic: true}, nil); err == nil {
		t.Fatalf("expected panic to become an error")
	}
}

func TestProcessIgnoresUnknownTopic(t *testing.T) {
	c := newTestConsumer(t, 0)
	h := &flakyHandler{}
	c.RegisterHandler(h)
	c.process(kafka.Message{Topic: "other"})
	if h.calls != 0 {
		t.Fatalf("handler should not run for other topics")
	}
	c.process(kafka.Message{Topic: "updates"})
	if h.calls != 1 {
		t.Fatalf("handler should run once, got %d", h.calls)
	}
}

func TestBackoffBounds(t *testing.T) {
	for attempt := 1; attempt < 40; attempt++ {
		d := backoffWithJitter(10*time.Millisecond, 100*time.Millisecond, attempt)
		if d <= 0 || d > 100*time.Millisecond {
			t.Fatalf("attempt %d: backoff %v out of range", attempt, d)
		}
	}
}
