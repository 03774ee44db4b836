package logger

import (
	"context"
	"sync"
	"testing"
)

type capturePublisher struct {
	mu       sync.Mutex
	topic    string
	payloads []interface{}
}

func (p *capturePublisher) PublishMessage(_ context.Context, topic string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topic = topic
	p.payloads = append(p.payloads, payload)
	return nil
}

func TestCollectorAggregatesDuplicates(t *testing.T) {
	c := NewLogCollector(&CollectionConfig{CountThreshold: 100})
	defer c.Close()

	for i := 0; i < 3; i++ {
		c.AddLog("warn", "backend unreachable", map[string]interface{}{"op": "watchlist"}, "a.go:1")
	}
	c.AddLog("error", "decode failed", nil, "b.go:2")

	got := c.Recent(10, "", "")
	if len(got) != 2 {
		t.Fatalf("expected 2 aggregated entries, got %d", len(got))
	}
	for _, e := range got {
		if e.Message == "backend unreachable" && e.Count != 3 {
			t.Fatalf("expected count 3, got %d", e.Count)
		}
	}
}

func TestCollectorRecentFilters(t *testing.T) {
	c := NewLogCollector(&CollectionConfig{})
	defer c.Close()

	c.AddLog("warn", "Backend unreachable", nil, "a.go:1")
	c.AddLog("error", "decode failed", nil, "b.go:2")

	if got := c.Recent(10, "error", ""); len(got) != 1 || got[0].Message != "decode failed" {
		t.Fatalf("level filter mismatch: %+v", got)
	}
	if got := c.Recent(10, "", "backend"); len(got) != 1 || got[0].Level != "warn" {
		t.Fatalf("search filter mismatch: %+v", got)
	}
	if got := c.Recent(1, "", ""); len(got) != 1 {
		t.Fatalf("limit not applied: %d", len(got))
	}
}

func TestCollectorRecentCapacity(t *testing.T) {
	c := NewLogCollector(&CollectionConfig{RecentCapacity: 2})
	defer c.Close()

	c.AddLog("warn", "one", nil, "x")
	c.AddLog("warn", "two", nil, "x")
	c.AddLog("warn", "three", nil, "x")

	if got := c.Recent(0, "", ""); len(got) != 2 {
		t.Fatalf("expected capacity 2, got %d", len(got))
	}
}

func TestCollectorFlushesAtThreshold(t *testing.T) {
	pub := &capturePublisher{}
	c := NewLogCollector(&CollectionConfig{CountThreshold: 2, Topic: "riskdash.logs", Publisher: pub})

	c.AddLog("warn", "one", nil, "x")
	c.AddLog("warn", "two", nil, "x")
	c.Close()

	pub.mu.Lock()
	defer pub.mu.Unlock()
	if len(pub.payloads) != 1 {
		t.Fatalf("expected one flush, got %d", len(pub.payloads))
	}
	if pub.topic != "riskdash.logs" {
		t.Fatalf("unexpected topic %q", pub.topic)
	}
	entries, ok := pub.payloads[0].([]AggregatedLogEntry)
	if !ok || len(entries) != 2 {
		t.Fatalf("unexpected payload %#v", pub.payloads[0])
	}
}
