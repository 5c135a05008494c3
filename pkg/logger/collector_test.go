package logger

import (
	"context"
	"testing"
	"time"
)

type capturePublisher struct {
	ch chan []AggregatedLogEntry
}

func (p *capturePublisher) PublishMessage(_ context.Context, _ string, payload interface{}) error {
	entries, ok := payload.([]AggregatedLogEntry)
	if !ok {
		return nil
	}
	p.ch <- entries
	return nil
}

func TestCollectorAggregatesDuplicates(t *testing.T) {
	pub := &capturePublisher{ch: make(chan []AggregatedLogEntry, 1)}
	c := NewLogCollector(&CollectionConfig{
		TimeInterval:   time.Hour,
		CountThreshold: 100,
		Topic:          "logs",
		Publisher:      pub,
	})

	fields := map[string]interface{}{"body": "mars"}
	c.AddLog("error", "position lookup failed", fields, "repo.go:42")
	c.AddLog("error", "position lookup failed", fields, "repo.go:42")
	c.AddLog("warn", "slow query", nil, "repo.go:80")
	c.Close()

	select {
	case entries := <-pub.ch:
		if len(entries) != 2 {
			t.Fatalf("got %d aggregated entries, want 2", len(entries))
		}
		for _, e := range entries {
			if e.Message == "position lookup failed" && e.Count != 2 {
				t.Fatalf("duplicate count = %d, want 2", e.Count)
			}
		}
	case <-time.After(2 * time.Second):
		t.Fatal("final flush never published")
	}
}

func TestCollectorFlushesOnThreshold(t *testing.T) {
	pub := &capturePublisher{ch: make(chan []AggregatedLogEntry, 1)}
	c := NewLogCollector(&CollectionConfig{
		TimeInterval:   time.Hour,
		CountThreshold: 2,
		Topic:          "logs",
		Publisher:      pub,
	})
	defer c.Close()

	c.AddLog("error", "first", nil, "a.go:1")
	c.AddLog("error", "second", nil, "a.go:2")

	select {
	case entries := <-pub.ch:
		if len(entries) != 2 {
			t.Fatalf("got %d entries, want 2", len(entries))
		}
	case <-time.After(2 * time.Second):
		t.Fatal("threshold flush never published")
	}
}
