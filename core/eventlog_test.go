package orchestration

import (
	"fmt"
	"testing"
)

func TestEventLogKeepsAppendOrder(t *testing.T) {
	log := NewEventLog()

	log.Append(logTypeConnected)
	log.Append(logTypeBotStarted)
	log.Append(logTypeUserTranscript)

	entries := log.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	for i, want := range []string{logTypeConnected, logTypeBotStarted, logTypeUserTranscript} {
		if entries[i].Type != want {
			t.Fatalf("entry %d: expected %q, got %q", i, want, entries[i].Type)
		}
	}
}

func TestEventLogEvictsOldestAtCapacity(t *testing.T) {
	log := NewEventLog()

	for i := 0; i < eventLogCapacity+5; i++ {
		log.Append(fmt.Sprintf("entry-%d", i))
	}

	entries := log.Entries()
	if len(entries) != eventLogCapacity {
		t.Fatalf("expected the log to hold %d entries, got %d", eventLogCapacity, len(entries))
	}
	if entries[0].Type != "entry-5" {
		t.Fatalf("expected the oldest entries to be evicted first, got %q", entries[0].Type)
	}
	if last := entries[len(entries)-1].Type; last != fmt.Sprintf("entry-%d", eventLogCapacity+4) {
		t.Fatalf("unexpected newest entry %q", last)
	}
}
