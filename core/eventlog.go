package orchestration

import (
	"sync"
	"time"
)

// eventLogCapacity bounds the diagnostic log to the most recent entries.
const eventLogCapacity = 200

// Lifecycle entry types recorded in the event log.
const (
	logTypeConnected      = "connected"
	logTypeDisconnected   = "disconnected"
	logTypeBotStarted     = "bot-started"
	logTypeBotStopped     = "bot-stopped"
	logTypeUserTranscript = "user-transcript"
	logTypeBotTranscript  = "bot-transcript"
	logTypeUserMessage    = "user-message"
)

// EventLogEntry is one diagnostic lifecycle entry.
type EventLogEntry struct {
	Timestamp time.Time
	Type      string
}

// EventLog is a bounded append-only log of lifecycle events. It is a pure
// diagnostic ring buffer: once full, the oldest entry is evicted first.
type EventLog struct {
	mu      sync.Mutex
	entries []EventLogEntry
	clock   func() time.Time
}

func NewEventLog() *EventLog {
	return &EventLog{clock: time.Now}
}

// Append records an entry, evicting the oldest once the capacity is hit.
func (l *EventLog) Append(entryType string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.entries) == eventLogCapacity {
		l.entries = l.entries[1:]
	}
	l.entries = append(l.entries, EventLogEntry{Timestamp: l.clock(), Type: entryType})
}

// Entries returns a snapshot of the logged entries, oldest first.
func (l *EventLog) Entries() []EventLogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries := make([]EventLogEntry, len(l.entries))
	copy(entries, l.entries)
	return entries
}

// Len reports the number of logged entries.
func (l *EventLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
