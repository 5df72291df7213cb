package orchestration

import (
	"testing"
	"time"
)

func TestTranscriptReplacesOpenTurnInPlace(t *testing.T) {
	transcript := NewTranscript()

	first := transcript.Observe(RoleUser, "I would", false)
	second := transcript.Observe(RoleUser, "I would use", false)

	if transcript.Len() != 1 {
		t.Fatalf("expected interim updates to collapse into one message, got %d", transcript.Len())
	}
	if first.ID != second.ID {
		t.Fatalf("expected the open turn to keep its identity, got %q then %q", first.ID, second.ID)
	}

	final := transcript.Observe(RoleUser, "I would use channels", true)
	if transcript.Len() != 1 {
		t.Fatalf("expected the final update to close the open turn, got %d messages", transcript.Len())
	}
	if !final.Final || final.Text != "I would use channels" {
		t.Fatalf("unexpected closed turn: %+v", final)
	}

	next := transcript.Observe(RoleUser, "And also", false)
	if next.ID == final.ID {
		t.Fatalf("expected a closed turn to stay closed")
	}
	if transcript.Len() != 2 {
		t.Fatalf("expected a new message after a closed turn, got %d", transcript.Len())
	}
}

func TestTranscriptInterleavedRolesOpenSeparateTurns(t *testing.T) {
	transcript := NewTranscript()

	transcript.Observe(RoleUser, "so the", false)
	transcript.Observe(RoleAgent, "take your time", true)
	transcript.Observe(RoleUser, "so the answer is", true)

	messages := transcript.Messages()
	if len(messages) != 3 {
		t.Fatalf("expected the agent turn to close the user's open turn, got %d messages", len(messages))
	}
	if messages[0].Role != RoleUser || messages[0].Final {
		t.Fatalf("expected the interrupted user turn to stay as observed: %+v", messages[0])
	}
	if messages[2].Text != "so the answer is" {
		t.Fatalf("unexpected trailing message: %+v", messages[2])
	}
}

func TestTranscriptSnapshotIsDetached(t *testing.T) {
	transcript := NewTranscript()
	transcript.clock = func() time.Time { return time.UnixMilli(1700000000000) }

	transcript.Observe(RoleAgent, "hello", true)
	snapshot := transcript.Messages()
	snapshot[0].Text = "mutated"

	if got := transcript.Messages()[0].Text; got != "hello" {
		t.Fatalf("expected snapshot mutation to leave the log untouched, got %q", got)
	}
	if got := transcript.Messages()[0].TimestampMillis; got != 1700000000000 {
		t.Fatalf("unexpected timestamp %d", got)
	}
}
