package orchestration

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Role attributes a transcript message to one side of the conversation.
type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// Message is one entry in the conversation log. A non-final message is the
// mutable snapshot of an open speaker turn; a final message is terminal.
type Message struct {
	ID              string
	Role            Role
	Text            string
	TimestampMillis int64
	Final           bool
}

// Transcript merges streamed partial/final utterance events into an
// ordered message log suitable for direct rendering.
//
// There is a single open turn per role at a time: while the most recent
// message is a non-final message of the same role, later events for that
// role update it in place. Anything else appends, so turns are never
// reordered and a final following a final starts a new turn.
type Transcript struct {
	mu       sync.Mutex
	messages []Message

	// clock is injectable for testing; defaults to time.Now.
	clock func() time.Time
}

func NewTranscript() *Transcript {
	return &Transcript{clock: time.Now}
}

// Observe folds one utterance event into the log and returns the message
// it produced or updated.
func (t *Transcript) Observe(role Role, text string, final bool) Message {
	t.mu.Lock()
	defer t.mu.Unlock()

	if last := len(t.messages) - 1; last >= 0 {
		open := t.messages[last]
		if open.Role == role && !open.Final {
			open.Text = text
			open.Final = final
			t.messages[last] = open
			return open
		}
	}

	message := Message{
		ID:              uuid.NewString(),
		Role:            role,
		Text:            text,
		TimestampMillis: t.clock().UnixMilli(),
		Final:           final,
	}
	t.messages = append(t.messages, message)
	return message
}

// Messages returns a snapshot of the log, oldest first.
func (t *Transcript) Messages() []Message {
	t.mu.Lock()
	defer t.mu.Unlock()

	messages := make([]Message, len(t.messages))
	copy(messages, t.messages)
	return messages
}

// Len reports the number of messages in the log.
func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.messages)
}
