package events

const (
	// KindUserTranscript identifies user utterance text, partial or final.
	KindUserTranscript Kind = "transcript.user"
	// KindBotTranscript identifies agent utterance text, partial or final.
	KindBotTranscript Kind = "transcript.bot"
	// KindUserMessage identifies text sent through the client rather than spoken.
	KindUserMessage Kind = "transcript.user_message"
)

// UserTranscript carries user utterance text. Final marks the terminal text
// for the current speaker turn; a non-final transcript may be superseded by
// a later event for the same open turn.
type UserTranscript struct {
	Base
	Text  string
	Final bool
}

func (t UserTranscript) String() string {
	if t.Final {
		return t.Text
	}
	return t.Text + "..."
}

// NewUserTranscript creates a user transcript event.
func NewUserTranscript(text string, final bool) UserTranscript {
	return UserTranscript{Base: NewBase(KindUserTranscript), Text: text, Final: final}
}

// BotTranscript carries agent utterance text, with the same finality
// semantics as UserTranscript.
type BotTranscript struct {
	Base
	Text  string
	Final bool
}

func (t BotTranscript) String() string {
	if t.Final {
		return t.Text
	}
	return t.Text + "..."
}

// NewBotTranscript creates an agent transcript event.
func NewBotTranscript(text string, final bool) BotTranscript {
	return BotTranscript{Base: NewBase(KindBotTranscript), Text: text, Final: final}
}

// UserMessage carries text the user typed and sent through the client.
type UserMessage struct {
	Base
	Text string
}

// NewUserMessage creates a user message event.
func NewUserMessage(text string) UserMessage {
	return UserMessage{Base: NewBase(KindUserMessage), Text: text}
}
