package backend

import "time"

// Question is an opaque server payload: the question the agent is asking,
// read-only to the client.
type Question struct {
	Text       string `json:"question"`
	Difficulty string `json:"difficulty"`
	Category   string `json:"category"`
}

// Progress reports how far along a session is.
type Progress struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// SessionState is the server's view of an interview session after a
// transition: the question now awaiting an answer, progress, and whether
// the session has run out of questions.
type SessionState struct {
	SessionID       string
	CurrentQuestion *Question
	Progress        *Progress
	IsComplete      bool
}

// ConversationRequest creates a conversation record for a session.
type ConversationRequest struct {
	Title         string         `json:"title"`
	Role          string         `json:"role,omitempty"`
	InterviewType string         `json:"interview_type,omitempty"`
	Questions     []string       `json:"questions,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// BotConnectRequest asks the relay to start a bot and mint realtime
// credentials.
type BotConnectRequest struct {
	BotProfile     string `json:"bot_profile"`
	ConversationID string `json:"conversation_id"`
	InterviewType  string `json:"interview_type"`
}

// BotCredentials is the normalized (url, token) pair for the realtime
// connection.
type BotCredentials struct {
	URL   string
	Token string
}

// RecordingSummary describes one stored session recording.
type RecordingSummary struct {
	RecordingID string    `json:"recording_id"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
