package rtvi

// Wire message types exchanged with an RTVI-style realtime server. Inbound
// messages carry a type tag plus a type-specific data payload; outbound
// messages reuse the same envelope.
const (
	messageTypeClientReady = "client-ready"
	messageTypeUpdateMic   = "enable-mic"
	messageTypeUpdateCam   = "enable-cam"

	messageTypeBotStarted       = "bot-started"
	messageTypeBotStopped       = "bot-stopped"
	messageTypeUserTranscript   = "user-transcript"
	messageTypeBotTranscript    = "bot-transcript"
	messageTypeRecordingStarted = "recording-started"
	messageTypeRecordingStopped = "recording-stopped"
	messageTypeRecordingError   = "recording-error"
	messageTypeError            = "error"
)

type envelope struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

type transcriptData struct {
	Text  string `json:"text"`
	Final bool   `json:"final"`
}

type errorData struct {
	Message string `json:"message"`
}

type toggleData struct {
	Enabled bool `json:"enabled"`
}
