package orchestration

import (
	"context"

	"github.com/jastalk/interview-core/core/backend"
	"github.com/jastalk/interview-core/core/transport"
)

type OrchestratorOption func(*Orchestrator)

// BackendAPI is the slice of the interview service the orchestrator
// talks to over REST.
type BackendAPI interface {
	SessionAPI
	CreateConversation(ctx context.Context, req backend.ConversationRequest) (string, error)
	ConnectBot(ctx context.Context, req backend.BotConnectRequest) (*backend.BotCredentials, error)
}

func WithBackend(client BackendAPI) OrchestratorOption {
	return func(o *Orchestrator) { o.backend = client }
}

func WithTransport(client transport.Client) OrchestratorOption {
	return func(o *Orchestrator) { o.client = client }
}

// Navigator receives the single post-interview navigation to the
// results surface.
type Navigator interface {
	NavigateToResults(conversationID, sessionID string)
}

func WithNavigator(navigator Navigator) OrchestratorOption {
	return func(o *Orchestrator) { o.navigator = navigator }
}

func WithBotProfile(profile string) OrchestratorOption {
	return func(o *Orchestrator) { o.botProfile = profile }
}

type StartOptions struct {
	onEvent                  func(event string)
	onUserMessage            func(text string)
	onUserTranscript         func(text string, final bool)
	onBotTranscript          func(text string, final bool)
	onConnectionStateChanged func(state ConnectionState)
	onRecordingStateChanged  func(state RecordingState)
	onQuestionChanged        func(question *backend.Question, progress *backend.Progress)
	onCompleted              func(sessionID string)
}

type StartOption func(*StartOptions)

// WithEventCallback registers a callback for every entry appended to the
// session event log, in append order.
func WithEventCallback(callback func(event string)) StartOption {
	return func(o *StartOptions) {
		o.onEvent = callback
	}
}

func WithUserMessageCallback(callback func(text string)) StartOption {
	return func(o *StartOptions) {
		o.onUserMessage = callback
	}
}

// WithUserTranscriptCallback registers a callback for user transcript
// updates from the transport. Interim updates arrive with final false and
// are superseded by later updates for the same turn.
func WithUserTranscriptCallback(callback func(text string, final bool)) StartOption {
	return func(o *StartOptions) {
		o.onUserTranscript = callback
	}
}

// WithBotTranscriptCallback registers a callback for agent transcript
// updates from the transport.
func WithBotTranscriptCallback(callback func(text string, final bool)) StartOption {
	return func(o *StartOptions) {
		o.onBotTranscript = callback
	}
}

func WithConnectionStateChangedCallback(callback func(state ConnectionState)) StartOption {
	return func(o *StartOptions) {
		o.onConnectionStateChanged = callback
	}
}

func WithRecordingStateChangedCallback(callback func(state RecordingState)) StartOption {
	return func(o *StartOptions) {
		o.onRecordingStateChanged = callback
	}
}

// WithQuestionChangedCallback registers a callback for question
// advancement. It fires when the session starts and after every accepted
// answer; on completion the question is nil.
func WithQuestionChangedCallback(callback func(question *backend.Question, progress *backend.Progress)) StartOption {
	return func(o *StartOptions) {
		o.onQuestionChanged = callback
	}
}

// WithCompletedCallback registers a callback for interview completion. It
// fires exactly once per session.
func WithCompletedCallback(callback func(sessionID string)) StartOption {
	return func(o *StartOptions) {
		o.onCompleted = callback
	}
}
