// Package transport defines the capability contract for the realtime
// audio/video client the orchestrator drives.
//
// A transport is treated as an external capability object: the core
// interface covers connection, device and media control plus a typed event
// channel, while optional capabilities (native bot start, native text send,
// generic client requests, generic actions) are discovered by interface
// assertion against the concrete client.
package transport

import (
	"context"

	"github.com/jastalk/interview-core/core/events"
)

// Client is the core capability surface every transport must expose.
//
// Events returns the typed event channel for the connection's lifetime.
// The channel is closed when the connection ends; there is exactly one
// consumer, and events are delivered in arrival order.
type Client interface {
	Connect(ctx context.Context, bundle Bundle) error
	Disconnect() error
	InitDevices(ctx context.Context) error
	EnableMic(enabled bool) error
	EnableCam(enabled bool) error
	Events() <-chan events.Event
}

// StartBotRequest is the request data passed to a transport's native bot
// start capability.
type StartBotRequest struct {
	BotProfile     string `json:"bot_profile"`
	ConversationID string `json:"conversation_id"`
	InterviewType  string `json:"interview_type"`
}

// BotStarter is the blessed single-call start capability. Transports that
// expose it handle credential acquisition themselves; transports that do
// not are connected through bundle negotiation instead.
type BotStarter interface {
	StartBot(ctx context.Context, req StartBotRequest) error
}

// TextOptions configures a native text send.
type TextOptions struct {
	RunImmediately bool `json:"run_immediately"`
}

// TextSender is the native text-send capability.
type TextSender interface {
	SendText(ctx context.Context, text string, opts TextOptions) error
}

// ClientRequester is the generic typed client-message capability.
type ClientRequester interface {
	SendClientRequest(ctx context.Context, msgType string, payload any) error
}

// ActionCaller is the generic action capability, the oldest of the three
// message paths.
type ActionCaller interface {
	Action(ctx context.Context, payload any) error
}
