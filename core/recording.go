package orchestration

import (
	"context"
	"sync"

	"github.com/jastalk/interview-core/core/transport"
)

// recordingStreamSettings is the fixed stream configuration sent with
// every start_recording command.
type recordingStreamSettings struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	FPS    int `json:"fps"`
}

func startRecordingCommand(conversationID string) transport.Command {
	return transport.Command{
		Service: "daily",
		Action:  "start_recording",
		Arguments: []transport.Argument{
			{Name: "conversation_id", Value: conversationID},
			{Name: "type", Value: "cloud"},
			{Name: "streaming_settings", Value: recordingStreamSettings{Width: 1280, Height: 720, FPS: 30}},
			{Name: "include_audio", Value: true},
			{Name: "include_video", Value: false},
		},
	}
}

func stopRecordingCommand(conversationID string) transport.Command {
	return transport.Command{
		Service: "daily",
		Action:  "stop_recording",
		Arguments: []transport.Argument{
			{Name: "conversation_id", Value: conversationID},
		},
	}
}

// RecordingController issues start/stop commands for the remote recording
// and tracks its lifecycle in two phases: the requested state moves
// optimistically when a command is issued, the confirmed state moves only
// on transport-emitted recording events. The window where the two differ
// is the expected inconsistency between asking and the remote side
// acting.
type RecordingController struct {
	mu        sync.Mutex
	requested RecordingState
	confirmed RecordingState

	send func(ctx context.Context, command transport.Command) error
}

func NewRecordingController(send func(ctx context.Context, command transport.Command) error) *RecordingController {
	return &RecordingController{
		requested: RecordingIdle,
		confirmed: RecordingIdle,
		send:      send,
	}
}

// State returns the requested and confirmed recording states.
func (r *RecordingController) State() (requested, confirmed RecordingState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.requested, r.confirmed
}

// Start issues the start_recording command. The call's return only covers
// command delivery; the recording becomes Active solely through the
// transport's RecordingStarted event.
func (r *RecordingController) Start(ctx context.Context, conversationID string) error {
	r.mu.Lock()
	if r.requested == RecordingStarting || r.requested == RecordingActive {
		r.mu.Unlock()
		return nil
	}
	previous := r.requested
	r.requested = RecordingStarting
	r.mu.Unlock()

	if err := r.send(ctx, startRecordingCommand(conversationID)); err != nil {
		r.mu.Lock()
		r.requested = previous
		r.mu.Unlock()
		return &RecordingCommandError{Action: "start_recording", Err: err}
	}

	return nil
}

// Stop issues the stop_recording command. It is a no-op unless a
// recording was requested or confirmed to be starting or active.
func (r *RecordingController) Stop(ctx context.Context, conversationID string) error {
	r.mu.Lock()
	stoppable := r.requested == RecordingStarting || r.requested == RecordingActive ||
		r.confirmed == RecordingStarting || r.confirmed == RecordingActive
	if !stoppable {
		r.mu.Unlock()
		return nil
	}
	previous := r.requested
	r.requested = RecordingStopping
	r.mu.Unlock()

	if err := r.send(ctx, stopRecordingCommand(conversationID)); err != nil {
		r.mu.Lock()
		r.requested = previous
		r.mu.Unlock()
		return &RecordingCommandError{Action: "stop_recording", Err: err}
	}

	return nil
}

// handleStarted reconciles both phases on the transport's confirmation.
func (r *RecordingController) handleStarted() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requested = RecordingActive
	r.confirmed = RecordingActive
}

func (r *RecordingController) handleStopped() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requested = RecordingStopped
	r.confirmed = RecordingStopped
}

func (r *RecordingController) handleError() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requested = RecordingErrored
	r.confirmed = RecordingErrored
}
