package orchestration

// ConnectionState is the orchestrator's single connection state surface.
// Transitions gate what the caller may do: answers and recording commands
// require Connected.
type ConnectionState string

const (
	ConnectionIdle         ConnectionState = "idle"
	ConnectionConnecting   ConnectionState = "connecting"
	ConnectionConnected    ConnectionState = "connected"
	ConnectionDisconnected ConnectionState = "disconnected"
	ConnectionFailed       ConnectionState = "failed"
)

// RecordingState tracks the remote recording lifecycle. Stop is only
// meaningful from Starting or Active.
type RecordingState string

const (
	RecordingIdle     RecordingState = "idle"
	RecordingStarting RecordingState = "starting"
	RecordingActive   RecordingState = "active"
	RecordingStopping RecordingState = "stopping"
	RecordingStopped  RecordingState = "stopped"
	RecordingErrored  RecordingState = "error"
)

// FlowState is the question/answer cycle state. Submitting excludes a
// second in-flight submission for the same session.
type FlowState string

const (
	FlowUninitialized  FlowState = "uninitialized"
	FlowCreated        FlowState = "created"
	FlowAwaitingAnswer FlowState = "awaiting_answer"
	FlowSubmitting     FlowState = "submitting"
	FlowCompleted      FlowState = "completed"
)
