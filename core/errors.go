package orchestration

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotConnected is returned when an operation requires a live
	// connection.
	ErrNotConnected = errors.New("not connected")
	// ErrSubmissionInFlight is returned when an answer submission is
	// requested while one is already in flight for the session.
	ErrSubmissionInFlight = errors.New("answer submission already in flight")
	// ErrNoActiveSession is returned when an operation requires an
	// interview session that does not exist.
	ErrNoActiveSession = errors.New("no active interview session")
)

// ConversationCreateError reports a failed conversation record creation.
// The session never got far enough to connect; retrying Start is safe.
type ConversationCreateError struct {
	Err error
}

func (e *ConversationCreateError) Error() string {
	return fmt.Sprintf("failed to create conversation record: %v", e.Err)
}

func (e *ConversationCreateError) Unwrap() error { return e.Err }

// SessionCreateError reports a failed interview session creation or start,
// including a response missing the session id.
type SessionCreateError struct {
	Err error
}

func (e *SessionCreateError) Error() string {
	return fmt.Sprintf("failed to create interview session: %v", e.Err)
}

func (e *SessionCreateError) Unwrap() error { return e.Err }

// AnswerSubmitError reports a failed answer submission. The answer buffer
// is retained so the submission can be retried.
type AnswerSubmitError struct {
	Err error
}

func (e *AnswerSubmitError) Error() string {
	return fmt.Sprintf("failed to submit answer: %v", e.Err)
}

func (e *AnswerSubmitError) Unwrap() error { return e.Err }

// RecordingCommandError reports a recording command that could not be
// issued. Recording commands are best effort: callers log this and the
// live session continues.
type RecordingCommandError struct {
	Action string
	Err    error
}

func (e *RecordingCommandError) Error() string {
	return fmt.Sprintf("failed to issue %s command: %v", e.Action, e.Err)
}

func (e *RecordingCommandError) Unwrap() error { return e.Err }

// TransportError reports a fault surfaced by the transport's error event.
type TransportError struct {
	Message string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %s", e.Message)
}

// NegotiationExhaustedError reports that every credential bundle shape was
// rejected. Attempted lists the shape names in the order they were tried.
type NegotiationExhaustedError struct {
	Attempted []string
	Err       error
}

func (e *NegotiationExhaustedError) Error() string {
	return fmt.Sprintf("all %d connection bundle attempts failed (tried %s)",
		len(e.Attempted), strings.Join(e.Attempted, ", "))
}

func (e *NegotiationExhaustedError) Unwrap() error { return e.Err }
