package events

const (
	// KindRecordingStarted identifies the remote recording becoming active.
	KindRecordingStarted Kind = "recording.started"
	// KindRecordingStopped identifies the remote recording finishing.
	KindRecordingStopped Kind = "recording.stopped"
	// KindRecordingError identifies a remote recording failure.
	KindRecordingError Kind = "recording.error"
)

// RecordingStarted marks the remote recording becoming active.
type RecordingStarted struct{ Base }

func NewRecordingStarted() RecordingStarted {
	return RecordingStarted{Base: NewBase(KindRecordingStarted)}
}

// RecordingStopped marks the remote recording finishing.
type RecordingStopped struct{ Base }

func NewRecordingStopped() RecordingStopped {
	return RecordingStopped{Base: NewBase(KindRecordingStopped)}
}

// RecordingError carries a remote recording failure.
type RecordingError struct {
	Base
	Message string
}

func (e RecordingError) String() string { return e.Message }

func NewRecordingError(message string) RecordingError {
	return RecordingError{Base: NewBase(KindRecordingError), Message: message}
}
