package events

const (
	// KindConnected identifies a live realtime connection.
	KindConnected Kind = "transport.connected"
	// KindDisconnected identifies the end of the realtime connection.
	KindDisconnected Kind = "transport.disconnected"
	// KindTransportError identifies a fault reported by the transport.
	KindTransportError Kind = "transport.error"
)

// Connected marks the realtime connection becoming live.
type Connected struct{ Base }

// NewConnected creates a connected event.
func NewConnected() Connected {
	return Connected{Base: NewBase(KindConnected)}
}

// Disconnected marks the realtime connection ending.
type Disconnected struct{ Base }

// NewDisconnected creates a disconnected event.
func NewDisconnected() Disconnected {
	return Disconnected{Base: NewBase(KindDisconnected)}
}

// TransportError carries a fault reported by the transport.
type TransportError struct {
	Base
	Message string
}

func (e TransportError) String() string { return e.Message }

// NewTransportError creates a transport error event.
func NewTransportError(message string) TransportError {
	return TransportError{Base: NewBase(KindTransportError), Message: message}
}
