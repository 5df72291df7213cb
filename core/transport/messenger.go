package transport

import (
	"context"
	"errors"
)

// ErrNoMessageCapability is returned when a transport exposes none of the
// message capabilities.
var ErrNoMessageCapability = errors.New("transport exposes no message capability")

// MessengerVariant names the message path a messenger resolved for text
// sends.
type MessengerVariant string

const (
	VariantNativeText     MessengerVariant = "native-text"
	VariantGenericRequest MessengerVariant = "generic-request"
	VariantGenericAction  MessengerVariant = "generic-action"
)

// Messenger routes text and structured commands through whichever message
// capabilities a transport exposes. Capability probing happens once, in
// NewMessenger, rather than per call.
type Messenger struct {
	variant MessengerVariant

	text    TextSender
	request ClientRequester
	action  ActionCaller
}

// NewMessenger probes the client for message capabilities in priority
// order: native text send, generic client request, generic action. It
// fails only when the client exposes none of them.
func NewMessenger(client Client) (*Messenger, error) {
	m := &Messenger{}
	if text, ok := client.(TextSender); ok {
		m.text = text
	}
	if request, ok := client.(ClientRequester); ok {
		m.request = request
	}
	if action, ok := client.(ActionCaller); ok {
		m.action = action
	}

	switch {
	case m.text != nil:
		m.variant = VariantNativeText
	case m.request != nil:
		m.variant = VariantGenericRequest
	case m.action != nil:
		m.variant = VariantGenericAction
	default:
		return nil, ErrNoMessageCapability
	}

	return m, nil
}

// Variant reports the path resolved for text sends.
func (m *Messenger) Variant() MessengerVariant { return m.variant }

// SendText forwards typed user text. Native text send runs the text
// immediately; the generic paths wrap it in an append_to_messages command.
func (m *Messenger) SendText(ctx context.Context, text string) error {
	if m.text != nil {
		return m.text.SendText(ctx, text, TextOptions{RunImmediately: true})
	}
	return m.SendCommand(ctx, AppendUserMessageCommand(text))
}

// SendCommand forwards a structured command through the generic client
// request path, falling back to the action path.
func (m *Messenger) SendCommand(ctx context.Context, command Command) error {
	if m.request != nil {
		return m.request.SendClientRequest(ctx, "client-message", command)
	}
	if m.action != nil {
		return m.action.Action(ctx, command)
	}
	return ErrNoMessageCapability
}
