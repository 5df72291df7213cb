package transport

import (
	"context"
	"errors"
	"testing"

	"github.com/jastalk/interview-core/core/events"
)

type baseClient struct{}

func (baseClient) Connect(context.Context, Bundle) error { return nil }
func (baseClient) Disconnect() error                     { return nil }
func (baseClient) InitDevices(context.Context) error     { return nil }
func (baseClient) EnableMic(bool) error                  { return nil }
func (baseClient) EnableCam(bool) error                  { return nil }
func (baseClient) Events() <-chan events.Event           { return nil }

type textClient struct {
	baseClient
	sentText string
	sentOpts TextOptions
}

func (c *textClient) SendText(_ context.Context, text string, opts TextOptions) error {
	c.sentText = text
	c.sentOpts = opts
	return nil
}

type requestClient struct {
	baseClient
	msgType string
	payload any
}

func (c *requestClient) SendClientRequest(_ context.Context, msgType string, payload any) error {
	c.msgType = msgType
	c.payload = payload
	return nil
}

type actionClient struct {
	baseClient
	payload any
}

func (c *actionClient) Action(_ context.Context, payload any) error {
	c.payload = payload
	return nil
}

func TestNewMessengerFailsWithoutAnyCapability(t *testing.T) {
	if _, err := NewMessenger(baseClient{}); !errors.Is(err, ErrNoMessageCapability) {
		t.Fatalf("expected ErrNoMessageCapability, got %v", err)
	}
}

func TestNewMessengerPrefersNativeText(t *testing.T) {
	client := &textClient{}
	m, err := NewMessenger(client)
	if err != nil {
		t.Fatalf("unexpected probe error: %v", err)
	}
	if got := m.Variant(); got != VariantNativeText {
		t.Fatalf("expected variant %q, got %q", VariantNativeText, got)
	}

	if err := m.SendText(context.Background(), "hello"); err != nil {
		t.Fatalf("unexpected send error: %v", err)
	}
	if client.sentText != "hello" {
		t.Fatalf("expected native text send, got %q", client.sentText)
	}
	if !client.sentOpts.RunImmediately {
		t.Fatalf("expected native text send to run immediately")
	}
}

func TestSendTextFallsBackToClientRequest(t *testing.T) {
	client := &requestClient{}
	m, err := NewMessenger(client)
	if err != nil {
		t.Fatalf("unexpected probe error: %v", err)
	}
	if got := m.Variant(); got != VariantGenericRequest {
		t.Fatalf("expected variant %q, got %q", VariantGenericRequest, got)
	}

	if err := m.SendText(context.Background(), "typed"); err != nil {
		t.Fatalf("unexpected send error: %v", err)
	}
	if client.msgType != "client-message" {
		t.Fatalf("expected client-message request, got %q", client.msgType)
	}
	command, ok := client.payload.(Command)
	if !ok {
		t.Fatalf("expected Command payload, got %T", client.payload)
	}
	if command.Service != "llm" || command.Action != "append_to_messages" {
		t.Fatalf("expected append_to_messages command, got %s/%s", command.Service, command.Action)
	}
}

func TestSendCommandFallsBackToAction(t *testing.T) {
	client := &actionClient{}
	m, err := NewMessenger(client)
	if err != nil {
		t.Fatalf("unexpected probe error: %v", err)
	}
	if got := m.Variant(); got != VariantGenericAction {
		t.Fatalf("expected variant %q, got %q", VariantGenericAction, got)
	}

	command := Command{Service: "daily", Action: "stop_recording"}
	if err := m.SendCommand(context.Background(), command); err != nil {
		t.Fatalf("unexpected send error: %v", err)
	}
	got, ok := client.payload.(Command)
	if !ok {
		t.Fatalf("expected Command payload, got %T", client.payload)
	}
	if got.Action != "stop_recording" {
		t.Fatalf("expected stop_recording action, got %q", got.Action)
	}
}
