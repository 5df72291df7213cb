// Package rtvi implements the transport capability contract over a
// websocket connection speaking an RTVI-style JSON message protocol.
//
// The client exposes the generic client-request capability rather than a
// native bot start, so orchestration connects it through credential bundle
// negotiation.
package rtvi

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/jastalk/interview-core/core/events"
	"github.com/jastalk/interview-core/core/transport"
)

const eventBufferSize = 32

type Client struct {
	connMu sync.Mutex
	conn   *websocket.Conn

	// events belongs to the current connection; Connect replaces it so the
	// client survives a disconnect/reconnect cycle.
	events chan events.Event

	// Desired device state. Device preparation happens before the
	// connection exists, so the state is cached here and flushed to the
	// remote side once the socket is up, and again on every reconnect.
	ready bool
	mic   *bool
	cam   *bool
}

var _ transport.Client = (*Client)(nil)
var _ transport.ClientRequester = (*Client)(nil)

func NewClient() *Client {
	return &Client{
		events: make(chan events.Event, eventBufferSize),
	}
}

// Connect dials the realtime server using one credential bundle shape. The
// url and token are recovered from whichever nesting the bundle uses, the
// token travels as a bearer header, and a read loop owns the connection
// until it closes. A fresh event channel is created for the connection's
// lifetime, and any cached device state is flushed to the remote side.
func (c *Client) Connect(ctx context.Context, bundle transport.Bundle) error {
	url, token := credentialsFromBundle(bundle)
	if url == "" || token == "" {
		return fmt.Errorf("bundle %q carries no usable credentials", bundle.Name)
	}

	c.connMu.Lock()
	defer c.connMu.Unlock()
	if c.conn != nil {
		return fmt.Errorf("transport already connected")
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url,
		http.Header{"Authorization": {"Bearer " + token}})
	if err != nil {
		return fmt.Errorf("failed to open socket connection: %w", err)
	}

	c.conn = conn
	c.events = make(chan events.Event, eventBufferSize)
	c.events <- events.NewConnected()
	c.flushDeviceStateLocked(conn)
	go c.readAndProcessMessages(conn, c.events)

	return nil
}

// flushDeviceStateLocked delivers the cached client-ready announcement and
// mic/cam state over a freshly established connection.
func (c *Client) flushDeviceStateLocked(conn *websocket.Conn) {
	if c.ready {
		writeOrLog(conn, envelope{Type: messageTypeClientReady})
	}
	if c.mic != nil {
		writeOrLog(conn, envelope{Type: messageTypeUpdateMic, Data: toggleData{Enabled: *c.mic}})
	}
	if c.cam != nil {
		writeOrLog(conn, envelope{Type: messageTypeUpdateCam, Data: toggleData{Enabled: *c.cam}})
	}
}

func writeOrLog(conn *websocket.Conn, env envelope) {
	if err := conn.WriteJSON(env); err != nil {
		log.Println("Failed to flush device state", "type", env.Type, "error", err)
	}
}

// credentialsFromBundle recovers the (url, token) pair from any of the
// supported bundle shapes.
func credentialsFromBundle(bundle transport.Bundle) (string, string) {
	url := stringField(bundle.Payload, "url")
	if url == "" {
		url = stringField(bundle.Payload, "room_url")
	}
	token := stringField(bundle.Payload, "token")

	for _, key := range []string{"auth", "daily", "room"} {
		nested, ok := bundle.Payload[key].(map[string]any)
		if !ok {
			continue
		}
		if url == "" {
			url = stringField(nested, "url")
		}
		if url == "" {
			url = stringField(nested, "room_url")
		}
		if token == "" {
			token = stringField(nested, "token")
		}
	}

	return url, token
}

func stringField(payload map[string]any, key string) string {
	value, _ := payload[key].(string)
	return value
}

// readAndProcessMessages owns one connection's inbound side. It writes
// only to the event channel created alongside the connection, so a stale
// loop can never touch a later connection's channel.
func (c *Client) readAndProcessMessages(conn *websocket.Conn, eventsCh chan events.Event) {
	for {
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				log.Println("Failed to read realtime websocket message", "error", err)
			}

			c.connMu.Lock()
			if c.conn == conn {
				c.conn = nil
			}
			c.connMu.Unlock()
			conn.Close()

			eventsCh <- events.NewDisconnected()
			close(eventsCh)
			return
		}
		if msgType != websocket.BinaryMessage {
			c.processMessage(eventsCh, msg)
		}
	}
}

func (c *Client) processMessage(eventsCh chan<- events.Event, msg []byte) {
	var parsedMsg struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(msg, &parsedMsg); err != nil {
		log.Println("Failed to unmarshal realtime message", "error", err)
		return
	}

	switch parsedMsg.Type {
	case messageTypeBotStarted:
		eventsCh <- events.NewBotStarted()
	case messageTypeBotStopped:
		eventsCh <- events.NewBotStopped()
	case messageTypeUserTranscript:
		var data transcriptData
		if err := json.Unmarshal(parsedMsg.Data, &data); err != nil {
			log.Println("Failed to unmarshal user transcript", "error", err)
			return
		}
		eventsCh <- events.NewUserTranscript(data.Text, data.Final)
	case messageTypeBotTranscript:
		var data transcriptData
		if err := json.Unmarshal(parsedMsg.Data, &data); err != nil {
			log.Println("Failed to unmarshal bot transcript", "error", err)
			return
		}
		eventsCh <- events.NewBotTranscript(data.Text, data.Final)
	case messageTypeRecordingStarted:
		eventsCh <- events.NewRecordingStarted()
	case messageTypeRecordingStopped:
		eventsCh <- events.NewRecordingStopped()
	case messageTypeRecordingError:
		eventsCh <- events.NewRecordingError(decodeErrorMessage(parsedMsg.Data))
	case messageTypeError:
		eventsCh <- events.NewTransportError(decodeErrorMessage(parsedMsg.Data))
	}
}

func decodeErrorMessage(raw json.RawMessage) string {
	var data errorData
	if err := json.Unmarshal(raw, &data); err != nil || data.Message == "" {
		return string(raw)
	}
	return data.Message
}

// Events returns the typed event channel for the current connection. The
// channel is closed when the connection's read loop ends; consumers should
// obtain it after Connect succeeds.
func (c *Client) Events() <-chan events.Event {
	c.connMu.Lock()
	defer c.connMu.Unlock()
	return c.events
}

// Disconnect closes the connection. The read loop observes the close,
// emits the disconnected event and closes the event channel.
func (c *Client) Disconnect() error {
	c.connMu.Lock()
	defer c.connMu.Unlock()

	if c.conn == nil {
		return nil
	}

	err := c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	if closeErr := c.conn.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to close realtime connection: %w", err)
	}
	return nil
}

// InitDevices announces client readiness; device acquisition happens on
// the remote side of this transport. Called before a connection exists,
// the announcement is cached and delivered once the socket is up.
func (c *Client) InitDevices(_ context.Context) error {
	c.connMu.Lock()
	defer c.connMu.Unlock()

	c.ready = true
	if c.conn == nil {
		return nil
	}
	return c.writeLocked(envelope{Type: messageTypeClientReady})
}

func (c *Client) EnableMic(enabled bool) error {
	c.connMu.Lock()
	defer c.connMu.Unlock()

	c.mic = &enabled
	if c.conn == nil {
		return nil
	}
	return c.writeLocked(envelope{Type: messageTypeUpdateMic, Data: toggleData{Enabled: enabled}})
}

func (c *Client) EnableCam(enabled bool) error {
	c.connMu.Lock()
	defer c.connMu.Unlock()

	c.cam = &enabled
	if c.conn == nil {
		return nil
	}
	return c.writeLocked(envelope{Type: messageTypeUpdateCam, Data: toggleData{Enabled: enabled}})
}

// SendClientRequest forwards a typed client message to the remote side.
// Unlike device state, messages are not cached: they require a live
// connection.
func (c *Client) SendClientRequest(_ context.Context, msgType string, payload any) error {
	c.connMu.Lock()
	defer c.connMu.Unlock()

	if c.conn == nil {
		return fmt.Errorf("transport not connected")
	}
	return c.writeLocked(envelope{Type: msgType, Data: payload})
}

func (c *Client) writeLocked(env envelope) error {
	if err := c.conn.WriteJSON(env); err != nil {
		return fmt.Errorf("failed to write to realtime connection: %w", err)
	}
	return nil
}
