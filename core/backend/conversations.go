package backend

import (
	"context"
	"fmt"
	"strings"
)

// CreateConversation creates the conversation record that keys the
// session's recordings and results. Returns the conversation id.
func (c *Client) CreateConversation(ctx context.Context, req ConversationRequest) (string, error) {
	ctx, span := tracer.Start(ctx, "create conversation")
	defer span.End()

	var out struct {
		ConversationID string `json:"conversation_id"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		Post("/conversations")
	if err != nil {
		return "", fmt.Errorf("failed to create conversation: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("failed to create conversation: %s", resp.Status())
	}
	if out.ConversationID == "" {
		return "", fmt.Errorf("conversation response missing conversation id")
	}

	return out.ConversationID, nil
}

// ConnectBot asks the relay to start the bot and returns realtime
// credentials. Relay responses are not shape-stable across versions: the
// url may arrive under url, room_url or room.url, and the token under
// token, auth.token or daily.token. The pair is normalized here so callers
// only ever see one shape.
func (c *Client) ConnectBot(ctx context.Context, req BotConnectRequest) (*BotCredentials, error) {
	ctx, span := tracer.Start(ctx, "connect bot")
	defer span.End()

	var payload map[string]any
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&payload).
		Post("/bot/connect")
	if err != nil {
		return nil, fmt.Errorf("failed to request bot connection: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to request bot connection: %s", resp.Status())
	}

	credentials := normalizeCredentials(payload)
	if credentials.URL == "" || credentials.Token == "" {
		return nil, fmt.Errorf("bot connect response missing fields: url %s, token %s",
			presence(credentials.URL), presence(credentials.Token))
	}

	return credentials, nil
}

func normalizeCredentials(payload map[string]any) *BotCredentials {
	url := stringField(payload, "url")
	if url == "" {
		url = stringField(payload, "room_url")
	}
	if url == "" {
		if room, ok := payload["room"].(map[string]any); ok {
			url = stringField(room, "url")
		}
	}

	token := stringField(payload, "token")
	if token == "" {
		if auth, ok := payload["auth"].(map[string]any); ok {
			token = stringField(auth, "token")
		}
	}
	if token == "" {
		if daily, ok := payload["daily"].(map[string]any); ok {
			token = stringField(daily, "token")
		}
	}

	return &BotCredentials{URL: strings.TrimSpace(url), Token: token}
}

func stringField(payload map[string]any, key string) string {
	value, _ := payload[key].(string)
	return value
}

func presence(value string) string {
	if value == "" {
		return "missing"
	}
	return "ok"
}

// ListRecordings returns the stored recordings for a conversation, newest
// first as served.
func (c *Client) ListRecordings(ctx context.Context, conversationID string) ([]RecordingSummary, error) {
	ctx, span := tracer.Start(ctx, "list recordings")
	defer span.End()

	var out []RecordingSummary
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("conversation_id", conversationID).
		SetResult(&out).
		Get("/recordings")
	if err != nil {
		return nil, fmt.Errorf("failed to list recordings: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to list recordings: %s", resp.Status())
	}

	return out, nil
}

// RecordingDownloadLink resolves a short-lived download link for one
// recording.
func (c *Client) RecordingDownloadLink(ctx context.Context, recordingID string) (string, error) {
	ctx, span := tracer.Start(ctx, "recording download link")
	defer span.End()

	var out struct {
		DownloadLink string `json:"download_link"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get(fmt.Sprintf("/recordings/%s/download-link", recordingID))
	if err != nil {
		return "", fmt.Errorf("failed to resolve download link: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("failed to resolve download link: %s", resp.Status())
	}
	if out.DownloadLink == "" {
		return "", fmt.Errorf("download link response missing link")
	}

	return out.DownloadLink, nil
}
