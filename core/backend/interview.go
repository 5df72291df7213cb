package backend

import (
	"context"
	"fmt"
)

type dataEnvelope[T any] struct {
	Data T `json:"data"`
}

type sessionCreated struct {
	SessionID string `json:"session_id"`
}

type sessionTransition struct {
	CurrentQuestion *Question `json:"current_question"`
	NextQuestion    *Question `json:"next_question"`
	Progress        *Progress `json:"progress"`
	IsComplete      bool      `json:"is_complete"`
}

// CreateInterviewSession registers a new server-side interview session for
// the given interview type and returns its id.
func (c *Client) CreateInterviewSession(ctx context.Context, interviewType string) (string, error) {
	ctx, span := tracer.Start(ctx, "create interview session")
	defer span.End()

	var out dataEnvelope[sessionCreated]
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"interview_type": interviewType}).
		SetResult(&out).
		Post("/interview/create")
	if err != nil {
		return "", fmt.Errorf("failed to create interview session: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("failed to create interview session: %s", resp.Status())
	}
	if out.Data.SessionID == "" {
		return "", fmt.Errorf("interview session response missing session id")
	}

	return out.Data.SessionID, nil
}

// StartInterviewSession starts a created session and returns its initial
// state, including the first question.
func (c *Client) StartInterviewSession(ctx context.Context, sessionID string) (*SessionState, error) {
	ctx, span := tracer.Start(ctx, "start interview session")
	defer span.End()

	var out dataEnvelope[sessionTransition]
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Post(fmt.Sprintf("/interview/%s/start", sessionID))
	if err != nil {
		return nil, fmt.Errorf("failed to start interview session: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to start interview session: %s", resp.Status())
	}

	return &SessionState{
		SessionID:       sessionID,
		CurrentQuestion: out.Data.CurrentQuestion,
		Progress:        out.Data.Progress,
	}, nil
}

// SubmitResponse posts the buffered answer for the session's current
// question and returns the resulting state. The answer text doubles as the
// transcription field on the wire.
func (c *Client) SubmitResponse(ctx context.Context, sessionID, answer string) (*SessionState, error) {
	ctx, span := tracer.Start(ctx, "submit interview response")
	defer span.End()

	var out dataEnvelope[sessionTransition]
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"response": answer, "transcription": answer}).
		SetResult(&out).
		Post(fmt.Sprintf("/interview/%s/response", sessionID))
	if err != nil {
		return nil, fmt.Errorf("failed to submit response: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to submit response: %s", resp.Status())
	}

	return &SessionState{
		SessionID:       sessionID,
		CurrentQuestion: out.Data.NextQuestion,
		Progress:        out.Data.Progress,
		IsComplete:      out.Data.IsComplete,
	}, nil
}

// CompleteInterviewSession posts the completion marker for a session.
func (c *Client) CompleteInterviewSession(ctx context.Context, sessionID string) error {
	ctx, span := tracer.Start(ctx, "complete interview session")
	defer span.End()

	resp, err := c.http.R().
		SetContext(ctx).
		Post(fmt.Sprintf("/interview/%s/complete", sessionID))
	if err != nil {
		return fmt.Errorf("failed to complete interview session: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("failed to complete interview session: %s", resp.Status())
	}

	return nil
}
