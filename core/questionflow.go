package orchestration

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jastalk/interview-core/core/backend"
	"github.com/jinzhu/copier"
)

// SessionAPI is the slice of the interview service the flow controller
// drives.
type SessionAPI interface {
	CreateInterviewSession(ctx context.Context, interviewType string) (string, error)
	StartInterviewSession(ctx context.Context, sessionID string) (*backend.SessionState, error)
	SubmitResponse(ctx context.Context, sessionID, answer string) (*backend.SessionState, error)
	CompleteInterviewSession(ctx context.Context, sessionID string) error
}

// InterviewSession is the client's view of the server-authoritative
// session: the question awaiting an answer, progress, and completion.
type InterviewSession struct {
	SessionID       string
	CurrentQuestion *backend.Question
	Progress        *backend.Progress
	IsComplete      bool
}

// QuestionFlowController drives the question/answer cycle against the
// interview service. The server owns the question sequence; the
// controller owns the cycle's state machine and the answer buffer that
// accumulates the user's final transcripts between submissions.
//
// Submissions are strictly sequential: only one may be in flight for the
// session at a time.
type QuestionFlowController struct {
	mu      sync.Mutex
	state   FlowState
	session InterviewSession
	buffer  []string

	api SessionAPI

	// onCompleted runs the terminal transition's effect list. It fires
	// exactly once, after the session state reflects completion.
	onCompleted func(sessionID string)
}

func NewQuestionFlowController(api SessionAPI, onCompleted func(sessionID string)) *QuestionFlowController {
	return &QuestionFlowController{
		state:       FlowUninitialized,
		api:         api,
		onCompleted: onCompleted,
	}
}

// State returns the current flow state.
func (q *QuestionFlowController) State() FlowState {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.state
}

// Session returns a deep copy of the session view.
func (q *QuestionFlowController) Session() InterviewSession {
	q.mu.Lock()
	defer q.mu.Unlock()

	var session InterviewSession
	if err := copier.CopyWithOption(&session, &q.session, copier.Option{DeepCopy: true}); err != nil {
		return q.session
	}
	return session
}

// CreateSession registers and starts a server-side session as one logical
// transition. Both calls must succeed and the creation response must carry
// a session id; anything else is a SessionCreateError.
func (q *QuestionFlowController) CreateSession(ctx context.Context, interviewType string) (string, error) {
	q.mu.Lock()
	if q.state != FlowUninitialized {
		q.mu.Unlock()
		return "", &SessionCreateError{Err: fmt.Errorf("session already created in state %s", q.state)}
	}
	q.mu.Unlock()

	sessionID, err := q.api.CreateInterviewSession(ctx, interviewType)
	if err != nil {
		return "", &SessionCreateError{Err: err}
	}

	q.mu.Lock()
	q.state = FlowCreated
	q.session = InterviewSession{SessionID: sessionID}
	q.mu.Unlock()

	state, err := q.api.StartInterviewSession(ctx, sessionID)
	if err != nil {
		return "", &SessionCreateError{Err: err}
	}

	q.mu.Lock()
	q.session.CurrentQuestion = state.CurrentQuestion
	q.session.Progress = state.Progress
	q.state = FlowAwaitingAnswer
	q.mu.Unlock()

	return sessionID, nil
}

// BufferAnswer accumulates a final user transcript into the answer buffer
// for the next submission.
func (q *QuestionFlowController) BufferAnswer(text string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.buffer = append(q.buffer, text)
}

// AnswerBuffer returns the buffered answer text as it would be submitted.
func (q *QuestionFlowController) AnswerBuffer() string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return strings.Join(q.buffer, "\n")
}

// SubmitAnswer posts the buffered answer and advances to the next
// question. An empty buffer still submits: validation is deliberately left
// to the server. On success the buffer is drained and the session view is
// replaced from the response; when the response marks completion the flow
// transitions to Completed and runs the terminal effect list.
//
// A submission already in flight rejects the call with
// ErrSubmissionInFlight; a failed submission keeps the buffer so it can be
// retried.
func (q *QuestionFlowController) SubmitAnswer(ctx context.Context) error {
	q.mu.Lock()
	switch q.state {
	case FlowSubmitting:
		q.mu.Unlock()
		return ErrSubmissionInFlight
	case FlowAwaitingAnswer:
	default:
		q.mu.Unlock()
		return ErrNoActiveSession
	}
	q.state = FlowSubmitting
	sessionID := q.session.SessionID
	answer := strings.Join(q.buffer, "\n")
	q.mu.Unlock()

	state, err := q.api.SubmitResponse(ctx, sessionID, answer)
	if err != nil {
		q.mu.Lock()
		q.state = FlowAwaitingAnswer
		q.mu.Unlock()
		return &AnswerSubmitError{Err: err}
	}

	q.mu.Lock()
	q.buffer = nil
	q.session.CurrentQuestion = state.CurrentQuestion
	q.session.Progress = state.Progress
	q.session.IsComplete = state.IsComplete
	completed := state.IsComplete
	if completed {
		q.state = FlowCompleted
	} else {
		q.state = FlowAwaitingAnswer
	}
	onCompleted := q.onCompleted
	q.mu.Unlock()

	if completed && onCompleted != nil {
		onCompleted(sessionID)
	}

	return nil
}

// Complete posts the completion marker. It is bookkeeping: callers treat
// a failure as loggable, because completion is always followed by
// recording stop and navigation regardless of this call's outcome.
func (q *QuestionFlowController) Complete(ctx context.Context) error {
	q.mu.Lock()
	sessionID := q.session.SessionID
	q.mu.Unlock()

	if sessionID == "" {
		return ErrNoActiveSession
	}
	if err := q.api.CompleteInterviewSession(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to mark session complete: %w", err)
	}
	return nil
}
