package orchestration

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jastalk/interview-core/core/backend"
	"github.com/jastalk/interview-core/internal/utils"
)

type scriptedSessionAPI struct {
	mu        sync.Mutex
	sessionID string
	questions []backend.Question
	index     int

	createErr error
	startErr  error
	submitErr error

	submissions []string
	completes   atomic.Int32

	// submitGate, when set, blocks SubmitResponse until it is released.
	submitGate chan struct{}
}

func (a *scriptedSessionAPI) CreateInterviewSession(_ context.Context, _ string) (string, error) {
	if a.createErr != nil {
		return "", a.createErr
	}
	return a.sessionID, nil
}

func (a *scriptedSessionAPI) StartInterviewSession(_ context.Context, sessionID string) (*backend.SessionState, error) {
	if a.startErr != nil {
		return nil, a.startErr
	}
	return &backend.SessionState{
		SessionID:       sessionID,
		CurrentQuestion: &a.questions[0],
		Progress:        utils.Ptr(backend.Progress{Current: 1, Total: len(a.questions)}),
	}, nil
}

func (a *scriptedSessionAPI) SubmitResponse(_ context.Context, sessionID, answer string) (*backend.SessionState, error) {
	if gate := a.submitGate; gate != nil {
		<-gate
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.submitErr != nil {
		return nil, a.submitErr
	}
	a.submissions = append(a.submissions, answer)
	a.index++
	state := &backend.SessionState{
		SessionID: sessionID,
		Progress:  utils.Ptr(backend.Progress{Current: a.index + 1, Total: len(a.questions)}),
	}
	if a.index >= len(a.questions) {
		state.IsComplete = true
		state.Progress = utils.Ptr(backend.Progress{Current: len(a.questions), Total: len(a.questions)})
	} else {
		state.CurrentQuestion = &a.questions[a.index]
	}
	return state, nil
}

func (a *scriptedSessionAPI) CompleteInterviewSession(context.Context, string) error {
	a.completes.Add(1)
	return nil
}

func twoQuestionAPI() *scriptedSessionAPI {
	return &scriptedSessionAPI{
		sessionID: "s1",
		questions: []backend.Question{
			{Text: "Describe a race condition you debugged.", Difficulty: "medium", Category: "concurrency"},
			{Text: "When would you reach for channels over mutexes?", Difficulty: "hard", Category: "concurrency"},
		},
	}
}

func TestCreateSessionStartsAndExposesFirstQuestion(t *testing.T) {
	flow := NewQuestionFlowController(twoQuestionAPI(), nil)

	sessionID, err := flow.CreateSession(context.Background(), "technical")
	if err != nil {
		t.Fatalf("expected session creation to succeed, got %v", err)
	}
	if sessionID != "s1" {
		t.Fatalf("unexpected session id %q", sessionID)
	}
	if flow.State() != FlowAwaitingAnswer {
		t.Fatalf("expected the flow to await an answer, got %s", flow.State())
	}

	session := flow.Session()
	if session.CurrentQuestion == nil || session.CurrentQuestion.Text != "Describe a race condition you debugged." {
		t.Fatalf("unexpected first question %+v", session.CurrentQuestion)
	}
	if session.Progress == nil || session.Progress.Current != 1 || session.Progress.Total != 2 {
		t.Fatalf("unexpected progress %+v", session.Progress)
	}
}

func TestCreateSessionRejectsMissingSessionID(t *testing.T) {
	api := twoQuestionAPI()
	api.createErr = fmt.Errorf("missing session id")
	flow := NewQuestionFlowController(api, nil)

	_, err := flow.CreateSession(context.Background(), "technical")
	var createErr *SessionCreateError
	if !errors.As(err, &createErr) {
		t.Fatalf("expected a SessionCreateError, got %v", err)
	}
	if flow.State() != FlowUninitialized {
		t.Fatalf("expected the flow to stay uninitialized, got %s", flow.State())
	}
}

func TestCreateSessionIsSingleUse(t *testing.T) {
	flow := NewQuestionFlowController(twoQuestionAPI(), nil)
	if _, err := flow.CreateSession(context.Background(), "technical"); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := flow.CreateSession(context.Background(), "technical"); err == nil {
		t.Fatalf("expected a second create to be rejected")
	}
}

func TestSubmitAnswerDrainsBufferOnlyOnSuccess(t *testing.T) {
	api := twoQuestionAPI()
	flow := NewQuestionFlowController(api, nil)
	if _, err := flow.CreateSession(context.Background(), "technical"); err != nil {
		t.Fatalf("create: %v", err)
	}

	flow.BufferAnswer("it was a map write")
	flow.BufferAnswer("fixed with a mutex")

	api.submitErr = errors.New("backend unavailable")
	err := flow.SubmitAnswer(context.Background())
	var submitErr *AnswerSubmitError
	if !errors.As(err, &submitErr) {
		t.Fatalf("expected an AnswerSubmitError, got %v", err)
	}
	if flow.AnswerBuffer() != "it was a map write\nfixed with a mutex" {
		t.Fatalf("expected the buffer to survive a failed submission, got %q", flow.AnswerBuffer())
	}
	if flow.State() != FlowAwaitingAnswer {
		t.Fatalf("expected the flow to allow a retry, got %s", flow.State())
	}

	api.submitErr = nil
	if err := flow.SubmitAnswer(context.Background()); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if flow.AnswerBuffer() != "" {
		t.Fatalf("expected the buffer to drain on success, got %q", flow.AnswerBuffer())
	}
	if got := api.submissions[len(api.submissions)-1]; got != "it was a map write\nfixed with a mutex" {
		t.Fatalf("unexpected submitted answer %q", got)
	}
}

func TestSubmitAnswerRejectsConcurrentSubmission(t *testing.T) {
	api := twoQuestionAPI()
	api.submitGate = make(chan struct{})
	flow := NewQuestionFlowController(api, nil)
	if _, err := flow.CreateSession(context.Background(), "technical"); err != nil {
		t.Fatalf("create: %v", err)
	}

	firstDone := make(chan error, 1)
	go func() { firstDone <- flow.SubmitAnswer(context.Background()) }()

	deadline := time.After(time.Second)
	for flow.State() != FlowSubmitting {
		select {
		case <-deadline:
			t.Fatalf("first submission never entered flight")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	if err := flow.SubmitAnswer(context.Background()); !errors.Is(err, ErrSubmissionInFlight) {
		t.Fatalf("expected ErrSubmissionInFlight, got %v", err)
	}

	close(api.submitGate)
	if err := <-firstDone; err != nil {
		t.Fatalf("first submission: %v", err)
	}
}

func TestSubmitAnswerCompletionFiresOnce(t *testing.T) {
	api := twoQuestionAPI()
	var completions atomic.Int32
	var completedSession string
	flow := NewQuestionFlowController(api, func(sessionID string) {
		completions.Add(1)
		completedSession = sessionID
	})
	if _, err := flow.CreateSession(context.Background(), "technical"); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := flow.SubmitAnswer(context.Background()); err != nil {
		t.Fatalf("first answer: %v", err)
	}
	if completions.Load() != 0 {
		t.Fatalf("completion fired before the last question")
	}

	if err := flow.SubmitAnswer(context.Background()); err != nil {
		t.Fatalf("last answer: %v", err)
	}
	if completions.Load() != 1 {
		t.Fatalf("expected exactly one completion, got %d", completions.Load())
	}
	if completedSession != "s1" {
		t.Fatalf("unexpected completed session %q", completedSession)
	}
	if flow.State() != FlowCompleted {
		t.Fatalf("expected the flow to be completed, got %s", flow.State())
	}

	if err := flow.SubmitAnswer(context.Background()); !errors.Is(err, ErrNoActiveSession) {
		t.Fatalf("expected submissions after completion to be rejected, got %v", err)
	}

	session := flow.Session()
	if session.CurrentQuestion != nil || !session.IsComplete {
		t.Fatalf("unexpected terminal session view %+v", session)
	}
}
