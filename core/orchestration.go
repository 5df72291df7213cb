package orchestration

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"sync"

	"github.com/jastalk/interview-core/core/backend"
	"github.com/jastalk/interview-core/core/events"
	"github.com/jastalk/interview-core/core/transport"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultBotProfile = "interviewer"

// BotProfileEnvVar overrides the default bot profile when set.
const BotProfileEnvVar = "JASTALK_BOT_PROFILE"

const defaultConversationTitle = "Voice Interview"

// SessionMetadata describes the interview being started.
type SessionMetadata struct {
	Role          string
	InterviewType string
	Questions     []string
}

// QuestionsFromText splits free-form multi-line question text into the
// question list SessionMetadata carries, dropping blank lines.
func QuestionsFromText(text string) []string {
	var questions []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			questions = append(questions, line)
		}
	}
	return questions
}

// ConversationRecord is the client's copy of the conversation created for
// the session.
type ConversationRecord struct {
	ID            string
	Title         string
	Role          string
	InterviewType string
	Questions     []string
}

// Orchestrator coordinates one voice interview session: the backend
// conversation and question flow, the realtime transport, the remote
// recording, the transcript, and the diagnostic event log.
//
// The connection state gates everything else: answers and recording
// commands require Connected, and Start is a no-op while a session is
// connecting or connected.
type Orchestrator struct {
	mu              sync.Mutex
	connectionState ConnectionState
	micOn           bool
	camOn           bool
	navigated       bool

	conversation *ConversationRecord
	flow         *QuestionFlowController
	messenger    *transport.Messenger

	recording  *RecordingController
	transcript *Transcript
	eventLog   *EventLog

	client     transport.Client
	backend    BackendAPI
	navigator  Navigator
	botProfile string

	startOptions StartOptions
	emitEvent    eventEmitter
	baseContext  context.Context
}

func NewOrchestrator(opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		connectionState: ConnectionIdle,
		micOn:           true,
		camOn:           false,
		transcript:      NewTranscript(),
		eventLog:        NewEventLog(),
		botProfile:      defaultBotProfile,
		emitEvent:       noopEventEmitter,
		baseContext:     context.Background(),
	}
	if profile, ok := os.LookupEnv(BotProfileEnvVar); ok && profile != "" {
		o.botProfile = profile
	}

	o.recording = NewRecordingController(func(ctx context.Context, command transport.Command) error {
		o.mu.Lock()
		messenger := o.messenger
		o.mu.Unlock()
		if messenger == nil {
			return ErrNotConnected
		}
		return messenger.SendCommand(ctx, command)
	})

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Start runs the full session bring-up: it creates the conversation
// record, creates and starts the interview session, prepares devices,
// connects the transport and begins consuming its events. It is a no-op
// when a session is already connecting or connected.
//
// Any failure before the transport is connected leaves the orchestrator
// in the Failed state; retrying Start from there is safe.
func (o *Orchestrator) Start(ctx context.Context, metadata SessionMetadata, opts ...StartOption) error {
	o.mu.Lock()
	if o.connectionState == ConnectionConnecting || o.connectionState == ConnectionConnected {
		o.mu.Unlock()
		return nil
	}
	o.startOptions = StartOptions{}
	for _, opt := range opts {
		opt(&o.startOptions)
	}
	o.emitEvent = newCallbackEventEmitter(o.startOptions)
	o.baseContext = ctx
	o.navigated = false
	o.setConnectionStateLocked(ConnectionConnecting)
	o.mu.Unlock()

	ctx, span := tracer.Start(ctx, "start interview session")
	defer span.End()

	if o.backend == nil {
		return o.failStart(span, fmt.Errorf("no backend client configured"))
	}

	conversationID, err := o.backend.CreateConversation(ctx, backend.ConversationRequest{
		Title:         defaultConversationTitle,
		Role:          metadata.Role,
		InterviewType: metadata.InterviewType,
		Questions:     metadata.Questions,
	})
	if err != nil {
		return o.failStart(span, &ConversationCreateError{Err: err})
	}

	flow := NewQuestionFlowController(o.backend, o.handleFlowCompleted)
	o.mu.Lock()
	o.conversation = &ConversationRecord{
		ID:            conversationID,
		Title:         defaultConversationTitle,
		Role:          metadata.Role,
		InterviewType: metadata.InterviewType,
		Questions:     metadata.Questions,
	}
	o.flow = flow
	o.mu.Unlock()

	if _, err := flow.CreateSession(ctx, metadata.InterviewType); err != nil {
		return o.failStart(span, err)
	}
	if opts, _, _ := o.hooks(); opts.onQuestionChanged != nil {
		session := flow.Session()
		opts.onQuestionChanged(session.CurrentQuestion, session.Progress)
	}

	client := o.client
	if client == nil {
		return o.failStart(span, fmt.Errorf("no transport configured"))
	}

	// Device preparation failures are tolerated: the session can proceed
	// without local media.
	if err := client.InitDevices(ctx); err != nil {
		o.recordError(ctx, fmt.Errorf("failed to initialize devices: %w", err))
	}
	if err := client.EnableMic(o.micOn); err != nil {
		o.recordError(ctx, fmt.Errorf("failed to enable microphone: %w", err))
	}
	if err := client.EnableCam(o.camOn); err != nil {
		o.recordError(ctx, fmt.Errorf("failed to set camera state: %w", err))
	}

	if starter, ok := client.(transport.BotStarter); ok {
		err = starter.StartBot(ctx, transport.StartBotRequest{
			BotProfile:     o.botProfile,
			ConversationID: conversationID,
			InterviewType:  metadata.InterviewType,
		})
	} else {
		var credentials *backend.BotCredentials
		credentials, err = o.backend.ConnectBot(ctx, backend.BotConnectRequest{
			BotProfile:     o.botProfile,
			ConversationID: conversationID,
			InterviewType:  metadata.InterviewType,
		})
		if err == nil {
			_, err = NewConnectionNegotiator(client).Negotiate(ctx, credentials.URL, credentials.Token)
		}
	}
	if err != nil {
		return o.failStart(span, fmt.Errorf("failed to connect transport: %w", err))
	}

	messenger, err := transport.NewMessenger(client)
	if err != nil {
		// Messaging is degraded but the realtime session itself is up.
		o.recordError(ctx, err)
	}

	o.mu.Lock()
	o.messenger = messenger
	o.setConnectionStateLocked(ConnectionConnected)
	o.mu.Unlock()

	go o.consumeEvents(client.Events())

	o.logEvent(logTypeConnected)
	return nil
}

// Stop tears the session down. It always succeeds: transport errors are
// recorded and swallowed, the connection state becomes Disconnected, and
// the conversation and session are invalidated.
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	client := o.client
	o.mu.Unlock()

	if client != nil {
		if err := client.Disconnect(); err != nil {
			_, _, ctx := o.hooks()
			o.recordError(ctx, fmt.Errorf("failed to disconnect transport: %w", err))
		}
	}

	o.mu.Lock()
	o.messenger = nil
	o.conversation = nil
	o.flow = nil
	o.setConnectionStateLocked(ConnectionDisconnected)
	o.mu.Unlock()

	o.logEvent(logTypeDisconnected)
}

func (o *Orchestrator) failStart(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	o.mu.Lock()
	o.setConnectionStateLocked(ConnectionFailed)
	o.mu.Unlock()
	return err
}

// hooks snapshots the session-scoped callback set, emitter, and base
// context under the lock. Start rewrites all three when a new session
// begins, and a consumer goroutine from a previous connection may still
// be draining its event channel, so unlocked field access is unsafe.
func (o *Orchestrator) hooks() (StartOptions, eventEmitter, context.Context) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.startOptions, o.emitEvent, o.baseContext
}

func (o *Orchestrator) setConnectionStateLocked(state ConnectionState) {
	if o.connectionState == state {
		return
	}
	o.connectionState = state
	if o.startOptions.onConnectionStateChanged != nil {
		o.startOptions.onConnectionStateChanged(state)
	}
}

func (o *Orchestrator) consumeEvents(eventsCh <-chan events.Event) {
	for event := range eventsCh {
		o.handleEvent(event)
	}
}

func (o *Orchestrator) handleEvent(event events.Event) {
	_, emit, ctx := o.hooks()

	switch typedEvent := event.(type) {
	case events.Connected:
		o.logEvent(logTypeConnected)
	case events.Disconnected:
		o.logEvent(logTypeDisconnected)
		o.mu.Lock()
		if o.connectionState == ConnectionConnected {
			o.setConnectionStateLocked(ConnectionDisconnected)
		}
		o.mu.Unlock()
	case events.BotStarted:
		o.logEvent(logTypeBotStarted)
	case events.BotStopped:
		o.logEvent(logTypeBotStopped)
	case events.UserTranscript:
		o.transcript.Observe(RoleUser, typedEvent.Text, typedEvent.Final)
		if typedEvent.Final {
			o.logEvent(logTypeUserTranscript)
			if flow := o.currentFlow(); flow != nil {
				flow.BufferAnswer(typedEvent.Text)
			}
		}
	case events.BotTranscript:
		o.transcript.Observe(RoleAgent, typedEvent.Text, typedEvent.Final)
		if typedEvent.Final {
			o.logEvent(logTypeBotTranscript)
		}
	case events.RecordingStarted:
		o.recording.handleStarted()
		o.notifyRecordingState(RecordingActive)
	case events.RecordingStopped:
		o.recording.handleStopped()
		o.notifyRecordingState(RecordingStopped)
		o.navigateToResults()
	case events.RecordingError:
		o.recording.handleError()
		o.notifyRecordingState(RecordingErrored)
		o.recordError(ctx, &RecordingCommandError{
			Action: "recording",
			Err:    fmt.Errorf("%s", typedEvent.Message),
		})
	case events.TransportError:
		o.recordError(ctx, &TransportError{Message: typedEvent.Message})
	}

	emit(event)
}

// SubmitAnswer posts the buffered answer for the current question. It
// requires a live connection and an active session; a submission already
// in flight is rejected rather than queued.
func (o *Orchestrator) SubmitAnswer(ctx context.Context) error {
	o.mu.Lock()
	state := o.connectionState
	flow := o.flow
	o.mu.Unlock()

	if state != ConnectionConnected {
		return ErrNotConnected
	}
	if flow == nil {
		return ErrNoActiveSession
	}

	if err := flow.SubmitAnswer(ctx); err != nil {
		return err
	}

	if opts, _, _ := o.hooks(); opts.onQuestionChanged != nil {
		session := flow.Session()
		opts.onQuestionChanged(session.CurrentQuestion, session.Progress)
	}
	return nil
}

// handleFlowCompleted is the terminal transition's effect list: mark the
// session complete server-side, stop the recording, notify, navigate.
// Each effect is best-effort and independent of the others.
func (o *Orchestrator) handleFlowCompleted(sessionID string) {
	opts, _, ctx := o.hooks()

	o.mu.Lock()
	flow := o.flow
	conversationID := ""
	if o.conversation != nil {
		conversationID = o.conversation.ID
	}
	o.mu.Unlock()

	if flow != nil {
		if err := flow.Complete(ctx); err != nil {
			o.recordError(ctx, err)
		}
	}

	if conversationID != "" {
		if err := o.recording.Stop(ctx, conversationID); err != nil {
			o.recordError(ctx, err)
		} else if requested, _ := o.recording.State(); requested == RecordingStopping {
			o.notifyRecordingState(RecordingStopping)
		}
	}

	if opts.onCompleted != nil {
		opts.onCompleted(sessionID)
	}

	o.navigateToResults()
}

// navigateToResults performs the single post-interview navigation. The
// guard spans both triggers (completion effects and the recording-stopped
// event), so whichever fires first wins.
func (o *Orchestrator) navigateToResults() {
	o.mu.Lock()
	if o.navigated || o.navigator == nil || o.conversation == nil || o.flow == nil {
		o.mu.Unlock()
		return
	}
	conversationID := o.conversation.ID
	sessionID := o.flow.Session().SessionID
	navigator := o.navigator
	o.navigated = true
	o.mu.Unlock()

	navigator.NavigateToResults(conversationID, sessionID)
}

// ResultsPath renders the canonical results location for a finished
// session.
func ResultsPath(conversationID, sessionID string) string {
	return fmt.Sprintf("results/%s?sessionId=%s", conversationID, url.QueryEscape(sessionID))
}

// SendText sends a typed user message to the agent through whichever
// message capability the transport exposes. The message is reflected in
// the transcript and event log immediately; delivery happens in the
// background and a failure there does not retract the local echo.
func (o *Orchestrator) SendText(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}

	o.mu.Lock()
	messenger := o.messenger
	o.mu.Unlock()
	if messenger == nil {
		return
	}

	_, emit, ctx := o.hooks()
	o.transcript.Observe(RoleUser, text, true)
	o.logEvent(logTypeUserMessage)
	emit(events.NewUserMessage(text))

	go func() {
		if err := messenger.SendText(ctx, text); err != nil {
			o.recordError(ctx, fmt.Errorf("failed to send text: %w", err))
		}
	}()
}

// StartRecording asks the remote side to start recording the session.
func (o *Orchestrator) StartRecording(ctx context.Context) error {
	conversationID, err := o.connectedConversationID()
	if err != nil {
		return err
	}
	if err := o.recording.Start(ctx, conversationID); err != nil {
		return err
	}
	if requested, _ := o.recording.State(); requested == RecordingStarting {
		o.notifyRecordingState(RecordingStarting)
	}
	return nil
}

// StopRecording asks the remote side to stop recording the session.
func (o *Orchestrator) StopRecording(ctx context.Context) error {
	conversationID, err := o.connectedConversationID()
	if err != nil {
		return err
	}
	if err := o.recording.Stop(ctx, conversationID); err != nil {
		return err
	}
	if requested, _ := o.recording.State(); requested == RecordingStopping {
		o.notifyRecordingState(RecordingStopping)
	}
	return nil
}

func (o *Orchestrator) connectedConversationID() (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.connectionState != ConnectionConnected {
		return "", ErrNotConnected
	}
	if o.conversation == nil {
		return "", ErrNoActiveSession
	}
	return o.conversation.ID, nil
}

// ToggleMic flips the microphone and reports the new state. The flip is
// optimistic: a transport refusal is recorded but does not revert it.
func (o *Orchestrator) ToggleMic() bool {
	o.mu.Lock()
	o.micOn = !o.micOn
	enabled := o.micOn
	client := o.client
	ctx := o.baseContext
	o.mu.Unlock()

	if client != nil {
		if err := client.EnableMic(enabled); err != nil {
			o.recordError(ctx, fmt.Errorf("failed to set microphone to %t: %w", enabled, err))
		}
	}
	return enabled
}

// ToggleCam flips the camera and reports the new state. Same optimistic
// contract as ToggleMic.
func (o *Orchestrator) ToggleCam() bool {
	o.mu.Lock()
	o.camOn = !o.camOn
	enabled := o.camOn
	client := o.client
	ctx := o.baseContext
	o.mu.Unlock()

	if client != nil {
		if err := client.EnableCam(enabled); err != nil {
			o.recordError(ctx, fmt.Errorf("failed to set camera to %t: %w", enabled, err))
		}
	}
	return enabled
}

func (o *Orchestrator) ConnectionState() ConnectionState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.connectionState
}

// RecordingStates returns the requested and confirmed recording states.
func (o *Orchestrator) RecordingStates() (requested, confirmed RecordingState) {
	return o.recording.State()
}

func (o *Orchestrator) FlowState() FlowState {
	if flow := o.currentFlow(); flow != nil {
		return flow.State()
	}
	return FlowUninitialized
}

// Session returns a deep copy of the interview session view; the zero
// value before a session exists.
func (o *Orchestrator) Session() InterviewSession {
	if flow := o.currentFlow(); flow != nil {
		return flow.Session()
	}
	return InterviewSession{}
}

// AnswerBuffer returns the answer text accumulated for the next
// submission.
func (o *Orchestrator) AnswerBuffer() string {
	if flow := o.currentFlow(); flow != nil {
		return flow.AnswerBuffer()
	}
	return ""
}

// Conversation returns a copy of the conversation record, or nil before
// Start succeeds or after Stop.
func (o *Orchestrator) Conversation() *ConversationRecord {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.conversation == nil {
		return nil
	}
	record := *o.conversation
	record.Questions = append([]string(nil), o.conversation.Questions...)
	return &record
}

// Transcript returns a point-in-time snapshot of the transcript.
func (o *Orchestrator) Transcript() []Message {
	return o.transcript.Messages()
}

// LogEntries returns a point-in-time snapshot of the event log.
func (o *Orchestrator) LogEntries() []EventLogEntry {
	return o.eventLog.Entries()
}

func (o *Orchestrator) MicEnabled() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.micOn
}

func (o *Orchestrator) CamEnabled() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.camOn
}

func (o *Orchestrator) currentFlow() *QuestionFlowController {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.flow
}

func (o *Orchestrator) logEvent(entryType string) {
	o.eventLog.Append(entryType)
	if opts, _, _ := o.hooks(); opts.onEvent != nil {
		opts.onEvent(entryType)
	}
}

func (o *Orchestrator) notifyRecordingState(state RecordingState) {
	if opts, _, _ := o.hooks(); opts.onRecordingStateChanged != nil {
		opts.onRecordingStateChanged(state)
	}
}

func (o *Orchestrator) recordError(ctx context.Context, err error) {
	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	logger.ErrorContext(ctx, err.Error())
}
