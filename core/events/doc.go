// Package events defines the typed transport and session lifecycle event
// contract.
//
// Event kinds are grouped by receiver-facing namespaces:
//
//   - transport.*
//   - bot.*
//   - transcript.*
//   - recording.*
//
// Semantics used across the package:
//
//   - Final: terminal immutable text for the current speaker turn. A
//     non-final transcript event is a mutable snapshot that a later event
//     for the same open turn may supersede.
//   - Started/Stopped/Ended: lifecycle boundaries reported by the transport,
//     not requested state.
//
// transport events
//
//   - Connected (transport.connected): the realtime connection is live.
//   - Disconnected (transport.disconnected): the realtime connection ended.
//   - TransportError (transport.error): the transport reported a fault.
//
// bot events
//
//   - BotStarted (bot.started): the remote agent joined the session.
//   - BotStopped (bot.stopped): the remote agent left the session.
//
// transcript events
//
//   - UserTranscript (transcript.user): user utterance text, partial or
//     final.
//   - BotTranscript (transcript.bot): agent utterance text, partial or
//     final.
//   - UserMessage (transcript.user_message): text the user typed and sent
//     through the client rather than spoke.
//
// recording events
//
//   - RecordingStarted (recording.started): the remote recording is active.
//   - RecordingStopped (recording.stopped): the remote recording finished.
//   - RecordingError (recording.error): the remote recording failed.
package events
