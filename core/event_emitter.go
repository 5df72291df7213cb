package orchestration

import events "github.com/jastalk/interview-core/core/events"

type eventEmitter func(events.Event)

func noopEventEmitter(events.Event) {}

func newCallbackEventEmitter(opts StartOptions) eventEmitter {
	return func(event events.Event) {
		switch typedEvent := event.(type) {
		case events.UserTranscript:
			if opts.onUserTranscript != nil {
				opts.onUserTranscript(typedEvent.Text, typedEvent.Final)
			}
		case events.BotTranscript:
			if opts.onBotTranscript != nil {
				opts.onBotTranscript(typedEvent.Text, typedEvent.Final)
			}
		case events.UserMessage:
			if opts.onUserMessage != nil {
				opts.onUserMessage(typedEvent.Text)
			}
		}
	}
}
