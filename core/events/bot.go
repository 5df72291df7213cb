package events

const (
	// KindBotStarted identifies the remote agent joining the session.
	KindBotStarted Kind = "bot.started"
	// KindBotStopped identifies the remote agent leaving the session.
	KindBotStopped Kind = "bot.stopped"
)

// BotStarted marks the remote agent joining the session.
type BotStarted struct{ Base }

func NewBotStarted() BotStarted {
	return BotStarted{Base: NewBase(KindBotStarted)}
}

// BotStopped marks the remote agent leaving the session.
type BotStopped struct{ Base }

func NewBotStopped() BotStopped {
	return BotStopped{Base: NewBase(KindBotStopped)}
}
