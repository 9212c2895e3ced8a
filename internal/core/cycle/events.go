package cycle

// State represents the current engine phase.
type State string

const (
	StateStopped           State = "stopped"
	StateStudying          State = "studying"
	StateShortBreaking     State = "short_breaking"
	StateLongBreaking      State = "long_breaking"
	StateLongBreakFinished State = "long_break_finished"
)

// Cue identifies an audio cue the engine asks its player to play.
type Cue string

const (
	CueStartStudy      Cue = "start_study"
	CueStartShortBreak Cue = "start_short_break"
	CueStartLongBreak  Cue = "start_long_break"
	CueEndLongBreak    Cue = "end_long_break"
)

// StateListener receives the display text and phase for every state change.
type StateListener func(statusText string, state State)

// TotalTimeListener receives the accumulated focus total in seconds.
type TotalTimeListener func(totalSeconds int)

// NotificationListener receives user-facing alerts.
type NotificationListener func(title, message string)
