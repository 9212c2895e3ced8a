package model

import "time"

// Cue file keys recognized by the config and the audio player.
const (
	SoundStartStudy      = "start_study"
	SoundStartShortBreak = "start_short_break"
	SoundStartLongBreak  = "start_long_break"
	SoundEndLongBreak    = "end_long_break"
)

// CycleConfig contains runtime settings for the cycle engine state machine.
type CycleConfig struct {
	StudyMin           time.Duration
	StudyMax           time.Duration
	ShortBreak         time.Duration
	LongBreakThreshold time.Duration
	LongBreak          time.Duration
}

// Config is the full application configuration round-tripped through the
// YAML document, including the persisted focus total.
type Config struct {
	StudyTimeMin       time.Duration
	StudyTimeMax       time.Duration
	ShortBreakDuration time.Duration
	LongBreakThreshold time.Duration
	LongBreakDuration  time.Duration

	SoundFolder string
	SoundFiles  map[string]string

	TotalStudyTime time.Duration
}

// DefaultConfig returns the stock LockIn configuration.
func DefaultConfig() Config {
	return Config{
		StudyTimeMin:       3 * time.Minute,
		StudyTimeMax:       5 * time.Minute,
		ShortBreakDuration: 10 * time.Second,
		LongBreakThreshold: 90 * time.Minute,
		LongBreakDuration:  20 * time.Minute,
		SoundFolder:        "study_music",
		SoundFiles: map[string]string{
			SoundStartStudy:      "start_study.mp3",
			SoundStartShortBreak: "start_short_break.mp3",
			SoundStartLongBreak:  "start_long_break.mp3",
			SoundEndLongBreak:    "end_long_break.mp3",
		},
		TotalStudyTime: 0,
	}
}

// CycleConfig converts the application config to engine settings.
func (config Config) CycleConfig() CycleConfig {
	return CycleConfig{
		StudyMin:           config.StudyTimeMin,
		StudyMax:           config.StudyTimeMax,
		ShortBreak:         config.ShortBreakDuration,
		LongBreakThreshold: config.LongBreakThreshold,
		LongBreak:          config.LongBreakDuration,
	}
}
