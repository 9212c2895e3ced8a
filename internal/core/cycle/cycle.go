package cycle

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"lockin/internal/core/model"
)

// Status texts pushed to state listeners.
const (
	idleStatus     = "LockIn\nRight-click to Start"
	shortStatus    = "☕ Short Break..."
	longStatus     = "\U0001f9d8 Long Break..."
	pausedStatus   = "⏸️ Paused"
	finishedStatus = "\U0001f389 Long Break Ended\nRight-click to start a new cycle"
)

// SessionLogger records completed study intervals.
type SessionLogger interface {
	LogSession(start, end time.Time, net time.Duration)
}

// CuePlayer plays a named audio cue. Playback errors stay inside the player.
type CuePlayer interface {
	Play(cue Cue)
}

// Options contains injectable engine dependencies. Zero values select the
// real clock, real timers and a seeded random draw.
type Options struct {
	Timers  TimerService
	Now     func() time.Time
	RandInt func(min, max int) int
}

// Engine is the study cycle state machine. It alternates randomized study
// intervals with short breaks, inserts a long break once enough focus time
// accumulated, and credits completed intervals to a running total.
//
// All commands and the timeout callback serialize on one mutex; listeners
// and collaborators are invoked after the mutex is released, in
// registration order.
type Engine struct {
	mu      sync.Mutex
	config  model.CycleConfig
	logger  SessionLogger
	cues    CuePlayer
	timers  TimerService
	now     func() time.Time
	randInt func(min, max int) int

	state            State
	paused           bool
	cycleCount       int
	totalStudy       time.Duration
	cycleStudy       time.Duration
	sessionStart     time.Time
	sessionDuration  time.Duration
	pendingDuration  time.Duration
	remainingOnPause time.Duration
	deadline         time.Time
	handle           TimerHandle
	epoch            uint64

	stateListeners  []StateListener
	totalListeners  []TotalTimeListener
	noticeListeners []NotificationListener
}

// New creates an engine in the stopped state. The caller owns emitting the
// initial status via ResetCycle once listeners are registered.
func New(config model.CycleConfig, logger SessionLogger, cues CuePlayer, options Options) *Engine {
	if config.StudyMax < config.StudyMin {
		config.StudyMax = config.StudyMin
	}
	if options.Timers == nil {
		options.Timers = SystemTimers()
	}
	if options.Now == nil {
		options.Now = time.Now
	}
	if options.RandInt == nil {
		options.RandInt = func(min, max int) int {
			if max <= min {
				return min
			}
			return min + rand.Intn(max-min+1)
		}
	}

	return &Engine{
		config:  config,
		logger:  logger,
		cues:    cues,
		timers:  options.Timers,
		now:     options.Now,
		randInt: options.RandInt,
		state:   StateStopped,
	}
}

// SubscribeStateChanged registers a state listener.
func (engine *Engine) SubscribeStateChanged(listener StateListener) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.stateListeners = append(engine.stateListeners, listener)
}

// SubscribeTotalTime registers a focus-total listener.
func (engine *Engine) SubscribeTotalTime(listener TotalTimeListener) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.totalListeners = append(engine.totalListeners, listener)
}

// SubscribeNotification registers an alert listener.
func (engine *Engine) SubscribeNotification(listener NotificationListener) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.noticeListeners = append(engine.noticeListeners, listener)
}

// SetTotalStudyTime seeds the persisted focus total loaded from config.
func (engine *Engine) SetTotalStudyTime(total time.Duration) {
	engine.mu.Lock()
	var emits []func()
	if total < 0 {
		total = 0
	}
	engine.totalStudy = total
	engine.emitTotalLocked(&emits)
	engine.mu.Unlock()
	dispatch(emits)
}

// StartOrResume starts a new cycle from stopped, or resumes a paused phase
// with exactly the time that was left when it was paused. Calling it while a
// phase runs unpaused does nothing; the menu layer keeps the action disabled
// in that situation.
func (engine *Engine) StartOrResume() {
	engine.mu.Lock()
	var emits []func()
	switch {
	case engine.paused:
		engine.resumeLocked(&emits)
	case engine.state == StateStopped, engine.state == StateLongBreakFinished:
		if engine.state == StateLongBreakFinished {
			engine.resetCycleLocked(&emits)
		}
		if engine.cycleStudy >= engine.config.LongBreakThreshold {
			engine.enterLongBreakLocked(&emits)
		} else {
			engine.enterStudyLocked(&emits)
		}
	}
	engine.mu.Unlock()
	dispatch(emits)
}

// Pause freezes the active phase, snapshotting the remaining time.
func (engine *Engine) Pause() {
	engine.mu.Lock()
	var emits []func()
	if engine.handle != nil && !engine.paused {
		engine.remainingOnPause = engine.deadline.Sub(engine.now())
		if engine.remainingOnPause < 0 {
			engine.remainingOnPause = 0
		}
		engine.cancelTimerLocked()
		engine.paused = true
		engine.emitStateLocked(&emits, pausedStatus)
	}
	engine.mu.Unlock()
	dispatch(emits)
}

// ResetCycle stops any active phase and returns to stopped. The in-progress
// study interval, if any, is discarded without logging or crediting time.
// The accumulated focus total is untouched.
func (engine *Engine) ResetCycle() {
	engine.mu.Lock()
	var emits []func()
	engine.resetCycleLocked(&emits)
	engine.mu.Unlock()
	dispatch(emits)
}

// ResetAll is ResetCycle plus zeroing the accumulated focus total.
func (engine *Engine) ResetAll() {
	engine.mu.Lock()
	var emits []func()
	engine.totalStudy = 0
	engine.resetCycleLocked(&emits)
	engine.mu.Unlock()
	dispatch(emits)
}

// Stop cancels any pending timer and discards the in-progress interval.
// Used on application shutdown.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	engine.cancelTimerLocked()
	engine.clearSessionLocked()
	engine.paused = false
	engine.remainingOnPause = 0
	engine.mu.Unlock()
}

// State returns the current phase.
func (engine *Engine) State() State {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.state
}

// IsPaused reports whether the active phase is suspended.
func (engine *Engine) IsPaused() bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.paused
}

// IsActive reports whether a phase timer is running or suspended.
func (engine *Engine) IsActive() bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.handle != nil || engine.paused
}

// Remaining returns the time left in the active phase. While paused it
// returns the frozen snapshot taken at pause time.
func (engine *Engine) Remaining() time.Duration {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.paused {
		return engine.remainingOnPause
	}
	if engine.handle == nil {
		return 0
	}
	remaining := engine.deadline.Sub(engine.now())
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// CycleCount returns the number of study rounds started since the last
// cycle reset.
func (engine *Engine) CycleCount() int {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.cycleCount
}

// TotalStudyTime returns the accumulated focus total.
func (engine *Engine) TotalStudyTime() time.Duration {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.totalStudy
}

// CycleStudyTime returns the focus time accumulated since the last long
// break, the value compared against the long-break threshold.
func (engine *Engine) CycleStudyTime() time.Duration {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.cycleStudy
}

// LongBreakThreshold returns the configured threshold.
func (engine *Engine) LongBreakThreshold() time.Duration {
	return engine.config.LongBreakThreshold
}

func (engine *Engine) onTimeout(epoch uint64) {
	engine.mu.Lock()
	if epoch != engine.epoch {
		// A reset or reschedule raced this callback.
		engine.mu.Unlock()
		return
	}
	engine.handle = nil

	var emits []func()
	switch engine.state {
	case StateStudying:
		if !engine.sessionStart.IsZero() && engine.sessionDuration > 0 {
			start := engine.sessionStart
			end := engine.now()
			net := engine.sessionDuration
			logger := engine.logger
			emits = append(emits, func() { logger.LogSession(start, end, net) })
		}
		engine.clearSessionLocked()

		credit := engine.pendingDuration
		engine.totalStudy += credit
		engine.cycleStudy += credit
		engine.enterShortBreakLocked(&emits)

	case StateShortBreaking:
		if engine.cycleStudy >= engine.config.LongBreakThreshold {
			engine.enterLongBreakLocked(&emits)
		} else {
			engine.enterStudyLocked(&emits)
		}

	case StateLongBreaking:
		engine.playCueLocked(&emits, CueEndLongBreak)
		engine.state = StateLongBreakFinished
		engine.emitStateLocked(&emits, finishedStatus)
		engine.emitNoticeLocked(&emits, "Break Finished", "Ready to start the next session?")
	}
	engine.mu.Unlock()
	dispatch(emits)
}

func (engine *Engine) enterStudyLocked(emits *[]func()) {
	engine.cycleCount++
	engine.state = StateStudying

	minSeconds := int(engine.config.StudyMin / time.Second)
	maxSeconds := int(engine.config.StudyMax / time.Second)
	duration := time.Duration(engine.randInt(minSeconds, maxSeconds)) * time.Second

	engine.sessionStart = engine.now()
	engine.sessionDuration = duration

	engine.emitStateLocked(emits, studyStatus(engine.cycleCount))
	engine.playCueLocked(emits, CueStartStudy)
	engine.scheduleLocked(duration, duration)
}

func (engine *Engine) enterShortBreakLocked(emits *[]func()) {
	engine.state = StateShortBreaking
	engine.emitStateLocked(emits, shortStatus)
	engine.emitTotalLocked(emits)
	engine.playCueLocked(emits, CueStartShortBreak)
	engine.scheduleLocked(engine.config.ShortBreak, 0)
}

func (engine *Engine) enterLongBreakLocked(emits *[]func()) {
	engine.state = StateLongBreaking
	engine.emitStateLocked(emits, longStatus)
	engine.emitTotalLocked(emits)
	engine.playCueLocked(emits, CueStartLongBreak)
	// The cycle counter toward the next long break restarts as soon as the
	// break begins, not when it completes.
	engine.cycleStudy = 0
	engine.scheduleLocked(engine.config.LongBreak, 0)
}

func (engine *Engine) resumeLocked(emits *[]func()) {
	if !engine.paused {
		return
	}
	remaining := engine.remainingOnPause
	engine.remainingOnPause = 0
	engine.paused = false

	switch engine.state {
	case StateStudying:
		engine.playCueLocked(emits, CueStartStudy)
		engine.emitStateLocked(emits, studyStatus(engine.cycleCount))
	case StateShortBreaking:
		engine.playCueLocked(emits, CueStartShortBreak)
		engine.emitStateLocked(emits, shortStatus)
	case StateLongBreaking:
		engine.playCueLocked(emits, CueStartLongBreak)
		engine.emitStateLocked(emits, longStatus)
	}

	// The planned duration credited on timeout survives the pause.
	engine.scheduleLocked(remaining, engine.pendingDuration)
}

func (engine *Engine) resetCycleLocked(emits *[]func()) {
	engine.cancelTimerLocked()
	engine.cycleCount = 0
	engine.state = StateStopped
	engine.paused = false
	engine.remainingOnPause = 0
	engine.clearSessionLocked()
	engine.cycleStudy = 0
	engine.emitStateLocked(emits, idleStatus)
	engine.emitTotalLocked(emits)
}

func (engine *Engine) clearSessionLocked() {
	engine.sessionStart = time.Time{}
	engine.sessionDuration = 0
}

func (engine *Engine) scheduleLocked(delay, credit time.Duration) {
	engine.cancelTimerLocked()
	engine.pendingDuration = credit
	engine.deadline = engine.now().Add(delay)
	epoch := engine.epoch
	engine.handle = engine.timers.Schedule(delay, func() {
		engine.onTimeout(epoch)
	})
}

func (engine *Engine) cancelTimerLocked() {
	if engine.handle != nil {
		engine.handle.Stop()
		engine.handle = nil
	}
	// Invalidate any callback already in flight.
	engine.epoch++
}

func (engine *Engine) emitStateLocked(emits *[]func(), text string) {
	listeners := append([]StateListener(nil), engine.stateListeners...)
	state := engine.state
	*emits = append(*emits, func() {
		for _, listener := range listeners {
			listener(text, state)
		}
	})
}

func (engine *Engine) emitTotalLocked(emits *[]func()) {
	listeners := append([]TotalTimeListener(nil), engine.totalListeners...)
	totalSeconds := int(engine.totalStudy / time.Second)
	*emits = append(*emits, func() {
		for _, listener := range listeners {
			listener(totalSeconds)
		}
	})
}

func (engine *Engine) emitNoticeLocked(emits *[]func(), title, message string) {
	listeners := append([]NotificationListener(nil), engine.noticeListeners...)
	*emits = append(*emits, func() {
		for _, listener := range listeners {
			listener(title, message)
		}
	})
}

func (engine *Engine) playCueLocked(emits *[]func(), cue Cue) {
	if engine.cues == nil {
		return
	}
	cues := engine.cues
	*emits = append(*emits, func() { cues.Play(cue) })
}

func studyStatus(round int) string {
	return fmt.Sprintf("\U0001f4da Studying...\n(Round %d)", round)
}

func dispatch(emits []func()) {
	for _, emit := range emits {
		emit()
	}
}
