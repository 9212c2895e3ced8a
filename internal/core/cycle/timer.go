package cycle

import "time"

// TimerHandle refers to a scheduled one-shot callback.
type TimerHandle interface {
	// Stop cancels the callback. It reports whether the cancellation
	// happened before the callback started running.
	Stop() bool
}

// TimerService schedules one-shot delayed callbacks. The engine holds at
// most one pending handle and always cancels before rescheduling.
type TimerService interface {
	Schedule(delay time.Duration, fn func()) TimerHandle
}

type systemTimers struct{}

// SystemTimers returns a TimerService backed by time.AfterFunc.
func SystemTimers() TimerService {
	return systemTimers{}
}

func (systemTimers) Schedule(delay time.Duration, fn func()) TimerHandle {
	return systemHandle{timer: time.AfterFunc(delay, fn)}
}

type systemHandle struct {
	timer *time.Timer
}

func (handle systemHandle) Stop() bool {
	return handle.timer.Stop()
}
