package notify

import "time"

// Scheduler runs fn once after d. The returned func cancels the call and
// reports whether it was still pending.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) (stop func() bool)
}

type timerScheduler struct{}

func (timerScheduler) AfterFunc(d time.Duration, fn func()) func() bool {
	return time.AfterFunc(d, fn).Stop
}

// DefaultScheduler uses runtime timers.
var DefaultScheduler Scheduler = timerScheduler{}

const DefaultDuration = 3 * time.Second
