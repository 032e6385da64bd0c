package metrics

import "time"

type Timer struct {
	start time.Time
	now   func() time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now(), now: time.Now}
}

// StartTimerAt starts a timer on an injected clock.
func StartTimerAt(now func() time.Time) *Timer {
	return &Timer{start: now(), now: now}
}

func (t *Timer) Duration() time.Duration {
	return t.now().Sub(t.start)
}
