package clock

import "time"

// Clock is injected wherever calendar logic matters (quota rollover,
// subscription expiry) so tests never have to wait on wall time.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

func Real() Clock { return realClock{} }

// Fixed returns a clock pinned to t. Mutable via pointer for tests.
type Fixed struct {
	T time.Time
}

func (f *Fixed) Now() time.Time { return f.T }

// Period formats t as the year-month period string used across the app.
func Period(t time.Time) string {
	return t.Format("2006-01")
}
