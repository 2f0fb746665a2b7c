package domain

import "time"

// Trading session bounds, fixed by the exchange.
const (
	sessionOpenHour    = 9
	sessionOpenMinute  = 15
	sessionCloseHour   = 15
	sessionCloseMinute = 29
	sessionCloseSecond = 59
)

// SessionWindow is the fixed, inclusive 1-second bar grid for one
// trading day: 09:15:00 through 15:29:59 in the day's location.
type SessionWindow struct {
	Start time.Time
	End   time.Time
	Step  time.Duration
}

// NewSessionWindow builds the session grid for the given calendar day.
// The day's location carries over to every grid instant.
func NewSessionWindow(day time.Time) SessionWindow {
	y, m, d := day.Date()
	loc := day.Location()
	return SessionWindow{
		Start: time.Date(y, m, d, sessionOpenHour, sessionOpenMinute, 0, 0, loc),
		End:   time.Date(y, m, d, sessionCloseHour, sessionCloseMinute, sessionCloseSecond, 0, loc),
		Step:  time.Second,
	}
}

// Size returns the number of grid instants, endpoints inclusive.
func (w SessionWindow) Size() int {
	return int(w.End.Sub(w.Start)/w.Step) + 1
}

// At returns the i-th grid instant.
func (w SessionWindow) At(i int) time.Time {
	return w.Start.Add(time.Duration(i) * w.Step)
}

// Index maps a second-truncated timestamp to its grid slot.
// ok is false for instants outside the session.
func (w SessionWindow) Index(t time.Time) (int, bool) {
	if t.Before(w.Start) || t.After(w.End) {
		return 0, false
	}
	return int(t.Sub(w.Start) / w.Step), true
}
