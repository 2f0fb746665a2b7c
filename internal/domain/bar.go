package domain

import "time"

// Bar is a one-second OHLC summary of all ticks within its bucket.
type Bar struct {
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
}

// BarSeries is an ordered bar sequence aligned 1:1 to a SessionWindow
// grid: one bar per grid instant, strictly increasing, no gaps.
type BarSeries []Bar

// HighLow returns the session high (max of bar highs) and session low
// (min of bar lows). The series must be non-empty.
func (s BarSeries) HighLow() (hi, lo float64) {
	hi, lo = s[0].High, s[0].Low
	for _, b := range s[1:] {
		if b.High > hi {
			hi = b.High
		}
		if b.Low < lo {
			lo = b.Low
		}
	}
	return hi, lo
}
