package domain

import "time"

// DayLayout is the trading-day key used in file names, output folders
// and store lookups.
const DayLayout = "2006-01-02"

// InstrumentRecord is one row of the per-day instrument reference table.
// Token is unique within a day's table.
type InstrumentRecord struct {
	Token          uint32
	Tradingsymbol  string
	Name           string
	InstrumentType string
	Segment        string
	Exchange       string
	Expiry         time.Time // zero when the instrument has no expiry
}

// StrikeBand is the ordered, inclusive set of option strike prices
// derived once per day from the index session range.
type StrikeBand []int
