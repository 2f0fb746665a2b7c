// Package file implements day-file backed stores. A trading day lives
// in two JSON documents inside one data directory:
//
//	<day>_instruments.json: array of instrument table rows
//	<day>_ticks.json:       object mapping token to tick tuples
package file

import "path/filepath"

// File name suffixes shared with the ingestion rename/discovery stages.
const (
	InstrumentsSuffix = "_instruments.json"
	TicksSuffix       = "_ticks.json"
)

// InstrumentFileName returns the instrument table file name for a day.
func InstrumentFileName(day string) string {
	return day + InstrumentsSuffix
}

// TickFileName returns the tick map file name for a day.
func TickFileName(day string) string {
	return day + TicksSuffix
}

func instrumentPath(dir, day string) string {
	return filepath.Join(dir, InstrumentFileName(day))
}

func tickPath(dir, day string) string {
	return filepath.Join(dir, TickFileName(day))
}
