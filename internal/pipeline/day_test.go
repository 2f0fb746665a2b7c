package pipeline

import (
	"context"
	"strings"
	"testing"
	"time"

	"nfo-bars/internal/domain"
	"nfo-bars/internal/instruments"
	"nfo-bars/internal/storage/memory"
)

const testDay = "2025-09-18"

func testInstruments(t *testing.T) []*domain.InstrumentRecord {
	t.Helper()
	expiry, err := time.Parse(domain.DayLayout, "2025-09-25")
	if err != nil {
		t.Fatal(err)
	}
	return []*domain.InstrumentRecord{
		{
			Token:          256265,
			Tradingsymbol:  "NIFTY BANK",
			Name:           "NIFTY BANK",
			InstrumentType: "EQ",
			Segment:        "INDICES",
			Exchange:       "NSE",
		},
		{
			Token:          11111,
			Tradingsymbol:  "BANKNIFTY25SEP48200CE",
			Name:           "BANKNIFTY",
			InstrumentType: "CE",
			Segment:        "NFO-OPT",
			Exchange:       "NFO",
			Expiry:         expiry,
		},
		{
			Token:          22222,
			Tradingsymbol:  "BANKNIFTY25SEP52000CE",
			Name:           "BANKNIFTY",
			InstrumentType: "CE",
			Segment:        "NFO-OPT",
			Exchange:       "NFO",
			Expiry:         expiry,
		},
	}
}

// testTicks covers the index (band high 48210, low 47830, so strikes
// 47600..48400) and the in-band option contract.
func testTicks(t *testing.T) domain.TickMap {
	t.Helper()
	base := sessionStart(t).UnixMilli()
	return domain.TickMap{
		256265: {
			{float64(base), 48000},
			{float64(base + 1000), 48210},
			{float64(base + 2000), 47830},
		},
		11111: {
			{float64(base), 320.5},
			{float64(base + 5000), 318},
		},
	}
}

func sessionStart(t *testing.T) time.Time {
	t.Helper()
	day, err := time.ParseInLocation(domain.DayLayout, testDay, time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), 9, 15, 0, 0, time.UTC)
}

func newTestRunner(instStore *memory.InstrumentStore, tickStore *memory.TickStore, barWriter *memory.BarWriter, workers int) *DayRunner {
	return NewDayRunner(DayOptions{
		Instruments:   instStore,
		Ticks:         tickStore,
		Bars:          barWriter,
		Index:         instruments.Predicates{Tradingsymbol: "NIFTY BANK", Segment: "INDICES"},
		Underlying:    "BANKNIFTY",
		Exchange:      "NFO",
		IndexSymbol:   "NIFTYBANK",
		Location:      time.UTC,
		OptionWorkers: workers,
	})
}

func TestDayRunner_Run(t *testing.T) {
	instStore := memory.NewInstrumentStore()
	instStore.Put(testDay, testInstruments(t))
	tickStore := memory.NewTickStore()
	tickStore.Put(testDay, testTicks(t))
	barWriter := memory.NewBarWriter()

	runner := newTestRunner(instStore, tickStore, barWriter, 4)
	result, err := runner.Run(context.Background(), testDay)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Index plus the single in-band option with tick data
	if result.SeriesWritten != 2 {
		t.Errorf("SeriesWritten = %d, want 2", result.SeriesWritten)
	}
	if result.SymbolsSkipped != 0 {
		t.Errorf("SymbolsSkipped = %d, want 0", result.SymbolsSkipped)
	}

	symbols := barWriter.Symbols(testDay)
	if len(symbols) != 2 {
		t.Fatalf("Symbols = %v, want 2 entries", symbols)
	}
	for _, symbol := range []string{"NIFTYBANK", "BANKNIFTY25SEP48200CE"} {
		series := barWriter.Series(testDay, symbol)
		if series == nil {
			t.Fatalf("series %s not written", symbol)
		}
		window := domain.NewSessionWindow(sessionStart(t))
		if len(series) != window.Size() {
			t.Errorf("series %s length = %d, want %d", symbol, len(series), window.Size())
		}
	}

	idx := barWriter.Series(testDay, "NIFTYBANK")
	if idx[0].Open != 48000 || idx[1].High != 48210 || idx[2].Low != 47830 {
		t.Errorf("unexpected index bars: %+v %+v %+v", idx[0], idx[1], idx[2])
	}
}

func TestDayRunner_Run_NilLocationDefaultsToUTC(t *testing.T) {
	instStore := memory.NewInstrumentStore()
	instStore.Put(testDay, testInstruments(t))
	tickStore := memory.NewTickStore()
	tickStore.Put(testDay, testTicks(t))
	barWriter := memory.NewBarWriter()

	runner := NewDayRunner(DayOptions{
		Instruments:   instStore,
		Ticks:         tickStore,
		Bars:          barWriter,
		Index:         instruments.Predicates{Tradingsymbol: "NIFTY BANK", Segment: "INDICES"},
		Underlying:    "BANKNIFTY",
		Exchange:      "NFO",
		IndexSymbol:   "NIFTYBANK",
		OptionWorkers: 4,
	})

	result, err := runner.Run(context.Background(), testDay)
	if err != nil {
		t.Fatalf("Run with nil Location: %v", err)
	}
	if result.SeriesWritten != 2 {
		t.Errorf("SeriesWritten = %d, want 2", result.SeriesWritten)
	}
}

func TestDayRunner_Run_OptionWithoutTicksSkipped(t *testing.T) {
	instStore := memory.NewInstrumentStore()
	instStore.Put(testDay, testInstruments(t))

	ticks := testTicks(t)
	delete(ticks, 11111)
	tickStore := memory.NewTickStore()
	tickStore.Put(testDay, ticks)
	barWriter := memory.NewBarWriter()

	runner := newTestRunner(instStore, tickStore, barWriter, 4)
	result, err := runner.Run(context.Background(), testDay)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.SeriesWritten != 1 {
		t.Errorf("SeriesWritten = %d, want 1", result.SeriesWritten)
	}
	if result.SymbolsSkipped != 1 {
		t.Errorf("SymbolsSkipped = %d, want 1", result.SymbolsSkipped)
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "BANKNIFTY25SEP48200CE") {
		t.Errorf("Errors = %v, want one entry naming the skipped symbol", result.Errors)
	}
}

func TestDayRunner_Run_NoIndexTicksFailsDay(t *testing.T) {
	instStore := memory.NewInstrumentStore()
	instStore.Put(testDay, testInstruments(t))

	ticks := testTicks(t)
	delete(ticks, 256265)
	tickStore := memory.NewTickStore()
	tickStore.Put(testDay, ticks)
	barWriter := memory.NewBarWriter()

	runner := newTestRunner(instStore, tickStore, barWriter, 4)
	if _, err := runner.Run(context.Background(), testDay); err == nil {
		t.Fatal("expected error when the index has no tick data")
	}
	if got := barWriter.Symbols(testDay); len(got) != 0 {
		t.Errorf("Symbols = %v, want none", got)
	}
}

func TestRunner_Run_FailedDayDoesNotAbortOthers(t *testing.T) {
	instStore := memory.NewInstrumentStore()
	instStore.Put(testDay, testInstruments(t))
	tickStore := memory.NewTickStore()
	tickStore.Put(testDay, testTicks(t))
	barWriter := memory.NewBarWriter()

	day := newTestRunner(instStore, tickStore, barWriter, 4)
	runner := NewRunner(RunnerOptions{Day: day, DayWorkers: 2})

	// 2025-09-19 has no data at all and must fail without aborting
	// the good day.
	result, err := runner.Run(context.Background(), []string{testDay, "2025-09-19"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.DaysProcessed != 1 {
		t.Errorf("DaysProcessed = %d, want 1", result.DaysProcessed)
	}
	if result.DaysFailed != 1 {
		t.Errorf("DaysFailed = %d, want 1", result.DaysFailed)
	}
	if !result.Failed() {
		t.Error("Failed() = false, want true")
	}
	if result.SeriesWritten != 2 {
		t.Errorf("SeriesWritten = %d, want 2", result.SeriesWritten)
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "2025-09-19") {
		t.Errorf("Errors = %v, want one entry for the failed day", result.Errors)
	}
}
