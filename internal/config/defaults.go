package config

// Default values for optional configuration fields.
const (
	DefaultSevenZip         = "7z"
	DefaultDataDir          = "data"
	DefaultOutputRoot       = "output"
	DefaultSink             = "csv"
	DefaultInstrumentSource = "file"
	DefaultIndexSymbol      = "NIFTYBANK"
	DefaultTimezone         = "Asia/Kolkata"

	DefaultIndexTradingsymbol  = "NIFTY BANK"
	DefaultIndexName           = "NIFTY BANK"
	DefaultIndexInstrumentType = "EQ"
	DefaultIndexSegment        = "INDICES"
	DefaultUnderlyingName      = "BANKNIFTY"
	DefaultExchange            = "NFO"

	DefaultDayWorkers    = 2
	DefaultOptionWorkers = 8
	DefaultMetricsPort   = 9090
)

func (c *Config) applyDefaults() {
	if c.Input.SevenZip == "" {
		c.Input.SevenZip = DefaultSevenZip
	}
	if c.Input.DataDir == "" {
		c.Input.DataDir = DefaultDataDir
	}
	if c.Input.InstrumentSource == "" {
		c.Input.InstrumentSource = DefaultInstrumentSource
	}

	if c.Output.Sink == "" {
		c.Output.Sink = DefaultSink
	}
	if c.Output.Root == "" {
		c.Output.Root = DefaultOutputRoot
	}
	if c.Output.IndexSymbol == "" {
		c.Output.IndexSymbol = DefaultIndexSymbol
	}

	if c.Session.Timezone == "" {
		c.Session.Timezone = DefaultTimezone
	}

	if c.Select.IndexTradingsymbol == "" {
		c.Select.IndexTradingsymbol = DefaultIndexTradingsymbol
	}
	if c.Select.IndexName == "" {
		c.Select.IndexName = DefaultIndexName
	}
	if c.Select.IndexInstrumentType == "" {
		c.Select.IndexInstrumentType = DefaultIndexInstrumentType
	}
	if c.Select.IndexSegment == "" {
		c.Select.IndexSegment = DefaultIndexSegment
	}
	if c.Select.UnderlyingName == "" {
		c.Select.UnderlyingName = DefaultUnderlyingName
	}
	if c.Select.Exchange == "" {
		c.Select.Exchange = DefaultExchange
	}

	if c.Workers.Days == 0 {
		c.Workers.Days = DefaultDayWorkers
	}
	if c.Workers.Options == 0 {
		c.Workers.Options = DefaultOptionWorkers
	}

	if c.Metrics.Port == 0 {
		c.Metrics.Port = DefaultMetricsPort
	}
}
