package file

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/bytedance/sonic"

	"nfo-bars/internal/domain"
	"nfo-bars/internal/storage"
)

// InstrumentStore implements storage.InstrumentStore over per-day JSON files.
type InstrumentStore struct {
	dir string
}

// NewInstrumentStore creates a store reading from the given data directory.
func NewInstrumentStore(dir string) *InstrumentStore {
	return &InstrumentStore{dir: dir}
}

// Compile-time interface check.
var _ storage.InstrumentStore = (*InstrumentStore)(nil)

// instrumentRow is the day-file wire shape of one table row.
type instrumentRow struct {
	InstrumentToken uint32 `json:"instrument_token"`
	Tradingsymbol   string `json:"tradingsymbol"`
	Name            string `json:"name"`
	InstrumentType  string `json:"instrument_type"`
	Segment         string `json:"segment"`
	Exchange        string `json:"exchange"`
	Expiry          string `json:"expiry"` // domain.DayLayout, empty when none
}

// GetByDay reads and decodes the day's instrument table.
func (s *InstrumentStore) GetByDay(_ context.Context, day string) ([]*domain.InstrumentRecord, error) {
	path := instrumentPath(s.dir, day)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("read instrument file %s: %w", path, err)
	}

	var rows []instrumentRow
	if err := sonic.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decode instrument file %s: %w", path, err)
	}

	table := make([]*domain.InstrumentRecord, 0, len(rows))
	for i, row := range rows {
		var expiry time.Time
		if row.Expiry != "" {
			expiry, err = time.Parse(domain.DayLayout, row.Expiry)
			if err != nil {
				return nil, fmt.Errorf("row %d: parse expiry %q: %w", i, row.Expiry, err)
			}
		}
		table = append(table, &domain.InstrumentRecord{
			Token:          row.InstrumentToken,
			Tradingsymbol:  row.Tradingsymbol,
			Name:           row.Name,
			InstrumentType: row.InstrumentType,
			Segment:        row.Segment,
			Exchange:       row.Exchange,
			Expiry:         expiry,
		})
	}
	return table, nil
}
