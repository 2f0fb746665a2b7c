package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/bytedance/sonic"

	"nfo-bars/internal/domain"
	"nfo-bars/internal/storage"
)

// TickStore implements storage.TickStore over per-day JSON files.
type TickStore struct {
	dir string
}

// NewTickStore creates a store reading from the given data directory.
func NewTickStore(dir string) *TickStore {
	return &TickStore{dir: dir}
}

// Compile-time interface check.
var _ storage.TickStore = (*TickStore)(nil)

// GetByDay reads and decodes the day's tick map. A token whose payload
// does not decode as numeric tuples is kept with a single empty tuple,
// so aggregation reports it as malformed instead of the whole day
// failing to load.
func (s *TickStore) GetByDay(_ context.Context, day string) (domain.TickMap, error) {
	path := tickPath(s.dir, day)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("read tick file %s: %w", path, err)
	}

	var payloads map[string]json.RawMessage
	if err := sonic.Unmarshal(data, &payloads); err != nil {
		return nil, fmt.Errorf("decode tick file %s: %w", path, err)
	}

	tickMap := make(domain.TickMap, len(payloads))
	for key, payload := range payloads {
		token, err := strconv.ParseUint(key, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("tick file %s: token key %q: %w", path, key, err)
		}

		var ticks []domain.RawTick
		if err := sonic.Unmarshal(payload, &ticks); err != nil {
			tickMap[uint32(token)] = []domain.RawTick{{}}
			continue
		}
		tickMap[uint32(token)] = ticks
	}
	return tickMap, nil
}
