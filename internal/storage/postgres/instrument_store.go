package postgres

import (
	"context"
	"fmt"
	"time"

	"nfo-bars/internal/domain"
	"nfo-bars/internal/storage"
)

// InstrumentStore implements storage.InstrumentStore using PostgreSQL.
// One row per (trading_day, instrument_token).
type InstrumentStore struct {
	pool *Pool
}

// NewInstrumentStore creates a new InstrumentStore.
func NewInstrumentStore(pool *Pool) *InstrumentStore {
	return &InstrumentStore{pool: pool}
}

// Compile-time interface check.
var _ storage.InstrumentStore = (*InstrumentStore)(nil)

// Insert adds one table row for a day. Returns ErrDuplicateKey if the
// (trading_day, instrument_token) pair exists.
func (s *InstrumentStore) Insert(ctx context.Context, day string, r *domain.InstrumentRecord) error {
	tradingDay, err := time.Parse(domain.DayLayout, day)
	if err != nil {
		return fmt.Errorf("parse day %q: %w", day, err)
	}

	query := `
		INSERT INTO instruments (
			trading_day, instrument_token, tradingsymbol, name, instrument_type, segment, exchange, expiry
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	var expiry *time.Time
	if !r.Expiry.IsZero() {
		expiry = &r.Expiry
	}

	_, err = s.pool.Exec(ctx, query,
		tradingDay,
		int64(r.Token),
		r.Tradingsymbol,
		r.Name,
		r.InstrumentType,
		r.Segment,
		r.Exchange,
		expiry,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert instrument: %w", err)
	}
	return nil
}

// InsertBulk adds a day's table inside one transaction. The whole batch
// fails on any duplicate.
func (s *InstrumentStore) InsertBulk(ctx context.Context, day string, table []*domain.InstrumentRecord) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tradingDay, err := time.Parse(domain.DayLayout, day)
	if err != nil {
		return fmt.Errorf("parse day %q: %w", day, err)
	}

	query := `
		INSERT INTO instruments (
			trading_day, instrument_token, tradingsymbol, name, instrument_type, segment, exchange, expiry
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	for _, r := range table {
		var expiry *time.Time
		if !r.Expiry.IsZero() {
			expiry = &r.Expiry
		}
		if _, err := tx.Exec(ctx, query,
			tradingDay, int64(r.Token), r.Tradingsymbol, r.Name,
			r.InstrumentType, r.Segment, r.Exchange, expiry,
		); err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert instrument %d: %w", r.Token, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetByDay retrieves a day's full instrument table ordered by token.
// Returns ErrNotFound when the day has no rows.
func (s *InstrumentStore) GetByDay(ctx context.Context, day string) ([]*domain.InstrumentRecord, error) {
	tradingDay, err := time.Parse(domain.DayLayout, day)
	if err != nil {
		return nil, fmt.Errorf("parse day %q: %w", day, err)
	}

	query := `
		SELECT instrument_token, tradingsymbol, name, instrument_type, segment, exchange, expiry
		FROM instruments
		WHERE trading_day = $1
		ORDER BY instrument_token ASC
	`

	rows, err := s.pool.Query(ctx, query, tradingDay)
	if err != nil {
		return nil, fmt.Errorf("get instruments by day: %w", err)
	}
	defer rows.Close()

	var table []*domain.InstrumentRecord
	for rows.Next() {
		var (
			token  int64
			r      domain.InstrumentRecord
			expiry *time.Time
		)
		if err := rows.Scan(&token, &r.Tradingsymbol, &r.Name, &r.InstrumentType, &r.Segment, &r.Exchange, &expiry); err != nil {
			return nil, fmt.Errorf("scan instrument: %w", err)
		}
		r.Token = uint32(token)
		if expiry != nil {
			r.Expiry = *expiry
		}
		table = append(table, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate instruments: %w", err)
	}

	if len(table) == 0 {
		return nil, storage.ErrNotFound
	}
	return table, nil
}
