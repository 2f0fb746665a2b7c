package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"nfo-bars/internal/domain"
	"nfo-bars/internal/storage"
	pgstore "nfo-bars/internal/storage/postgres"
)

const testDay = "2025-09-19"

func testTable() []*domain.InstrumentRecord {
	return []*domain.InstrumentRecord{
		{Token: 260105, Tradingsymbol: "NIFTY BANK", Name: "NIFTY BANK", InstrumentType: "EQ", Segment: "INDICES", Exchange: "NSE"},
		{Token: 111001, Tradingsymbol: "BANKNIFTY25SEP48000CE", Name: "BANKNIFTY", InstrumentType: "CE", Segment: "NFO-OPT", Exchange: "NFO",
			Expiry: time.Date(2025, 9, 25, 0, 0, 0, 0, time.UTC)},
	}
}

func TestInstrumentStoreRoundTrip(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := pgstore.NewInstrumentStore(pool)

	require.NoError(t, store.InsertBulk(ctx, testDay, testTable()))

	table, err := store.GetByDay(ctx, testDay)
	require.NoError(t, err)
	require.Len(t, table, 2)

	// Ordered by token; the option row has the expiry, the index has none.
	require.Equal(t, uint32(111001), table[0].Token)
	require.Equal(t, "BANKNIFTY25SEP48000CE", table[0].Tradingsymbol)
	require.True(t, table[0].Expiry.Equal(time.Date(2025, 9, 25, 0, 0, 0, 0, time.UTC)))
	require.Equal(t, uint32(260105), table[1].Token)
	require.True(t, table[1].Expiry.IsZero())
}

func TestInstrumentStoreDuplicate(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := pgstore.NewInstrumentStore(pool)

	r := testTable()[0]
	require.NoError(t, store.Insert(ctx, testDay, r))
	require.ErrorIs(t, store.Insert(ctx, testDay, r), storage.ErrDuplicateKey)

	// Same token under a different day is a distinct row.
	require.NoError(t, store.Insert(ctx, "2025-09-22", r))
}

func TestInstrumentStoreMissingDay(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := pgstore.NewInstrumentStore(pool)
	_, err := store.GetByDay(context.Background(), "2025-01-01")
	require.ErrorIs(t, err, storage.ErrNotFound)
}
