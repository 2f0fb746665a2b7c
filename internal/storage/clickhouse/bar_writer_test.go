package clickhouse_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"nfo-bars/internal/domain"
	chstore "nfo-bars/internal/storage/clickhouse"
)

func testSeries() domain.BarSeries {
	base := time.Date(2025, 9, 19, 9, 15, 0, 0, time.UTC)
	return domain.BarSeries{
		{Timestamp: base, Open: 48012, High: 48013.5, Low: 48010, Close: 48011},
		{Timestamp: base.Add(time.Second), Open: 48011, High: 48011, Low: 48011, Close: 48011},
		{Timestamp: base.Add(2 * time.Second), Open: 48011, High: 48020, Low: 48011, Close: 48019.25},
	}
}

func TestBarWriterRoundTrip(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	w := chstore.NewBarWriter(conn)
	series := testSeries()

	require.NoError(t, w.WriteSeries(ctx, "2025-09-19", "NIFTYBANK", series))

	rows, err := conn.Query(ctx, `
		SELECT ts, open, high, low, close
		FROM bars
		WHERE symbol = ?
		ORDER BY ts ASC
	`, "NIFTYBANK")
	require.NoError(t, err)
	defer rows.Close()

	var got domain.BarSeries
	for rows.Next() {
		var b domain.Bar
		require.NoError(t, rows.Scan(&b.Timestamp, &b.Open, &b.High, &b.Low, &b.Close))
		got = append(got, b)
	}
	require.NoError(t, rows.Err())

	require.Len(t, got, len(series))
	for i := range series {
		// DateTime has second resolution and the server's zone, so
		// compare instants rather than time.Time values.
		require.Equal(t, series[i].Timestamp.Unix(), got[i].Timestamp.Unix(), "bar %d timestamp", i)
		require.Equal(t, series[i].Open, got[i].Open, "bar %d open", i)
		require.Equal(t, series[i].High, got[i].High, "bar %d high", i)
		require.Equal(t, series[i].Low, got[i].Low, "bar %d low", i)
		require.Equal(t, series[i].Close, got[i].Close, "bar %d close", i)
	}
}

func TestBarWriterBadDay(t *testing.T) {
	w := chstore.NewBarWriter(nil)
	err := w.WriteSeries(context.Background(), "19-09-2025", "NIFTYBANK", testSeries())
	require.Error(t, err)
}
