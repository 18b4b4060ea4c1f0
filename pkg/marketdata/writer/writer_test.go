package writer

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/quantpilot/backtest/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCandles() []types.Candle {
	return []types.Candle{
		{Timestamp: 1700000000000, Open: 100, High: 102, Low: 99, Close: 101, Volume: 1000},
		{Timestamp: 1700003600000, Open: 101, High: 103, Low: 100, Close: 102, Volume: 1200},
	}
}

func TestCSVWriterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	w := NewCSVWriter(path)

	require.NoError(t, w.Initialize())

	for _, candle := range sampleCandles() {
		require.NoError(t, w.Write(candle))
	}

	outputPath, err := w.Finalize()
	require.NoError(t, err)
	assert.Equal(t, path, outputPath)

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "timestamp,open,high,low,close,volume", lines[0])
	assert.Equal(t, "1700000000000,100,102,99,101,1000", lines[1])
}

func TestCSVWriterRequiresInitialize(t *testing.T) {
	w := NewCSVWriter(filepath.Join(t.TempDir(), "out.csv"))

	assert.Error(t, w.Write(types.Candle{}))

	_, err := w.Finalize()
	assert.Error(t, err)
}

func TestDuckDBWriterExportsOrderedParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.parquet")
	w := NewDuckDBWriter(path)

	require.NoError(t, w.Initialize())
	defer w.Close()

	// Write out of order; Finalize exports sorted by timestamp.
	candles := sampleCandles()
	require.NoError(t, w.Write(candles[1]))
	require.NoError(t, w.Write(candles[0]))

	outputPath, err := w.Finalize()
	require.NoError(t, err)
	assert.Equal(t, path, outputPath)

	db, err := sql.Open("duckdb", "")
	require.NoError(t, err)
	defer db.Close()

	rows, err := db.Query(`SELECT timestamp, close FROM read_parquet('` + path + `') ORDER BY timestamp`)
	require.NoError(t, err)
	defer rows.Close()

	var (
		timestamps []int64
		closes     []float64
	)

	for rows.Next() {
		var ts int64

		var c float64

		require.NoError(t, rows.Scan(&ts, &c))

		timestamps = append(timestamps, ts)
		closes = append(closes, c)
	}

	require.NoError(t, rows.Err())
	assert.Equal(t, []int64{1700000000000, 1700003600000}, timestamps)
	assert.Equal(t, []float64{101, 102}, closes)
}
