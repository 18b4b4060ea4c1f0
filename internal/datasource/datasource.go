package datasource

import (
	"github.com/quantpilot/backtest/internal/types"
)

// DataSource loads candle series for backtest runs.
type DataSource interface {
	// Initialize points the source at a data file (CSV or Parquet).
	Initialize(path string) error
	// Count returns the number of candles available.
	Count() (int, error)
	// LoadAll returns every candle ordered by ascending timestamp.
	LoadAll() ([]types.Candle, error)
	// Close releases the underlying resources.
	Close() error
}
