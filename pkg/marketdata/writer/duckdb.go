package writer

import (
	"database/sql"
	"strings"

	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/quantpilot/backtest/internal/types"
	"github.com/quantpilot/backtest/pkg/errors"
)

// DuckDBWriter buffers candles in an in-memory DuckDB table and exports the
// result as Parquet on Finalize. Every row carries a generated id so
// repeated downloads into the same store stay distinguishable.
type DuckDBWriter struct {
	db         *sql.DB
	tx         *sql.Tx
	stmt       *sql.Stmt
	outputPath string
}

// NewDuckDBWriter creates a Parquet-exporting writer. outputPath is the
// Parquet file to produce.
func NewDuckDBWriter(outputPath string) CandleWriter {
	return &DuckDBWriter{
		outputPath: outputPath,
	}
}

// Initialize implements CandleWriter.
func (w *DuckDBWriter) Initialize() (err error) {
	w.db, err = sql.Open("duckdb", "")
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeMarketDataWriteFailed, "failed to open duckdb")
	}

	_, err = w.db.Exec(`
		CREATE TABLE IF NOT EXISTS candles (
			id TEXT,
			timestamp BIGINT,
			open DOUBLE,
			high DOUBLE,
			low DOUBLE,
			close DOUBLE,
			volume DOUBLE
		)
	`)
	if err != nil {
		w.db.Close()

		return errors.Wrap(err, errors.ErrCodeMarketDataWriteFailed, "failed to create candle table")
	}

	w.tx, err = w.db.Begin()
	if err != nil {
		w.db.Close()

		return errors.Wrap(err, errors.ErrCodeMarketDataWriteFailed, "failed to begin transaction")
	}

	w.stmt, err = w.tx.Prepare(`
		INSERT INTO candles (id, timestamp, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		w.tx.Rollback()
		w.db.Close()

		return errors.Wrap(err, errors.ErrCodeMarketDataWriteFailed, "failed to prepare insert")
	}

	return nil
}

// Write implements CandleWriter.
func (w *DuckDBWriter) Write(candle types.Candle) error {
	if w.stmt == nil {
		return errors.New(errors.ErrCodeMarketDataWriteFailed, "writer not initialized")
	}

	_, err := w.stmt.Exec(
		uuid.New().String(),
		candle.Timestamp,
		candle.Open,
		candle.High,
		candle.Low,
		candle.Close,
		candle.Volume,
	)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeMarketDataWriteFailed, "failed to insert candle")
	}

	return nil
}

// Finalize implements CandleWriter. It commits the buffered rows and
// exports them ordered by timestamp.
func (w *DuckDBWriter) Finalize() (string, error) {
	if w.tx == nil {
		return "", errors.New(errors.ErrCodeMarketDataWriteFailed, "writer not initialized")
	}

	if err := w.tx.Commit(); err != nil {
		return "", errors.Wrap(err, errors.ErrCodeMarketDataWriteFailed, "failed to commit candles")
	}

	w.tx = nil

	query := `COPY (SELECT timestamp, open, high, low, close, volume FROM candles ORDER BY timestamp) TO '` +
		strings.ReplaceAll(w.outputPath, "'", "''") + `' (FORMAT 'parquet')`

	if _, err := w.db.Exec(query); err != nil {
		return "", errors.Wrapf(err, errors.ErrCodeMarketDataWriteFailed, "failed to export parquet to %q", w.outputPath)
	}

	return w.outputPath, nil
}

// Close implements CandleWriter.
func (w *DuckDBWriter) Close() error {
	if w.stmt != nil {
		w.stmt.Close()
	}

	if w.tx != nil {
		w.tx.Rollback()
	}

	if w.db != nil {
		return w.db.Close()
	}

	return nil
}

// GetOutputPath implements CandleWriter.
func (w *DuckDBWriter) GetOutputPath() string {
	return w.outputPath
}
