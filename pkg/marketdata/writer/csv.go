package writer

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/quantpilot/backtest/internal/types"
	"github.com/quantpilot/backtest/pkg/errors"
)

// CSVWriter streams candles straight into a CSV file in the column layout
// the backtest datasource reads back.
type CSVWriter struct {
	file       *os.File
	writer     *csv.Writer
	outputPath string
}

// NewCSVWriter creates a CSV candle writer targeting outputPath.
func NewCSVWriter(outputPath string) CandleWriter {
	return &CSVWriter{
		outputPath: outputPath,
	}
}

// Initialize implements CandleWriter.
func (w *CSVWriter) Initialize() error {
	file, err := os.Create(w.outputPath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrCodeMarketDataWriteFailed, "failed to create %q", w.outputPath)
	}

	w.file = file
	w.writer = csv.NewWriter(file)

	if err := w.writer.Write([]string{"timestamp", "open", "high", "low", "close", "volume"}); err != nil {
		return errors.Wrap(err, errors.ErrCodeMarketDataWriteFailed, "failed to write csv header")
	}

	return nil
}

// Write implements CandleWriter.
func (w *CSVWriter) Write(candle types.Candle) error {
	if w.writer == nil {
		return errors.New(errors.ErrCodeMarketDataWriteFailed, "writer not initialized")
	}

	record := []string{
		strconv.FormatInt(candle.Timestamp, 10),
		strconv.FormatFloat(candle.Open, 'f', -1, 64),
		strconv.FormatFloat(candle.High, 'f', -1, 64),
		strconv.FormatFloat(candle.Low, 'f', -1, 64),
		strconv.FormatFloat(candle.Close, 'f', -1, 64),
		strconv.FormatFloat(candle.Volume, 'f', -1, 64),
	}

	if err := w.writer.Write(record); err != nil {
		return errors.Wrap(err, errors.ErrCodeMarketDataWriteFailed, "failed to write csv record")
	}

	return nil
}

// Finalize implements CandleWriter.
func (w *CSVWriter) Finalize() (string, error) {
	if w.writer == nil {
		return "", errors.New(errors.ErrCodeMarketDataWriteFailed, "writer not initialized")
	}

	w.writer.Flush()

	if err := w.writer.Error(); err != nil {
		return "", errors.Wrap(err, errors.ErrCodeMarketDataWriteFailed, "failed to flush csv")
	}

	if err := w.file.Close(); err != nil {
		return "", errors.Wrap(err, errors.ErrCodeMarketDataWriteFailed, "failed to close csv file")
	}

	w.file = nil
	w.writer = nil

	return w.outputPath, nil
}

// Close implements CandleWriter.
func (w *CSVWriter) Close() error {
	if w.file != nil {
		return w.file.Close()
	}

	return nil
}

// GetOutputPath implements CandleWriter.
func (w *CSVWriter) GetOutputPath() string {
	return w.outputPath
}
