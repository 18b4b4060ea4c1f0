package types

import "math"

// Candle is a single OHLCV bar. Timestamp is in milliseconds since the Unix
// epoch, matching what the upstream data providers deliver. Candles are
// treated as read-only by every consumer in this module.
type Candle struct {
	Timestamp int64   `yaml:"timestamp" json:"timestamp" csv:"timestamp" validate:"gte=0"`
	Open      float64 `yaml:"open" json:"open" csv:"open"`
	High      float64 `yaml:"high" json:"high" csv:"high"`
	Low       float64 `yaml:"low" json:"low" csv:"low"`
	Close     float64 `yaml:"close" json:"close" csv:"close"`
	Volume    float64 `yaml:"volume" json:"volume" csv:"volume"`
}

// IsValid reports whether the candle carries a usable close price.
// Data feeds occasionally emit broken bars; those are skipped for
// mark-to-market purposes instead of aborting a run.
func (c Candle) IsValid() bool {
	return !math.IsNaN(c.Close) && !math.IsInf(c.Close, 0)
}

// Closes extracts the close price series from a candle slice.
func Closes(candles []Candle) []float64 {
	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}

	return closes
}
