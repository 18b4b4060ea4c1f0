package indicator

import (
	"math"

	"github.com/moznion/go-optional"
	"github.com/quantpilot/backtest/internal/types"
)

// ATR computes the Wilder average true range over candles. The first ATR is
// the simple average of the first period true ranges (available from the
// second candle onward), after which values are smoothed recursively.
func ATR(candles []types.Candle, period int) Series {
	if period <= 0 || len(candles) < period+1 {
		return undefinedSeries(len(candles))
	}

	// True range needs a previous close, so the series of true ranges
	// starts at index 1.
	trueRanges := make([]float64, len(candles))

	for i := 1; i < len(candles); i++ {
		high := candles[i].High
		low := candles[i].Low
		prevClose := candles[i-1].Close

		trueRanges[i] = math.Max(high-low, math.Max(math.Abs(high-prevClose), math.Abs(low-prevClose)))
	}

	result := make(Series, 0, len(candles))
	for i := 0; i < period; i++ {
		result = append(result, optional.None[float64]())
	}

	sum := 0.0
	for i := 1; i <= period; i++ {
		sum += trueRanges[i]
	}

	atr := sum / float64(period)
	result = append(result, optional.Some(atr))

	for i := period + 1; i < len(candles); i++ {
		atr = (atr*float64(period-1) + trueRanges[i]) / float64(period)
		result = append(result, optional.Some(atr))
	}

	return result
}
