package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/quantpilot/backtest/internal/types"
)

// StochasticResult holds the smoothed %K and %D series.
type StochasticResult struct {
	K Series
	D Series
}

// Stochastic computes the stochastic oscillator. Raw %K compares the close
// against the trailing high/low range (a zero range is treated as 1 to keep
// the division defined), smoothed by SMA(smoothK); %D is SMA(smoothD) of the
// smoothed %K.
func Stochastic(candles []types.Candle, period, smoothK, smoothD int) StochasticResult {
	rawK := make(Series, 0, len(candles))

	for i := range candles {
		if period <= 0 || i < period-1 {
			rawK = append(rawK, optional.None[float64]())

			continue
		}

		highest := candles[i].High
		lowest := candles[i].Low

		for j := 1; j < period; j++ {
			c := candles[i-j]
			if c.High > highest {
				highest = c.High
			}

			if c.Low < lowest {
				lowest = c.Low
			}
		}

		denominator := highest - lowest
		if denominator == 0 {
			denominator = 1
		}

		rawK = append(rawK, optional.Some((candles[i].Close-lowest)/denominator*100))
	}

	k := smaOverSeries(rawK, smoothK)
	d := smaOverSeries(k, smoothD)

	return StochasticResult{K: k, D: d}
}
