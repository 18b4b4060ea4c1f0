package indicator

import "github.com/moznion/go-optional"

// MACDResult holds the three series produced by one MACD computation.
type MACDResult struct {
	Line      Series
	Signal    Series
	Histogram Series
}

// MACD computes moving average convergence/divergence. The MACD line is
// EMA(fast) - EMA(slow). The signal line is an EMA of the MACD line
// restricted to its defined region and re-aligned to the original index
// space, so its warm-up stacks on top of the slow EMA's warm-up.
func MACD(data []float64, fastPeriod, slowPeriod, signalPeriod int) MACDResult {
	fastEMA := EMA(data, fastPeriod)
	slowEMA := EMA(data, slowPeriod)

	line := make(Series, 0, len(data))

	for i := range data {
		fast := fastEMA.At(i)
		slow := slowEMA.At(i)

		if fast.IsNone() || slow.IsNone() {
			line = append(line, optional.None[float64]())

			continue
		}

		line = append(line, optional.Some(fast.Unwrap()-slow.Unwrap()))
	}

	// Compute the signal EMA over the defined region only, then pad it
	// back out so all three series share the input's index space.
	defined := make([]float64, 0, len(data))
	for _, v := range line {
		if v.IsSome() {
			defined = append(defined, v.Unwrap())
		}
	}

	compactSignal := EMA(defined, signalPeriod)

	signal := make(Series, 0, len(data))
	signalIndex := 0

	for _, v := range line {
		if v.IsNone() {
			signal = append(signal, optional.None[float64]())

			continue
		}

		signal = append(signal, compactSignal.At(signalIndex))
		signalIndex++
	}

	histogram := make(Series, 0, len(data))

	for i := range line {
		l := line.At(i)
		s := signal.At(i)

		if l.IsNone() || s.IsNone() {
			histogram = append(histogram, optional.None[float64]())

			continue
		}

		histogram = append(histogram, optional.Some(l.Unwrap()-s.Unwrap()))
	}

	return MACDResult{
		Line:      line,
		Signal:    signal,
		Histogram: histogram,
	}
}
