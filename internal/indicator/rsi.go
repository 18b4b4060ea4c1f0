package indicator

import "github.com/moznion/go-optional"

// RSI computes the Wilder relative strength index. The first value is seeded
// at index period from simple averages of the first period deltas, then
// smoothed recursively. When the average loss is exactly zero the ratio is
// computed against a denominator of 1, a documented approximation that keeps
// the division defined for flat or one-sided price action.
func RSI(data []float64, period int) Series {
	if period <= 0 || len(data) < period+1 {
		return undefinedSeries(len(data))
	}

	gains := make([]float64, 0, len(data)-1)
	losses := make([]float64, 0, len(data)-1)

	for i := 1; i < len(data); i++ {
		change := data[i] - data[i-1]
		if change > 0 {
			gains = append(gains, change)
			losses = append(losses, 0)
		} else {
			gains = append(gains, 0)
			losses = append(losses, -change)
		}
	}

	avgGain := 0.0
	avgLoss := 0.0

	for i := 0; i < period; i++ {
		avgGain += gains[i]
		avgLoss += losses[i]
	}

	avgGain /= float64(period)
	avgLoss /= float64(period)

	result := make(Series, 0, len(data))
	for i := 0; i < period; i++ {
		result = append(result, optional.None[float64]())
	}

	result = append(result, optional.Some(rsiFromAverages(avgGain, avgLoss)))

	// Subsequent values use Wilder's smoothing method.
	for i := period; i < len(gains); i++ {
		avgGain = (avgGain*float64(period-1) + gains[i]) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + losses[i]) / float64(period)

		result = append(result, optional.Some(rsiFromAverages(avgGain, avgLoss)))
	}

	return result
}

func rsiFromAverages(avgGain, avgLoss float64) float64 {
	denominator := avgLoss
	if denominator == 0 {
		denominator = 1
	}

	rs := avgGain / denominator

	return 100 - 100/(1+rs)
}
