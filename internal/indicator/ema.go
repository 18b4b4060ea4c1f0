package indicator

import "github.com/moznion/go-optional"

// EMA computes the exponential moving average. The series is seeded with the
// SMA of the first period values at index period-1 and undefined before it.
func EMA(data []float64, period int) Series {
	if period <= 0 || len(data) < period {
		return undefinedSeries(len(data))
	}

	result := make(Series, 0, len(data))
	multiplier := 2.0 / (float64(period) + 1.0)

	sum := 0.0
	for i := 0; i < period; i++ {
		sum += data[i]

		if i < period-1 {
			result = append(result, optional.None[float64]())
		}
	}

	prev := sum / float64(period)
	result = append(result, optional.Some(prev))

	for i := period; i < len(data); i++ {
		prev = (data[i]-prev)*multiplier + prev
		result = append(result, optional.Some(prev))
	}

	return result
}
