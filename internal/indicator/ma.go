package indicator

import "github.com/moznion/go-optional"

// SMA computes the simple moving average over the trailing period values.
// Positions before period-1 are undefined.
func SMA(data []float64, period int) Series {
	if period <= 0 {
		return undefinedSeries(len(data))
	}

	result := make(Series, 0, len(data))

	for i := range data {
		if i < period-1 {
			result = append(result, optional.None[float64]())

			continue
		}

		sum := 0.0
		for j := 0; j < period; j++ {
			sum += data[i-j]
		}

		result = append(result, optional.Some(sum/float64(period)))
	}

	return result
}
