package indicator

import (
	"math"

	"github.com/moznion/go-optional"
)

// BollingerBands holds the three band series produced by a single
// computation over the input data.
type BollingerBands struct {
	Upper  Series
	Middle Series
	Lower  Series
}

// Bollinger computes Bollinger Bands: the middle band is SMA(period), the
// outer bands sit stdDevMult population standard deviations away from it.
func Bollinger(data []float64, period int, stdDevMult float64) BollingerBands {
	middle := SMA(data, period)
	upper := make(Series, 0, len(data))
	lower := make(Series, 0, len(data))

	for i := range data {
		mid := middle.At(i)
		if mid.IsNone() {
			upper = append(upper, optional.None[float64]())
			lower = append(lower, optional.None[float64]())

			continue
		}

		m := mid.Unwrap()

		sum := 0.0
		for j := 0; j < period; j++ {
			diff := data[i-j] - m
			sum += diff * diff
		}

		std := math.Sqrt(sum / float64(period))

		upper = append(upper, optional.Some(m+std*stdDevMult))
		lower = append(lower, optional.Some(m-std*stdDevMult))
	}

	return BollingerBands{
		Upper:  upper,
		Middle: middle,
		Lower:  lower,
	}
}
