// Package indicator implements technical indicator series used by the
// backtester. Every function is total: the returned series always has the
// same length as its input, with leading positions that lack sufficient
// history left undefined instead of raising an error.
package indicator

import "github.com/moznion/go-optional"

// Value is a single indicator reading. None marks a position where the
// indicator has not warmed up yet.
type Value = optional.Option[float64]

// Series is an indicator output aligned 1:1 with its input sequence.
type Series []Value

// At returns the value at index i, or None when i is out of range.
func (s Series) At(i int) Value {
	if i < 0 || i >= len(s) {
		return optional.None[float64]()
	}

	return s[i]
}

// Defined reports whether the series holds a value at index i.
func (s Series) Defined(i int) bool {
	return s.At(i).IsSome()
}

// FirstDefined returns the first index holding a value, or -1 when the
// series is undefined everywhere.
func (s Series) FirstDefined() int {
	for i := range s {
		if s[i].IsSome() {
			return i
		}
	}

	return -1
}

// undefinedSeries returns a series of length n with no defined values.
func undefinedSeries(n int) Series {
	s := make(Series, n)
	for i := range s {
		s[i] = optional.None[float64]()
	}

	return s
}

// smaOverSeries applies a simple moving average to an already-computed
// series. A window containing any undefined value yields an undefined
// result, which preserves warm-up gaps through chained smoothing.
func smaOverSeries(data Series, period int) Series {
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
		defined := true

		for j := 0; j < period; j++ {
			v := data[i-j]
			if v.IsNone() {
				defined = false

				break
			}

			sum += v.Unwrap()
		}

		if !defined {
			result = append(result, optional.None[float64]())

			continue
		}

		result = append(result, optional.Some(sum/float64(period)))
	}

	return result
}
