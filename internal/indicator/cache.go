package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/quantpilot/backtest/internal/types"
	"github.com/quantpilot/backtest/pkg/errors"
)

// Set memoizes indicator series over a fixed candle slice for the duration
// of one run. Multi-output indicators are computed once and stored under a
// spec per output field, so a strategy referencing both the MACD line and
// its signal pays for a single MACD computation.
//
// Set is not safe for concurrent use; each run owns its own Set.
type Set struct {
	candles []types.Candle
	closes  []float64
	series  map[Spec]Series
}

// NewSet builds an empty indicator set over candles.
func NewSet(candles []types.Candle) *Set {
	return &Set{
		candles: candles,
		closes:  types.Closes(candles),
		series:  make(map[Spec]Series),
	}
}

// Len returns the number of candles the set was built over.
func (s *Set) Len() int {
	return len(s.candles)
}

// Series returns the memoized series for spec, computing it on first use.
func (s *Set) Series(spec Spec) (Series, error) {
	spec = spec.Normalize()

	if cached, ok := s.series[spec]; ok {
		return cached, nil
	}

	if err := s.compute(spec); err != nil {
		return nil, err
	}

	cached, ok := s.series[spec]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeUnknownIndicator,
			"indicator %q has no output field %q", spec.Kind, spec.Field)
	}

	return cached, nil
}

func (s *Set) compute(spec Spec) error {
	switch spec.Kind {
	case KindPrice:
		closes := make(Series, 0, len(s.closes))
		for _, c := range s.closes {
			closes = append(closes, optional.Some(c))
		}

		s.series[spec] = closes

	case KindSMA:
		s.series[spec] = SMA(s.closes, spec.Period)

	case KindEMA:
		s.series[spec] = EMA(s.closes, spec.Period)

	case KindRSI:
		s.series[spec] = RSI(s.closes, spec.Period)

	case KindATR:
		s.series[spec] = ATR(s.candles, spec.Period)

	case KindMACD:
		result := MACD(s.closes, spec.FastPeriod, spec.SlowPeriod, spec.SignalPeriod)

		s.series[spec.WithField(FieldLine)] = result.Line
		s.series[spec.WithField(FieldSignal)] = result.Signal
		s.series[spec.WithField(FieldHistogram)] = result.Histogram

	case KindBollinger:
		result := Bollinger(s.closes, spec.Period, spec.StdDevMult)

		s.series[spec.WithField(FieldUpper)] = result.Upper
		s.series[spec.WithField(FieldMiddle)] = result.Middle
		s.series[spec.WithField(FieldLower)] = result.Lower

	case KindStochastic:
		result := Stochastic(s.candles, spec.Period, spec.SmoothK, spec.SmoothD)

		s.series[spec.WithField(FieldLine)] = result.K
		s.series[spec.WithField(FieldD)] = result.D

	default:
		return errors.Newf(errors.ErrCodeUnknownIndicator, "unknown indicator kind %q", spec.Kind)
	}

	return nil
}
