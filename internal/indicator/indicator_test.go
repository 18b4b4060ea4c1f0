package indicator

import (
	"testing"

	"github.com/quantpilot/backtest/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candlesFromCloses(closes []float64) []types.Candle {
	candles := make([]types.Candle, 0, len(closes))
	for i, c := range closes {
		candles = append(candles, types.Candle{
			Timestamp: int64(i) * 60_000,
			Open:      c,
			High:      c + 1,
			Low:       c - 1,
			Close:     c,
			Volume:    1000,
		})
	}

	return candles
}

func TestSMA(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5}
	series := SMA(data, 3)

	require.Len(t, series, 5)
	assert.False(t, series.Defined(0))
	assert.False(t, series.Defined(1))
	assert.InDelta(t, 2.0, series.At(2).Unwrap(), 1e-9)
	assert.InDelta(t, 3.0, series.At(3).Unwrap(), 1e-9)
	assert.InDelta(t, 4.0, series.At(4).Unwrap(), 1e-9)
}

func TestSMAShortInput(t *testing.T) {
	series := SMA([]float64{1, 2}, 5)

	require.Len(t, series, 2)
	assert.Equal(t, -1, series.FirstDefined())
}

func TestEMASeedsWithSMA(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6}
	series := EMA(data, 3)

	require.Len(t, series, 6)
	assert.False(t, series.Defined(1))

	// Seed is SMA(3) of the first three values.
	assert.InDelta(t, 2.0, series.At(2).Unwrap(), 1e-9)

	// Recursive step with multiplier 2/(3+1) = 0.5.
	assert.InDelta(t, 3.0, series.At(3).Unwrap(), 1e-9)
	assert.InDelta(t, 4.0, series.At(4).Unwrap(), 1e-9)
}

func TestRSIWarmupAndBounds(t *testing.T) {
	data := []float64{44, 44.34, 44.09, 44.15, 43.61, 44.33, 44.83, 45.10, 45.42, 45.84,
		46.08, 45.89, 46.03, 45.61, 46.28, 46.28}
	series := RSI(data, 14)

	require.Len(t, series, len(data))

	// First defined value sits one full period after the start because the
	// first change needs two closes.
	assert.Equal(t, 14, series.FirstDefined())

	for i := 14; i < len(data); i++ {
		v := series.At(i).Unwrap()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 100.0)
	}
}

func TestRSIMonotonicUptrend(t *testing.T) {
	data := make([]float64, 20)
	for i := range data {
		data[i] = 100 + 3*float64(i)
	}

	series := RSI(data, 14)

	// With no losses the unit denominator makes RS equal the average gain:
	// a constant gain of 3 yields RSI = 100 - 100/(1+3) = 75.
	for i := 14; i < len(data); i++ {
		assert.InDelta(t, 75.0, series.At(i).Unwrap(), 1e-9)
	}
}

func TestRSIFlatSeries(t *testing.T) {
	data := make([]float64, 20)
	for i := range data {
		data[i] = 50
	}

	series := RSI(data, 14)

	// No gains and no losses: RSI is 100 - 100/(1+0) with the zero average
	// loss replaced by 1, which lands on 0.
	for i := 14; i < len(data); i++ {
		assert.InDelta(t, 0.0, series.At(i).Unwrap(), 1e-9)
	}
}

func TestATRConstantRange(t *testing.T) {
	candles := candlesFromCloses([]float64{10, 10, 10, 10, 10, 10})
	series := ATR(candles, 3)

	require.Len(t, series, 6)
	assert.Equal(t, 3, series.FirstDefined())

	// High-low is always 2 and closes never move, so every true range is 2.
	for i := 3; i < 6; i++ {
		assert.InDelta(t, 2.0, series.At(i).Unwrap(), 1e-9)
	}
}

func TestBollingerConstantData(t *testing.T) {
	data := []float64{5, 5, 5, 5, 5}
	bands := Bollinger(data, 3, 2)

	for i := 2; i < 5; i++ {
		assert.InDelta(t, 5.0, bands.Middle.At(i).Unwrap(), 1e-9)
		assert.InDelta(t, 5.0, bands.Upper.At(i).Unwrap(), 1e-9)
		assert.InDelta(t, 5.0, bands.Lower.At(i).Unwrap(), 1e-9)
	}
}

func TestBollingerBandOrdering(t *testing.T) {
	data := []float64{1, 3, 2, 5, 4, 6, 8, 7, 9, 10}
	bands := Bollinger(data, 4, 2)

	for i := 3; i < len(data); i++ {
		upper := bands.Upper.At(i).Unwrap()
		middle := bands.Middle.At(i).Unwrap()
		lower := bands.Lower.At(i).Unwrap()

		assert.GreaterOrEqual(t, upper, middle)
		assert.GreaterOrEqual(t, middle, lower)
	}
}

func TestMACDAlignment(t *testing.T) {
	data := make([]float64, 60)
	for i := range data {
		data[i] = 100 + float64(i%7)
	}

	result := MACD(data, 12, 26, 9)

	require.Len(t, result.Line, 60)
	require.Len(t, result.Signal, 60)
	require.Len(t, result.Histogram, 60)

	// The line turns on with the slow EMA; the signal stacks its own EMA
	// warm-up on top of that.
	assert.Equal(t, 25, result.Line.FirstDefined())
	assert.Equal(t, 33, result.Signal.FirstDefined())
	assert.Equal(t, 33, result.Histogram.FirstDefined())

	for i := 33; i < 60; i++ {
		expected := result.Line.At(i).Unwrap() - result.Signal.At(i).Unwrap()
		assert.InDelta(t, expected, result.Histogram.At(i).Unwrap(), 1e-9)
	}
}

func TestStochasticBounds(t *testing.T) {
	candles := candlesFromCloses([]float64{10, 11, 12, 11, 10, 9, 10, 11, 12, 13, 12, 11, 10, 11, 12, 13, 14, 13, 12, 11})
	result := Stochastic(candles, 14, 3, 3)

	require.Len(t, result.K, len(candles))
	require.Len(t, result.D, len(candles))

	for i := range candles {
		if !result.K.Defined(i) {
			continue
		}

		v := result.K.At(i).Unwrap()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 100.0)
	}

	// %D warms up smoothD-1 bars after %K.
	assert.Equal(t, result.K.FirstDefined()+2, result.D.FirstDefined())
}

func TestStochasticZeroRange(t *testing.T) {
	candles := make([]types.Candle, 20)
	for i := range candles {
		candles[i] = types.Candle{Timestamp: int64(i), Open: 10, High: 10, Low: 10, Close: 10, Volume: 1}
	}

	result := Stochastic(candles, 14, 1, 1)

	// A zero high-low range falls back to a unit denominator instead of
	// dividing by zero.
	for i := 13; i < 20; i++ {
		assert.InDelta(t, 0.0, result.K.At(i).Unwrap(), 1e-9)
	}
}

func TestSpecNormalizeDefaults(t *testing.T) {
	tests := []struct {
		name string
		in   Spec
		want Spec
	}{
		{
			name: "sma default period",
			in:   Spec{Kind: KindSMA},
			want: Spec{Kind: KindSMA, Field: FieldLine, Period: 9},
		},
		{
			name: "rsi keeps explicit period",
			in:   Spec{Kind: KindRSI, Period: 7},
			want: Spec{Kind: KindRSI, Field: FieldLine, Period: 7},
		},
		{
			name: "macd defaults",
			in:   Spec{Kind: KindMACD, Field: FieldSignal},
			want: Spec{Kind: KindMACD, Field: FieldSignal, FastPeriod: 12, SlowPeriod: 26, SignalPeriod: 9},
		},
		{
			name: "bollinger default field is middle",
			in:   Spec{Kind: KindBollinger},
			want: Spec{Kind: KindBollinger, Field: FieldMiddle, Period: 20, StdDevMult: 2},
		},
		{
			name: "stochastic defaults",
			in:   Spec{Kind: KindStochastic},
			want: Spec{Kind: KindStochastic, Field: FieldLine, Period: 14, SmoothK: 3, SmoothD: 3},
		},
		{
			name: "irrelevant parameters dropped",
			in:   Spec{Kind: KindEMA, Period: 21, FastPeriod: 12, StdDevMult: 3},
			want: Spec{Kind: KindEMA, Field: FieldLine, Period: 21},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestSetMemoizesMultiOutputIndicators(t *testing.T) {
	candles := candlesFromCloses(make([]float64, 60))
	for i := range candles {
		candles[i].Close = 100 + float64(i%5)
	}

	set := NewSet(candles)

	line, err := set.Series(Spec{Kind: KindMACD})
	require.NoError(t, err)

	// The line request computes the whole MACD, so the signal is already
	// cached under its own spec.
	_, cached := set.series[Spec{Kind: KindMACD}.Normalize().WithField(FieldSignal)]
	assert.True(t, cached)

	signal, err := set.Series(Spec{Kind: KindMACD, Field: FieldSignal})
	require.NoError(t, err)

	assert.Len(t, line, 60)
	assert.Len(t, signal, 60)
}

func TestSetUnknownIndicator(t *testing.T) {
	set := NewSet(candlesFromCloses([]float64{1, 2, 3}))

	_, err := set.Series(Spec{Kind: "vwap"})
	require.Error(t, err)
}

func TestSetPriceSeries(t *testing.T) {
	set := NewSet(candlesFromCloses([]float64{1, 2, 3}))

	series, err := set.Series(Spec{Kind: KindPrice})
	require.NoError(t, err)

	require.Len(t, series, 3)
	assert.InDelta(t, 2.0, series.At(1).Unwrap(), 1e-9)
}
