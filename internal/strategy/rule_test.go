package strategy

import (
	"encoding/json"
	"testing"

	"github.com/moznion/go-optional"
	"github.com/quantpilot/backtest/internal/indicator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestOperandUnmarshalJSON(t *testing.T) {
	var literal Operand
	require.NoError(t, json.Unmarshal([]byte(`{"value": 42.5}`), &literal))
	assert.True(t, literal.Value.IsSome())
	assert.InDelta(t, 42.5, literal.Value.Unwrap(), 1e-9)

	var spec Operand
	require.NoError(t, json.Unmarshal([]byte(`{"indicator":"ema","period":50}`), &spec))
	require.True(t, spec.Indicator.IsSome())
	assert.Equal(t, indicator.KindEMA, spec.Indicator.Unwrap().Kind)
	assert.Equal(t, 50, spec.Indicator.Unwrap().Period)

	var invalid Operand
	assert.Error(t, json.Unmarshal([]byte(`{"period": 50}`), &invalid))
}

func TestOperandUnmarshalYAML(t *testing.T) {
	var literal Operand
	require.NoError(t, yaml.Unmarshal([]byte("value: 30\n"), &literal))
	assert.InDelta(t, 30, literal.Value.Unwrap(), 1e-9)

	var spec Operand
	require.NoError(t, yaml.Unmarshal([]byte("indicator: rsi\nperiod: 7\n"), &spec))
	assert.Equal(t, indicator.KindRSI, spec.Indicator.Unwrap().Kind)
}

func TestOperandMarshalRoundTrip(t *testing.T) {
	original := ValueOperand(12345)

	raw, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Operand
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.InDelta(t, 12345, decoded.Value.Unwrap(), 1e-9)

	spec := IndicatorOperand(indicator.Spec{Kind: indicator.KindMACD, Field: indicator.FieldSignal})

	raw, err = json.Marshal(spec)
	require.NoError(t, err)

	var decodedSpec Operand
	require.NoError(t, json.Unmarshal(raw, &decodedSpec))
	assert.Equal(t, indicator.FieldSignal, decodedSpec.Indicator.Unwrap().Field)
}

func boundSeries(values ...optional.Option[float64]) boundOperand {
	return boundOperand{series: indicator.Series(values)}
}

func some(v float64) optional.Option[float64] {
	return optional.Some(v)
}

func none() optional.Option[float64] {
	return optional.None[float64]()
}

func TestCrossesAboveRequiresPriorNotAbove(t *testing.T) {
	c := boundCondition{
		left:  boundSeries(some(1), some(3)),
		op:    OpCrossesAbove,
		right: boundOperand{value: some(2)},
	}

	assert.False(t, c.eval(0))
	assert.True(t, c.eval(1))

	alreadyAbove := boundCondition{
		left:  boundSeries(some(3), some(4)),
		op:    OpCrossesAbove,
		right: boundOperand{value: some(2)},
	}

	assert.False(t, alreadyAbove.eval(1))
}

func TestCrossesAboveFiresOnceAtWarmup(t *testing.T) {
	// Previous bar undefined counts as "not yet crossed": the condition
	// fires at the first defined index when already past the level, and
	// only there.
	c := boundCondition{
		left:  boundSeries(none(), some(5), some(6)),
		op:    OpCrossesAbove,
		right: boundOperand{value: some(2)},
	}

	assert.False(t, c.eval(0))
	assert.True(t, c.eval(1))
	assert.False(t, c.eval(2))
}

func TestCrossesBelow(t *testing.T) {
	c := boundCondition{
		left:  boundSeries(some(3), some(1)),
		op:    OpCrossesBelow,
		right: boundOperand{value: some(2)},
	}

	assert.True(t, c.eval(1))
}

func TestUndefinedCurrentValueIsFalse(t *testing.T) {
	for _, op := range []Op{OpCrossesAbove, OpCrossesBelow, OpGreaterThan, OpLessThan, OpGreaterThanOrEqual, OpLessThanOrEqual} {
		c := boundCondition{
			left:  boundSeries(some(1), none()),
			op:    op,
			right: boundOperand{value: some(0)},
		}

		assert.False(t, c.eval(1), string(op))
	}
}

func TestThresholdOperators(t *testing.T) {
	left := boundSeries(some(5))

	tests := []struct {
		op    Op
		right float64
		want  bool
	}{
		{OpGreaterThan, 4, true},
		{OpGreaterThan, 5, false},
		{OpGreaterThanOrEqual, 5, true},
		{OpLessThan, 6, true},
		{OpLessThan, 5, false},
		{OpLessThanOrEqual, 5, true},
	}

	for _, tt := range tests {
		c := boundCondition{left: left, op: tt.op, right: boundOperand{value: some(tt.right)}}
		assert.Equal(t, tt.want, c.eval(0), string(tt.op))
	}
}

func TestUnknownOperatorIsFalse(t *testing.T) {
	c := boundCondition{
		left:  boundSeries(some(5)),
		op:    "approximately",
		right: boundOperand{value: some(5)},
	}

	assert.False(t, c.eval(0))
}
