package strategy

import (
	"encoding/json"

	"github.com/moznion/go-optional"
	"github.com/quantpilot/backtest/internal/indicator"
	"github.com/quantpilot/backtest/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Op is a rule comparison operator.
type Op string

const (
	OpCrossesAbove       Op = "crossesAbove"
	OpCrossesBelow       Op = "crossesBelow"
	OpGreaterThan        Op = "greaterThan"
	OpLessThan           Op = "lessThan"
	OpGreaterThanOrEqual Op = "greaterThanOrEqual"
	OpLessThanOrEqual    Op = "lessThanOrEqual"
)

// Operand is one side of a rule condition: either an indicator spec or a
// numeric literal. On the wire it is an object carrying either an
// "indicator" key or a "value" key.
type Operand struct {
	Indicator optional.Option[indicator.Spec]
	Value     optional.Option[float64]
}

// IndicatorOperand builds an operand referencing an indicator series.
func IndicatorOperand(spec indicator.Spec) Operand {
	return Operand{Indicator: optional.Some(spec)}
}

// ValueOperand builds a constant numeric operand.
func ValueOperand(value float64) Operand {
	return Operand{Value: optional.Some(value)}
}

type literalOperand struct {
	Value *float64 `yaml:"value" json:"value"`
}

func (o *Operand) fromLiteral(value *float64) bool {
	if value == nil {
		return false
	}

	o.Value = optional.Some(*value)

	return true
}

func (o *Operand) fromSpec(spec indicator.Spec) error {
	if spec.Kind == "" {
		return errors.New(errors.ErrCodeInvalidRule, "operand needs either an indicator or a value")
	}

	o.Indicator = optional.Some(spec)

	return nil
}

// UnmarshalJSON decodes either {"value": n} or an inline indicator spec.
func (o *Operand) UnmarshalJSON(data []byte) error {
	var literal literalOperand
	if err := json.Unmarshal(data, &literal); err == nil && o.fromLiteral(literal.Value) {
		return nil
	}

	var spec indicator.Spec
	if err := json.Unmarshal(data, &spec); err != nil {
		return errors.Wrap(err, errors.ErrCodeInvalidRule, "failed to parse rule operand")
	}

	return o.fromSpec(spec)
}

// UnmarshalYAML decodes the same shapes as UnmarshalJSON.
func (o *Operand) UnmarshalYAML(node *yaml.Node) error {
	var literal literalOperand
	if err := node.Decode(&literal); err == nil && o.fromLiteral(literal.Value) {
		return nil
	}

	var spec indicator.Spec
	if err := node.Decode(&spec); err != nil {
		return errors.Wrap(err, errors.ErrCodeInvalidRule, "failed to parse rule operand")
	}

	return o.fromSpec(spec)
}

// MarshalJSON emits the wire shape the unmarshaler accepts.
func (o Operand) MarshalJSON() ([]byte, error) {
	if o.Value.IsSome() {
		return json.Marshal(map[string]float64{"value": o.Value.Unwrap()})
	}

	return json.Marshal(o.Indicator.TakeOr(indicator.Spec{}))
}

// MarshalYAML emits the wire shape the unmarshaler accepts.
func (o Operand) MarshalYAML() (interface{}, error) {
	if o.Value.IsSome() {
		return map[string]float64{"value": o.Value.Unwrap()}, nil
	}

	return o.Indicator.TakeOr(indicator.Spec{}), nil
}

// Condition compares two operands at one candle index.
type Condition struct {
	Left  Operand `yaml:"left" json:"left"`
	Op    Op      `yaml:"op" json:"op"`
	Right Operand `yaml:"right" json:"right"`
}

// boundOperand is an operand resolved against one run's indicator set.
type boundOperand struct {
	series indicator.Series
	value  optional.Option[float64]
}

func (b boundOperand) at(i int) optional.Option[float64] {
	if b.series != nil {
		return b.series.At(i)
	}

	return b.value
}

// boundCondition is a condition with both operands resolved, ready for
// per-index evaluation.
type boundCondition struct {
	left  boundOperand
	op    Op
	right boundOperand
}

// eval decides whether the condition holds at index i. Undefined current
// values always evaluate to false. For crossing operators an undefined
// previous bar counts as "not yet crossed", so a pair that is already past
// the crossing level when its indicators warm up fires exactly once.
func (c boundCondition) eval(i int) bool {
	leftNow := c.left.at(i)
	rightNow := c.right.at(i)

	if leftNow.IsNone() || rightNow.IsNone() {
		return false
	}

	l := leftNow.Unwrap()
	r := rightNow.Unwrap()

	switch c.op {
	case OpCrossesAbove:
		return c.priorHolds(i, func(lp, rp float64) bool { return lp <= rp }) && l > r
	case OpCrossesBelow:
		return c.priorHolds(i, func(lp, rp float64) bool { return lp >= rp }) && l < r
	case OpGreaterThan:
		return l > r
	case OpLessThan:
		return l < r
	case OpGreaterThanOrEqual:
		return l >= r
	case OpLessThanOrEqual:
		return l <= r
	default:
		return false
	}
}

func (c boundCondition) priorHolds(i int, holds func(lp, rp float64) bool) bool {
	leftPrev := c.left.at(i - 1)
	rightPrev := c.right.at(i - 1)

	if leftPrev.IsNone() || rightPrev.IsNone() {
		return true
	}

	return holds(leftPrev.Unwrap(), rightPrev.Unwrap())
}
