package strategy

import (
	"github.com/quantpilot/backtest/internal/indicator"
	"github.com/quantpilot/backtest/internal/logger"
	"github.com/quantpilot/backtest/internal/types"
	"go.uber.org/zap"
)

// Program is the rule form every strategy variant compiles down to: one
// entry rule set, one exit rule set, and the direction opened on entry.
// Rule sets are AND-composed; alternative setups belong in separate configs.
type Program struct {
	Direction types.Direction
	Entry     []Condition
	Exit      []Condition
}

// run is the single executor loop shared by every variant, which guarantees
// the named presets and the generic rule strategy have identical semantics.
//
// The pass starts at the first index where every referenced indicator is
// defined, evaluates entry rules when flat and exit rules when in a
// position, marks equity to market on every visited bar, and force-closes
// any position left open at the final bar.
func run(candles []types.Candle, program Program, broker Broker, log *logger.Logger) error {
	if len(candles) == 0 {
		return nil
	}

	set := indicator.NewSet(candles)

	entry, entryStart := bind(program.Entry, set, log)
	exit, exitStart := bind(program.Exit, set, log)

	start := entryStart
	if exitStart > start {
		start = exitStart
	}

	if start < 1 {
		start = 1
	}

	direction := program.Direction
	if direction == "" {
		direction = types.DirectionLong
	}

	opened := 0

	for i := start; i < len(candles); i++ {
		price := candles[i].Close
		timestamp := candles[i].Timestamp

		if !broker.HasPosition() {
			if allHold(entry, i) {
				ok := false
				if direction == types.DirectionShort {
					ok = broker.OpenShort(price, timestamp)
				} else {
					ok = broker.OpenLong(price, timestamp)
				}

				if ok {
					opened++
				}
			}
		} else if allHold(exit, i) {
			broker.ClosePosition(price, timestamp)
		}

		broker.UpdateEquity(price, timestamp)
	}

	if broker.HasPosition() {
		last := candles[len(candles)-1]
		broker.ClosePosition(last.Close, last.Timestamp)
	}

	log.Debug("strategy pass finished",
		zap.Int("warmup_index", start),
		zap.Int("candles", len(candles)),
		zap.Int("positions_opened", opened),
	)

	return nil
}

// bind resolves each condition's operands against the run's indicator set
// and returns the warm-up index the bound conditions impose. An operand
// that cannot be resolved becomes a never-defined series, which keeps its
// conditions permanently false instead of failing the run.
func bind(conditions []Condition, set *indicator.Set, log *logger.Logger) ([]boundCondition, int) {
	bound := make([]boundCondition, 0, len(conditions))
	start := 0

	for _, condition := range conditions {
		b := boundCondition{
			left:  bindOperand(condition.Left, set, log),
			op:    condition.Op,
			right: bindOperand(condition.Right, set, log),
		}

		for _, operand := range []boundOperand{b.left, b.right} {
			if operand.series == nil {
				continue
			}

			first := operand.series.FirstDefined()
			if first < 0 {
				first = set.Len()
			}

			if first > start {
				start = first
			}
		}

		bound = append(bound, b)
	}

	return bound, start
}

func bindOperand(operand Operand, set *indicator.Set, log *logger.Logger) boundOperand {
	if operand.Indicator.IsNone() {
		return boundOperand{value: operand.Value}
	}

	spec := operand.Indicator.Unwrap()

	series, err := set.Series(spec)
	if err != nil {
		log.Warn("unresolvable indicator treated as undefined",
			zap.String("indicator", string(spec.Kind)),
			zap.Error(err),
		)

		series = make(indicator.Series, set.Len())
	}

	return boundOperand{series: series}
}

func allHold(conditions []boundCondition, i int) bool {
	if len(conditions) == 0 {
		return false
	}

	for _, condition := range conditions {
		if !condition.eval(i) {
			return false
		}
	}

	return true
}
