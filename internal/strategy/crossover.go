package strategy

import (
	"github.com/quantpilot/backtest/internal/indicator"
	"github.com/quantpilot/backtest/internal/logger"
	"github.com/quantpilot/backtest/internal/types"
)

// CrossoverParams parameterizes the moving-average crossover presets.
type CrossoverParams struct {
	FastPeriod int `json:"fastPeriod" yaml:"fastPeriod"`
	SlowPeriod int `json:"slowPeriod" yaml:"slowPeriod"`
}

// Crossover goes long when the fast moving average crosses above the slow
// one and exits on the opposite cross. The same implementation backs the
// EMA and SMA presets.
type Crossover struct {
	name   string
	kind   indicator.Kind
	params CrossoverParams
	log    *logger.Logger
}

// NewEMACrossover creates the EMA crossover preset.
func NewEMACrossover(params CrossoverParams, log *logger.Logger) *Crossover {
	return &Crossover{name: "EMA Crossover", kind: indicator.KindEMA, params: params, log: log}
}

// NewSMACrossover creates the SMA crossover preset.
func NewSMACrossover(params CrossoverParams, log *logger.Logger) *Crossover {
	return &Crossover{name: "SMA Crossover", kind: indicator.KindSMA, params: params, log: log}
}

// Name implements Strategy.
func (s *Crossover) Name() string {
	return s.name
}

// Execute implements Strategy.
func (s *Crossover) Execute(candles []types.Candle, broker Broker) error {
	fast := IndicatorOperand(indicator.Spec{Kind: s.kind, Period: s.params.FastPeriod})
	slow := IndicatorOperand(indicator.Spec{Kind: s.kind, Period: s.params.SlowPeriod})

	program := Program{
		Direction: types.DirectionLong,
		Entry:     []Condition{{Left: fast, Op: OpCrossesAbove, Right: slow}},
		Exit:      []Condition{{Left: fast, Op: OpCrossesBelow, Right: slow}},
	}

	return run(candles, program, broker, s.log)
}
