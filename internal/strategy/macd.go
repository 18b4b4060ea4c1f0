package strategy

import (
	"github.com/quantpilot/backtest/internal/indicator"
	"github.com/quantpilot/backtest/internal/logger"
	"github.com/quantpilot/backtest/internal/types"
)

// MACDParams parameterizes the MACD crossover preset.
type MACDParams struct {
	FastPeriod   int `json:"fastPeriod" yaml:"fastPeriod"`
	SlowPeriod   int `json:"slowPeriod" yaml:"slowPeriod"`
	SignalPeriod int `json:"signalPeriod" yaml:"signalPeriod"`
}

// MACDStrategy buys when the MACD line crosses above its signal line and
// exits on the opposite cross.
type MACDStrategy struct {
	params MACDParams
	log    *logger.Logger
}

// NewMACD creates the MACD preset.
func NewMACD(params MACDParams, log *logger.Logger) *MACDStrategy {
	return &MACDStrategy{params: params, log: log}
}

// Name implements Strategy.
func (s *MACDStrategy) Name() string {
	return "MACD"
}

// Execute implements Strategy.
func (s *MACDStrategy) Execute(candles []types.Candle, broker Broker) error {
	base := indicator.Spec{
		Kind:         indicator.KindMACD,
		FastPeriod:   s.params.FastPeriod,
		SlowPeriod:   s.params.SlowPeriod,
		SignalPeriod: s.params.SignalPeriod,
	}

	line := IndicatorOperand(base.WithField(indicator.FieldLine))
	signal := IndicatorOperand(base.WithField(indicator.FieldSignal))

	program := Program{
		Direction: types.DirectionLong,
		Entry:     []Condition{{Left: line, Op: OpCrossesAbove, Right: signal}},
		Exit:      []Condition{{Left: line, Op: OpCrossesBelow, Right: signal}},
	}

	return run(candles, program, broker, s.log)
}
