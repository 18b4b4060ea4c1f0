package strategy

import (
	"github.com/quantpilot/backtest/internal/indicator"
	"github.com/quantpilot/backtest/internal/logger"
	"github.com/quantpilot/backtest/internal/types"
)

// RSIParams parameterizes the RSI oscillator preset.
type RSIParams struct {
	Period     int     `json:"period" yaml:"period"`
	Oversold   float64 `json:"oversold" yaml:"oversold"`
	Overbought float64 `json:"overbought" yaml:"overbought"`
}

// RSIStrategy buys when RSI recovers up through the oversold level and
// exits when RSI falls back down through the overbought level.
type RSIStrategy struct {
	params RSIParams
	log    *logger.Logger
}

// NewRSI creates the RSI preset.
func NewRSI(params RSIParams, log *logger.Logger) *RSIStrategy {
	return &RSIStrategy{params: params, log: log}
}

// Name implements Strategy.
func (s *RSIStrategy) Name() string {
	return "RSI"
}

// Execute implements Strategy.
func (s *RSIStrategy) Execute(candles []types.Candle, broker Broker) error {
	rsi := IndicatorOperand(indicator.Spec{Kind: indicator.KindRSI, Period: s.params.Period})

	program := Program{
		Direction: types.DirectionLong,
		Entry:     []Condition{{Left: rsi, Op: OpCrossesAbove, Right: ValueOperand(s.params.Oversold)}},
		Exit:      []Condition{{Left: rsi, Op: OpCrossesBelow, Right: ValueOperand(s.params.Overbought)}},
	}

	return run(candles, program, broker, s.log)
}
