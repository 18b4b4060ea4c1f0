package strategy

import (
	"github.com/quantpilot/backtest/internal/indicator"
	"github.com/quantpilot/backtest/internal/logger"
	"github.com/quantpilot/backtest/internal/types"
)

// MeanReversionParams parameterizes the Bollinger Band preset.
type MeanReversionParams struct {
	Period int     `json:"period" yaml:"period"`
	StdDev float64 `json:"stdDev" yaml:"stdDev"`
}

// MeanReversion buys when price touches the lower Bollinger Band and exits
// once price has reverted to at least the middle band. Because the upper
// band never sits below the middle one, "middle or upper reached" collapses
// to a single middle-band condition.
type MeanReversion struct {
	params MeanReversionParams
	log    *logger.Logger
}

// NewMeanReversion creates the Bollinger Band mean-reversion preset.
func NewMeanReversion(params MeanReversionParams, log *logger.Logger) *MeanReversion {
	return &MeanReversion{params: params, log: log}
}

// Name implements Strategy.
func (s *MeanReversion) Name() string {
	return "Mean Reversion"
}

// Execute implements Strategy.
func (s *MeanReversion) Execute(candles []types.Candle, broker Broker) error {
	base := indicator.Spec{
		Kind:       indicator.KindBollinger,
		Period:     s.params.Period,
		StdDevMult: s.params.StdDev,
	}

	price := IndicatorOperand(indicator.Spec{Kind: indicator.KindPrice})
	lower := IndicatorOperand(base.WithField(indicator.FieldLower))
	middle := IndicatorOperand(base.WithField(indicator.FieldMiddle))

	program := Program{
		Direction: types.DirectionLong,
		Entry:     []Condition{{Left: price, Op: OpLessThanOrEqual, Right: lower}},
		Exit:      []Condition{{Left: price, Op: OpGreaterThanOrEqual, Right: middle}},
	}

	return run(candles, program, broker, s.log)
}
