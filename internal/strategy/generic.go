package strategy

import (
	"github.com/quantpilot/backtest/internal/indicator"
	"github.com/quantpilot/backtest/internal/logger"
	"github.com/quantpilot/backtest/internal/types"
	"github.com/quantpilot/backtest/pkg/errors"
)

// GenericParams is the rule-tree form produced by external config builders
// (including the natural-language parser). The indicators list is advisory;
// series are resolved lazily from the specs referenced by the rules. An
// omitted direction opens long.
type GenericParams struct {
	Indicators []indicator.Spec `json:"indicators,omitempty" yaml:"indicators,omitempty"`
	EntryRules []Condition      `json:"entryRules" yaml:"entryRules"`
	ExitRules  []Condition      `json:"exitRules" yaml:"exitRules"`
	Direction  types.Direction  `json:"direction,omitempty" yaml:"direction,omitempty"`
}

// Generic executes a caller-supplied rule tree on the shared executor loop.
type Generic struct {
	params GenericParams
	log    *logger.Logger
}

// NewGeneric creates a generic rule strategy. At least one entry rule is
// required; a strategy that can never enter is a config error, not a
// degenerate run.
func NewGeneric(params GenericParams, log *logger.Logger) (*Generic, error) {
	if len(params.EntryRules) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidRule, "generic strategy needs at least one entry rule")
	}

	if params.Direction != "" &&
		params.Direction != types.DirectionLong && params.Direction != types.DirectionShort {
		return nil, errors.Newf(errors.ErrCodeInvalidRule, "unknown direction %q", params.Direction)
	}

	return &Generic{params: params, log: log}, nil
}

// Name implements Strategy.
func (s *Generic) Name() string {
	return "Generic Rules"
}

// Execute implements Strategy.
func (s *Generic) Execute(candles []types.Candle, broker Broker) error {
	program := Program{
		Direction: s.params.Direction,
		Entry:     s.params.EntryRules,
		Exit:      s.params.ExitRules,
	}

	return run(candles, program, broker, s.log)
}
