package strategy

import (
	"strings"

	"github.com/quantpilot/backtest/internal/logger"
	"github.com/quantpilot/backtest/internal/types"
	"go.uber.org/zap"
)

// Strategy drives one backtest run over a candle series through a Broker.
type Strategy interface {
	Name() string
	Execute(candles []types.Candle, broker Broker) error
}

// New builds the strategy a config names, filling variant defaults for
// omitted parameters. An unrecognized strategy name falls back to the EMA
// crossover preset.
func New(config Config, log *logger.Logger) (Strategy, error) {
	switch strings.ToLower(config.Strategy) {
	case "ema_crossover", "ema":
		params := CrossoverParams{FastPeriod: 9, SlowPeriod: 21}
		if err := config.decodeParams(&params); err != nil {
			return nil, err
		}

		return NewEMACrossover(params, log), nil

	case "sma_crossover", "sma":
		params := CrossoverParams{FastPeriod: 10, SlowPeriod: 30}
		if err := config.decodeParams(&params); err != nil {
			return nil, err
		}

		return NewSMACrossover(params, log), nil

	case "rsi":
		params := RSIParams{Period: 14, Oversold: 30, Overbought: 70}
		if err := config.decodeParams(&params); err != nil {
			return nil, err
		}

		return NewRSI(params, log), nil

	case "macd":
		params := MACDParams{FastPeriod: 12, SlowPeriod: 26, SignalPeriod: 9}
		if err := config.decodeParams(&params); err != nil {
			return nil, err
		}

		return NewMACD(params, log), nil

	case "mean_reversion":
		params := MeanReversionParams{Period: 20, StdDev: 2}
		if err := config.decodeParams(&params); err != nil {
			return nil, err
		}

		return NewMeanReversion(params, log), nil

	case "generic_rules":
		var params GenericParams
		if err := config.decodeParams(&params); err != nil {
			return nil, err
		}

		return NewGeneric(params, log)

	default:
		log.Warn("unknown strategy, falling back to ema crossover",
			zap.String("strategy", config.Strategy),
		)

		return NewEMACrossover(CrossoverParams{FastPeriod: 9, SlowPeriod: 21}, log), nil
	}
}
