package engine

import (
	"testing"

	"github.com/quantpilot/backtest/internal/types"
	"github.com/stretchr/testify/assert"
)

func trade(direction types.Direction, pnl float64, entryTime, exitTime int64) types.Trade {
	return types.Trade{
		EntryTime: entryTime,
		ExitTime:  exitTime,
		Direction: direction,
		PnL:       pnl,
	}
}

func TestStatisticsEmptyTrades(t *testing.T) {
	stats := CalculateStatistics(nil, []float64{10000, 9000, 11000}, 10000, 11000)

	// No trades means every field is zero, including the equity-derived
	// ones.
	assert.Equal(t, types.Statistics{}, stats)
}

func TestStatisticsZeroPnLCountsAsLoss(t *testing.T) {
	trades := []types.Trade{
		trade(types.DirectionLong, 100, 0, 1000),
		trade(types.DirectionLong, 0, 1000, 2000),
	}

	stats := CalculateStatistics(trades, []float64{10000, 10100, 10100}, 10000, 10100)

	assert.Equal(t, 1, stats.WinningTrades)
	assert.Equal(t, 1, stats.LosingTrades)
	assert.InDelta(t, 50, stats.WinRate, 1e-9)
}

func TestStatisticsProfitFactorZeroWithoutLosses(t *testing.T) {
	trades := []types.Trade{
		trade(types.DirectionLong, 100, 0, 1000),
		trade(types.DirectionShort, 50, 1000, 2000),
	}

	stats := CalculateStatistics(trades, []float64{10000, 10150}, 10000, 10150)

	assert.InDelta(t, 0, stats.ProfitFactor, 1e-9)
	assert.Equal(t, 1, stats.LongTrades)
	assert.Equal(t, 1, stats.ShortTrades)
}

func TestStatisticsAggregates(t *testing.T) {
	trades := []types.Trade{
		trade(types.DirectionLong, 200, 0, 1000),
		trade(types.DirectionLong, 100, 1000, 3000),
		trade(types.DirectionLong, -50, 3000, 4000),
		trade(types.DirectionShort, -100, 4000, 8000),
	}

	stats := CalculateStatistics(trades, []float64{10000, 10150}, 10000, 10150)

	assert.Equal(t, 4, stats.TotalTrades)
	assert.Equal(t, 2, stats.WinningTrades)
	assert.Equal(t, 2, stats.LosingTrades)
	assert.InDelta(t, 50, stats.WinRate, 1e-9)
	assert.InDelta(t, 150, stats.TotalPnL, 1e-9)
	assert.InDelta(t, 1.5, stats.TotalPnLPercent, 1e-9)
	assert.InDelta(t, 150, stats.AvgWin, 1e-9)
	assert.InDelta(t, 75, stats.AvgLoss, 1e-9)
	assert.InDelta(t, 2, stats.ProfitFactor, 1e-9)
	assert.InDelta(t, 200, stats.LargestWin, 1e-9)
	assert.InDelta(t, -100, stats.LargestLoss, 1e-9)
	assert.InDelta(t, 2000, stats.AvgTradeDuration, 1e-9)

	// Expectancy uses the win rate as a fraction: 0.5*150 - 0.5*75.
	assert.InDelta(t, 37.5, stats.Expectancy, 1e-9)
}

func TestStatisticsTotalPnLBasesDiverge(t *testing.T) {
	// Summed trade PnL and the capital-derived percentage use different
	// bases on purpose; neither is reconciled to the other.
	trades := []types.Trade{trade(types.DirectionLong, 500, 0, 1000)}

	stats := CalculateStatistics(trades, []float64{10000, 10450}, 10000, 10450)

	assert.InDelta(t, 500, stats.TotalPnL, 1e-9)
	assert.InDelta(t, 4.5, stats.TotalPnLPercent, 1e-9)
}

func TestMaxDrawdown(t *testing.T) {
	equity := []float64{100, 120, 90, 110, 80}

	drawdown, percent := maxDrawdown(equity)

	assert.InDelta(t, 40, drawdown, 1e-9)
	assert.InDelta(t, 40.0/120*100, percent, 1e-9)
}

func TestMaxDrawdownMonotonicRise(t *testing.T) {
	drawdown, percent := maxDrawdown([]float64{100, 110, 120})

	assert.InDelta(t, 0, drawdown, 1e-9)
	assert.InDelta(t, 0, percent, 1e-9)
}

func TestSharpeRatioFlatEquity(t *testing.T) {
	assert.InDelta(t, 0, sharpeRatio([]float64{10000, 10000, 10000}), 1e-9)
	assert.InDelta(t, 0, sharpeRatio([]float64{10000}), 1e-9)
}

func TestSharpeRatioPositiveTrend(t *testing.T) {
	equity := []float64{100, 101, 103, 104, 108, 109}

	assert.Greater(t, sharpeRatio(equity), 0.0)
}
