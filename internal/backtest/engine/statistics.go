package engine

import (
	"math"

	"github.com/quantpilot/backtest/internal/types"
)

// annualizationFactor assumes daily-equivalent bars when annualizing the
// Sharpe ratio, regardless of the actual candle timeframe.
const annualizationFactor = 252

// CalculateStatistics derives the statistics block from a finished run. It
// is a pure function of its inputs. An empty trade list yields the zero
// value for every field rather than NaN.
//
// Two deliberate quirks are preserved from the reporting contract: totalPnL
// sums per-trade PnL while totalPnLPercent derives from final cash capital,
// so the two can diverge when entries are sized below 100% of capital; and
// expectancy uses the win rate as a fraction even though the winRate field
// itself is a percentage.
func CalculateStatistics(trades []types.Trade, equity []float64, initialCapital, finalCapital float64) types.Statistics {
	if len(trades) == 0 {
		return types.Statistics{}
	}

	stats := types.Statistics{
		TotalTrades: len(trades),
	}

	var (
		grossProfit   float64
		grossLoss     float64
		totalDuration int64
	)

	for _, trade := range trades {
		stats.TotalPnL += trade.PnL
		totalDuration += trade.ExitTime - trade.EntryTime

		if trade.Direction == types.DirectionLong {
			stats.LongTrades++
		} else {
			stats.ShortTrades++
		}

		// A zero-PnL trade counts as a loss.
		if trade.PnL > 0 {
			stats.WinningTrades++
			grossProfit += trade.PnL

			if trade.PnL > stats.LargestWin {
				stats.LargestWin = trade.PnL
			}
		} else {
			stats.LosingTrades++
			grossLoss += -trade.PnL

			if trade.PnL < stats.LargestLoss {
				stats.LargestLoss = trade.PnL
			}
		}
	}

	stats.WinRate = float64(stats.WinningTrades) / float64(stats.TotalTrades) * 100
	stats.TotalPnLPercent = (finalCapital - initialCapital) / initialCapital * 100
	stats.AvgTradeDuration = float64(totalDuration) / float64(stats.TotalTrades)

	if stats.WinningTrades > 0 {
		stats.AvgWin = grossProfit / float64(stats.WinningTrades)
	}

	if stats.LosingTrades > 0 {
		stats.AvgLoss = grossLoss / float64(stats.LosingTrades)
	}

	if grossLoss > 0 {
		stats.ProfitFactor = grossProfit / grossLoss
	}

	stats.MaxDrawdown, stats.MaxDrawdownPercent = maxDrawdown(equity)
	stats.SharpeRatio = sharpeRatio(equity)

	winRate := float64(stats.WinningTrades) / float64(stats.TotalTrades)
	stats.Expectancy = winRate*stats.AvgWin - (1-winRate)*stats.AvgLoss

	return stats
}

// maxDrawdown finds the largest peak-to-trough decline in the equity curve,
// evaluated at every equity point against the running maximum.
func maxDrawdown(equity []float64) (drawdown, drawdownPercent float64) {
	if len(equity) == 0 {
		return 0, 0
	}

	peak := equity[0]

	for _, eq := range equity {
		if eq > peak {
			peak = eq
		}

		dd := peak - eq
		if dd > drawdown {
			drawdown = dd
			drawdownPercent = dd / peak * 100
		}
	}

	return drawdown, drawdownPercent
}

// sharpeRatio computes the annualized mean/stddev of period-over-period
// equity returns.
func sharpeRatio(equity []float64) float64 {
	if len(equity) < 2 {
		return 0
	}

	returns := make([]float64, 0, len(equity)-1)
	for i := 1; i < len(equity); i++ {
		returns = append(returns, (equity[i]-equity[i-1])/equity[i-1])
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}

	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}

	variance /= float64(len(returns))

	stdDev := math.Sqrt(variance)
	if stdDev == 0 {
		return 0
	}

	return mean / stdDev * math.Sqrt(annualizationFactor)
}
