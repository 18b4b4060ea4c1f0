package types

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Statistics is the derived summary of a completed backtest run. All fields
// are zero when the run produced no trades.
type Statistics struct {
	// Count of all trades.
	TotalTrades int `yaml:"total_trades" json:"totalTrades"`
	// Count of trades with positive pnl.
	WinningTrades int `yaml:"winning_trades" json:"winningTrades"`
	// Count of trades with zero or negative pnl.
	LosingTrades int `yaml:"losing_trades" json:"losingTrades"`
	// Win rate in percent.
	WinRate float64 `yaml:"win_rate" json:"winRate"`
	// Sum of all trade pnls.
	TotalPnL float64 `yaml:"total_pnl" json:"totalPnL"`
	// Percentage return derived from final cash capital relative to initial
	// capital. Uses a different base than TotalPnL; both are reported.
	TotalPnLPercent float64 `yaml:"total_pnl_percent" json:"totalPnLPercent"`
	// Average winning trade pnl.
	AvgWin float64 `yaml:"avg_win" json:"avgWin"`
	// Average losing trade pnl, as a positive magnitude.
	AvgLoss float64 `yaml:"avg_loss" json:"avgLoss"`
	// Gross profit divided by gross loss. Zero when there are no losses.
	ProfitFactor float64 `yaml:"profit_factor" json:"profitFactor"`
	// Largest peak-to-trough decline of the equity curve.
	MaxDrawdown        float64 `yaml:"max_drawdown" json:"maxDrawdown"`
	MaxDrawdownPercent float64 `yaml:"max_drawdown_percent" json:"maxDrawdownPercent"`
	// Mean over stddev of per-bar equity returns, annualized by sqrt(252).
	SharpeRatio float64 `yaml:"sharpe_ratio" json:"sharpeRatio"`
	LongTrades  int     `yaml:"long_trades" json:"longTrades"`
	ShortTrades int     `yaml:"short_trades" json:"shortTrades"`
	LargestWin  float64 `yaml:"largest_win" json:"largestWin"`
	LargestLoss float64 `yaml:"largest_loss" json:"largestLoss"`
	// Mean of exit time minus entry time, in candle timestamp units.
	AvgTradeDuration float64 `yaml:"avg_trade_duration" json:"avgTradeDuration"`
	// winRate*avgWin - (1-winRate)*avgLoss with winRate as a fraction.
	Expectancy float64 `yaml:"expectancy" json:"expectancy"`
}

// PerformanceReport is the full result of one backtest run: the trade log,
// the equity curve with its timestamps, and the derived statistics.
// Timestamps are raw milliseconds; formatting belongs to the caller.
type PerformanceReport struct {
	Trades []Trade `yaml:"trades" json:"trades"`
	// Equity has one more entry than Timestamps: the first entry is the
	// initial capital seed and has no timestamp.
	Equity     []float64  `yaml:"equity" json:"equity"`
	Timestamps []int64    `yaml:"timestamps" json:"timestamps"`
	Statistics Statistics `yaml:"statistics" json:"statistics"`
}

// WriteReport serializes a performance report to a YAML file.
func WriteReport(path string, report PerformanceReport) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report to file: %w", err)
	}

	return nil
}
