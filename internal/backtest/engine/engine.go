package engine

import (
	"math"

	"github.com/moznion/go-optional"
	"github.com/quantpilot/backtest/internal/backtest/engine/commission"
	"github.com/quantpilot/backtest/internal/logger"
	"github.com/quantpilot/backtest/internal/types"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Engine owns the mutable simulation state of one backtest run: cash
// capital, the at-most-one open position, the closed trade log and the
// equity curve. It enforces the position and capital invariants; strategies
// drive it through the open/close/mark calls and treat a false return as
// "signal ignored".
//
// Engine is not safe for concurrent use. Concurrent backtests each get
// their own instance.
type Engine struct {
	config          Config
	commission      commission.Model
	log             *logger.Logger
	capital         float64
	position        optional.Option[types.Position]
	entryCommission float64
	trades          []types.Trade
	equity          []float64
	timestamps      []int64
}

// NewEngine creates an engine with the given configuration. The equity curve
// is seeded with the initial capital before the first bar, so it always holds
// one more entry than the timestamp slice.
func NewEngine(config Config, log *logger.Logger) *Engine {
	return &Engine{
		config:     config,
		commission: commission.NewPercent(config.Commission),
		log:        log,
		capital:    config.InitialCapital,
		position:   optional.None[types.Position](),
		equity:     []float64{config.InitialCapital},
	}
}

// positionSize converts available capital into a unit count at the given
// execution price. Fixed sizing is a constant unit count; percent sizing
// spends a percentage of current capital. Risk sizing falls back to the
// percent formula because no stop-loss distance is modeled.
func (e *Engine) positionSize(executionPrice float64) float64 {
	switch e.config.PositionSizing {
	case SizingFixed:
		return e.config.PositionSize
	case SizingPercent, SizingRisk:
		return e.capital * (e.config.PositionSize / 100) / executionPrice
	default:
		return e.capital / executionPrice
	}
}

// OpenLong opens a long position at the given close price, paying slippage
// on top of it. Returns false without mutating state when a position is
// already open or capital cannot cover the fill plus commission.
func (e *Engine) OpenLong(price float64, timestamp int64) bool {
	if e.position.IsSome() {
		return false
	}

	executionPrice := price * (1 + e.config.Slippage)

	// Cap the size so cost plus commission stays within capital:
	// executionPrice * size * (1 + rate) <= capital.
	maxAffordable := e.capital / (executionPrice * (1 + e.config.Commission))
	size := math.Min(e.positionSize(executionPrice), maxAffordable)

	cost := executionPrice * size
	fee := e.commission.Calculate(cost)

	// When the cap binds, cost+fee equals capital algebraically but can
	// land a few ulps above it.
	const roundingTolerance = 1e-9

	if size <= 0 || cost+fee > e.capital+roundingTolerance {
		e.log.Debug("rejected long entry",
			zap.Float64("capital", e.capital),
			zap.Float64("cost", cost),
			zap.Float64("commission", fee),
			zap.Int64("timestamp", timestamp),
		)

		return false
	}

	e.position = optional.Some(types.Position{
		Direction:  types.DirectionLong,
		EntryPrice: executionPrice,
		EntryTime:  timestamp,
		Size:       size,
	})
	e.entryCommission = fee
	e.capital -= cost + fee

	if e.capital < 0 && e.capital > -roundingTolerance {
		e.capital = 0
	}

	return true
}

// OpenShort opens a short position at the given close price, giving up
// slippage on the sell. Only the entry commission is debited; the short
// proceeds are settled at close. Returns false when a position is already
// open or capital cannot cover the commission.
func (e *Engine) OpenShort(price float64, timestamp int64) bool {
	if e.position.IsSome() {
		return false
	}

	executionPrice := price * (1 - e.config.Slippage)
	size := e.positionSize(executionPrice)
	fee := e.commission.Calculate(executionPrice * size)

	if size <= 0 || e.capital < fee {
		e.log.Debug("rejected short entry",
			zap.Float64("capital", e.capital),
			zap.Float64("commission", fee),
			zap.Int64("timestamp", timestamp),
		)

		return false
	}

	e.position = optional.Some(types.Position{
		Direction:  types.DirectionShort,
		EntryPrice: executionPrice,
		EntryTime:  timestamp,
		Size:       size,
	})
	e.entryCommission = fee
	e.capital -= fee

	return true
}

// ClosePosition closes the open position at the given close price with
// slippage applied against the exit direction. The exit value is credited to
// capital, the exit commission debited, and a Trade carrying the round-trip
// commission is appended. Returns false when no position is open.
func (e *Engine) ClosePosition(price float64, timestamp int64) bool {
	if e.position.IsNone() {
		return false
	}

	position := e.position.Unwrap()

	var executionPrice float64
	if position.Direction == types.DirectionLong {
		executionPrice = price * (1 - e.config.Slippage)
	} else {
		executionPrice = price * (1 + e.config.Slippage)
	}

	exitValue := executionPrice * position.Size
	exitFee := e.commission.Calculate(exitValue)

	entry := decimal.NewFromFloat(position.EntryPrice)
	exit := decimal.NewFromFloat(executionPrice)
	size := decimal.NewFromFloat(position.Size)

	gross := exit.Sub(entry).Mul(size)
	if position.Direction == types.DirectionShort {
		gross = entry.Sub(exit).Mul(size)
	}

	netPnL := gross.
		Sub(decimal.NewFromFloat(e.entryCommission)).
		Sub(decimal.NewFromFloat(exitFee))

	pnl, _ := netPnL.Float64()

	positionValue := position.EntryPrice * position.Size
	pnlPercent := pnl / positionValue * 100

	e.capital += exitValue
	e.capital -= exitFee

	e.trades = append(e.trades, types.Trade{
		EntryTime:  position.EntryTime,
		ExitTime:   timestamp,
		Direction:  position.Direction,
		EntryPrice: position.EntryPrice,
		ExitPrice:  executionPrice,
		Size:       position.Size,
		PnL:        pnl,
		PnLPercent: pnlPercent,
		Commission: e.entryCommission + exitFee,
	})

	e.log.Debug("closed position",
		zap.String("direction", string(position.Direction)),
		zap.Float64("exit_price", executionPrice),
		zap.Float64("pnl", pnl),
		zap.Float64("capital", e.capital),
	)

	e.position = optional.None[types.Position]()
	e.entryCommission = 0

	return true
}

// UpdateEquity appends one mark-to-market equity point: cash capital plus
// the open position valued at price. A non-finite price skips the point so
// one corrupt candle cannot poison the rest of the curve.
func (e *Engine) UpdateEquity(price float64, timestamp int64) {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		e.log.Warn("skipping equity update for non-finite price",
			zap.Float64("price", price),
			zap.Int64("timestamp", timestamp),
		)

		return
	}

	equity := e.capital
	if e.position.IsSome() {
		equity += price * e.position.Unwrap().Size
	}

	e.equity = append(e.equity, equity)
	e.timestamps = append(e.timestamps, timestamp)
}

// HasPosition reports whether a position is open.
func (e *Engine) HasPosition() bool {
	return e.position.IsSome()
}

// Position returns the open position, if any.
func (e *Engine) Position() optional.Option[types.Position] {
	return e.position
}

// Capital returns the current cash capital.
func (e *Engine) Capital() float64 {
	return e.capital
}

// Results computes the performance report for the run so far. It does not
// mutate state and may be called repeatedly; the returned slices are copies.
func (e *Engine) Results() *types.PerformanceReport {
	trades := make([]types.Trade, len(e.trades))
	copy(trades, e.trades)

	equity := make([]float64, len(e.equity))
	copy(equity, e.equity)

	timestamps := make([]int64, len(e.timestamps))
	copy(timestamps, e.timestamps)

	return &types.PerformanceReport{
		Trades:     trades,
		Equity:     equity,
		Timestamps: timestamps,
		Statistics: CalculateStatistics(trades, equity, e.config.InitialCapital, e.capital),
	}
}

// Reset returns the engine to its just-constructed state so it can be reused
// for another run.
func (e *Engine) Reset() {
	e.capital = e.config.InitialCapital
	e.position = optional.None[types.Position]()
	e.entryCommission = 0
	e.trades = nil
	e.equity = []float64{e.config.InitialCapital}
	e.timestamps = nil
}
