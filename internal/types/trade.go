package types

// Direction is the side of a position or trade.
type Direction string

const (
	DirectionLong  Direction = "long"
	DirectionShort Direction = "short"
)

// Position is the single open position owned by the backtest engine.
// EntryPrice already includes entry slippage.
type Position struct {
	Direction  Direction `yaml:"direction" json:"direction"`
	EntryPrice float64   `yaml:"entry_price" json:"entryPrice"`
	EntryTime  int64     `yaml:"entry_time" json:"entryTime"`
	Size       float64   `yaml:"size" json:"size"`
}

// Trade is a completed round trip. It is appended to the trade log when a
// position closes and never mutated afterwards.
type Trade struct {
	EntryTime  int64     `yaml:"entry_time" json:"entryTime" csv:"entry_time"`
	ExitTime   int64     `yaml:"exit_time" json:"exitTime" csv:"exit_time"`
	Direction  Direction `yaml:"direction" json:"direction" csv:"direction"`
	EntryPrice float64   `yaml:"entry_price" json:"entryPrice" csv:"entry_price"`
	ExitPrice  float64   `yaml:"exit_price" json:"exitPrice" csv:"exit_price"`
	Size       float64   `yaml:"size" json:"size" csv:"size"`
	PnL        float64   `yaml:"pnl" json:"pnl" csv:"pnl"`
	PnLPercent float64   `yaml:"pnl_percent" json:"pnlPercent" csv:"pnl_percent"`
	// Commission is the round-trip commission, entry leg plus exit leg.
	Commission float64 `yaml:"commission" json:"commission" csv:"commission"`
}
