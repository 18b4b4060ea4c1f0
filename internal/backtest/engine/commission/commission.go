package commission

// Model prices the commission charged on one fill.
type Model interface {
	// Calculate returns the fee in quote currency for a fill of the given
	// notional value.
	Calculate(notional float64) float64
}

// Percent charges a flat fraction of the traded notional.
type Percent struct {
	Rate float64
}

// NewPercent creates a percentage commission model. Rate is a fraction, so
// 0.001 means 0.1% per fill.
func NewPercent(rate float64) Model {
	return &Percent{Rate: rate}
}

// Calculate returns notional * rate.
func (p *Percent) Calculate(notional float64) float64 {
	return notional * p.Rate
}

// Zero charges nothing.
type Zero struct{}

// NewZero creates a commission-free model.
func NewZero() Model {
	return &Zero{}
}

// Calculate returns 0 for any notional.
func (z *Zero) Calculate(notional float64) float64 {
	return 0.0
}
