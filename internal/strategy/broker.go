package strategy

// Broker is the engine surface a strategy drives during one run. Open and
// close calls return false when the request cannot be honored (position
// already open, nothing to close, insufficient capital); strategies treat a
// false return as "signal ignored" and keep scanning.
type Broker interface {
	OpenLong(price float64, timestamp int64) bool
	OpenShort(price float64, timestamp int64) bool
	ClosePosition(price float64, timestamp int64) bool
	UpdateEquity(price float64, timestamp int64)
	HasPosition() bool
}
