package model

import "time"

// SignalKind indicates the direction of a trade signal.
type SignalKind string

const (
	SignalBuy  SignalKind = "BUY"
	SignalSell SignalKind = "SELL"
)

// Signal is one detected buy/sell event for a symbol on a trading day.
// Close, SMA and RSI carry the indicator values at the triggering bar.
type Signal struct {
	Symbol string
	Date   time.Time
	Kind   SignalKind
	Close  float64
	SMA    float64
	RSI    float64
	Reason string
}
