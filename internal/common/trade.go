package common

import (
	"fmt"
	"time"
)

// Trade records one fill between an incoming (taker) order and a resting
// (maker) order. Taker and Maker are snapshots taken right after the fill
// was applied, so their Qty fields already reflect the trade.
type Trade struct {
	TradeID    string    `json:"tradeId"`
	SecurityID string    `json:"securityId"`
	Taker      Order     `json:"taker"`
	Maker      Order     `json:"maker"`
	Qty        uint64    `json:"qty"`
	Price      float64   `json:"price"`
	Timestamp  time.Time `json:"timestamp"`
}

func (t Trade) String() string {
	return fmt.Sprintf("trade[%s] %s %d@%.2f taker=%s maker=%s",
		t.TradeID, t.SecurityID, t.Qty, t.Price, t.Taker.ClOrderID, t.Maker.ClOrderID)
}
