package net

import (
	"github.com/shenxianovo/trading-simulator/internal/book"
)

// CancelRequest identifies a resting order to remove. The price and side
// locate the order within the book; the shareholder id drives the risk
// clearing event.
type CancelRequest struct {
	ClOrderID     string  `json:"clOrderId"`
	ShareholderID string  `json:"shareholderId"`
	SecurityID    string  `json:"securityId"`
	Side          string  `json:"side"`
	Price         float64 `json:"price"`
}

type CancelResponse struct {
	ClOrderID  string `json:"clOrderId"`
	SecurityID string `json:"securityId"`
	Cancelled  bool   `json:"cancelled"`
}

// LevelView is one price level of a depth snapshot: the aggregate resting
// quantity and the number of orders queued at that price.
type LevelView struct {
	Price  float64 `json:"price"`
	Qty    uint64  `json:"qty"`
	Orders int     `json:"orders"`
}

type DepthResponse struct {
	SecurityID string      `json:"securityId"`
	Bids       []LevelView `json:"bids"`
	Asks       []LevelView `json:"asks"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toLevelViews(levels []book.LevelSnapshot) []LevelView {
	views := make([]LevelView, len(levels))
	for i, level := range levels {
		var qty uint64
		for _, order := range level.Orders {
			qty += order.Qty
		}
		views[i] = LevelView{Price: level.Price, Qty: qty, Orders: len(level.Orders)}
	}
	return views
}
