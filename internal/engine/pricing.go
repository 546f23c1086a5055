package engine

import (
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/shenxianovo/trading-simulator/internal/common"
)

// PriceStrategy selects how the trade price of a crossing pair is derived.
type PriceStrategy string

const (
	MidPrice  PriceStrategy = "MID_PRICE"
	BuyPrice  PriceStrategy = "BUY_PRICE"
	SellPrice PriceStrategy = "SELL_PRICE"
)

var two = decimal.NewFromInt(2)

// PriceOracle turns a crossing buy/sell pair into one trade price. The
// strategy is fixed at construction; an unrecognized configured value
// silently falls back to MID_PRICE, which is documented behavior rather
// than an error path.
type PriceOracle struct {
	strategy PriceStrategy
}

func NewPriceOracle(strategy string) *PriceOracle {
	s := PriceStrategy(strings.ToUpper(strategy))
	switch s {
	case MidPrice, BuyPrice, SellPrice:
	default:
		log.Warn().Str("strategy", strategy).Msg("unknown price strategy, falling back to MID_PRICE")
		s = MidPrice
	}
	return &PriceOracle{strategy: s}
}

func (o *PriceOracle) Strategy() PriceStrategy {
	return o.strategy
}

// Price computes the trade price for a crossing pair. The two orders may
// arrive in either argument position; the real buyer and seller are
// resolved from each order's side, so the result is commutative. The
// price is rounded half-up to two decimals.
func (o *PriceOracle) Price(a, b *common.Order) float64 {
	buyOrder, sellOrder := a, b
	if a.Side != common.Buy {
		buyOrder, sellOrder = b, a
	}

	buy := decimal.NewFromFloat(buyOrder.Price)
	sell := decimal.NewFromFloat(sellOrder.Price)

	var price decimal.Decimal
	switch o.strategy {
	case BuyPrice:
		price = buy
	case SellPrice:
		price = sell
	default:
		price = buy.Add(sell).Div(two)
	}
	// Round is half away from zero, i.e. half-up at price-tick precision.
	return price.Round(2).InexactFloat64()
}
