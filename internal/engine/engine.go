package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/shenxianovo/trading-simulator/internal/book"
	"github.com/shenxianovo/trading-simulator/internal/common"
)

// TradeReporter receives every fill the engine applies.
type TradeReporter interface {
	ReportTrade(trade common.Trade)
}

// Engine matches one incoming order at a time against the opposite side of
// the book in price-time priority. Match runs to completion synchronously;
// all synchronization lives inside the book's ladder operations, so no
// lock is held across calls.
type Engine struct {
	book     *book.Book
	oracle   *PriceOracle
	reporter TradeReporter
}

func New(b *book.Book, oracle *PriceOracle) *Engine {
	return &Engine{book: b, oracle: oracle}
}

func (e *Engine) SetReporter(r TradeReporter) {
	e.reporter = r
}

// Match consumes a VALID order and returns it with a terminal status and
// its final remaining quantity. A zero-quantity order is rejected without
// touching the book. Any fault inside the matching walk is caught here and
// rejects the order; fills already applied are kept as-is, there is no
// rollback across the pass.
func (e *Engine) Match(incoming *common.Order) *common.Order {
	if incoming.Qty == 0 {
		log.Error().Str("order", incoming.ClOrderID).Msg("order has no quantity, rejecting")
		incoming.Status = common.StatusRejected
		return incoming
	}

	incoming.Status = common.StatusMatching

	if err := e.sweep(incoming); err != nil {
		log.Error().Err(err).Str("order", incoming.ClOrderID).Msg("matching failed")
		incoming.Status = common.StatusRejected
		return incoming
	}

	switch {
	case incoming.Qty == 0:
		incoming.Status = common.StatusFullFilled
		log.Info().Str("order", incoming.ClOrderID).Msg("order fully filled")
	case incoming.Qty < incoming.TotalQty:
		incoming.Status = common.StatusPartFilled
		e.rest(incoming)
	default:
		// No match at all: a plain resting limit order, still MATCHING.
		e.rest(incoming)
	}
	return incoming
}

// sweep walks the counter ladder best price first, draining each crossing
// level's FIFO from the head until the incoming order is exhausted or the
// best price no longer crosses. Each ConsumeHead call is one atomic fill
// step against the book.
func (e *Engine) sweep(incoming *common.Order) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("matching walk panicked: %v", r)
		}
	}()

	ladder := e.book.LadderFor(incoming.SecurityID, incoming.Side.Opposite())
	crossing := func(counterPrice float64) bool {
		if incoming.Side == common.Buy {
			return incoming.Price >= counterPrice
		}
		return incoming.Price <= counterPrice
	}

	for incoming.Qty > 0 {
		fill, ok := ladder.ConsumeHead(incoming.Qty, crossing)
		if !ok {
			break
		}
		incoming.Qty -= fill.Qty

		trade := common.Trade{
			TradeID:    uuid.NewString(),
			SecurityID: incoming.SecurityID,
			Taker:      *incoming,
			Maker:      fill.Counter,
			Qty:        fill.Qty,
			Price:      e.oracle.Price(incoming, &fill.Counter),
			Timestamp:  time.Now(),
		}
		log.Info().
			Str("trade", trade.TradeID).
			Str("taker", trade.Taker.ClOrderID).
			Str("maker", trade.Maker.ClOrderID).
			Uint64("qty", trade.Qty).
			Float64("price", trade.Price).
			Uint64("takerRemaining", trade.Taker.Qty).
			Uint64("makerRemaining", trade.Maker.Qty).
			Msg("fill")
		if e.reporter != nil {
			e.reporter.ReportTrade(trade)
		}
	}
	return nil
}

func (e *Engine) rest(incoming *common.Order) {
	if err := e.book.AddOrder(incoming); err != nil {
		log.Error().Err(err).Str("order", incoming.ClOrderID).Msg("unable to rest remainder")
		incoming.Status = common.StatusRejected
	}
}
