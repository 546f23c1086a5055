package book

import (
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/shenxianovo/trading-simulator/internal/common"
)

var ErrInvalidOrder = errors.New("order is missing an instrument or has no remaining quantity")

// instrumentBook pairs the two independent ladders of one instrument.
type instrumentBook struct {
	bids *Ladder
	asks *Ladder
}

func (ib *instrumentBook) ladder(side common.Side) *Ladder {
	if side == common.Buy {
		return ib.bids
	}
	return ib.asks
}

// Book is the standing order book for the whole venue, one pair of ladders
// per instrument. Instruments are initialized lazily, exactly once, even
// when multiple matchers race to touch a new instrument first.
type Book struct {
	mu          sync.RWMutex
	instruments map[string]*instrumentBook
}

func New() *Book {
	return &Book{instruments: make(map[string]*instrumentBook)}
}

func (b *Book) instrument(securityID string) *instrumentBook {
	b.mu.RLock()
	ib := b.instruments[securityID]
	b.mu.RUnlock()
	if ib != nil {
		return ib
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if ib = b.instruments[securityID]; ib != nil {
		return ib
	}
	ib = &instrumentBook{
		bids: newLadder(common.Buy),
		asks: newLadder(common.Sell),
	}
	b.instruments[securityID] = ib
	log.Debug().Str("security", securityID).Msg("initialized instrument book")
	return ib
}

// AddOrder rests the order's current remaining quantity on its own side.
// Calling this with no instrument or no remaining quantity is a caller
// error, not a retryable condition.
func (b *Book) AddOrder(order *common.Order) error {
	if order == nil || order.SecurityID == "" || order.Qty == 0 {
		return ErrInvalidOrder
	}
	b.instrument(order.SecurityID).ladder(order.Side).insert(order)
	log.Info().
		Str("order", order.ClOrderID).
		Str("security", order.SecurityID).
		Stringer("side", order.Side).
		Float64("price", order.Price).
		Uint64("qty", order.Qty).
		Msg("order resting on book")
	return nil
}

// LadderFor returns the live ladder for one instrument side. The matching
// engine consumes liquidity from it through its atomic operations.
func (b *Book) LadderFor(securityID string, side common.Side) *Ladder {
	return b.instrument(securityID).ladder(side)
}

// RemoveOrder cancels a resting order outright, locating it by identity at
// its recorded price. Returns false when the order is not resting, so
// repeated cancels are harmless.
func (b *Book) RemoveOrder(order *common.Order) bool {
	if order == nil || order.SecurityID == "" {
		return false
	}
	removed := b.instrument(order.SecurityID).ladder(order.Side).remove(order.Price, order.ClOrderID)
	if removed {
		log.Info().
			Str("order", order.ClOrderID).
			Str("security", order.SecurityID).
			Float64("price", order.Price).
			Msg("order removed from book")
	} else {
		log.Warn().
			Str("order", order.ClOrderID).
			Str("security", order.SecurityID).
			Msg("order not found on book")
	}
	return removed
}

// Clear empties both ladders of an instrument. Administrative reset only,
// not part of the trading flow.
func (b *Book) Clear(securityID string) {
	ib := b.instrument(securityID)
	ib.bids.reset()
	ib.asks.reset()
	log.Info().Str("security", securityID).Msg("instrument book cleared")
}
