package book

import (
	"sync"

	"github.com/tidwall/btree"

	"github.com/shenxianovo/trading-simulator/internal/common"
)

// PriceLevel holds the FIFO of orders resting at one exact price. Orders
// are appended on arrival, so slice order is arrival order.
type PriceLevel struct {
	Price  float64
	orders []*common.Order
}

// LevelSnapshot is a detached copy of one price level, safe to hand out
// without aliasing book state.
type LevelSnapshot struct {
	Price  float64
	Orders []common.Order
}

// Fill is the result of consuming liquidity from the head of the best
// level. Counter is a snapshot of the resting order taken after the fill
// was applied; Counter.Qty == 0 means the order was popped from the book.
type Fill struct {
	Counter common.Order
	Qty     uint64
}

// Ladder is one side of an instrument's book: a price-ordered collection
// of levels. Bids sort descending (best = highest), asks ascending
// (best = lowest). All mutation happens under the ladder mutex; the btree
// itself runs lock-free (NoLocks) since access is already serialized.
type Ladder struct {
	side common.Side

	mu     sync.Mutex
	levels *btree.BTreeG[*PriceLevel]
}

func newLadder(side common.Side) *Ladder {
	var less func(a, b *PriceLevel) bool
	if side == common.Buy {
		// Sorted greatest first so that the best bid is the minimum item.
		less = func(a, b *PriceLevel) bool { return a.Price > b.Price }
	} else {
		less = func(a, b *PriceLevel) bool { return a.Price < b.Price }
	}
	return &Ladder{
		side:   side,
		levels: btree.NewBTreeGOptions(less, btree.Options{NoLocks: true}),
	}
}

// insert appends the order to the FIFO at its limit price, creating the
// level on first use. The ladder stores its own copy of the order; the
// book is the single owner of resting state.
func (l *Ladder) insert(order *common.Order) {
	resting := *order

	l.mu.Lock()
	defer l.mu.Unlock()

	key := &PriceLevel{Price: resting.Price}
	if level, ok := l.levels.Get(key); ok {
		level.orders = append(level.orders, &resting)
		return
	}
	l.levels.Set(&PriceLevel{
		Price:  resting.Price,
		orders: []*common.Order{&resting},
	})
}

// remove takes the order with the given id out of the level at the given
// price, deleting the level if it empties. Returns false when the order
// is not resting there, which callers treat as an idempotent no-op.
func (l *Ladder) remove(price float64, clOrderID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := &PriceLevel{Price: price}
	level, ok := l.levels.Get(key)
	if !ok {
		return false
	}
	for i, resting := range level.orders {
		if resting.ClOrderID != clOrderID {
			continue
		}
		level.orders = append(level.orders[:i], level.orders[i+1:]...)
		if len(level.orders) == 0 {
			l.levels.Delete(key)
		}
		return true
	}
	return false
}

// ConsumeHead fills up to maxQty units from the head order of the best
// level, provided crossing accepts that level's price. The peek, quantity
// decrement, conditional pop and empty-level delete are one critical
// section, so concurrent matchers can never apply the same unit of resting
// quantity twice. Returns false when the ladder is empty or the best price
// no longer crosses.
func (l *Ladder) ConsumeHead(maxQty uint64, crossing func(price float64) bool) (Fill, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	level, ok := l.levels.Min()
	if !ok || !crossing(level.Price) {
		return Fill{}, false
	}

	head := level.orders[0]
	matchQty := min(maxQty, head.Qty)
	head.Qty -= matchQty
	if head.Qty == 0 {
		head.Status = common.StatusFullFilled
		level.orders = level.orders[1:]
		if len(level.orders) == 0 {
			l.levels.Delete(level)
		}
	}
	return Fill{Counter: *head, Qty: matchQty}, true
}

// BestPrice reports the current best price on this ladder.
func (l *Ladder) BestPrice() (float64, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	level, ok := l.levels.Min()
	if !ok {
		return 0, false
	}
	return level.Price, true
}

// Snapshot returns detached copies of every level in priority order.
func (l *Ladder) Snapshot() []LevelSnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]LevelSnapshot, 0, l.levels.Len())
	for _, level := range l.levels.Items() {
		orders := make([]common.Order, len(level.orders))
		for i, resting := range level.orders {
			orders[i] = *resting
		}
		out = append(out, LevelSnapshot{Price: level.Price, Orders: orders})
	}
	return out
}

func (l *Ladder) reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.levels.Clear()
}
