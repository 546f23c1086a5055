package risk

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/shenxianovo/trading-simulator/internal/common"
)

type memoryEntry struct {
	side   common.Side
	seenAt time.Time
}

// SelfTradeChecker is the pre-trade wash-trade gate. It remembers the most
// recent side per (shareholder, security) pair and flags a violation when a
// new order arrives on the opposite side within the configured window and
// no clearing event (fill or cancel) has intervened. Same-side resubmission
// refreshes the memory.
//
// Instances own their state outright so tests and sessions can run
// isolated checkers.
type SelfTradeChecker struct {
	enable bool
	window time.Duration

	mu     sync.Mutex
	memory map[string]memoryEntry
}

// NewSelfTradeChecker builds a checker. A non-positive window means the
// memory never expires on its own.
func NewSelfTradeChecker(enable bool, window time.Duration) *SelfTradeChecker {
	return &SelfTradeChecker{
		enable: enable,
		window: window,
		memory: make(map[string]memoryEntry),
	}
}

func cacheKey(shareholderID, securityID string) string {
	return shareholderID + "_" + securityID
}

// Check returns the self-trade violation for the order, or nil when the
// order passes. A violating order does not overwrite the remembered side.
func (c *SelfTradeChecker) Check(order *common.Order) *common.ErrorCode {
	if !c.enable {
		return nil
	}

	key := cacheKey(order.ShareholderID, order.SecurityID)

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.memory[key]
	if ok && entry.side != order.Side && c.withinWindow(entry.seenAt) {
		log.Warn().
			Str("order", order.ClOrderID).
			Str("shareholder", order.ShareholderID).
			Str("security", order.SecurityID).
			Msg("self-trade risk triggered: opposite-side order outstanding")
		violation := common.ErrSelfTrade
		return &violation
	}

	c.memory[key] = memoryEntry{side: order.Side, seenAt: time.Now()}
	return nil
}

func (c *SelfTradeChecker) withinWindow(seenAt time.Time) bool {
	return c.window <= 0 || time.Since(seenAt) <= c.window
}

// Clear drops the memory for one (shareholder, security) pair. Called on
// clearing events: a full fill or an explicit cancel.
func (c *SelfTradeChecker) Clear(shareholderID, securityID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.memory, cacheKey(shareholderID, securityID))
	log.Debug().
		Str("shareholder", shareholderID).
		Str("security", securityID).
		Msg("self-trade memory cleared")
}

// Reset wipes the whole memory, used at session boundaries.
func (c *SelfTradeChecker) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.memory = make(map[string]memoryEntry)
}
