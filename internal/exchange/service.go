package exchange

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/shenxianovo/trading-simulator/internal/book"
	"github.com/shenxianovo/trading-simulator/internal/common"
	"github.com/shenxianovo/trading-simulator/internal/engine"
	"github.com/shenxianovo/trading-simulator/internal/risk"
	"github.com/shenxianovo/trading-simulator/internal/validate"
)

// Reject is the structured rejection record: the original submitted fields
// plus the taxonomy code and text.
type Reject struct {
	ClOrderID     string   `json:"clOrderId"`
	ShareholderID string   `json:"shareholderId"`
	Market        string   `json:"market"`
	SecurityID    string   `json:"securityId"`
	Side          string   `json:"side"`
	Qty           *uint64  `json:"qty"`
	Price         *float64 `json:"price"`
	RejectCode    int      `json:"rejectCode"`
	RejectText    string   `json:"rejectText"`
}

// Result is the outcome of one submission: exactly one of Order or Reject
// is set. Both are the same document family on the wire; they differ only
// in content.
type Result struct {
	Order  *common.Order
	Reject *Reject
}

// Service orchestrates the order flow: structural validation, the
// self-trade risk gate, then the matching engine. It also implements
// engine.TradeReporter so fills feed back into risk memory clearing.
type Service struct {
	validator *validate.OrderValidator
	risk      *risk.SelfTradeChecker
	engine    *engine.Engine
	book      *book.Book
}

func New(v *validate.OrderValidator, r *risk.SelfTradeChecker, e *engine.Engine, b *book.Book) *Service {
	s := &Service{validator: v, risk: r, engine: e, book: b}
	e.SetReporter(s)
	return s
}

// Submit runs one order through the whole pipeline and returns either the
// matched order or a rejection record. The matching core is only invoked
// once the order is structurally valid and risk-cleared.
func (s *Service) Submit(sub common.OrderSubmission) Result {
	log.Info().Str("order", sub.ClOrderID).Msg("processing submission")

	if errs := s.validator.Validate(sub); len(errs) > 0 {
		log.Warn().
			Str("order", sub.ClOrderID).
			Err(errs[0]).
			Msg("submission failed validation")
		return Result{Reject: buildReject(sub, errs[0])}
	}

	order := &common.Order{
		ClOrderID:     sub.ClOrderID,
		ShareholderID: sub.ShareholderID,
		Market:        sub.Market,
		SecurityID:    sub.SecurityID,
		Price:         *sub.Price,
		Qty:           *sub.Qty,
		TotalQty:      *sub.Qty,
		Status:        common.StatusValid,
		Timestamp:     time.Now(),
	}
	order.Side, _ = common.SideFromCode(sub.Side)

	if violation := s.risk.Check(order); violation != nil {
		order.Status = common.StatusRiskReject
		log.Warn().
			Str("order", order.ClOrderID).
			Err(*violation).
			Msg("submission blocked by risk gate")
		return Result{Reject: buildReject(sub, *violation)}
	}

	return Result{Order: s.engine.Match(order)}
}

// Cancel removes a resting order outright. Removal is idempotent: a second
// cancel of the same order simply reports false. A successful cancel is a
// clearing event for the shareholder's risk memory.
func (s *Service) Cancel(clOrderID, securityID, sideCode string, price float64, shareholderID string) bool {
	side, ok := common.SideFromCode(sideCode)
	if !ok {
		return false
	}
	removed := s.book.RemoveOrder(&common.Order{
		ClOrderID:  clOrderID,
		SecurityID: securityID,
		Side:       side,
		Price:      price,
	})
	if removed {
		s.risk.Clear(shareholderID, securityID)
	}
	return removed
}

// Depth returns detached snapshots of both ladders of an instrument.
func (s *Service) Depth(securityID string) (bids, asks []book.LevelSnapshot) {
	bids = s.book.LadderFor(securityID, common.Buy).Snapshot()
	asks = s.book.LadderFor(securityID, common.Sell).Snapshot()
	return bids, asks
}

// ResetBook wipes an instrument's book and the risk session memory.
// Administrative operation only.
func (s *Service) ResetBook(securityID string) {
	s.book.Clear(securityID)
	s.risk.Reset()
}

// ReportTrade implements engine.TradeReporter. A party whose order is now
// fully consumed has no outstanding exposure left on this security, so its
// self-trade memory is cleared.
func (s *Service) ReportTrade(trade common.Trade) {
	log.Info().Stringer("trade", trade).Msg("trade executed")
	if trade.Taker.Qty == 0 {
		s.risk.Clear(trade.Taker.ShareholderID, trade.SecurityID)
	}
	if trade.Maker.Qty == 0 {
		s.risk.Clear(trade.Maker.ShareholderID, trade.SecurityID)
	}
}

func buildReject(sub common.OrderSubmission, code common.ErrorCode) *Reject {
	return &Reject{
		ClOrderID:     sub.ClOrderID,
		ShareholderID: sub.ShareholderID,
		Market:        sub.Market,
		SecurityID:    sub.SecurityID,
		Side:          sub.Side,
		Qty:           sub.Qty,
		Price:         sub.Price,
		RejectCode:    code.Code,
		RejectText:    code.Text,
	}
}
