package common

import (
	"fmt"
	"time"
)

type Order struct {
	ClOrderID     string      `json:"clOrderId"`     // Client-assigned order id, unique per order
	ShareholderID string      `json:"shareholderId"` // Owning shareholder account
	Market        string      `json:"market"`        // Trading venue code (XSHG/XSHE/BJSE)
	SecurityID    string      `json:"securityId"`    // Instrument identifier
	Side          Side        `json:"side"`          // Order side
	Price         float64     `json:"price"`         // Limit price, fixed at submission
	Qty           uint64      `json:"qty"`           // Remaining quantity
	TotalQty      uint64      `json:"totalQty"`      // Originally submitted quantity
	Status        OrderStatus `json:"status"`        // Lifecycle status
	Timestamp     time.Time   `json:"timestamp"`     // Arrival time, the time-priority tie-break
}

func (o Order) String() string {
	return fmt.Sprintf("order[%s] %s %s %d@%.2f (remaining %d) status=%s owner=%s",
		o.ClOrderID, o.SecurityID, o.Side, o.TotalQty, o.Price, o.Qty, o.Status, o.ShareholderID)
}

// OrderSubmission is the inbound wire record before structural validation.
// Qty and Price are pointers so a missing field can be told apart from a
// zero value.
type OrderSubmission struct {
	ClOrderID     string   `json:"clOrderId"`
	ShareholderID string   `json:"shareholderId"`
	Market        string   `json:"market"`
	SecurityID    string   `json:"securityId"`
	Side          string   `json:"side"`
	Qty           *uint64  `json:"qty"`
	Price         *float64 `json:"price"`
}
