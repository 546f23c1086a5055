package common

// OrderStatus tracks an order through its lifecycle. An order is created
// NEW, becomes VALID after structural validation, MATCHING once the engine
// picks it up, and ends in exactly one terminal state.
type OrderStatus string

const (
	StatusNew        OrderStatus = "NEW"
	StatusValid      OrderStatus = "VALID"
	StatusRiskReject OrderStatus = "RISK_REJECT"
	StatusMatching   OrderStatus = "MATCHING"
	StatusPartFilled OrderStatus = "PART_FILLED"
	StatusFullFilled OrderStatus = "FULL_FILLED"
	StatusCancelled  OrderStatus = "CANCELLED"
	StatusRejected   OrderStatus = "REJECTED"
)
