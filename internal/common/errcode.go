package common

import "fmt"

// ErrorCode is one entry of the fixed business error taxonomy. Rejections
// surface these as a numeric code plus human-readable text rather than a
// generic failure.
type ErrorCode struct {
	Code int
	Text string
}

var (
	// Structural validation errors.
	ErrParamMissing  = ErrorCode{1001, "required field is empty"}
	ErrMarketInvalid = ErrorCode{1002, "invalid market (only XSHG/XSHE/BJSE supported)"}
	ErrSideInvalid   = ErrorCode{1003, "invalid side (only B/S supported)"}
	ErrQtyInvalid    = ErrorCode{1004, "order quantity must be greater than 0"}
	ErrPriceInvalid  = ErrorCode{1005, "order price must not be negative"}

	// Risk errors.
	ErrSelfTrade = ErrorCode{2001, "self-trade detected for shareholder"}

	// Matching errors.
	ErrMatchFailed = ErrorCode{3001, "matching failed"}
)

func (e ErrorCode) Error() string {
	return fmt.Sprintf("[%d] %s", e.Code, e.Text)
}
