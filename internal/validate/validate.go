package validate

import (
	"github.com/rs/zerolog/log"

	"github.com/shenxianovo/trading-simulator/internal/common"
)

var validMarkets = map[string]struct{}{
	"XSHG": {},
	"XSHE": {},
	"BJSE": {},
}

// OrderValidator performs the structural checks on an inbound submission.
// It carries no state; the zero value is usable.
type OrderValidator struct{}

func NewOrderValidator() *OrderValidator {
	return &OrderValidator{}
}

// Validate returns the ordered list of violations for the submission. An
// empty list means the order may proceed to risk checks and matching.
func (v *OrderValidator) Validate(sub common.OrderSubmission) []common.ErrorCode {
	var errs []common.ErrorCode

	if sub.ClOrderID == "" {
		errs = append(errs, common.ErrParamMissing)
	}
	if sub.Market == "" {
		errs = append(errs, common.ErrParamMissing)
	}
	if sub.SecurityID == "" {
		errs = append(errs, common.ErrParamMissing)
	}
	if sub.Side == "" {
		errs = append(errs, common.ErrParamMissing)
	}
	if sub.Qty == nil {
		errs = append(errs, common.ErrParamMissing)
	}
	if sub.Price == nil {
		errs = append(errs, common.ErrParamMissing)
	}
	if sub.ShareholderID == "" {
		errs = append(errs, common.ErrParamMissing)
	}

	if sub.Market != "" {
		if _, ok := validMarkets[sub.Market]; !ok {
			errs = append(errs, common.ErrMarketInvalid)
		}
	}
	if sub.Side != "" {
		if _, ok := common.SideFromCode(sub.Side); !ok {
			errs = append(errs, common.ErrSideInvalid)
		}
	}
	if sub.Qty != nil && *sub.Qty == 0 {
		errs = append(errs, common.ErrQtyInvalid)
	}
	if sub.Price != nil && *sub.Price < 0 {
		errs = append(errs, common.ErrPriceInvalid)
	}

	log.Info().
		Str("order", sub.ClOrderID).
		Int("violations", len(errs)).
		Msg("structural validation complete")
	return errs
}
