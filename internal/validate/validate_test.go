package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shenxianovo/trading-simulator/internal/common"
	"github.com/shenxianovo/trading-simulator/internal/validate"
)

func validSubmission() common.OrderSubmission {
	qty := uint64(100)
	price := 10.50
	return common.OrderSubmission{
		ClOrderID:     "CL1234567890123456",
		ShareholderID: "SH1234567890",
		Market:        "XSHG",
		SecurityID:    "600030",
		Side:          "B",
		Qty:           &qty,
		Price:         &price,
	}
}

func TestValidate_ValidSubmission(t *testing.T) {
	v := validate.NewOrderValidator()
	assert.Empty(t, v.Validate(validSubmission()))
}

func TestValidate_MissingFields(t *testing.T) {
	v := validate.NewOrderValidator()

	errs := v.Validate(common.OrderSubmission{})
	require.Len(t, errs, 7, "every required field should be flagged")
	for _, err := range errs {
		assert.Equal(t, common.ErrParamMissing, err)
	}
}

func TestValidate_InvalidMarket(t *testing.T) {
	v := validate.NewOrderValidator()

	sub := validSubmission()
	sub.Market = "NASDAQ"
	errs := v.Validate(sub)
	require.Len(t, errs, 1)
	assert.Equal(t, common.ErrMarketInvalid, errs[0])
}

func TestValidate_InvalidSide(t *testing.T) {
	v := validate.NewOrderValidator()

	sub := validSubmission()
	sub.Side = "X"
	errs := v.Validate(sub)
	require.Len(t, errs, 1)
	assert.Equal(t, common.ErrSideInvalid, errs[0])
}

func TestValidate_ZeroQuantity(t *testing.T) {
	v := validate.NewOrderValidator()

	sub := validSubmission()
	*sub.Qty = 0
	errs := v.Validate(sub)
	require.Len(t, errs, 1)
	assert.Equal(t, common.ErrQtyInvalid, errs[0])
}

func TestValidate_NegativePrice(t *testing.T) {
	v := validate.NewOrderValidator()

	sub := validSubmission()
	*sub.Price = -0.01
	errs := v.Validate(sub)
	require.Len(t, errs, 1)
	assert.Equal(t, common.ErrPriceInvalid, errs[0])
}

func TestValidate_ZeroPriceIsAllowed(t *testing.T) {
	v := validate.NewOrderValidator()

	sub := validSubmission()
	*sub.Price = 0
	assert.Empty(t, v.Validate(sub))
}

func TestValidate_ViolationOrdering(t *testing.T) {
	v := validate.NewOrderValidator()

	// Missing-field violations always precede value violations.
	qty := uint64(0)
	sub := validSubmission()
	sub.Market = ""
	sub.Qty = &qty
	errs := v.Validate(sub)
	require.Len(t, errs, 2)
	assert.Equal(t, common.ErrParamMissing, errs[0])
	assert.Equal(t, common.ErrQtyInvalid, errs[1])
}
