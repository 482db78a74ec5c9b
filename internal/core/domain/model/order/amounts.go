package order

import (
	"fmt"
	"math"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

// ErrAmountsAreNotConstructed is returned when an Amounts instance was not
// created through NewAmounts or RestoreAmounts.
var ErrAmountsAreNotConstructed = errs.NewValueIsRequiredError(
	"Amounts must be created via NewAmounts or RestoreAmounts",
)

// amountsEpsilon absorbs floating point noise when checking total = subtotal + shipping.
const amountsEpsilon = 0.005

// Amounts is a value object holding the monetary breakdown of an order.
// All values are non-negative and the total always equals subtotal plus
// shipping. The currency is implicit and fixed for the storefront.
type Amounts struct {
	subtotal float64
	shipping float64
	total    float64

	guard guard.ConstructorGuard
}

// NewAmounts creates order amounts from a subtotal and shipping cost,
// deriving the total. Both inputs must be non-negative.
func NewAmounts(subtotal, shipping float64) (Amounts, error) {
	return RestoreAmounts(subtotal, shipping, subtotal+shipping)
}

// RestoreAmounts reconstructs order amounts from persistence, validating
// that the stored total is consistent with subtotal plus shipping.
func RestoreAmounts(subtotal, shipping, total float64) (Amounts, error) {
	if subtotal < 0 {
		return Amounts{}, errs.NewValueIsInvalidErrorWithCause(
			"subtotal is invalid", fmt.Errorf("%f is negative", subtotal))
	}
	if shipping < 0 {
		return Amounts{}, errs.NewValueIsInvalidErrorWithCause(
			"shipping is invalid", fmt.Errorf("%f is negative", shipping))
	}
	if math.Abs(total-(subtotal+shipping)) > amountsEpsilon {
		return Amounts{}, errs.NewValueIsInvalidErrorWithCause(
			"total is invalid", fmt.Errorf("%f is not subtotal %f plus shipping %f", total, subtotal, shipping))
	}

	return Amounts{
		subtotal: subtotal,
		shipping: shipping,
		total:    total,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the amounts were created through a constructor.
func (a Amounts) Validate() error {
	return a.guard.Validate(ErrAmountsAreNotConstructed)
}

// Subtotal returns the sum of item prices before shipping.
func (a Amounts) Subtotal() float64 {
	return a.subtotal
}

// Shipping returns the shipping cost.
func (a Amounts) Shipping() float64 {
	return a.shipping
}

// Total returns the amount charged to the buyer.
func (a Amounts) Total() float64 {
	return a.total
}
