package order

import (
	"fmt"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through the NewItem factory method.
var ErrItemIsNotConstructed = errs.NewValueIsRequiredError(
	"Item must be created via NewItem",
)

// Item is a value object describing one line of an order: a product, its
// unit price at purchase time, and the quantity bought. Items are immutable
// once the order is created.
type Item struct {
	productID string
	name      string
	unitPrice float64
	quantity  int

	guard guard.ConstructorGuard
}

// NewItem creates a validated order line.
// Product id and name are required, unit price must be non-negative and
// quantity must be positive.
func NewItem(productID, name string, unitPrice float64, quantity int) (Item, error) {
	if productID == "" {
		return Item{}, errs.NewValueIsRequiredError("productID")
	}
	if name == "" {
		return Item{}, errs.NewValueIsRequiredError("name")
	}
	if unitPrice < 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause(
			"unitPrice is invalid", fmt.Errorf("%f is negative", unitPrice))
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}

	return Item{
		productID: productID,
		name:      name,
		unitPrice: unitPrice,
		quantity:  quantity,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the item was created through the constructor.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ProductID returns the catalog identifier of the product.
func (i Item) ProductID() string {
	return i.productID
}

// Name returns the product display name at purchase time.
func (i Item) Name() string {
	return i.name
}

// UnitPrice returns the price of a single unit at purchase time.
func (i Item) UnitPrice() float64 {
	return i.unitPrice
}

// Quantity returns the number of units bought.
func (i Item) Quantity() int {
	return i.quantity
}
