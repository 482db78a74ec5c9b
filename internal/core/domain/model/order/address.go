package order

import (
	"strings"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when an Address instance was not
// created through the NewAddress factory method.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"Address must be created via NewAddress",
)

// Address is a value object holding the recipient and destination of an order.
// The fulfillment pipeline treats it as opaque except for the field extraction
// needed to build a carrier shipment request.
type Address struct {
	recipientName string
	email         string
	phone         string
	street        string
	city          string
	state         string
	postalCode    string

	guard guard.ConstructorGuard
}

// NewAddress creates a validated recipient address.
// Recipient name, email, phone, street, city and postal code are required;
// state may be empty for regions that do not use one.
func NewAddress(recipientName, email, phone, street, city, state, postalCode string) (Address, error) {
	if strings.TrimSpace(recipientName) == "" {
		return Address{}, errs.NewValueIsRequiredError("recipientName")
	}
	if strings.TrimSpace(email) == "" {
		return Address{}, errs.NewValueIsRequiredError("email")
	}
	if strings.TrimSpace(phone) == "" {
		return Address{}, errs.NewValueIsRequiredError("phone")
	}
	if strings.TrimSpace(street) == "" {
		return Address{}, errs.NewValueIsRequiredError("street")
	}
	if strings.TrimSpace(city) == "" {
		return Address{}, errs.NewValueIsRequiredError("city")
	}
	if strings.TrimSpace(postalCode) == "" {
		return Address{}, errs.NewValueIsRequiredError("postalCode")
	}

	return Address{
		recipientName: strings.TrimSpace(recipientName),
		email:         strings.TrimSpace(email),
		phone:         strings.TrimSpace(phone),
		street:        strings.TrimSpace(street),
		city:          strings.TrimSpace(city),
		state:         strings.TrimSpace(state),
		postalCode:    strings.TrimSpace(postalCode),
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the address was created through the constructor.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// RecipientName returns the full recipient name as entered at checkout.
func (a Address) RecipientName() string {
	return a.recipientName
}

// FirstName returns the first word of the recipient name.
// Carrier APIs require the name split into first and last parts.
func (a Address) FirstName() string {
	first, _, _ := strings.Cut(a.recipientName, " ")
	return first
}

// LastName returns everything after the first word of the recipient name,
// or an empty string for single-word names.
func (a Address) LastName() string {
	_, last, _ := strings.Cut(a.recipientName, " ")
	return last
}

// Email returns the recipient email address.
func (a Address) Email() string {
	return a.email
}

// Phone returns the recipient phone number.
func (a Address) Phone() string {
	return a.phone
}

// Street returns the street line of the destination.
func (a Address) Street() string {
	return a.street
}

// City returns the destination city.
func (a Address) City() string {
	return a.city
}

// State returns the destination state or region, possibly empty.
func (a Address) State() string {
	return a.state
}

// PostalCode returns the destination postal code.
func (a Address) PostalCode() string {
	return a.postalCode
}
