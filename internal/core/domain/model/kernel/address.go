package kernel

import (
	"errors"
	"fmt"
	"strings"

	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when attempting to use an improperly
// initialized Address. Addresses must be created via NewAddress to ensure validity.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"address must be created via NewAddress constructor")

// Address represents a postal address used as a parcel's pickup or delivery
// destination and as the location attached to status-log entries.
// Address is an immutable value object; the zero value is invalid and fails
// validation - use the constructor to create instances.
//
// Street, city, and country are required; state and postal code are optional.
//
// Example:
//
//	addr, err := kernel.NewAddress("12 Lake Road", "Dhaka", "", "1207", "Bangladesh")
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(addr) // Output: 12 Lake Road, Dhaka 1207, Bangladesh
type Address struct { //nolint:recvcheck //using for validation
	street     string
	city       string
	state      string
	postalCode string
	country    string

	guard guard.ConstructorGuard
}

// NewAddress creates a new Address with the specified components.
// Street, city, and country must be non-empty; state and postalCode may be empty.
//
// Returns:
//   - Address: A valid address instance
//   - error: Joined validation errors for every missing required component
func NewAddress(street, city, state, postalCode, country string) (Address, error) {
	addr := Address{
		state:      strings.TrimSpace(state),
		postalCode: strings.TrimSpace(postalCode),
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		addr.setStreet(street),
		addr.setCity(city),
		addr.setCountry(country),
	); err != nil {
		return Address{}, err
	}

	return addr, nil
}

// Validate checks if the Address was properly constructed using the constructor.
// The zero value of Address is invalid and will fail this validation.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// Street returns the street line of the address.
func (a Address) Street() string {
	return a.street
}

// City returns the city of the address.
func (a Address) City() string {
	return a.city
}

// State returns the state or region of the address; may be empty.
func (a Address) State() string {
	return a.state
}

// PostalCode returns the postal code of the address; may be empty.
func (a Address) PostalCode() string {
	return a.postalCode
}

// Country returns the country of the address.
func (a Address) Country() string {
	return a.country
}

// IsEqual compares two addresses component by component.
func (a Address) IsEqual(other Address) bool {
	return a.street == other.street &&
		a.city == other.city &&
		a.state == other.state &&
		a.postalCode == other.postalCode &&
		a.country == other.country
}

// String returns a single-line human-readable rendering of the address.
// It implements the fmt.Stringer interface and is used for status-log display.
func (a Address) String() string {
	cityPart := a.city
	if a.state != "" {
		cityPart = fmt.Sprintf("%s, %s", cityPart, a.state)
	}
	if a.postalCode != "" {
		cityPart = fmt.Sprintf("%s %s", cityPart, a.postalCode)
	}
	return fmt.Sprintf("%s, %s, %s", a.street, cityPart, a.country)
}

func (a *Address) setStreet(street string) error {
	street = strings.TrimSpace(street)
	if street == "" {
		return errs.NewValueIsRequiredError("street")
	}
	a.street = street
	return nil
}

func (a *Address) setCity(city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return errs.NewValueIsRequiredError("city")
	}
	a.city = city
	return nil
}

func (a *Address) setCountry(country string) error {
	country = strings.TrimSpace(country)
	if country == "" {
		return errs.NewValueIsRequiredError("country")
	}
	a.country = country
	return nil
}
