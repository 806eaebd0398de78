package parcel

import (
	"fmt"
	"time"

	"parceltrack/internal/pkg/errs"
)

// ShippingClass determines the promised delivery window of a parcel.
// It is a static shipping attribute: the transition engine reads it once, to
// derive the estimated delivery time on approval, and never mutates it.
type ShippingClass int

const (
	// ShippingUnknown represents an invalid or undefined shipping class.
	ShippingUnknown ShippingClass = iota

	// ShippingStandard is the default multi-day service.
	ShippingStandard

	// ShippingExpress is the accelerated two-day service.
	ShippingExpress

	// ShippingSameDay delivers within the booking day.
	ShippingSameDay

	// ShippingOvernight delivers by the next morning.
	ShippingOvernight
)

// getShippingClassStrings returns a map of ShippingClass values to their string representations.
func getShippingClassStrings() map[ShippingClass]string {
	return map[ShippingClass]string{
		ShippingUnknown:   "Unknown",
		ShippingStandard:  "Standard",
		ShippingExpress:   "Express",
		ShippingSameDay:   "SameDay",
		ShippingOvernight: "Overnight",
	}
}

// ShippingClassFromString parses a shipping class display name produced by String.
// Used when interpreting booking requests from external callers.
func ShippingClassFromString(s string) (ShippingClass, error) {
	for class, str := range getShippingClassStrings() {
		if class != ShippingUnknown && str == s {
			return class, nil
		}
	}
	return ShippingUnknown, errs.NewValueIsInvalidErrorWithCause(
		"shipping class", fmt.Errorf("%q is not a valid shipping class", s))
}

// DeliveryWindow returns the promised time from approval to delivery.
func (c ShippingClass) DeliveryWindow() time.Duration {
	switch c {
	case ShippingExpress:
		return 48 * time.Hour
	case ShippingSameDay:
		return 12 * time.Hour
	case ShippingOvernight:
		return 24 * time.Hour
	case ShippingStandard, ShippingUnknown:
	}
	return 5 * 24 * time.Hour
}

// Validate checks if the ShippingClass value is a member of the closed enumeration.
func (c ShippingClass) Validate() error {
	switch c {
	case ShippingStandard, ShippingExpress, ShippingSameDay, ShippingOvernight:
		return nil
	case ShippingUnknown:
	}
	return errs.NewValueIsInvalidErrorWithCause(
		"shipping class", fmt.Errorf("%d is not a valid shipping class", c))
}

// String returns the human-readable name of the shipping class.
func (c ShippingClass) String() string {
	if str, ok := getShippingClassStrings()[c]; ok {
		return str
	}
	return "Unknown"
}
