package commands

import (
	"errors"
	"strings"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrCreateParcelCommandIsNotConstructed = errors.New(
		"CreateParcelCommand must be created via NewCreateParcelCommand constructor",
	)
	ErrRecipientEmailIsRequired = errors.New("recipient email is required")
)

// CreateParcelCommand represents a sender's request to book a new parcel
// delivery. Encapsulates the recipient, addresses, and shipping attributes.
//
// Example:
//
//	parcelID := kernel.NewUUID()
//	cmd, err := NewCreateParcelCommand(
//	    parcelID, senderID, "receiver@example.com",
//	    pickup, delivery, 2.5, parcel.ShippingExpress, 150)
//	if err != nil {
//	    return fmt.Errorf("invalid booking data: %w", err)
//	}
//
//	handler := NewCreateParcelCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to book parcel: %w", err)
//	}
type CreateParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID        kernel.UUID
	senderID        kernel.UUID
	recipientEmail  string
	pickupAddress   kernel.Address
	deliveryAddress kernel.Address
	weightKg        float64
	shippingClass   parcel.ShippingClass
	fee             float64

	guard guard.ConstructorGuard
}

// NewCreateParcelCommand creates a command to book a new parcel delivery.
// Validates identifiers, the recipient email, both addresses, and the shipping
// class. The weight and fee bounds are enforced by the parcel aggregate at
// handling time.
func NewCreateParcelCommand(
	parcelID kernel.UUID,
	senderID kernel.UUID,
	recipientEmail string,
	pickupAddress kernel.Address,
	deliveryAddress kernel.Address,
	weightKg float64,
	shippingClass parcel.ShippingClass,
	fee float64,
) (CreateParcelCommand, error) {
	cmd := CreateParcelCommand{
		weightKg: weightKg,
		fee:      fee,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setSenderID(senderID),
		cmd.setRecipientEmail(recipientEmail),
		cmd.setPickupAddress(pickupAddress),
		cmd.setDeliveryAddress(deliveryAddress),
		cmd.setShippingClass(shippingClass),
	); err != nil {
		return CreateParcelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateParcelCommandIsNotConstructed if validation fails.
func (c CreateParcelCommand) Validate() error {
	return c.guard.Validate(ErrCreateParcelCommandIsNotConstructed)
}

// ParcelID returns the identifier assigned to the new parcel.
func (c CreateParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// SenderID returns the identifier of the booking sender.
func (c CreateParcelCommand) SenderID() kernel.UUID {
	return c.senderID
}

// RecipientEmail returns the email address identifying the recipient account.
func (c CreateParcelCommand) RecipientEmail() string {
	return c.recipientEmail
}

// PickupAddress returns the pickup address for the parcel.
func (c CreateParcelCommand) PickupAddress() kernel.Address {
	return c.pickupAddress
}

// DeliveryAddress returns the delivery address for the parcel.
func (c CreateParcelCommand) DeliveryAddress() kernel.Address {
	return c.deliveryAddress
}

// WeightKg returns the declared parcel weight in kilograms.
func (c CreateParcelCommand) WeightKg() float64 {
	return c.weightKg
}

// ShippingClass returns the requested shipping class.
func (c CreateParcelCommand) ShippingClass() parcel.ShippingClass {
	return c.shippingClass
}

// Fee returns the delivery fee quoted for the booking.
func (c CreateParcelCommand) Fee() float64 {
	return c.fee
}

func (c *CreateParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *CreateParcelCommand) setSenderID(senderID kernel.UUID) error {
	if err := senderID.Validate(); err != nil {
		return err
	}

	c.senderID = senderID
	return nil
}

func (c *CreateParcelCommand) setRecipientEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrRecipientEmailIsRequired
	}

	c.recipientEmail = email
	return nil
}

func (c *CreateParcelCommand) setPickupAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}

	c.pickupAddress = address
	return nil
}

func (c *CreateParcelCommand) setDeliveryAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}

	c.deliveryAddress = address
	return nil
}

func (c *CreateParcelCommand) setShippingClass(class parcel.ShippingClass) error {
	if err := class.Validate(); err != nil {
		return err
	}

	c.shippingClass = class
	return nil
}
