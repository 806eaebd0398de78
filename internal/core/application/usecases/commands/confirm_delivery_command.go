package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrConfirmDeliveryCommandIsNotConstructed = errors.New(
	"ConfirmDeliveryCommand must be created via NewConfirmDeliveryCommand constructor",
)

// ConfirmDeliveryCommand represents a recipient's confirmation that an
// in-transit parcel has been received.
type ConfirmDeliveryCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID
	actorID  kernel.UUID
	note     string

	guard guard.ConstructorGuard
}

// NewConfirmDeliveryCommand creates a command to confirm delivery of a parcel.
// The note is optional and recorded in the delivery log entry.
func NewConfirmDeliveryCommand(parcelID, actorID kernel.UUID, note string) (ConfirmDeliveryCommand, error) {
	cmd := ConfirmDeliveryCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setActorID(actorID),
	); err != nil {
		return ConfirmDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrConfirmDeliveryCommandIsNotConstructed)
}

// ParcelID returns the identifier of the parcel being confirmed.
func (c ConfirmDeliveryCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// ActorID returns the identifier of the confirming account.
func (c ConfirmDeliveryCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Note returns the optional confirmation note.
func (c ConfirmDeliveryCommand) Note() string {
	return c.note
}

func (c *ConfirmDeliveryCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *ConfirmDeliveryCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
