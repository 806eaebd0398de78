package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrCancelParcelCommandIsNotConstructed = errors.New(
	"CancelParcelCommand must be created via NewCancelParcelCommand constructor",
)

// CancelParcelCommand represents a request to cancel a parcel booking.
// Senders may cancel their own parcels pre-dispatch; administrators may cancel
// any parcel the transition graph permits.
type CancelParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID
	actorID  kernel.UUID
	note     string

	guard guard.ConstructorGuard
}

// NewCancelParcelCommand creates a command to cancel a parcel.
// The note is optional and recorded in the cancellation log entry.
func NewCancelParcelCommand(parcelID, actorID kernel.UUID, note string) (CancelParcelCommand, error) {
	cmd := CancelParcelCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setActorID(actorID),
	); err != nil {
		return CancelParcelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelParcelCommand) Validate() error {
	return c.guard.Validate(ErrCancelParcelCommandIsNotConstructed)
}

// ParcelID returns the identifier of the parcel to cancel.
func (c CancelParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// ActorID returns the identifier of the account requesting cancellation.
func (c CancelParcelCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Note returns the optional cancellation note.
func (c CancelParcelCommand) Note() string {
	return c.note
}

func (c *CancelParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *CancelParcelCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
