package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrUnblockParcelCommandIsNotConstructed = errors.New(
	"UnblockParcelCommand must be created via NewUnblockParcelCommand constructor",
)

// UnblockParcelCommand represents an administrative request to release a
// parcel from hold. The parcel returns to Approved and the hold snapshot is
// cleared.
type UnblockParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID
	actorID  kernel.UUID
	note     string

	guard guard.ConstructorGuard
}

// NewUnblockParcelCommand creates a command to release a parcel from hold.
// The note is optional and recorded in the release log entry.
func NewUnblockParcelCommand(parcelID, actorID kernel.UUID, note string) (UnblockParcelCommand, error) {
	cmd := UnblockParcelCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setActorID(actorID),
	); err != nil {
		return UnblockParcelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UnblockParcelCommand) Validate() error {
	return c.guard.Validate(ErrUnblockParcelCommandIsNotConstructed)
}

// ParcelID returns the identifier of the parcel to release.
func (c UnblockParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// ActorID returns the identifier of the administrator releasing the hold.
func (c UnblockParcelCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Note returns the optional release note.
func (c UnblockParcelCommand) Note() string {
	return c.note
}

func (c *UnblockParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *UnblockParcelCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
