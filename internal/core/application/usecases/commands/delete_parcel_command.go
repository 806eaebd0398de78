package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrDeleteParcelCommandIsNotConstructed = errors.New(
	"DeleteParcelCommand must be created via NewDeleteParcelCommand constructor",
)

// DeleteParcelCommand represents a sender's request to remove a cancelled
// parcel and its status log from the system.
type DeleteParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID
	actorID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeleteParcelCommand creates a command to delete a parcel.
func NewDeleteParcelCommand(parcelID, actorID kernel.UUID) (DeleteParcelCommand, error) {
	cmd := DeleteParcelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setActorID(actorID),
	); err != nil {
		return DeleteParcelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteParcelCommand) Validate() error {
	return c.guard.Validate(ErrDeleteParcelCommandIsNotConstructed)
}

// ParcelID returns the identifier of the parcel to delete.
func (c DeleteParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// ActorID returns the identifier of the account requesting deletion.
func (c DeleteParcelCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *DeleteParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *DeleteParcelCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
