package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrBlockParcelCommandIsNotConstructed = errors.New(
	"BlockParcelCommand must be created via NewBlockParcelCommand constructor",
)

// BlockParcelCommand represents an administrative request to place a parcel on
// hold. The parcel's current status is snapshotted before it moves to Blocked.
type BlockParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID
	actorID  kernel.UUID
	note     string

	guard guard.ConstructorGuard
}

// NewBlockParcelCommand creates a command to place a parcel on hold.
// The note is optional and recorded in the hold log entry.
func NewBlockParcelCommand(parcelID, actorID kernel.UUID, note string) (BlockParcelCommand, error) {
	cmd := BlockParcelCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setActorID(actorID),
	); err != nil {
		return BlockParcelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c BlockParcelCommand) Validate() error {
	return c.guard.Validate(ErrBlockParcelCommandIsNotConstructed)
}

// ParcelID returns the identifier of the parcel to block.
func (c BlockParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// ActorID returns the identifier of the administrator placing the hold.
func (c BlockParcelCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Note returns the optional hold note.
func (c BlockParcelCommand) Note() string {
	return c.note
}

func (c *BlockParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *BlockParcelCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
