package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrFlagOverdueParcelsCommandIsNotConstructed = errors.New(
	"FlagOverdueParcelsCommand must be created via NewFlagOverdueParcelsCommand constructor",
)

// FlagOverdueParcelsCommand triggers the sweep that flags in-transit parcels
// past their estimated delivery time. The actor is the system account the
// resulting log entries are attributed to.
//
// Example:
//
//	cmd, _ := NewFlagOverdueParcelsCommand(systemAccountID)
//	handler := NewFlagOverdueParcelsCommandHandler(uowFactory)
//	err := handler.Handle(ctx, cmd)
type FlagOverdueParcelsCommand struct { //nolint:recvcheck //using for validation
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewFlagOverdueParcelsCommand creates a command to trigger the overdue sweep.
func NewFlagOverdueParcelsCommand(actorID kernel.UUID) (FlagOverdueParcelsCommand, error) {
	cmd := FlagOverdueParcelsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setActorID(actorID); err != nil {
		return FlagOverdueParcelsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrFlagOverdueParcelsCommandIsNotConstructed if validation fails.
func (c FlagOverdueParcelsCommand) Validate() error {
	return c.guard.Validate(ErrFlagOverdueParcelsCommandIsNotConstructed)
}

// ActorID returns the system account the flag entries are attributed to.
func (c FlagOverdueParcelsCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *FlagOverdueParcelsCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
