package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/guard"
)

var ErrChangeParcelStatusCommandIsNotConstructed = errors.New(
	"ChangeParcelStatusCommand must be created via NewChangeParcelStatusCommand constructor",
)

// ChangeParcelStatusCommand represents a request to move a parcel to a new
// lifecycle status on behalf of an actor. The optional location and note are
// recorded in the appended status-log entry.
//
// Example:
//
//	cmd, err := NewChangeParcelStatusCommand(
//	    parcelID, actorID, parcel.StatusPicked, &warehouseAddress, "picked up at origin")
//	if err != nil {
//	    return err
//	}
//
//	handler := NewChangeParcelStatusCommandHandler(uowFactory)
//	err = handler.Handle(ctx, cmd)
type ChangeParcelStatusCommand struct { //nolint:recvcheck //using for validation
	parcelID  kernel.UUID
	actorID   kernel.UUID
	requested parcel.Status
	location  *kernel.Address
	note      string

	guard guard.ConstructorGuard
}

// NewChangeParcelStatusCommand creates a command to request a status change.
// Validates the identifiers and the requested status; location may be nil and
// note may be empty, in which case the status-log entry uses defaults.
func NewChangeParcelStatusCommand(
	parcelID kernel.UUID,
	actorID kernel.UUID,
	requested parcel.Status,
	location *kernel.Address,
	note string,
) (ChangeParcelStatusCommand, error) {
	cmd := ChangeParcelStatusCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setActorID(actorID),
		cmd.setRequested(requested),
		cmd.setLocation(location),
	); err != nil {
		return ChangeParcelStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrChangeParcelStatusCommandIsNotConstructed if validation fails.
func (c ChangeParcelStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeParcelStatusCommandIsNotConstructed)
}

// ParcelID returns the identifier of the parcel to transition.
func (c ChangeParcelStatusCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// ActorID returns the identifier of the account requesting the transition.
func (c ChangeParcelStatusCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Requested returns the target status.
func (c ChangeParcelStatusCommand) Requested() parcel.Status {
	return c.requested
}

// Location returns the optional location for the status-log entry; may be nil.
func (c ChangeParcelStatusCommand) Location() *kernel.Address {
	if c.location == nil {
		return nil
	}
	loc := *c.location
	return &loc
}

// Note returns the optional free-text note for the status-log entry.
func (c ChangeParcelStatusCommand) Note() string {
	return c.note
}

func (c *ChangeParcelStatusCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *ChangeParcelStatusCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}

func (c *ChangeParcelStatusCommand) setRequested(requested parcel.Status) error {
	if err := requested.Validate(); err != nil {
		return err
	}

	c.requested = requested
	return nil
}

func (c *ChangeParcelStatusCommand) setLocation(location *kernel.Address) error {
	if location == nil {
		return nil
	}
	if err := location.Validate(); err != nil {
		return err
	}

	loc := *location
	c.location = &loc
	return nil
}
