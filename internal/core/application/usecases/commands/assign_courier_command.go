package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrAssignCourierCommandIsNotConstructed = errors.New(
	"AssignCourierCommand must be created via NewAssignCourierCommand constructor",
)

// AssignCourierCommand represents an administrator's request to attach a
// delivery agent to a parcel.
//
// Example:
//
//	cmd, err := NewAssignCourierCommand(parcelID, adminID, agentID)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewAssignCourierCommandHandler(uowFactory)
//	err = handler.Handle(ctx, cmd)
//	if errors.Is(err, account.ErrAccountNotEligibleAgent) {
//	    // The chosen account cannot carry parcels
//	}
type AssignCourierCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID
	actorID  kernel.UUID
	agentID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignCourierCommand creates a command to attach a delivery agent to a parcel.
func NewAssignCourierCommand(parcelID, actorID, agentID kernel.UUID) (AssignCourierCommand, error) {
	cmd := AssignCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setActorID(actorID),
		cmd.setAgentID(agentID),
	); err != nil {
		return AssignCourierCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAssignCourierCommandIsNotConstructed if validation fails.
func (c AssignCourierCommand) Validate() error {
	return c.guard.Validate(ErrAssignCourierCommandIsNotConstructed)
}

// ParcelID returns the identifier of the parcel receiving the agent.
func (c AssignCourierCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// ActorID returns the identifier of the administrator making the assignment.
func (c AssignCourierCommand) ActorID() kernel.UUID {
	return c.actorID
}

// AgentID returns the identifier of the delivery agent account to attach.
func (c AssignCourierCommand) AgentID() kernel.UUID {
	return c.agentID
}

func (c *AssignCourierCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *AssignCourierCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}

func (c *AssignCourierCommand) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	c.agentID = agentID
	return nil
}
