package commands

import (
	"context"

	"parceltrack/internal/core/domain/services"
)

// AssignCourierCommandHandler orchestrates delivery agent assignment.
// Only administrators may assign; the agent account must be an eligible
// delivery agent and the parcel must be in an assignable status. Assigning an
// agent that is already attached succeeds without change.
type AssignCourierCommandHandler struct {
	uowFactory UoWFactory
	policy     services.TransitionPolicy
}

// NewAssignCourierCommandHandler creates a handler for agent assignment operations.
// Requires a UoWFactory for coordinating the parcel and account repositories.
func NewAssignCourierCommandHandler(uowFactory UoWFactory) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewTransitionPolicy(),
	}
}

// Handle processes the agent assignment command.
// The read-check-append of the agent list is atomic with the enclosing parcel
// update, so concurrent assignments cannot produce duplicates.
func (h AssignCourierCommandHandler) Handle(ctx context.Context, cmd AssignCourierCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	accountRepo := uow.AccountRepository()
	actor, err := accountRepo.Get(ctx, cmd.ActorID())
	if err != nil {
		return err
	}

	if err = h.policy.AuthorizeAgentAssignment(actor); err != nil {
		return err
	}

	agent, err := accountRepo.Get(ctx, cmd.AgentID())
	if err != nil {
		return err
	}

	parcelRepo := uow.ParcelRepository()
	prcl, err := parcelRepo.Get(ctx, cmd.ParcelID())
	if err != nil {
		return err
	}

	if err = prcl.AssignAgent(agent); err != nil {
		return err
	}

	if err = parcelRepo.Update(ctx, prcl); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
