package commands

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/services"
)

// ChangeParcelStatusCommandHandler orchestrates a generic status transition.
// Loads the actor and the parcel, runs the authorization policy, delegates the
// transition to the parcel aggregate, and persists the mutated parcel together
// with the appended status-log entry in one transaction.
//
// Example:
//
//	handler := NewChangeParcelStatusCommandHandler(uowFactory)
//	cmd, _ := NewChangeParcelStatusCommand(parcelID, adminID, parcel.StatusApproved, nil, "")
//	err := handler.Handle(ctx, cmd)
//
//	var invalid *parcel.InvalidTransitionError
//	if errors.As(err, &invalid) {
//	    // Report invalid.Allowed back to the caller
//	}
type ChangeParcelStatusCommandHandler struct {
	uowFactory UoWFactory
	policy     services.TransitionPolicy
}

// NewChangeParcelStatusCommandHandler creates a handler for status transition
// operations. Requires a UoWFactory for transactional persistence.
func NewChangeParcelStatusCommandHandler(uowFactory UoWFactory) ChangeParcelStatusCommandHandler {
	return ChangeParcelStatusCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewTransitionPolicy(),
	}
}

// Handle processes the status change command.
// Authorization runs before the transition graph: actors that fail the policy
// never reach the lifecycle engine. Stale concurrent writes surface as a
// version-invalid error from the repository update.
func (h ChangeParcelStatusCommandHandler) Handle(ctx context.Context, cmd ChangeParcelStatusCommand) error {
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

	actor, err := uow.AccountRepository().Get(ctx, cmd.ActorID())
	if err != nil {
		return err
	}

	parcelRepo := uow.ParcelRepository()
	prcl, err := parcelRepo.Get(ctx, cmd.ParcelID())
	if err != nil {
		return err
	}

	if err = h.policy.AuthorizeStatusChange(actor, prcl, cmd.Requested()); err != nil {
		return err
	}

	if err = prcl.ChangeStatus(cmd.Requested(), actor.ID(), cmd.Location(), cmd.Note(), time.Now()); err != nil {
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
