package commands

import (
	"context"

	"parceltrack/internal/core/domain/services"
)

// DeleteParcelCommandHandler orchestrates parcel deletion.
// Only the owning sender (or an administrator) may delete, and only while the
// parcel is Cancelled. Deletion removes the parcel together with its status
// log; it is the one operation permitted to discard audit entries.
type DeleteParcelCommandHandler struct {
	uowFactory UoWFactory
	policy     services.TransitionPolicy
}

// NewDeleteParcelCommandHandler creates a handler for parcel deletion operations.
// Requires a UoWFactory for transactional persistence.
func NewDeleteParcelCommandHandler(uowFactory UoWFactory) DeleteParcelCommandHandler {
	return DeleteParcelCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewTransitionPolicy(),
	}
}

// Handle processes the deletion command.
func (h DeleteParcelCommandHandler) Handle(ctx context.Context, cmd DeleteParcelCommand) error {
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

	if err = h.policy.AuthorizeDeletion(actor, prcl); err != nil {
		return err
	}

	if err = prcl.ValidateDelete(); err != nil {
		return err
	}

	if err = parcelRepo.Delete(ctx, prcl.ID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
