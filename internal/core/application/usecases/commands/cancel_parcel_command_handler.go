package commands

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/services"
)

// CancelParcelCommandHandler orchestrates the sender cancellation path.
// The authorization policy enforces ownership, the pre-dispatch stage window,
// and the blocked/flagged exclusions before the aggregate applies the
// cancellation side effects.
type CancelParcelCommandHandler struct {
	uowFactory UoWFactory
	policy     services.TransitionPolicy
}

// NewCancelParcelCommandHandler creates a handler for cancellation operations.
// Requires a UoWFactory for transactional persistence.
func NewCancelParcelCommandHandler(uowFactory UoWFactory) CancelParcelCommandHandler {
	return CancelParcelCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewTransitionPolicy(),
	}
}

// Handle processes the cancellation command.
// On success the parcel is Cancelled, cancelledAt is set, the estimated
// delivery is cleared, and one log entry is appended, all in one transaction.
func (h CancelParcelCommandHandler) Handle(ctx context.Context, cmd CancelParcelCommand) error {
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

	if err = h.policy.AuthorizeCancellation(actor, prcl); err != nil {
		return err
	}

	if err = prcl.ChangeStatus(parcel.StatusCancelled, actor.ID(), nil, cmd.Note(), time.Now()); err != nil {
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
