package commands

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/services"
)

// ConfirmDeliveryCommandHandler orchestrates the recipient confirmation path.
// The policy enforces that only the parcel's recipient (or an administrator)
// may confirm; the aggregate enforces the in-transit stage requirement.
type ConfirmDeliveryCommandHandler struct {
	uowFactory UoWFactory
	policy     services.TransitionPolicy
}

// NewConfirmDeliveryCommandHandler creates a handler for delivery confirmation.
// Requires a UoWFactory for transactional persistence.
func NewConfirmDeliveryCommandHandler(uowFactory UoWFactory) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewTransitionPolicy(),
	}
}

// Handle processes the confirmation command.
// On success the parcel is Delivered, deliveredAt is set, cancelledAt is
// cleared, and one log entry is appended, all in one transaction.
func (h ConfirmDeliveryCommandHandler) Handle(ctx context.Context, cmd ConfirmDeliveryCommand) error {
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

	if err = h.policy.AuthorizeDeliveryConfirmation(actor, prcl); err != nil {
		return err
	}

	if err = prcl.ConfirmDelivered(actor.ID(), nil, cmd.Note(), time.Now()); err != nil {
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
