package commands

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/services"
)

// BlockParcelCommandHandler orchestrates placing a parcel on administrative hold.
// Holds are reserved to administrators; the transition graph still decides
// which statuses may enter Blocked.
type BlockParcelCommandHandler struct {
	uowFactory UoWFactory
	policy     services.TransitionPolicy
}

// NewBlockParcelCommandHandler creates a handler for hold placement operations.
// Requires a UoWFactory for transactional persistence.
func NewBlockParcelCommandHandler(uowFactory UoWFactory) BlockParcelCommandHandler {
	return BlockParcelCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewTransitionPolicy(),
	}
}

// Handle processes the hold placement command.
// On success the parcel is Blocked, its prior status is snapshotted, and one
// log entry is appended, all in one transaction.
func (h BlockParcelCommandHandler) Handle(ctx context.Context, cmd BlockParcelCommand) error {
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

	if err = h.policy.AuthorizeHold(actor); err != nil {
		return err
	}

	parcelRepo := uow.ParcelRepository()
	prcl, err := parcelRepo.Get(ctx, cmd.ParcelID())
	if err != nil {
		return err
	}

	if err = prcl.ChangeStatus(parcel.StatusBlocked, actor.ID(), nil, cmd.Note(), time.Now()); err != nil {
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
