package commands

import (
	"context"
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/services"
)

// ErrParcelIsNotBlocked is returned when releasing a parcel that is not on hold.
var ErrParcelIsNotBlocked = errors.New("parcel is not blocked")

// UnblockParcelCommandHandler orchestrates releasing a parcel from hold.
// Release always exits to Approved, the only non-terminal exit the transition
// graph allows from Blocked.
type UnblockParcelCommandHandler struct {
	uowFactory UoWFactory
	policy     services.TransitionPolicy
}

// NewUnblockParcelCommandHandler creates a handler for hold release operations.
// Requires a UoWFactory for transactional persistence.
func NewUnblockParcelCommandHandler(uowFactory UoWFactory) UnblockParcelCommandHandler {
	return UnblockParcelCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewTransitionPolicy(),
	}
}

// Handle processes the hold release command.
// On success the parcel is Approved again, the hold flag and snapshot are
// cleared, and one log entry is appended, all in one transaction.
func (h UnblockParcelCommandHandler) Handle(ctx context.Context, cmd UnblockParcelCommand) error {
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

	if !prcl.IsBlocked() {
		return ErrParcelIsNotBlocked
	}

	if err = prcl.ChangeStatus(parcel.StatusApproved, actor.ID(), nil, cmd.Note(), time.Now()); err != nil {
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
