package commands

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/parcel"
)

// FlagOverdueParcelsCommandHandler runs the overdue sweep used by the
// background scheduler. In-transit parcels past their estimated delivery time
// are moved to Flagged with a system note so an administrator can review them.
//
// A parcel that cannot be flagged (for example one concurrently transitioned
// away from an eligible status) does not abort the sweep; remaining parcels
// are still processed.
type FlagOverdueParcelsCommandHandler struct {
	uowFactory UoWFactory
}

// NewFlagOverdueParcelsCommandHandler creates a handler for the overdue sweep.
// Requires a UoWFactory for transactional persistence.
func NewFlagOverdueParcelsCommandHandler(uowFactory UoWFactory) FlagOverdueParcelsCommandHandler {
	return FlagOverdueParcelsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the overdue sweep command.
// Each flagged parcel is persisted with its appended log entry; the whole
// sweep commits as one transaction.
func (h FlagOverdueParcelsCommandHandler) Handle(ctx context.Context, cmd FlagOverdueParcelsCommand) error {
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

	parcelRepo := uow.ParcelRepository()
	overdue, err := parcelRepo.GetAllOverdue(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, prcl := range overdue {
		if transitionErr := prcl.ChangeStatus(
			parcel.StatusFlagged, cmd.ActorID(), nil, "flagged as overdue by system", now,
		); transitionErr != nil {
			continue
		}

		if err = parcelRepo.Update(ctx, prcl); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
