package commands

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
)

// CreateParcelCommandHandler handles the business logic for parcel booking.
// Resolves the sender and recipient accounts, generates a public tracking
// identifier, and creates the parcel in Requested status with its first
// status-log entry.
//
// Example:
//
//	handler := NewCreateParcelCommandHandler(uowFactory)
//	cmd, _ := NewCreateParcelCommand(...)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("parcel booking failed: %w", err)
//	}
//	// Parcel is now awaiting approval
type CreateParcelCommandHandler struct {
	uowFactory UoWFactory
}

// NewCreateParcelCommandHandler creates a handler for parcel booking operations.
// Requires a UoWFactory for transactional persistence.
func NewCreateParcelCommandHandler(uowFactory UoWFactory) CreateParcelCommandHandler {
	return CreateParcelCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the parcel booking command.
// The sender must exist; the recipient is resolved by email and must be an
// eligible receiver (receiver role, verified, active). Uses a transaction to
// ensure the parcel and its first log entry are persisted together or rolled
// back on error.
func (h CreateParcelCommandHandler) Handle(ctx context.Context, cmd CreateParcelCommand) error {
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
	if _, err := accountRepo.Get(ctx, cmd.SenderID()); err != nil {
		return err
	}

	recipient, err := accountRepo.GetByEmail(ctx, cmd.RecipientEmail())
	if err != nil {
		return err
	}
	if err = recipient.ValidateReceivable(); err != nil {
		return err
	}

	now := time.Now()
	newParcel, err := parcel.NewParcel(
		cmd.ParcelID(),
		kernel.NewTrackingID(now),
		cmd.SenderID(),
		recipient.ID(),
		cmd.PickupAddress(),
		cmd.DeliveryAddress(),
		cmd.WeightKg(),
		cmd.ShippingClass(),
		cmd.Fee(),
		now,
	)
	if err != nil {
		return err
	}

	if err = uow.ParcelRepository().Add(ctx, newParcel); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
