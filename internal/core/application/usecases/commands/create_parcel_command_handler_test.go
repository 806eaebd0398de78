package commands_test

import (
	"testing"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/account"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateParcelCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	sender := fixtureAccount(t, account.RoleSender)
	recipient := fixtureRecipient(t)

	cmd, err := commands.NewCreateParcelCommand(
		kernel.NewUUID(), sender.ID(), recipient.Email(),
		fixtureAddress(t, "1 Pickup Lane"), fixtureAddress(t, "2 Delivery Road"),
		2.5, parcel.ShippingStandard, 150)
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	accountRepo := new(MockAccountRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AccountRepository").Return(accountRepo).Once(),
		accountRepo.On("Get", ctx, sender.ID()).Return(sender, nil).Once(),
		accountRepo.On("GetByEmail", ctx, recipient.Email()).Return(recipient, nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("Add", ctx, mock.AnythingOfType("*parcel.Parcel")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateParcelCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	parcelRepo.AssertExpectations(t)
	accountRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateParcelCommandHandler_Handle_RecipientNotFound(t *testing.T) {
	ctx := t.Context()

	sender := fixtureAccount(t, account.RoleSender)

	cmd, err := commands.NewCreateParcelCommand(
		sender.ID(), sender.ID(), "unknown@example.com",
		fixtureAddress(t, "1 Pickup Lane"), fixtureAddress(t, "2 Delivery Road"),
		2.5, parcel.ShippingStandard, 150)
	require.NoError(t, err)

	accountRepo := new(MockAccountRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AccountRepository").Return(accountRepo).Once(),
		accountRepo.On("Get", ctx, sender.ID()).Return(sender, nil).Once(),
		accountRepo.On("GetByEmail", ctx, "unknown@example.com").
			Return(nil, errs.NewObjectNotFoundError("email", "unknown@example.com")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateParcelCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateParcelCommandHandler_Handle_IneligibleRecipient(t *testing.T) {
	ctx := t.Context()

	sender := fixtureAccount(t, account.RoleSender)
	// Resolvable by email, but not a verified receiver.
	recipient := fixtureAccount(t, account.RoleDeliveryAgent)

	cmd, err := commands.NewCreateParcelCommand(
		kernel.NewUUID(), sender.ID(), recipient.Email(),
		fixtureAddress(t, "1 Pickup Lane"), fixtureAddress(t, "2 Delivery Road"),
		2.5, parcel.ShippingStandard, 150)
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	accountRepo := new(MockAccountRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AccountRepository").Return(accountRepo).Once(),
		accountRepo.On("Get", ctx, sender.ID()).Return(sender, nil).Once(),
		accountRepo.On("GetByEmail", ctx, recipient.Email()).Return(recipient, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateParcelCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, account.ErrAccountNotEligibleRecipient)
	parcelRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateParcelCommandHandler_Handle_InvalidWeight(t *testing.T) {
	// The weight bound is enforced by the parcel aggregate at handling time.
	ctx := t.Context()

	sender := fixtureAccount(t, account.RoleSender)
	recipient := fixtureRecipient(t)

	cmd, err := commands.NewCreateParcelCommand(
		sender.ID(), sender.ID(), recipient.Email(),
		fixtureAddress(t, "1 Pickup Lane"), fixtureAddress(t, "2 Delivery Road"),
		25, parcel.ShippingStandard, 150)
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	accountRepo := new(MockAccountRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AccountRepository").Return(accountRepo).Once(),
		accountRepo.On("Get", ctx, sender.ID()).Return(sender, nil).Once(),
		accountRepo.On("GetByEmail", ctx, recipient.Email()).Return(recipient, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateParcelCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	parcelRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}
