package commands_test

import (
	"testing"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/account"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelParcelCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	sender := fixtureAccount(t, account.RoleSender)
	recipient := fixtureAccount(t, account.RoleReceiver)
	testParcel := fixtureParcel(t, sender, recipient)

	cmd, err := commands.NewCancelParcelCommand(testParcel.ID(), sender.ID(), "changed my mind")
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	accountRepo := new(MockAccountRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AccountRepository").Return(accountRepo).Once(),
		accountRepo.On("Get", ctx, sender.ID()).Return(sender, nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("Get", ctx, testParcel.ID()).Return(testParcel, nil).Once(),
		parcelRepo.On("Update", ctx, mock.AnythingOfType("*parcel.Parcel")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelParcelCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, parcel.StatusCancelled, testParcel.Status())
	assert.NotNil(t, testParcel.CancelledAt())
	parcelRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCancelParcelCommandHandler_Handle_StageClosed(t *testing.T) {
	ctx := t.Context()

	sender := fixtureAccount(t, account.RoleSender)
	recipient := fixtureAccount(t, account.RoleReceiver)
	testParcel := fixtureParcelAt(t, sender, recipient, parcel.StatusDispatched)

	cmd, err := commands.NewCancelParcelCommand(testParcel.ID(), sender.ID(), "")
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	accountRepo := new(MockAccountRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AccountRepository").Return(accountRepo).Once(),
		accountRepo.On("Get", ctx, sender.ID()).Return(sender, nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("Get", ctx, testParcel.ID()).Return(testParcel, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelParcelCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, services.ErrCancellationStageClosed)
	assert.Equal(t, parcel.StatusDispatched, testParcel.Status())
	parcelRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCancelParcelCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CancelParcelCommand{} // not constructed properly

	factory := new(MockUoWFactory)
	handler := commands.NewCancelParcelCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrCancelParcelCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
