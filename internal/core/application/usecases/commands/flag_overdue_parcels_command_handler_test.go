package commands_test

import (
	"testing"
	"time"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/account"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFlagOverdueParcelsCommandHandler_Handle_FlagsAllOverdue(t *testing.T) {
	ctx := t.Context()
	systemID := kernel.NewUUID()

	sender := fixtureAccount(t, account.RoleSender)
	recipient := fixtureAccount(t, account.RoleReceiver)
	first := fixtureParcelAt(t, sender, recipient, parcel.StatusInTransit)
	second := fixtureParcelAt(t, sender, recipient, parcel.StatusInTransit)

	cmd, err := commands.NewFlagOverdueParcelsCommand(systemID)
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("GetAllOverdue", ctx).Return([]*parcel.Parcel{first, second}, nil).Once(),
		parcelRepo.On("Update", ctx, first).Return(nil).Once(),
		parcelRepo.On("Update", ctx, second).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewFlagOverdueParcelsCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	for _, p := range []*parcel.Parcel{first, second} {
		assert.Equal(t, parcel.StatusFlagged, p.Status())
		log := p.StatusLog()
		assert.Equal(t, "flagged as overdue by system", log[len(log)-1].Note())
		assert.Equal(t, systemID, log[len(log)-1].ActorID())
	}
	parcelRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestFlagOverdueParcelsCommandHandler_Handle_SkipsUnflaggable(t *testing.T) {
	// A parcel that raced into a terminal status between the query and the
	// sweep is skipped rather than aborting the whole run.
	ctx := t.Context()
	systemID := kernel.NewUUID()

	sender := fixtureAccount(t, account.RoleSender)
	recipient := fixtureAccount(t, account.RoleReceiver)
	flaggable := fixtureParcelAt(t, sender, recipient, parcel.StatusInTransit)
	cancelled := fixtureParcelAt(t, sender, recipient, parcel.StatusCancelled)

	cmd, err := commands.NewFlagOverdueParcelsCommand(systemID)
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("GetAllOverdue", ctx).Return([]*parcel.Parcel{cancelled, flaggable}, nil).Once(),
		parcelRepo.On("Update", ctx, flaggable).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewFlagOverdueParcelsCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, parcel.StatusFlagged, flaggable.Status())
	assert.Equal(t, parcel.StatusCancelled, cancelled.Status())
	parcelRepo.AssertExpectations(t)
}

func TestFlagOverdueParcelsCommandHandler_Handle_NoOverdueParcels(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewFlagOverdueParcelsCommand(kernel.NewUUID())
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("GetAllOverdue", ctx).Return([]*parcel.Parcel{}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewFlagOverdueParcelsCommandHandler(factory)
	require.NoError(t, handler.Handle(ctx, cmd))
	parcelRepo.AssertExpectations(t)
}

// Guards against the sweep stamping different times on entries within one run.
func TestFlagOverdueParcelsCommandHandler_Handle_SingleTimestampPerSweep(t *testing.T) {
	ctx := t.Context()

	sender := fixtureAccount(t, account.RoleSender)
	recipient := fixtureAccount(t, account.RoleReceiver)
	first := fixtureParcelAt(t, sender, recipient, parcel.StatusInTransit)
	second := fixtureParcelAt(t, sender, recipient, parcel.StatusInTransit)

	cmd, err := commands.NewFlagOverdueParcelsCommand(kernel.NewUUID())
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ParcelRepository").Return(parcelRepo).Once()
	parcelRepo.On("GetAllOverdue", ctx).Return([]*parcel.Parcel{first, second}, nil).Once()
	parcelRepo.On("Update", ctx, mock.AnythingOfType("*parcel.Parcel")).Return(nil).Twice()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewFlagOverdueParcelsCommandHandler(factory)
	require.NoError(t, handler.Handle(ctx, cmd))

	var stamps []time.Time
	for _, p := range []*parcel.Parcel{first, second} {
		log := p.StatusLog()
		stamps = append(stamps, log[len(log)-1].At())
	}
	assert.Equal(t, stamps[0], stamps[1])
}
