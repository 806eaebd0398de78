package commands_test

import (
	"context"
	"testing"
	"time"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/account"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockParcelRepository struct{ mock.Mock }

func (m *MockParcelRepository) Add(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockParcelRepository) Update(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) GetByTrackingID(ctx context.Context, trackingID kernel.TrackingID) (*parcel.Parcel, error) {
	args := m.Called(ctx, trackingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) GetAllOverdue(ctx context.Context) ([]*parcel.Parcel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAccountRepository struct{ mock.Mock }

func (m *MockAccountRepository) Add(ctx context.Context, a *account.Account) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAccountRepository) Update(ctx context.Context, a *account.Account) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAccountRepository) Get(ctx context.Context, id kernel.UUID) (*account.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByEmail(ctx context.Context, email string) (*account.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) ParcelRepository() ports.ParcelRepository {
	args := m.Called()
	return args.Get(0).(ports.ParcelRepository)
}

func (m *MockUoW) AccountRepository() ports.AccountRepository {
	args := m.Called()
	return args.Get(0).(ports.AccountRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

// Shared fixtures.

func fixtureAddress(t *testing.T, street string) kernel.Address {
	t.Helper()
	addr, err := kernel.NewAddress(street, "Dhaka", "", "1207", "Bangladesh")
	require.NoError(t, err)
	return addr
}

func fixtureAccount(t *testing.T, role account.Role) *account.Account {
	t.Helper()
	acc, err := account.NewAccount(kernel.NewUUID(), "Test Account", "account@example.com", role)
	require.NoError(t, err)
	return acc
}

func fixtureRecipient(t *testing.T) *account.Account {
	t.Helper()
	recipient := fixtureAccount(t, account.RoleReceiver)
	recipient.MarkVerified()
	return recipient
}

func fixtureAgent(t *testing.T) *account.Account {
	t.Helper()
	agent := fixtureAccount(t, account.RoleDeliveryAgent)
	agent.MarkVerified()
	return agent
}

func fixtureParcel(t *testing.T, sender, recipient *account.Account) *parcel.Parcel {
	t.Helper()
	now := time.Now()
	p, err := parcel.NewParcel(
		kernel.NewUUID(), kernel.NewTrackingID(now), sender.ID(), recipient.ID(),
		fixtureAddress(t, "1 Pickup Lane"), fixtureAddress(t, "2 Delivery Road"),
		2, parcel.ShippingStandard, 100, now)
	require.NoError(t, err)
	return p
}

func fixtureParcelAt(t *testing.T, sender, recipient *account.Account, target parcel.Status) *parcel.Parcel {
	t.Helper()
	p := fixtureParcel(t, sender, recipient)
	steps := map[parcel.Status][]parcel.Status{
		parcel.StatusApproved:   {parcel.StatusApproved},
		parcel.StatusPicked:     {parcel.StatusApproved, parcel.StatusPicked},
		parcel.StatusDispatched: {parcel.StatusApproved, parcel.StatusPicked, parcel.StatusDispatched},
		parcel.StatusInTransit:  {parcel.StatusApproved, parcel.StatusPicked, parcel.StatusDispatched, parcel.StatusInTransit},
		parcel.StatusFlagged:    {parcel.StatusApproved, parcel.StatusFlagged},
		parcel.StatusBlocked:    {parcel.StatusApproved, parcel.StatusFlagged, parcel.StatusBlocked},
		parcel.StatusCancelled:  {parcel.StatusCancelled},
	}
	path, ok := steps[target]
	require.True(t, ok, "no fixture path to %s", target)
	for _, step := range path {
		require.NoError(t, p.ChangeStatus(step, kernel.NewUUID(), nil, "", time.Now()))
	}
	return p
}
