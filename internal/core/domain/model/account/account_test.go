package account_test

import (
	"testing"

	"parceltrack/internal/core/domain/model/account"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccount_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	acc, err := account.NewAccount(id, "Rina Akter", "rina@example.com", account.RoleSender)
	require.NoError(t, err)
	require.NoError(t, acc.Validate())

	assert.Equal(t, id, acc.ID())
	assert.Equal(t, "Rina Akter", acc.Name())
	assert.Equal(t, "rina@example.com", acc.Email())
	assert.Equal(t, account.RoleSender, acc.Role())
	assert.Equal(t, account.ActivityActive, acc.Activity())
	assert.False(t, acc.IsVerified())
}

func TestNewAccount_InvalidInput(t *testing.T) {
	id := kernel.NewUUID()

	t.Run("empty_name", func(t *testing.T) {
		_, err := account.NewAccount(id, "", "rina@example.com", account.RoleSender)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("invalid_email", func(t *testing.T) {
		for _, email := range []string{"", "no-at-sign", "@left", "right@"} {
			_, err := account.NewAccount(id, "Rina", email, account.RoleSender)
			require.Error(t, err, email)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})

	t.Run("invalid_role", func(t *testing.T) {
		_, err := account.NewAccount(id, "Rina", "rina@example.com", account.RoleUnknown)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("invalid_id", func(t *testing.T) {
		_, err := account.NewAccount(kernel.UUID{}, "Rina", "rina@example.com", account.RoleSender)
		require.Error(t, err)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestAccount_ZeroValueFailsValidation(t *testing.T) {
	var acc account.Account
	require.ErrorIs(t, acc.Validate(), account.ErrAccountIsNotConstructed)
}

func TestRestoreAccount(t *testing.T) {
	id := kernel.NewUUID()
	acc, err := account.RestoreAccount(
		id, "Courier One", "courier@example.com",
		account.RoleDeliveryAgent, account.ActivityBlocked, true,
	)
	require.NoError(t, err)
	assert.Equal(t, account.ActivityBlocked, acc.Activity())
	assert.True(t, acc.IsVerified())

	_, err = account.RestoreAccount(
		id, "Courier One", "courier@example.com",
		account.RoleDeliveryAgent, account.ActivityUnknown, true,
	)
	require.Error(t, err)
}

func TestAccount_ValidateAssignable(t *testing.T) {
	newAgent := func(t *testing.T) *account.Account {
		t.Helper()
		acc, err := account.NewAccount(
			kernel.NewUUID(), "Courier One", "courier@example.com", account.RoleDeliveryAgent)
		require.NoError(t, err)
		return acc
	}

	t.Run("verified_active_agent_is_eligible", func(t *testing.T) {
		agent := newAgent(t)
		agent.MarkVerified()
		require.NoError(t, agent.ValidateAssignable())
	})

	t.Run("wrong_role_is_rejected", func(t *testing.T) {
		acc, err := account.NewAccount(
			kernel.NewUUID(), "Rina", "rina@example.com", account.RoleSender)
		require.NoError(t, err)
		acc.MarkVerified()
		require.ErrorIs(t, acc.ValidateAssignable(), account.ErrAccountNotEligibleAgent)
	})

	t.Run("unverified_agent_is_rejected", func(t *testing.T) {
		agent := newAgent(t)
		require.ErrorIs(t, agent.ValidateAssignable(), account.ErrAccountNotEligibleAgent)
	})

	t.Run("blocked_agent_is_rejected", func(t *testing.T) {
		agent := newAgent(t)
		agent.MarkVerified()
		agent.Block()
		require.ErrorIs(t, agent.ValidateAssignable(), account.ErrAccountNotEligibleAgent)
	})
}

func TestAccount_ValidateReceivable(t *testing.T) {
	newReceiver := func(t *testing.T) *account.Account {
		t.Helper()
		acc, err := account.NewAccount(
			kernel.NewUUID(), "Rina", "rina@example.com", account.RoleReceiver)
		require.NoError(t, err)
		return acc
	}

	t.Run("verified_active_receiver_is_eligible", func(t *testing.T) {
		receiver := newReceiver(t)
		receiver.MarkVerified()
		require.NoError(t, receiver.ValidateReceivable())
	})

	t.Run("wrong_role_is_rejected", func(t *testing.T) {
		acc, err := account.NewAccount(
			kernel.NewUUID(), "Courier One", "courier@example.com", account.RoleDeliveryAgent)
		require.NoError(t, err)
		acc.MarkVerified()
		require.ErrorIs(t, acc.ValidateReceivable(), account.ErrAccountNotEligibleRecipient)
	})

	t.Run("unverified_receiver_is_rejected", func(t *testing.T) {
		receiver := newReceiver(t)
		require.ErrorIs(t, receiver.ValidateReceivable(), account.ErrAccountNotEligibleRecipient)
	})

	t.Run("blocked_receiver_is_rejected", func(t *testing.T) {
		receiver := newReceiver(t)
		receiver.MarkVerified()
		receiver.Block()
		require.ErrorIs(t, receiver.ValidateReceivable(), account.ErrAccountNotEligibleRecipient)
	})
}

func TestRole_Validate(t *testing.T) {
	valid := []account.Role{
		account.RoleSuperAdmin, account.RoleAdmin, account.RoleSender,
		account.RoleReceiver, account.RoleDeliveryAgent,
	}
	for _, r := range valid {
		require.NoError(t, r.Validate(), r.String())
	}

	require.Error(t, account.RoleUnknown.Validate())
	require.Error(t, account.Role(99).Validate())
}

func TestRole_String(t *testing.T) {
	assert.Equal(t, "Admin", account.RoleAdmin.String())
	assert.Equal(t, "DeliveryAgent", account.RoleDeliveryAgent.String())
	assert.Equal(t, "Unknown", account.Role(99).String())
}

func TestRoleFromString_RoundTrip(t *testing.T) {
	for _, r := range []account.Role{
		account.RoleSuperAdmin, account.RoleAdmin, account.RoleSender,
		account.RoleReceiver, account.RoleDeliveryAgent,
	} {
		parsed, err := account.RoleFromString(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, parsed)
	}

	_, err := account.RoleFromString("Superuser")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestRole_IsAdministrative(t *testing.T) {
	assert.True(t, account.RoleAdmin.IsAdministrative())
	assert.True(t, account.RoleSuperAdmin.IsAdministrative())
	assert.False(t, account.RoleSender.IsAdministrative())
	assert.False(t, account.RoleDeliveryAgent.IsAdministrative())
}
