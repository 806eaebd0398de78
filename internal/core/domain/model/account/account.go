package account

import (
	"errors"
	"fmt"
	"strings"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// Activity is the administrative standing of an account, independent of role.
// Only active accounts may act on parcels or receive courier assignments.
type Activity int

const (
	// ActivityUnknown represents an invalid or undefined activity state.
	ActivityUnknown Activity = iota

	// ActivityActive is the normal operating state.
	ActivityActive

	// ActivityInactive marks an account that deactivated itself or lapsed.
	ActivityInactive

	// ActivityBlocked marks an account suspended by an administrator.
	ActivityBlocked
)

// getActivityStrings returns a map of Activity values to their string representations.
func getActivityStrings() map[Activity]string {
	return map[Activity]string{
		ActivityUnknown:  "Unknown",
		ActivityActive:   "Active",
		ActivityInactive: "Inactive",
		ActivityBlocked:  "Blocked",
	}
}

// Validate checks if the Activity value is a member of the closed enumeration.
func (a Activity) Validate() error {
	switch a {
	case ActivityActive, ActivityInactive, ActivityBlocked:
		return nil
	case ActivityUnknown:
	}
	return errs.NewValueIsInvalidErrorWithCause(
		"activity", fmt.Errorf("%d is not a valid activity state", a))
}

// String returns the human-readable name of the activity state.
func (a Activity) String() string {
	if str, ok := getActivityStrings()[a]; ok {
		return str
	}
	return "Unknown"
}

// Domain errors for account operations.
var (
	// ErrAccountIsNotConstructed is returned when using an improperly initialized Account.
	ErrAccountIsNotConstructed = errors.New("Account must be created via NewAccount constructor")
	// ErrAccountNameIsRequired is returned when attempting to create an account without a name.
	ErrAccountNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrAccountEmailIsInvalid is returned when the email is empty or malformed.
	ErrAccountEmailIsInvalid = errs.NewValueIsInvalidError("email")
	// ErrAccountNotEligibleAgent is returned when an account cannot receive
	// parcel assignments: wrong role, unverified, or not active.
	ErrAccountNotEligibleAgent = errors.New("account is not an eligible delivery agent")
	// ErrAccountNotEligibleRecipient is returned when an account cannot be
	// booked as a parcel recipient: wrong role, unverified, or not active.
	ErrAccountNotEligibleRecipient = errors.New("account is not an eligible parcel recipient")
)

// Account represents an authenticated actor: a sender, receiver, delivery
// agent, or administrator. It is an aggregate root whose state is consulted
// by the parcel transition engine for authorization and courier eligibility.
//
// Invariants:
//   - Must have a valid unique identifier, non-empty name, plausible email,
//     and a valid role
//   - Activity is always a member of the closed Activity enumeration
//   - Can only be created through NewAccount or RestoreAccount
type Account struct {
	id       kernel.UUID
	name     string
	email    string
	role     Role
	activity Activity
	verified bool

	guard guard.ConstructorGuard
}

// NewAccount creates a new Account in the Active state, not yet verified.
// All parameters are validated; errors are joined so a caller sees every
// problem at once.
func NewAccount(id kernel.UUID, name, email string, role Role) (*Account, error) {
	acc := &Account{
		activity: ActivityActive,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		acc.setID(id),
		acc.setName(name),
		acc.setEmail(email),
		acc.setRole(role),
	); err != nil {
		return nil, err
	}

	return acc, nil
}

// RestoreAccount reconstructs an Account aggregate from persistent storage,
// preserving its activity state and verification flag.
func RestoreAccount(
	id kernel.UUID, name, email string, role Role, activity Activity, verified bool,
) (*Account, error) {
	acc, err := NewAccount(id, name, email, role)
	if err != nil {
		return nil, err
	}

	if err = activity.Validate(); err != nil {
		return nil, err
	}

	acc.activity = activity
	acc.verified = verified
	return acc, nil
}

// Validate ensures the Account instance was properly constructed.
func (a *Account) Validate() error {
	if a == nil {
		return ErrAccountIsNotConstructed
	}
	return a.guard.Validate(ErrAccountIsNotConstructed)
}

// ID returns the account's unique identifier.
func (a *Account) ID() kernel.UUID {
	return a.id
}

// Name returns the account holder's display name.
func (a *Account) Name() string {
	return a.name
}

// Email returns the account's email address.
func (a *Account) Email() string {
	return a.email
}

// Role returns the account's role.
func (a *Account) Role() Role {
	return a.role
}

// Activity returns the account's administrative standing.
func (a *Account) Activity() Activity {
	return a.activity
}

// IsVerified reports whether the account completed verification.
func (a *Account) IsVerified() bool {
	return a.verified
}

// IsEqual compares two accounts by their unique identifiers.
func (a *Account) IsEqual(other *Account) bool {
	return other != nil && a.id.IsEqual(other.id)
}

// MarkVerified records that the account completed verification.
func (a *Account) MarkVerified() {
	a.verified = true
}

// Block suspends the account administratively.
func (a *Account) Block() {
	a.activity = ActivityBlocked
}

// ValidateAssignable checks whether this account may be attached to a parcel
// as a delivery agent: it must hold the delivery-agent role, be verified, and
// be in the Active state.
//
// Returns:
//   - nil if the account is an eligible delivery agent
//   - ErrAccountNotEligibleAgent (wrapped with the failing condition) otherwise
func (a *Account) ValidateAssignable() error {
	if err := a.Validate(); err != nil {
		return err
	}

	switch {
	case a.role != RoleDeliveryAgent:
		return fmt.Errorf("%w: role is %s", ErrAccountNotEligibleAgent, a.role)
	case !a.verified:
		return fmt.Errorf("%w: account is not verified", ErrAccountNotEligibleAgent)
	case a.activity != ActivityActive:
		return fmt.Errorf("%w: account is %s", ErrAccountNotEligibleAgent, a.activity)
	}

	return nil
}

// ValidateReceivable checks whether this account may be booked as a parcel
// recipient: it must hold the receiver role, be verified, and be in the
// Active state.
//
// Returns:
//   - nil if the account is an eligible recipient
//   - ErrAccountNotEligibleRecipient (wrapped with the failing condition) otherwise
func (a *Account) ValidateReceivable() error {
	if err := a.Validate(); err != nil {
		return err
	}

	switch {
	case a.role != RoleReceiver:
		return fmt.Errorf("%w: role is %s", ErrAccountNotEligibleRecipient, a.role)
	case !a.verified:
		return fmt.Errorf("%w: account is not verified", ErrAccountNotEligibleRecipient)
	case a.activity != ActivityActive:
		return fmt.Errorf("%w: account is %s", ErrAccountNotEligibleRecipient, a.activity)
	}

	return nil
}

func (a *Account) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Account) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrAccountNameIsRequired
	}
	a.name = name
	return nil
}

func (a *Account) setEmail(email string) error {
	email = strings.TrimSpace(email)
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return ErrAccountEmailIsInvalid
	}
	a.email = email
	return nil
}

func (a *Account) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	a.role = role
	return nil
}
