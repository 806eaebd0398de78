package account

import (
	"fmt"

	"parceltrack/internal/pkg/errs"
)

// Role identifies what an account is allowed to do in the system.
// Roles are a closed enumeration so the authorization policy can be checked
// exhaustively; adding a role forces every gate to consider it explicitly.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	// This value (0) helps catch uninitialized Role values.
	RoleUnknown Role = iota

	// RoleSuperAdmin is the seeded root operator account.
	RoleSuperAdmin

	// RoleAdmin operates the delivery workflow: approves, dispatches,
	// assigns delivery agents, and manages holds.
	RoleAdmin

	// RoleSender books parcels and may cancel or delete their own.
	RoleSender

	// RoleReceiver is a parcel recipient and may confirm delivery.
	RoleReceiver

	// RoleDeliveryAgent is a courier eligible for parcel assignment.
	RoleDeliveryAgent
)

// getRoleStrings returns a map of Role values to their string representations.
func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:       "Unknown",
		RoleSuperAdmin:    "SuperAdmin",
		RoleAdmin:         "Admin",
		RoleSender:        "Sender",
		RoleReceiver:      "Receiver",
		RoleDeliveryAgent: "DeliveryAgent",
	}
}

// getValidRoleStrings returns a map of only valid Role values.
func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[Role]string{
		RoleSuperAdmin:    "SuperAdmin",
		RoleAdmin:         "Admin",
		RoleSender:        "Sender",
		RoleReceiver:      "Receiver",
		RoleDeliveryAgent: "DeliveryAgent",
	}
}

// RoleFromString parses a role name produced by String.
// Used when reconstructing actors from tokens or persistence.
func RoleFromString(s string) (Role, error) {
	for role, str := range getValidRoleStrings() {
		if str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause(
		"role", fmt.Errorf("%q is not a valid role", s))
}

// Validate checks if the Role value is a member of the closed enumeration.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the human-readable name of the role.
// It implements the fmt.Stringer interface and is safe on any Role value.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "Unknown"
}

// IsAdministrative reports whether the role carries operator privileges.
// Admin and super-admin accounts may apply any graph-legal transition.
func (r Role) IsAdministrative() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}
