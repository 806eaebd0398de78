package parcel

import (
	"fmt"

	"parceltrack/internal/pkg/errs"
)

// Status represents the parcel's position in its delivery lifecycle.
// It is a closed enumeration: every transition between two statuses must be
// listed in the transition graph, and a status with no outgoing edges is
// terminal.
//
// The delivery happy path:
//
//	Requested -> Approved -> Picked -> Dispatched -> In-Transit
//	          -> Out for Delivery -> Delivered
//
// with Cancelled, Returned, Rescheduled, Failed Attempt, Lost, and Damaged as
// exception paths, and Flagged/Blocked as the administrative hold overlay.
//
// Status is a value object that validates membership and provides string
// representations for persistence and display.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusRequested is the initial status when a sender books a parcel.
	StatusRequested

	// StatusApproved indicates the booking was accepted by an administrator.
	StatusApproved

	// StatusPending marks a booking parked before re-entering the request queue.
	StatusPending

	// StatusPicked indicates the parcel was collected from the sender.
	StatusPicked

	// StatusDispatched indicates the parcel left the origin facility.
	StatusDispatched

	// StatusInTransit indicates the parcel is moving between facilities.
	StatusInTransit

	// StatusRescheduled indicates delivery was postponed to a later window.
	StatusRescheduled

	// StatusDelivered indicates the recipient received the parcel. Terminal.
	StatusDelivered

	// StatusReturned indicates the parcel went back to the sender. Terminal.
	StatusReturned

	// StatusCancelled indicates the booking was cancelled. Terminal.
	StatusCancelled

	// StatusBlocked is the administrative hold state; only an administrator
	// can move a parcel into or out of it.
	StatusBlocked

	// StatusFlagged marks a parcel needing administrative review.
	StatusFlagged

	// StatusOutForDelivery indicates the parcel is on the final delivery leg.
	StatusOutForDelivery

	// StatusFailedAttempt indicates a delivery attempt did not complete.
	StatusFailedAttempt

	// StatusLost indicates the parcel cannot be located. Terminal.
	StatusLost

	// StatusDamaged indicates the parcel was damaged beyond delivery. Terminal.
	StatusDamaged

	// StatusReceived indicates the parcel arrived at the origin facility.
	StatusReceived
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:        "Unknown",
		StatusRequested:      "Requested",
		StatusApproved:       "Approved",
		StatusPending:        "Pending",
		StatusPicked:         "Picked",
		StatusDispatched:     "Dispatched",
		StatusInTransit:      "In-Transit",
		StatusRescheduled:    "Rescheduled",
		StatusDelivered:      "Delivered",
		StatusReturned:       "Returned",
		StatusCancelled:      "Cancelled",
		StatusBlocked:        "Blocked",
		StatusFlagged:        "Flagged",
		StatusOutForDelivery: "Out for Delivery",
		StatusFailedAttempt:  "Failed Attempt",
		StatusLost:           "Lost",
		StatusDamaged:        "Damaged",
		StatusReceived:       "Received",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	valid := getStatusStrings()
	delete(valid, StatusUnknown)
	return valid
}

// StatusFromString parses a status display name produced by String.
// Used when interpreting requested transitions from external callers.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a valid parcel status", s))
}

// Validate checks if the Status value is a member of the closed enumeration.
// StatusUnknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid parcel status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// It implements the fmt.Stringer interface and is safe to call on any Status
// value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status has no outgoing transitions.
// A parcel in a terminal status accepts no further transitions from the engine.
func (s Status) IsTerminal() bool {
	allowed, ok := statusTransitions()[s]
	return ok && len(allowed) == 0
}
