package services

import (
	"errors"
	"fmt"

	"parceltrack/internal/core/domain/model/account"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"
)

// ErrCancellationStageClosed is returned when a sender requests cancellation of
// a parcel that has already left the pre-dispatch stages.
var ErrCancellationStageClosed = errors.New("parcel cannot be cancelled at this stage")

// senderCancellableStatuses are the statuses from which the owning sender may
// still cancel the parcel. Once the parcel leaves the warehouse, cancellation
// is closed to the sender and only an administrator may intervene.
func senderCancellableStatuses() []parcel.Status {
	return []parcel.Status{
		parcel.StatusRequested,
		parcel.StatusApproved,
		parcel.StatusPending,
		parcel.StatusReceived,
	}
}

// TransitionPolicy is a domain service deciding which actors may request which
// parcel operations. It evaluates role and ownership before the transition
// graph runs, so a caller that fails the policy never reaches the lifecycle
// engine.
//
// Business rules:
//   - Administrators (admin, super-admin) may request any graph-legal
//     transition, assign couriers, and place or release holds; holds are
//     reserved to them exclusively
//   - A sender may cancel only their own parcel, only pre-dispatch, and never
//     while the parcel is blocked or flagged
//   - A sender may delete only their own parcel, and only once cancelled
//   - A recipient may confirm delivery only of a parcel addressed to them
//   - Tracking history is visible to the parcel's sender, its recipient, and
//     administrators
//
// Example usage:
//
//	policy := services.NewTransitionPolicy()
//	if err := policy.AuthorizeCancellation(actor, prcl); err != nil {
//	    // Actor may not cancel this parcel
//	    return err
//	}
//	// Proceed with the status change
type TransitionPolicy struct{}

// NewTransitionPolicy creates a new TransitionPolicy instance.
func NewTransitionPolicy() TransitionPolicy {
	return TransitionPolicy{}
}

// AuthorizeStatusChange decides whether the actor may request an arbitrary
// status change on the parcel.
//
// Administrators may request any transition; graph legality is checked by the
// parcel itself afterwards. Non-administrators are limited to the dedicated
// cancellation and delivery-confirmation paths and are rejected here.
func (tp TransitionPolicy) AuthorizeStatusChange(
	actor *account.Account, prcl *parcel.Parcel, requested parcel.Status,
) error {
	if err := tp.validateInput(actor, prcl); err != nil {
		return err
	}
	if err := requested.Validate(); err != nil {
		return err
	}

	if actor.Role().IsAdministrative() {
		return nil
	}

	switch requested {
	case parcel.StatusCancelled:
		return tp.AuthorizeCancellation(actor, prcl)
	case parcel.StatusDelivered:
		return tp.AuthorizeDeliveryConfirmation(actor, prcl)
	case parcel.StatusUnknown, parcel.StatusRequested, parcel.StatusApproved,
		parcel.StatusPending, parcel.StatusPicked, parcel.StatusDispatched,
		parcel.StatusInTransit, parcel.StatusRescheduled, parcel.StatusReturned,
		parcel.StatusBlocked, parcel.StatusFlagged, parcel.StatusOutForDelivery,
		parcel.StatusFailedAttempt, parcel.StatusLost, parcel.StatusDamaged,
		parcel.StatusReceived:
	}

	return errs.NewForbiddenError(
		fmt.Sprintf("role %s may not request status %s", actor.Role(), requested))
}

// AuthorizeCancellation decides whether the actor may cancel the parcel.
//
// Administrators may always cancel a parcel the graph permits cancelling. The
// owning sender may cancel only while the parcel is pre-dispatch; blocked or
// flagged parcels are off limits to the sender entirely.
func (tp TransitionPolicy) AuthorizeCancellation(actor *account.Account, prcl *parcel.Parcel) error {
	if err := tp.validateInput(actor, prcl); err != nil {
		return err
	}

	if actor.Role().IsAdministrative() {
		return nil
	}

	if !prcl.SenderID().IsEqual(actor.ID()) {
		return errs.NewForbiddenError("only the sender may cancel this parcel")
	}

	if prcl.IsBlocked() || prcl.Status() == parcel.StatusFlagged {
		return errs.NewForbiddenError("cannot cancel a blocked or flagged parcel")
	}

	for _, status := range senderCancellableStatuses() {
		if prcl.Status() == status {
			return nil
		}
	}
	return fmt.Errorf("%w: parcel is %s", ErrCancellationStageClosed, prcl.Status())
}

// AuthorizeDeliveryConfirmation decides whether the actor may confirm the
// parcel as delivered. Only the parcel's recipient may confirm; the in-transit
// stage requirement is enforced by the parcel itself.
func (tp TransitionPolicy) AuthorizeDeliveryConfirmation(actor *account.Account, prcl *parcel.Parcel) error {
	if err := tp.validateInput(actor, prcl); err != nil {
		return err
	}

	if actor.Role().IsAdministrative() {
		return nil
	}

	if !prcl.RecipientID().IsEqual(actor.ID()) {
		return errs.NewForbiddenError("only the recipient may confirm delivery of this parcel")
	}
	return nil
}

// AuthorizeHold decides whether the actor may place the parcel on hold or
// release it. Holds are an administrative instrument.
func (tp TransitionPolicy) AuthorizeHold(actor *account.Account) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if !actor.Role().IsAdministrative() {
		return errs.NewForbiddenError("only an administrator may block or unblock a parcel")
	}
	return nil
}

// AuthorizeAgentAssignment decides whether the actor may attach a delivery
// agent to a parcel. Assignment is an administrative instrument; agent
// eligibility itself is validated by the parcel.
func (tp TransitionPolicy) AuthorizeAgentAssignment(actor *account.Account) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if !actor.Role().IsAdministrative() {
		return errs.NewForbiddenError("only an administrator may assign delivery agents")
	}
	return nil
}

// AuthorizeDeletion decides whether the actor may delete the parcel. Only the
// owning sender (or an administrator) may delete; the cancelled-only stage
// requirement is enforced by the parcel itself.
func (tp TransitionPolicy) AuthorizeDeletion(actor *account.Account, prcl *parcel.Parcel) error {
	if err := tp.validateInput(actor, prcl); err != nil {
		return err
	}

	if actor.Role().IsAdministrative() {
		return nil
	}

	if !prcl.SenderID().IsEqual(actor.ID()) {
		return errs.NewForbiddenError("only the sender may delete this parcel")
	}
	return nil
}

// AuthorizeHistoryAccess decides whether the actor may read the parcel's
// tracking history. The history is private to the parcel's parties.
func (tp TransitionPolicy) AuthorizeHistoryAccess(actor *account.Account, prcl *parcel.Parcel) error {
	if err := tp.validateInput(actor, prcl); err != nil {
		return err
	}

	if actor.Role().IsAdministrative() {
		return nil
	}

	if prcl.SenderID().IsEqual(actor.ID()) || prcl.RecipientID().IsEqual(actor.ID()) {
		return nil
	}
	return errs.NewForbiddenError("parcel tracking history is restricted to its sender and recipient")
}

func (tp TransitionPolicy) validateInput(actor *account.Account, prcl *parcel.Parcel) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	return prcl.Validate()
}
