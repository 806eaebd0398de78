package parcel

import (
	"errors"
	"fmt"
	"time"

	"parceltrack/internal/core/domain/model/account"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// Weight bounds accepted for a parcel, in kilograms.
const (
	// ParcelMinWeightKg is the minimum accepted parcel weight.
	ParcelMinWeightKg = 0.1
	// ParcelMaxWeightKg is the maximum accepted parcel weight.
	ParcelMaxWeightKg = 10.0
)

// Domain errors for parcel operations.
var (
	// ErrParcelIsNotConstructed is returned when a Parcel instance was not
	// created through NewParcel or RestoreParcel.
	ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel constructor")
	// ErrFeeIsInvalid is returned when attempting to create a parcel with a negative fee.
	ErrFeeIsInvalid = errors.New("fee must not be negative")
	// ErrAgentAssignmentNotAllowed is returned when the parcel's current
	// status does not permit attaching a delivery agent.
	ErrAgentAssignmentNotAllowed = errors.New("parcel status does not allow delivery agent assignment")
	// ErrParcelNotCancelled is returned when deleting a parcel that is not cancelled.
	ErrParcelNotCancelled = errors.New("parcel must be cancelled before deletion")
	// ErrParcelNotInTransit is returned when confirming delivery of a parcel
	// that is not currently in transit.
	ErrParcelNotInTransit = errors.New("parcel is not in transit")
	// ErrParcelStateIsInconsistent is returned when restoring a parcel whose
	// persisted fields violate lifecycle invariants.
	ErrParcelStateIsInconsistent = errors.New("parcel state is inconsistent")
)

// agentAssignableStatuses are the statuses during which a delivery agent may
// be attached to the parcel.
func agentAssignableStatuses() []Status {
	return []Status{StatusApproved, StatusPicked, StatusDispatched, StatusInTransit, StatusRescheduled}
}

// Parcel is the aggregate root of the delivery lifecycle. It owns the current
// status, the block overlay, the derived timestamps, the assigned delivery
// agents, and the append-only status log.
//
// Parcel follows these invariants:
//   - currentStatus is always a member of the Status enumeration
//   - every status change appends exactly one log entry recording the
//     resulting status, the causing actor, and the time
//   - deliveredAt is set iff the status is Delivered; cancelledAt is set iff
//     the status is Cancelled; setting one clears the other
//   - the delivery agent list never contains duplicates, and agents may only
//     be attached while the status allows assignment
//   - a parcel may only be deleted while Cancelled
//
// All mutation goes through the transition methods; fields are private so the
// invariants cannot be bypassed.
type Parcel struct {
	id          kernel.UUID
	trackingID  kernel.TrackingID
	senderID    kernel.UUID
	recipientID kernel.UUID
	agentIDs    []kernel.UUID

	pickupAddress   kernel.Address
	deliveryAddress kernel.Address

	// static shipping attributes, not touched by the transition engine
	weightKg float64
	class    ShippingClass
	fee      float64

	currentStatus     Status
	statusBeforeHold  Status
	isBlocked         bool
	deliveredAt       *time.Time
	cancelledAt       *time.Time
	estimatedDelivery *time.Time

	statusLog []LogEntry

	// version is the optimistic-concurrency token checked by the repository
	// on update; stale writes are rejected instead of silently lost.
	version int64

	guard guard.ConstructorGuard
}

// NewParcel creates a parcel booking in the Requested status with its first
// status-log entry appended atomically, attributed to the sender.
//
// Parameters:
//   - id: internal unique identifier
//   - trackingID: human-readable public identifier
//   - senderID: the booking sender (owner)
//   - recipientID: the delivery target account
//   - pickup, delivery: validated addresses
//   - weightKg: parcel weight within [ParcelMinWeightKg, ParcelMaxWeightKg]
//   - class: shipping class determining the promised delivery window
//   - fee: delivery fee, non-negative
//   - at: booking time, recorded in the first log entry
func NewParcel(
	id kernel.UUID,
	trackingID kernel.TrackingID,
	senderID kernel.UUID,
	recipientID kernel.UUID,
	pickup kernel.Address,
	delivery kernel.Address,
	weightKg float64,
	class ShippingClass,
	fee float64,
	at time.Time,
) (*Parcel, error) {
	p := &Parcel{
		currentStatus: StatusRequested,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setTrackingID(trackingID),
		p.setSenderID(senderID),
		p.setRecipientID(recipientID),
		p.setPickupAddress(pickup),
		p.setDeliveryAddress(delivery),
		p.setWeight(weightKg),
		p.setShippingClass(class),
		p.setFee(fee),
	); err != nil {
		return nil, err
	}

	entry, err := NewLogEntry(StatusRequested, senderID, &p.pickupAddress,
		"parcel booking created by sender", at)
	if err != nil {
		return nil, err
	}

	p.statusLog = []LogEntry{entry}
	p.version = 1
	return p, nil
}

// RestoreParcel reconstructs a Parcel aggregate from persistent storage,
// preserving its lifecycle state, assignments, status log, and version.
// It validates the stored state against the lifecycle invariants so
// inconsistent rows are surfaced instead of propagated.
func RestoreParcel(
	id kernel.UUID,
	trackingID kernel.TrackingID,
	senderID kernel.UUID,
	recipientID kernel.UUID,
	pickup kernel.Address,
	delivery kernel.Address,
	weightKg float64,
	class ShippingClass,
	fee float64,
	status Status,
	statusBeforeHold Status,
	isBlocked bool,
	deliveredAt *time.Time,
	cancelledAt *time.Time,
	estimatedDelivery *time.Time,
	agentIDs []kernel.UUID,
	statusLog []LogEntry,
	version int64,
) (*Parcel, error) {
	p := &Parcel{
		currentStatus: StatusRequested,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setTrackingID(trackingID),
		p.setSenderID(senderID),
		p.setRecipientID(recipientID),
		p.setPickupAddress(pickup),
		p.setDeliveryAddress(delivery),
		p.setWeight(weightKg),
		p.setShippingClass(class),
		p.setFee(fee),
	); err != nil {
		return nil, err
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}

	if err := validateLifecycleConsistency(status, statusBeforeHold, isBlocked, deliveredAt, cancelledAt); err != nil {
		return nil, err
	}

	for _, agentID := range agentIDs {
		if err := agentID.Validate(); err != nil {
			return nil, err
		}
	}
	for _, entry := range statusLog {
		if err := entry.Validate(); err != nil {
			return nil, err
		}
	}
	if version <= 0 {
		return nil, errs.NewVersionIsInvalidError(
			"parcel version", fmt.Errorf("%d is not a positive version", version))
	}

	p.currentStatus = status
	p.statusBeforeHold = statusBeforeHold
	p.isBlocked = isBlocked
	p.deliveredAt = deliveredAt
	p.cancelledAt = cancelledAt
	p.estimatedDelivery = estimatedDelivery
	p.agentIDs = append([]kernel.UUID(nil), agentIDs...)
	p.statusLog = append([]LogEntry(nil), statusLog...)
	p.version = version
	return p, nil
}

// validateLifecycleConsistency checks the invariants tying the block overlay
// and the derived timestamps to the current status.
func validateLifecycleConsistency(
	status, statusBeforeHold Status, isBlocked bool, deliveredAt, cancelledAt *time.Time,
) error {
	if isBlocked != (status == StatusBlocked) {
		return fmt.Errorf("%w: blocked flag does not match status %s",
			ErrParcelStateIsInconsistent, status)
	}
	if isBlocked {
		if err := statusBeforeHold.Validate(); err != nil {
			return fmt.Errorf("%w: blocked parcel is missing its held status",
				ErrParcelStateIsInconsistent)
		}
	}
	if (deliveredAt != nil) != (status == StatusDelivered) {
		return fmt.Errorf("%w: delivered timestamp does not match status %s",
			ErrParcelStateIsInconsistent, status)
	}
	if (cancelledAt != nil) != (status == StatusCancelled) {
		return fmt.Errorf("%w: cancelled timestamp does not match status %s",
			ErrParcelStateIsInconsistent, status)
	}
	return nil
}

// Validate ensures the Parcel instance was properly constructed.
func (p *Parcel) Validate() error {
	if p == nil {
		return ErrParcelIsNotConstructed
	}
	return p.guard.Validate(ErrParcelIsNotConstructed)
}

// ID returns the parcel's internal unique identifier.
func (p *Parcel) ID() kernel.UUID {
	return p.id
}

// TrackingID returns the parcel's public tracking identifier.
func (p *Parcel) TrackingID() kernel.TrackingID {
	return p.trackingID
}

// SenderID returns the identifier of the owning sender account.
func (p *Parcel) SenderID() kernel.UUID {
	return p.senderID
}

// RecipientID returns the identifier of the delivery target account.
func (p *Parcel) RecipientID() kernel.UUID {
	return p.recipientID
}

// AgentIDs returns a copy of the assigned delivery agent identifiers.
func (p *Parcel) AgentIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), p.agentIDs...)
}

// PickupAddress returns the pickup address of the parcel.
func (p *Parcel) PickupAddress() kernel.Address {
	return p.pickupAddress
}

// DeliveryAddress returns the delivery address of the parcel.
func (p *Parcel) DeliveryAddress() kernel.Address {
	return p.deliveryAddress
}

// WeightKg returns the parcel weight in kilograms.
func (p *Parcel) WeightKg() float64 {
	return p.weightKg
}

// ShippingClass returns the parcel's shipping class.
func (p *Parcel) ShippingClass() ShippingClass {
	return p.class
}

// Fee returns the delivery fee.
func (p *Parcel) Fee() float64 {
	return p.fee
}

// Status returns the parcel's current lifecycle status.
func (p *Parcel) Status() Status {
	return p.currentStatus
}

// StatusBeforeHold returns the status snapshot taken when the parcel was
// blocked; StatusUnknown when the parcel is not on hold.
func (p *Parcel) StatusBeforeHold() Status {
	return p.statusBeforeHold
}

// IsBlocked reports whether the parcel is under an administrative hold.
func (p *Parcel) IsBlocked() bool {
	return p.isBlocked
}

// DeliveredAt returns the delivery timestamp; nil unless the parcel is Delivered.
func (p *Parcel) DeliveredAt() *time.Time {
	return copyTime(p.deliveredAt)
}

// CancelledAt returns the cancellation timestamp; nil unless the parcel is Cancelled.
func (p *Parcel) CancelledAt() *time.Time {
	return copyTime(p.cancelledAt)
}

// EstimatedDelivery returns the promised delivery time; nil before approval
// and after cancellation.
func (p *Parcel) EstimatedDelivery() *time.Time {
	return copyTime(p.estimatedDelivery)
}

// StatusLog returns a copy of the parcel's audit trail in append order.
func (p *Parcel) StatusLog() []LogEntry {
	return append([]LogEntry(nil), p.statusLog...)
}

// Version returns the optimistic-concurrency token of the loaded aggregate.
func (p *Parcel) Version() int64 {
	return p.version
}

// IsEqual compares two parcels by their unique identifiers.
func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// AllowedNextStatuses returns the statuses this parcel may move to from its
// current state, accounting for the block overlay.
func (p *Parcel) AllowedNextStatuses() []Status {
	if p.isBlocked {
		return blockedExitStatuses()
	}
	return AllowedNextStatuses(p.currentStatus)
}

// ValidateTransition checks whether the parcel may move to the requested
// status. It consults the transition graph and the block overlay, performs no
// mutation, and on rejection returns an InvalidTransitionError carrying the
// valid alternatives. Calling it twice on an unchanged parcel yields the same
// decision.
func (p *Parcel) ValidateTransition(requested Status) error {
	if err := requested.Validate(); err != nil {
		return err
	}

	if p.isBlocked {
		for _, next := range blockedExitStatuses() {
			if next == requested {
				return nil
			}
		}
		return &InvalidTransitionError{
			From:      p.currentStatus,
			Requested: requested,
			Allowed:   blockedExitStatuses(),
		}
	}

	if !IsTransitionAllowed(p.currentStatus, requested) {
		return &InvalidTransitionError{
			From:      p.currentStatus,
			Requested: requested,
			Allowed:   AllowedNextStatuses(p.currentStatus),
		}
	}

	return nil
}

// ChangeStatus moves the parcel to the requested status: it validates the
// transition, applies the per-status side effects, sets the new status, and
// appends exactly one status-log entry attributed to actorID.
//
// location overrides the log entry location; when nil the entry defaults to
// the delivery address on forward legs and the last known (or pickup) address
// otherwise. note overrides the system-generated log note.
//
// The caller persists the mutated parcel and the appended entry in one
// atomic write.
func (p *Parcel) ChangeStatus(
	requested Status, actorID kernel.UUID, location *kernel.Address, note string, at time.Time,
) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := actorID.Validate(); err != nil {
		return err
	}
	if err := p.ValidateTransition(requested); err != nil {
		return err
	}

	p.applyEffects(requested, at)
	p.currentStatus = requested

	return p.appendLog(requested, actorID, location, note, at)
}

// applyEffects dispatches on the target status to the fixed per-status side
// effects. Statuses without a case receive only the shared status assignment;
// that is intentional, not an omission.
func (p *Parcel) applyEffects(requested Status, at time.Time) {
	switch requested {
	case StatusCancelled:
		cancelled := at
		p.cancelledAt = &cancelled
		p.deliveredAt = nil
		p.estimatedDelivery = nil
		if p.isBlocked {
			p.isBlocked = false
			p.statusBeforeHold = StatusUnknown
		}
	case StatusDelivered:
		delivered := at
		p.deliveredAt = &delivered
		p.cancelledAt = nil
	case StatusBlocked:
		p.isBlocked = true
		p.cancelledAt = nil
		p.statusBeforeHold = p.currentStatus
	case StatusApproved:
		if p.isBlocked {
			p.isBlocked = false
			p.statusBeforeHold = StatusUnknown
		}
		p.cancelledAt = nil
		if p.estimatedDelivery == nil {
			estimate := at.Add(p.class.DeliveryWindow())
			p.estimatedDelivery = &estimate
		}
	case StatusReturned:
		p.cancelledAt = nil
	case StatusUnknown, StatusRequested, StatusPending, StatusPicked, StatusDispatched,
		StatusInTransit, StatusRescheduled, StatusFlagged, StatusOutForDelivery,
		StatusFailedAttempt, StatusLost, StatusDamaged, StatusReceived:
		// shared step only
	}
}

// appendLog builds and appends the audit entry for a completed status change.
func (p *Parcel) appendLog(
	status Status, actorID kernel.UUID, location *kernel.Address, note string, at time.Time,
) error {
	if location == nil {
		loc := p.defaultLogLocation(status)
		location = &loc
	}
	if note == "" {
		note = fmt.Sprintf("status updated to %s", status)
	}

	entry, err := NewLogEntry(status, actorID, location, note, at)
	if err != nil {
		return err
	}

	p.statusLog = append(p.statusLog, entry)
	return nil
}

// defaultLogLocation picks the address recorded in a log entry when the
// caller supplies none: the delivery address on outbound legs, otherwise the
// last known location, falling back to the pickup address.
func (p *Parcel) defaultLogLocation(status Status) kernel.Address {
	switch status {
	case StatusDispatched, StatusInTransit, StatusOutForDelivery, StatusDelivered:
		return p.deliveryAddress
	case StatusUnknown, StatusRequested, StatusApproved, StatusPending, StatusPicked,
		StatusRescheduled, StatusReturned, StatusCancelled, StatusBlocked,
		StatusFlagged, StatusFailedAttempt, StatusLost, StatusDamaged, StatusReceived:
	}

	for i := len(p.statusLog) - 1; i >= 0; i-- {
		if loc := p.statusLog[i].Location(); loc != nil {
			return *loc
		}
	}
	return p.pickupAddress
}

// ConfirmDelivered marks an in-transit parcel as delivered on behalf of its
// recipient. Receipt confirmation is a privileged shortcut past the usual
// out-for-delivery leg, so it does not consult the transition graph; it
// requires only that the parcel is InTransit and not on hold. The side
// effects and log append are the same as a regular move to Delivered.
func (p *Parcel) ConfirmDelivered(
	actorID kernel.UUID, location *kernel.Address, note string, at time.Time,
) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := actorID.Validate(); err != nil {
		return err
	}
	if p.isBlocked || p.currentStatus != StatusInTransit {
		return fmt.Errorf("%w: parcel is %s", ErrParcelNotInTransit, p.currentStatus)
	}

	p.applyEffects(StatusDelivered, at)
	p.currentStatus = StatusDelivered

	return p.appendLog(StatusDelivered, actorID, location, note, at)
}

// AssignAgent attaches a delivery agent to the parcel.
//
// The agent must be an eligible delivery account (delivery-agent role,
// verified, active) and the parcel must be in an assignable status. Assigning
// an agent that is already attached succeeds without duplicating the entry.
func (p *Parcel) AssignAgent(agent *account.Account) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := agent.ValidateAssignable(); err != nil {
		return err
	}

	assignable := false
	for _, status := range agentAssignableStatuses() {
		if p.currentStatus == status {
			assignable = true
			break
		}
	}
	if !assignable {
		return fmt.Errorf("%w: parcel is %s", ErrAgentAssignmentNotAllowed, p.currentStatus)
	}

	for _, id := range p.agentIDs {
		if id.IsEqual(agent.ID()) {
			return nil
		}
	}

	p.agentIDs = append(p.agentIDs, agent.ID())
	return nil
}

// ValidateDelete checks whether the parcel may be removed from the system.
// Deletion is permitted only while the parcel is Cancelled.
func (p *Parcel) ValidateDelete() error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.currentStatus != StatusCancelled {
		return fmt.Errorf("%w: parcel is %s", ErrParcelNotCancelled, p.currentStatus)
	}
	return nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func (p *Parcel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Parcel) setTrackingID(trackingID kernel.TrackingID) error {
	if err := trackingID.Validate(); err != nil {
		return err
	}
	p.trackingID = trackingID
	return nil
}

func (p *Parcel) setSenderID(senderID kernel.UUID) error {
	if err := senderID.Validate(); err != nil {
		return err
	}
	p.senderID = senderID
	return nil
}

func (p *Parcel) setRecipientID(recipientID kernel.UUID) error {
	if err := recipientID.Validate(); err != nil {
		return err
	}
	p.recipientID = recipientID
	return nil
}

func (p *Parcel) setPickupAddress(pickup kernel.Address) error {
	if err := pickup.Validate(); err != nil {
		return err
	}
	p.pickupAddress = pickup
	return nil
}

func (p *Parcel) setDeliveryAddress(delivery kernel.Address) error {
	if err := delivery.Validate(); err != nil {
		return err
	}
	p.deliveryAddress = delivery
	return nil
}

func (p *Parcel) setWeight(weightKg float64) error {
	if weightKg < ParcelMinWeightKg || weightKg > ParcelMaxWeightKg {
		return errs.NewValueIsOutOfRangeError(
			"weight", weightKg, ParcelMinWeightKg, ParcelMaxWeightKg)
	}
	p.weightKg = weightKg
	return nil
}

func (p *Parcel) setShippingClass(class ShippingClass) error {
	if err := class.Validate(); err != nil {
		return err
	}
	p.class = class
	return nil
}

func (p *Parcel) setFee(fee float64) error {
	if fee < 0 {
		return ErrFeeIsInvalid
	}
	p.fee = fee
	return nil
}
