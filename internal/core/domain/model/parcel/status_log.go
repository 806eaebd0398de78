package parcel

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

// ErrLogEntryIsNotConstructed is returned when using an improperly initialized LogEntry.
var ErrLogEntryIsNotConstructed = errors.New("LogEntry must be created via NewLogEntry constructor")

// LogEntry is one immutable record in a parcel's status log: the audit trail
// of the parcel's lifecycle. Each entry records the resulting status, the
// actor who caused it, an optional location and note, and the time of change.
//
// Entries are append-only. Once appended to a parcel's log they are never
// reordered, edited, or removed by any operation other than parcel deletion.
type LogEntry struct { //nolint:recvcheck //using for validation
	status   Status
	location *kernel.Address
	note     string
	actorID  kernel.UUID
	at       time.Time

	guard guard.ConstructorGuard
}

// NewLogEntry creates a status-log entry. Status, actor, and timestamp are
// required; location may be nil and note may be empty (the parcel aggregate
// fills defaults before appending).
func NewLogEntry(
	status Status, actorID kernel.UUID, location *kernel.Address, note string, at time.Time,
) (LogEntry, error) {
	if err := status.Validate(); err != nil {
		return LogEntry{}, err
	}
	if err := actorID.Validate(); err != nil {
		return LogEntry{}, err
	}
	if location != nil {
		if err := location.Validate(); err != nil {
			return LogEntry{}, err
		}
	}

	return LogEntry{
		status:   status,
		location: location,
		note:     note,
		actorID:  actorID,
		at:       at,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the entry was created through the constructor.
func (e LogEntry) Validate() error {
	return e.guard.Validate(ErrLogEntryIsNotConstructed)
}

// Status returns the parcel status this entry recorded.
func (e LogEntry) Status() Status {
	return e.status
}

// Location returns the location attached to the entry; nil if none was recorded.
func (e LogEntry) Location() *kernel.Address {
	if e.location == nil {
		return nil
	}
	loc := *e.location
	return &loc
}

// Note returns the free-text note of the entry.
func (e LogEntry) Note() string {
	return e.note
}

// ActorID returns the identifier of the actor who caused the change.
func (e LogEntry) ActorID() kernel.UUID {
	return e.actorID
}

// At returns the time the change was recorded.
func (e LogEntry) At() time.Time {
	return e.at
}
