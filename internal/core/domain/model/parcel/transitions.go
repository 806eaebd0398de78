package parcel

import (
	"fmt"
	"sort"
	"strings"

	"parceltrack/internal/pkg/errs"
)

// statusTransitions returns the fixed transition graph: for each status, the
// set of statuses directly reachable from it. A status mapping to an empty
// slice is terminal. Statuses absent from the map have an empty allowed set
// (the graph fails closed), but every enumeration member is listed here so a
// new status forces an explicit decision about its edges.
func statusTransitions() map[Status][]Status {
	return map[Status][]Status{
		StatusRequested:      {StatusApproved, StatusCancelled},
		StatusApproved:       {StatusPicked, StatusCancelled, StatusFlagged},
		StatusPending:        {StatusRequested, StatusCancelled},
		StatusPicked:         {StatusDispatched, StatusFlagged},
		StatusDispatched:     {StatusInTransit, StatusFlagged},
		StatusInTransit:      {StatusOutForDelivery, StatusReturned, StatusFlagged},
		StatusRescheduled:    {StatusInTransit, StatusCancelled},
		StatusOutForDelivery: {StatusDelivered, StatusFailedAttempt},
		StatusFailedAttempt:  {StatusOutForDelivery, StatusLost},
		StatusBlocked:        {StatusApproved, StatusCancelled},
		StatusFlagged:        {StatusBlocked},
		StatusReceived:       {StatusApproved},
		StatusDelivered:      {},
		StatusReturned:       {},
		StatusCancelled:      {},
		StatusLost:           {},
		StatusDamaged:        {},
	}
}

// blockedExitStatuses are the only statuses a blocked parcel may move to,
// regardless of what the graph would otherwise allow from its current status.
func blockedExitStatuses() []Status {
	return []Status{StatusApproved, StatusCancelled}
}

// AllowedNextStatuses returns the statuses directly reachable from s.
// The returned slice is a copy; mutating it does not affect the graph.
func AllowedNextStatuses(s Status) []Status {
	allowed := statusTransitions()[s]
	out := make([]Status, len(allowed))
	copy(out, allowed)
	return out
}

// IsTransitionAllowed reports whether the graph contains the edge from -> to.
// It is a pure lookup with no hidden state; unknown statuses fail closed.
func IsTransitionAllowed(from, to Status) bool {
	for _, next := range statusTransitions()[from] {
		if next == to {
			return true
		}
	}
	return false
}

// InvalidTransitionError is returned when a requested status is not reachable
// from the parcel's current status. It carries the allowed-next set so callers
// can report valid alternatives.
type InvalidTransitionError struct {
	From      Status
	Requested Status
	Allowed   []Status
}

func (e *InvalidTransitionError) Error() string {
	if len(e.Allowed) == 0 {
		return fmt.Sprintf("cannot change status from %s to %s: %s is a terminal status",
			e.From, e.Requested, e.From)
	}
	return fmt.Sprintf("cannot change status from %s to %s; valid next statuses: %s",
		e.From, e.Requested, formatStatusList(e.Allowed))
}

// Unwrap classifies the rejection as a bad-request category error.
func (e *InvalidTransitionError) Unwrap() error {
	return errs.ErrValueIsInvalid
}

// formatStatusList renders a deterministic, comma-separated status list.
func formatStatusList(statuses []Status) string {
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = s.String()
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
