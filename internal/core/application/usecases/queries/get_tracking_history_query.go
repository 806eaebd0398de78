package queries

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrGetTrackingHistoryQueryIsNotConstructed = errors.New(
		"GetTrackingHistoryQuery must be created via NewGetTrackingHistoryQuery constructor",
	)
)

// GetTrackingHistoryQuery retrieves a parcel projection together with its full
// status log. Access is restricted to the parcel's sender, its recipient, and
// administrators.
//
// Example:
//
//	query, err := NewGetTrackingHistoryQuery(parcelID, actorID)
//	if err != nil {
//	    return err
//	}
//
//	history, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get tracking history: %w", err)
//	}
//
//	fmt.Printf("Parcel %s is %s\n", history.TrackingID, history.Status)
//	for _, entry := range history.Entries {
//	    fmt.Printf("%s  %s  %s\n", entry.At.Format(time.RFC3339), entry.Status, entry.Note)
//	}
type GetTrackingHistoryQuery struct {
	parcelID kernel.UUID
	actorID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetTrackingHistoryQuery creates a query for a parcel's tracking history.
// Both the parcel and the requesting actor must be identified.
func NewGetTrackingHistoryQuery(parcelID, actorID kernel.UUID) (GetTrackingHistoryQuery, error) {
	if err := errors.Join(
		parcelID.Validate(),
		actorID.Validate(),
	); err != nil {
		return GetTrackingHistoryQuery{}, err
	}

	return GetTrackingHistoryQuery{
		parcelID: parcelID,
		actorID:  actorID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// ParcelID returns the identifier of the parcel whose history is requested.
func (q GetTrackingHistoryQuery) ParcelID() kernel.UUID {
	return q.parcelID
}

// ActorID returns the identifier of the requesting account.
func (q GetTrackingHistoryQuery) ActorID() kernel.UUID {
	return q.actorID
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetTrackingHistoryQueryIsNotConstructed if validation fails.
func (q GetTrackingHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetTrackingHistoryQueryIsNotConstructed)
}

// GetTrackingHistoryQueryResponse is the tracking view of a single parcel.
type GetTrackingHistoryQueryResponse struct {
	ID                kernel.UUID
	TrackingID        string
	Status            parcel.Status
	EstimatedDelivery *time.Time
	Entries           []TrackingHistoryEntry
}

// TrackingHistoryEntry is one hop of the parcel's audit trail.
// Location is nil when the hop carried no location.
type TrackingHistoryEntry struct {
	Status   parcel.Status
	Note     string
	ActorID  kernel.UUID
	At       time.Time
	Location *kernel.Address
}
