package queries

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrGetUndeliveredParcelsQueryIsNotConstructed = errors.New(
		"GetUndeliveredParcelsQuery must be created via NewGetUndeliveredParcelsQuery constructor",
	)
)

// GetUndeliveredParcelsQuery retrieves all parcels still in flight.
// Returns parcels outside terminal statuses for monitoring and management;
// the listing is restricted to administrators.
//
// Example:
//
//	query, err := NewGetUndeliveredParcelsQuery(actorID)
//	if err != nil {
//	    return err
//	}
//
//	parcels, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get undelivered parcels: %w", err)
//	}
//
//	fmt.Printf("Found %d parcels in flight\n", len(parcels))
//	for _, p := range parcels {
//	    fmt.Printf("%s  %s\n", p.TrackingID, p.Status)
//	}
type GetUndeliveredParcelsQuery struct {
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetUndeliveredParcelsQuery creates a query to retrieve in-flight parcels
// on behalf of the given actor.
func NewGetUndeliveredParcelsQuery(actorID kernel.UUID) (GetUndeliveredParcelsQuery, error) {
	if err := actorID.Validate(); err != nil {
		return GetUndeliveredParcelsQuery{}, err
	}

	return GetUndeliveredParcelsQuery{
		actorID: actorID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// ActorID returns the identifier of the requesting account.
func (q GetUndeliveredParcelsQuery) ActorID() kernel.UUID {
	return q.actorID
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetUndeliveredParcelsQueryIsNotConstructed if validation fails.
func (q GetUndeliveredParcelsQuery) Validate() error {
	return q.guard.Validate(ErrGetUndeliveredParcelsQueryIsNotConstructed)
}

// GetUndeliveredParcelsQueryResponse represents one in-flight parcel.
type GetUndeliveredParcelsQueryResponse struct {
	ID                kernel.UUID
	TrackingID        string
	Status            parcel.Status
	SenderID          kernel.UUID
	RecipientID       kernel.UUID
	EstimatedDelivery *time.Time
}
