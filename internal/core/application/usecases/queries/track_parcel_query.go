package queries

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrTrackParcelQueryIsNotConstructed = errors.New(
		"TrackParcelQuery must be created via NewTrackParcelQuery constructor",
	)
)

// TrackParcelQuery looks a parcel up by its public tracking identifier.
// This is the customer-facing tracking lookup: anyone holding the tracking
// identifier may see the parcel's progress, so the response carries no
// account identifiers.
//
// Example:
//
//	query, err := NewTrackParcelQuery(trackingID)
//	if err != nil {
//	    return err
//	}
//
//	view, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("tracking lookup failed: %w", err)
//	}
//
//	fmt.Printf("Parcel %s is %s\n", view.TrackingID, view.Status)
type TrackParcelQuery struct {
	trackingID kernel.TrackingID

	guard guard.ConstructorGuard
}

// NewTrackParcelQuery creates a tracking lookup for the given identifier.
func NewTrackParcelQuery(trackingID kernel.TrackingID) (TrackParcelQuery, error) {
	if err := trackingID.Validate(); err != nil {
		return TrackParcelQuery{}, err
	}

	return TrackParcelQuery{
		trackingID: trackingID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// TrackingID returns the tracking identifier being looked up.
func (q TrackParcelQuery) TrackingID() kernel.TrackingID {
	return q.trackingID
}

// Validate ensures the query was created through the constructor.
// Returns ErrTrackParcelQueryIsNotConstructed if validation fails.
func (q TrackParcelQuery) Validate() error {
	return q.guard.Validate(ErrTrackParcelQueryIsNotConstructed)
}

// TrackParcelQueryResponse is the public tracking view of a parcel.
type TrackParcelQueryResponse struct {
	TrackingID        string
	Status            parcel.Status
	EstimatedDelivery *time.Time
	Entries           []TrackParcelEntry
}

// TrackParcelEntry is one hop of the public tracking view.
// Location is nil when the hop carried no location.
type TrackParcelEntry struct {
	Status   parcel.Status
	Note     string
	At       time.Time
	Location *kernel.Address
}
