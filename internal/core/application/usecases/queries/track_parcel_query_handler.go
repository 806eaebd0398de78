package queries

import (
	"context"

	"parceltrack/internal/core/ports"
)

// TrackParcelQueryHandler serves the public tracking lookup. Unlike the other
// query handlers it reads through the parcel repository: the tracking view is
// the aggregate's own projection of its status log, so there is no separate
// read model to maintain.
type TrackParcelQueryHandler struct {
	parcels ports.ParcelRepository
}

// NewTrackParcelQueryHandler creates a handler for tracking lookups.
func NewTrackParcelQueryHandler(parcels ports.ParcelRepository) TrackParcelQueryHandler {
	return TrackParcelQueryHandler{parcels: parcels}
}

// Handle resolves the tracking identifier and returns the parcel's public
// tracking view with its status log ordered oldest first.
func (h TrackParcelQueryHandler) Handle(
	ctx context.Context,
	query TrackParcelQuery,
) (TrackParcelQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return TrackParcelQueryResponse{}, err
	}

	prcl, err := h.parcels.GetByTrackingID(ctx, query.TrackingID())
	if err != nil {
		return TrackParcelQueryResponse{}, err
	}

	log := prcl.StatusLog()
	entries := make([]TrackParcelEntry, 0, len(log))
	for _, entry := range log {
		entries = append(entries, TrackParcelEntry{
			Status:   entry.Status(),
			Note:     entry.Note(),
			At:       entry.At(),
			Location: entry.Location(),
		})
	}

	return TrackParcelQueryResponse{
		TrackingID:        prcl.TrackingID().String(),
		Status:            prcl.Status(),
		EstimatedDelivery: prcl.EstimatedDelivery(),
		Entries:           entries,
	}, nil
}
