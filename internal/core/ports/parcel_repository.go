// Package ports defines repository interfaces for the parcel tracking domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
)

// ParcelRepository defines the persistence contract for parcel aggregates.
// Provides methods for storing, retrieving, and querying parcels with their
// complete lifecycle state and status log.
type ParcelRepository interface {
	// Add persists a new parcel aggregate to storage.
	// The parcel must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update persists changes to an existing parcel aggregate along with any
	// newly appended status-log entries, in a single atomic write.
	//
	// Update guards on the aggregate's version: if the stored row carries a
	// different version, the write is rejected with a version-invalid error
	// and the caller must reload and retry.
	Update(ctx context.Context, aggregate *parcel.Parcel) error

	// Get retrieves a parcel aggregate by its unique identifier.
	// Returns the complete parcel including its status log and assigned agents.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// GetByTrackingID retrieves a parcel aggregate by its public tracking identifier.
	GetByTrackingID(ctx context.Context, trackingID kernel.TrackingID) (*parcel.Parcel, error)

	// GetAllOverdue retrieves all parcels that are in transit past their
	// estimated delivery time. Used by the overdue sweep to flag late parcels.
	GetAllOverdue(ctx context.Context) ([]*parcel.Parcel, error)

	// Delete removes a parcel and its status log from storage.
	// Callers must validate the parcel is eligible for deletion first.
	Delete(ctx context.Context, id kernel.UUID) error
}
