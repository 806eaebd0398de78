package queries

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetUndeliveredParcelsQueryHandler retrieves in-flight parcels from the database.
// Filters out terminal statuses to provide active delivery workload visibility.
// Only administrators may run the listing.
type GetUndeliveredParcelsQueryHandler struct {
	db *gorm.DB
}

// NewGetUndeliveredParcelsQueryHandler creates a handler for in-flight parcel queries.
// Requires a GORM database connection for query execution.
func NewGetUndeliveredParcelsQueryHandler(db *gorm.DB) GetUndeliveredParcelsQueryHandler {
	return GetUndeliveredParcelsQueryHandler{db: db}
}

// Handle executes the query to retrieve all parcels outside terminal statuses.
// Results are sorted by parcel ID for consistent output.
func (h GetUndeliveredParcelsQueryHandler) Handle(
	ctx context.Context,
	query GetUndeliveredParcelsQuery,
) ([]GetUndeliveredParcelsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	actorRole, err := fetchActorRole(ctx, h.db, query.ActorID())
	if err != nil {
		return nil, err
	}
	if !actorRole.IsAdministrative() {
		return nil, errs.NewForbiddenError("undelivered parcel listing is restricted to administrators")
	}

	parcels := make([]GetUndeliveredParcelsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			tracking_id,
			status,
			sender_id,
			recipient_id,
			estimated_delivery
		FROM parcels
		WHERE status NOT IN (?, ?, ?, ?, ?)
		ORDER BY id
	`,
		parcel.StatusDelivered,
		parcel.StatusReturned,
		parcel.StatusCancelled,
		parcel.StatusLost,
		parcel.StatusDamaged,
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id                uuid.UUID
			trackingID        string
			status            int
			senderRaw         uuid.UUID
			recipientRaw      uuid.UUID
			estimatedDelivery *time.Time
		)

		err = rows.Scan(&id, &trackingID, &status, &senderRaw, &recipientRaw, &estimatedDelivery)
		if err != nil {
			return nil, err
		}

		parcelID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		senderID, idErr := kernel.UUIDFromBytes(senderRaw[:])
		if idErr != nil {
			return nil, idErr
		}
		recipientID, idErr := kernel.UUIDFromBytes(recipientRaw[:])
		if idErr != nil {
			return nil, idErr
		}

		parcels = append(parcels, GetUndeliveredParcelsQueryResponse{
			ID:                parcelID,
			TrackingID:        trackingID,
			Status:            parcel.Status(status),
			SenderID:          senderID,
			RecipientID:       recipientID,
			EstimatedDelivery: estimatedDelivery,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return parcels, nil
}
