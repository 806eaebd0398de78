package queries

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/account"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetTrackingHistoryQueryHandler reads a parcel's tracking view straight from
// the database, bypassing the aggregate. Authorization mirrors the write-side
// policy: only the parcel's sender, its recipient, or an administrator may
// read the history.
type GetTrackingHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetTrackingHistoryQueryHandler creates a handler for tracking history queries.
// Requires a GORM database connection for query execution.
func NewGetTrackingHistoryQueryHandler(db *gorm.DB) GetTrackingHistoryQueryHandler {
	return GetTrackingHistoryQueryHandler{db: db}
}

// Handle executes the query and returns the parcel projection with its full
// status log ordered oldest first.
func (h GetTrackingHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetTrackingHistoryQuery,
) (GetTrackingHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetTrackingHistoryQueryResponse{}, err
	}

	actorRole, err := fetchActorRole(ctx, h.db, query.ActorID())
	if err != nil {
		return GetTrackingHistoryQueryResponse{}, err
	}

	response, senderID, recipientID, err := h.fetchParcel(ctx, query.ParcelID())
	if err != nil {
		return GetTrackingHistoryQueryResponse{}, err
	}

	isParty := query.ActorID().IsEqual(senderID) || query.ActorID().IsEqual(recipientID)
	if !actorRole.IsAdministrative() && !isParty {
		return GetTrackingHistoryQueryResponse{},
			errs.NewForbiddenError("tracking history is visible to the parcel's sender and recipient only")
	}

	entries, err := h.fetchEntries(ctx, query.ParcelID())
	if err != nil {
		return GetTrackingHistoryQueryResponse{}, err
	}
	response.Entries = entries

	return response, nil
}

// fetchActorRole resolves the requesting account's role for the read-side
// authorization checks shared by the query handlers.
func fetchActorRole(
	ctx context.Context,
	db *gorm.DB,
	actorID kernel.UUID,
) (account.Role, error) {
	var role int
	row := db.WithContext(ctx).Raw(`
		SELECT role FROM accounts WHERE id = ?
	`, actorID.Bytes()).Row()
	if err := row.Scan(&role); err != nil {
		return account.RoleUnknown, errs.NewObjectNotFoundError("account", actorID.String())
	}
	return account.Role(role), nil
}

func (h GetTrackingHistoryQueryHandler) fetchParcel(
	ctx context.Context,
	parcelID kernel.UUID,
) (GetTrackingHistoryQueryResponse, kernel.UUID, kernel.UUID, error) {
	var (
		id                uuid.UUID
		trackingID        string
		status            int
		estimatedDelivery *time.Time
		senderRaw         uuid.UUID
		recipientRaw      uuid.UUID
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			tracking_id,
			status,
			estimated_delivery,
			sender_id,
			recipient_id
		FROM parcels
		WHERE id = ?
	`, parcelID.Bytes()).Row()

	if err := row.Scan(&id, &trackingID, &status, &estimatedDelivery, &senderRaw, &recipientRaw); err != nil {
		return GetTrackingHistoryQueryResponse{}, kernel.UUID{}, kernel.UUID{},
			errs.NewObjectNotFoundError("parcel", parcelID.String())
	}

	respID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetTrackingHistoryQueryResponse{}, kernel.UUID{}, kernel.UUID{}, err
	}
	senderID, err := kernel.UUIDFromBytes(senderRaw[:])
	if err != nil {
		return GetTrackingHistoryQueryResponse{}, kernel.UUID{}, kernel.UUID{}, err
	}
	recipientID, err := kernel.UUIDFromBytes(recipientRaw[:])
	if err != nil {
		return GetTrackingHistoryQueryResponse{}, kernel.UUID{}, kernel.UUID{}, err
	}

	response := GetTrackingHistoryQueryResponse{
		ID:                respID,
		TrackingID:        trackingID,
		Status:            parcel.Status(status),
		EstimatedDelivery: estimatedDelivery,
	}
	return response, senderID, recipientID, nil
}

func (h GetTrackingHistoryQueryHandler) fetchEntries(
	ctx context.Context,
	parcelID kernel.UUID,
) ([]TrackingHistoryEntry, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			note,
			actor_id,
			at,
			has_location,
			location_street,
			location_city,
			location_state,
			location_postal_code,
			location_country
		FROM parcel_status_log
		WHERE parcel_id = ?
		ORDER BY seq
	`, parcelID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]TrackingHistoryEntry, 0)
	for rows.Next() {
		var (
			status      int
			note        string
			actorRaw    uuid.UUID
			at          time.Time
			hasLocation bool
			street      string
			city        string
			state       string
			postalCode  string
			country     string
		)

		err = rows.Scan(
			&status, &note, &actorRaw, &at,
			&hasLocation, &street, &city, &state, &postalCode, &country,
		)
		if err != nil {
			return nil, err
		}

		actorID, idErr := kernel.UUIDFromBytes(actorRaw[:])
		if idErr != nil {
			return nil, idErr
		}

		entry := TrackingHistoryEntry{
			Status:  parcel.Status(status),
			Note:    note,
			ActorID: actorID,
			At:      at,
		}
		if hasLocation {
			location, locErr := kernel.NewAddress(street, city, state, postalCode, country)
			if locErr != nil {
				return nil, locErr
			}
			entry.Location = &location
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
