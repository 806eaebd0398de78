package parcelrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormParcelRepository implements ParcelRepository using GORM.
type GormParcelRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormParcelRepository creates a new GORM parcel repository.
func NewGormParcelRepository(db *gorm.DB, tracker aggregateTracker) *GormParcelRepository {
	return &GormParcelRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new parcel, its agent assignments, and its status log to the database.
func (r *GormParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing parcel to the database together with any newly
// appended status-log entries and the current agent assignments.
//
// The write guards on the aggregate's version: the row is only updated when
// the stored version matches, and the stored version is advanced by one.
// A mismatch surfaces as a version-invalid error so the caller can reload
// and retry; the status mutation and the log append commit together.
func (r *GormParcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	nextVersion := aggregate.Version() + 1

	result := r.db.WithContext(ctx).Model(&ParcelDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Updates(map[string]any{
			"tracking_id":        dto.TrackingID,
			"sender_id":          dto.SenderID,
			"recipient_id":       dto.RecipientID,
			"weight_kg":          dto.WeightKg,
			"shipping_class":     dto.ShippingClass,
			"fee":                dto.Fee,
			"status":             dto.Status,
			"status_before_hold": dto.StatusBeforeHold,
			"is_blocked":         dto.IsBlocked,
			"delivered_at":       dto.DeliveredAt,
			"cancelled_at":       dto.CancelledAt,
			"estimated_delivery": dto.EstimatedDelivery,
			"version":            nextVersion,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&ParcelDTO{}).
			Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("parcel", aggregate.ID().String())
		}
		return errs.NewVersionIsInvalidError("parcel version",
			fmt.Errorf("stored parcel no longer carries version %d", aggregate.Version()))
	}

	if err := r.syncAgents(ctx, dto); err != nil {
		return err
	}
	if err := r.appendStatusLog(ctx, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// syncAgents replaces the stored agent assignments with the aggregate's list.
func (r *GormParcelRepository) syncAgents(ctx context.Context, dto ParcelDTO) error {
	if err := r.db.WithContext(ctx).
		Where("parcel_id = ?", dto.ID).Delete(&ParcelAgentDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Agents) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&dto.Agents).Error
}

// appendStatusLog inserts status-log entries not yet stored. Existing rows are
// never touched; the (parcel_id, seq) key makes the insert idempotent.
func (r *GormParcelRepository) appendStatusLog(ctx context.Context, dto ParcelDTO) error {
	if len(dto.StatusLog) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dto.StatusLog).Error
}

// Get retrieves a parcel by ID, including its agents and status log.
func (r *GormParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	if err := r.preloaded(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("parcel", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByTrackingID retrieves a parcel by its public tracking identifier.
func (r *GormParcelRepository) GetByTrackingID(ctx context.Context, trackingID kernel.TrackingID) (*parcel.Parcel, error) {
	if err := trackingID.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	if err := r.preloaded(ctx).First(&dto, "tracking_id = ?", trackingID.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("parcel", trackingID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllOverdue retrieves all in-transit parcels past their estimated delivery time.
func (r *GormParcelRepository) GetAllOverdue(ctx context.Context) ([]*parcel.Parcel, error) {
	var dtos []ParcelDTO
	if err := r.preloaded(ctx).
		Where("status = ? AND estimated_delivery IS NOT NULL AND estimated_delivery < ?",
			int(parcel.StatusInTransit), time.Now()).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	parcels := make([]*parcel.Parcel, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		parcels = append(parcels, p)
	}

	return parcels, nil
}

// Delete removes a parcel, its agent assignments, and its status log.
func (r *GormParcelRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).
		Where("parcel_id = ?", id.Bytes()).Delete(&StatusLogDTO{}).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).
		Where("parcel_id = ?", id.Bytes()).Delete(&ParcelAgentDTO{}).Error; err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&ParcelDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("parcel", id.String())
	}

	return nil
}

func (r *GormParcelRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Agents").
		Preload("StatusLog", func(db *gorm.DB) *gorm.DB {
			return db.Order("seq ASC")
		})
}
