// Package parcelrepo provides data transfer objects and mapping functions for parcel persistence.
// This package implements the repository pattern for the parcel domain aggregate, handling
// the conversion between domain entities and database representations.
package parcelrepo

import (
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// ParcelDTO represents the database structure for persisting parcel aggregates.
// Maps parcel domain entities to relational tables with indexing for lookup by
// tracking identifier, owning parties, and lifecycle status.
type ParcelDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TrackingID  string     `gorm:"uniqueIndex"`
	SenderID    uuid.UUID  `gorm:"type:uuid;index"`
	RecipientID uuid.UUID  `gorm:"type:uuid;index"`
	Pickup      AddressDTO `gorm:"embedded;embeddedPrefix:pickup_"`
	Delivery    AddressDTO `gorm:"embedded;embeddedPrefix:delivery_"`

	WeightKg      float64
	ShippingClass int
	Fee           float64

	Status            int `gorm:"index"`
	StatusBeforeHold  int
	IsBlocked         bool
	DeliveredAt       *time.Time
	CancelledAt       *time.Time
	EstimatedDelivery *time.Time

	Version int64

	Agents    []ParcelAgentDTO `gorm:"foreignKey:ParcelID;references:ID;constraint:OnDelete:CASCADE"`
	StatusLog []StatusLogDTO   `gorm:"foreignKey:ParcelID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for parcel entities.
func (ParcelDTO) TableName() string {
	return "parcels"
}

// AddressDTO represents the embedded address columns within the parcel table
// and the status-log table.
type AddressDTO struct {
	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
}

// ParcelAgentDTO represents one delivery agent assigned to a parcel.
type ParcelAgentDTO struct {
	ParcelID uuid.UUID `gorm:"type:uuid;primaryKey"`
	AgentID  uuid.UUID `gorm:"type:uuid;primaryKey"`
}

// TableName specifies the database table name for parcel agent assignments.
func (ParcelAgentDTO) TableName() string {
	return "parcel_agents"
}

// StatusLogDTO represents one entry of a parcel's append-only status log.
// Seq preserves the append order; rows are never updated once written.
type StatusLogDTO struct {
	ParcelID    uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Seq         int        `gorm:"primaryKey;autoIncrement:false"`
	Status      int
	HasLocation bool
	Location    AddressDTO `gorm:"embedded;embeddedPrefix:location_"`
	Note        string
	ActorID     uuid.UUID `gorm:"type:uuid"`
	At          time.Time
}

// TableName specifies the database table name for status log entries.
func (StatusLogDTO) TableName() string {
	return "parcel_status_log"
}

// fromDomain converts a parcel domain aggregate to its database representation,
// including its agent assignments and status log.
func fromDomain(aggregate *parcel.Parcel) ParcelDTO {
	dto := ParcelDTO{
		ID:                aggregate.ID().Bytes(),
		TrackingID:        aggregate.TrackingID().String(),
		SenderID:          aggregate.SenderID().Bytes(),
		RecipientID:       aggregate.RecipientID().Bytes(),
		Pickup:            addressFromDomain(aggregate.PickupAddress()),
		Delivery:          addressFromDomain(aggregate.DeliveryAddress()),
		WeightKg:          aggregate.WeightKg(),
		ShippingClass:     int(aggregate.ShippingClass()),
		Fee:               aggregate.Fee(),
		Status:            int(aggregate.Status()),
		StatusBeforeHold:  int(aggregate.StatusBeforeHold()),
		IsBlocked:         aggregate.IsBlocked(),
		DeliveredAt:       aggregate.DeliveredAt(),
		CancelledAt:       aggregate.CancelledAt(),
		EstimatedDelivery: aggregate.EstimatedDelivery(),
		Version:           aggregate.Version(),
	}

	for _, agentID := range aggregate.AgentIDs() {
		dto.Agents = append(dto.Agents, ParcelAgentDTO{
			ParcelID: dto.ID,
			AgentID:  agentID.Bytes(),
		})
	}

	for i, entry := range aggregate.StatusLog() {
		logDTO := StatusLogDTO{
			ParcelID: dto.ID,
			Seq:      i,
			Status:   int(entry.Status()),
			Note:     entry.Note(),
			ActorID:  entry.ActorID().Bytes(),
			At:       entry.At(),
		}
		if loc := entry.Location(); loc != nil {
			logDTO.HasLocation = true
			logDTO.Location = addressFromDomain(*loc)
		}
		dto.StatusLog = append(dto.StatusLog, logDTO)
	}

	return dto
}

// toDomain converts a database DTO to a parcel domain aggregate.
// Reconstructs the complete aggregate, including the status log in append
// order, using RestoreParcel so lifecycle invariants are re-validated.
func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	trackingID, err := kernel.TrackingIDFromString(dto.TrackingID)
	if err != nil {
		return nil, err
	}
	senderID, err := kernel.UUIDFromBytes(dto.SenderID[:])
	if err != nil {
		return nil, err
	}
	recipientID, err := kernel.UUIDFromBytes(dto.RecipientID[:])
	if err != nil {
		return nil, err
	}
	pickup, err := addressToDomain(dto.Pickup)
	if err != nil {
		return nil, err
	}
	delivery, err := addressToDomain(dto.Delivery)
	if err != nil {
		return nil, err
	}

	agentIDs := make([]kernel.UUID, 0, len(dto.Agents))
	for _, agent := range dto.Agents {
		agentID, agentErr := kernel.UUIDFromBytes(agent.AgentID[:])
		if agentErr != nil {
			return nil, agentErr
		}
		agentIDs = append(agentIDs, agentID)
	}

	statusLog := make([]parcel.LogEntry, 0, len(dto.StatusLog))
	for _, logDTO := range dto.StatusLog {
		entry, entryErr := logEntryToDomain(logDTO)
		if entryErr != nil {
			return nil, entryErr
		}
		statusLog = append(statusLog, entry)
	}

	return parcel.RestoreParcel(
		id, trackingID, senderID, recipientID, pickup, delivery,
		dto.WeightKg, parcel.ShippingClass(dto.ShippingClass), dto.Fee,
		parcel.Status(dto.Status), parcel.Status(dto.StatusBeforeHold), dto.IsBlocked,
		dto.DeliveredAt, dto.CancelledAt, dto.EstimatedDelivery,
		agentIDs, statusLog, dto.Version,
	)
}

func logEntryToDomain(dto StatusLogDTO) (parcel.LogEntry, error) {
	actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return parcel.LogEntry{}, err
	}

	var location *kernel.Address
	if dto.HasLocation {
		loc, locErr := addressToDomain(dto.Location)
		if locErr != nil {
			return parcel.LogEntry{}, locErr
		}
		location = &loc
	}

	return parcel.NewLogEntry(parcel.Status(dto.Status), actorID, location, dto.Note, dto.At)
}

func addressFromDomain(addr kernel.Address) AddressDTO {
	return AddressDTO{
		Street:     addr.Street(),
		City:       addr.City(),
		State:      addr.State(),
		PostalCode: addr.PostalCode(),
		Country:    addr.Country(),
	}
}

func addressToDomain(dto AddressDTO) (kernel.Address, error) {
	return kernel.NewAddress(dto.Street, dto.City, dto.State, dto.PostalCode, dto.Country)
}
