// Package accountrepo provides data transfer objects and mapping functions for account persistence.
package accountrepo

import (
	"parceltrack/internal/core/domain/model/account"
	"parceltrack/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AccountDTO represents the database structure for persisting account aggregates.
type AccountDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string
	Email    string `gorm:"uniqueIndex"`
	Role     int
	Activity int
	Verified bool
}

// TableName specifies the database table name for account entities.
func (AccountDTO) TableName() string {
	return "accounts"
}

// fromDomain converts an account domain aggregate to its database representation.
func fromDomain(aggregate *account.Account) AccountDTO {
	return AccountDTO{
		ID:       aggregate.ID().Bytes(),
		Name:     aggregate.Name(),
		Email:    aggregate.Email(),
		Role:     int(aggregate.Role()),
		Activity: int(aggregate.Activity()),
		Verified: aggregate.IsVerified(),
	}
}

// toDomain converts a database DTO to an account domain aggregate using RestoreAccount.
func toDomain(dto AccountDTO) (*account.Account, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return account.RestoreAccount(
		id, dto.Name, dto.Email,
		account.Role(dto.Role), account.Activity(dto.Activity), dto.Verified,
	)
}
