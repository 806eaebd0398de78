package queries_test

import (
	"testing"

	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetUndeliveredParcelsQuery_Valid(t *testing.T) {
	query, err := queries.NewGetUndeliveredParcelsQuery(kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, query.Validate())
}

func TestNewGetUndeliveredParcelsQuery_ZeroActorID(t *testing.T) {
	_, err := queries.NewGetUndeliveredParcelsQuery(kernel.UUID{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestGetUndeliveredParcelsQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetUndeliveredParcelsQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetUndeliveredParcelsQueryIsNotConstructed)
}
