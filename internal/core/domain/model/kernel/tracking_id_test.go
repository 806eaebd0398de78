package kernel_test

import (
	"testing"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTrackingID_Format(t *testing.T) {
	at := time.Date(2026, time.August, 28, 10, 30, 0, 0, time.UTC)
	id := kernel.NewTrackingID(at)

	require.NoError(t, id.Validate())
	assert.Regexp(t, `^TRK-20260828-[0-9A-Z]{6}$`, id.String())
}

func TestNewTrackingID_SuffixVaries(t *testing.T) {
	at := time.Now()
	seen := make(map[string]bool)
	for range 50 {
		seen[kernel.NewTrackingID(at).String()] = true
	}
	// 50 draws from a 36^6 space colliding down to one value would mean a broken generator.
	assert.Greater(t, len(seen), 1)
}

func TestTrackingIDFromString(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		id, err := kernel.TrackingIDFromString("TRK-20260828-A1B2C3")
		require.NoError(t, err)
		assert.Equal(t, "TRK-20260828-A1B2C3", id.String())
	})

	t.Run("invalid", func(t *testing.T) {
		invalid := []string{
			"",
			"TRK-2026-A1B2C3",
			"trk-20260828-a1b2c3",
			"TRK-20260828-A1B2",
			"PKG-20260828-A1B2C3",
		}
		for _, s := range invalid {
			_, err := kernel.TrackingIDFromString(s)
			require.Error(t, err, s)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}

func TestTrackingID_ZeroValueIsInvalid(t *testing.T) {
	var id kernel.TrackingID
	require.Error(t, id.Validate())
}

func TestTrackingID_IsEqual(t *testing.T) {
	a, err := kernel.TrackingIDFromString("TRK-20260828-A1B2C3")
	require.NoError(t, err)
	b, err := kernel.TrackingIDFromString("TRK-20260828-A1B2C3")
	require.NoError(t, err)
	c := kernel.NewTrackingID(time.Now())

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}
