package kernel

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"time"

	"parceltrack/internal/pkg/errs"
)

// trackingIDAlphabet contains the characters used for the random suffix.
const trackingIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// trackingIDSuffixLength is the length of the random suffix.
const trackingIDSuffixLength = 6

// trackingIDPattern matches the canonical TRK-YYYYMMDD-XXXXXX form.
var trackingIDPattern = regexp.MustCompile(`^TRK-\d{8}-[0-9A-Z]{6}$`)

// ErrTrackingIDIsInvalid is returned when a string does not match the
// canonical tracking identifier format.
var ErrTrackingIDIsInvalid = errs.NewValueIsInvalidError("tracking ID")

// TrackingID is the human-readable public identifier of a parcel, of the form
// TRK-YYYYMMDD-XXXXXX where the suffix is six random uppercase base-36
// characters. Unlike the internal UUID, the tracking identifier is shown to
// customers and printed on labels.
//
// The zero value is invalid; use NewTrackingID or TrackingIDFromString.
//
// Example:
//
//	id := kernel.NewTrackingID(time.Now())
//	fmt.Println(id) // e.g. TRK-20260828-K7Q2ZD
type TrackingID struct {
	value string
}

// NewTrackingID generates a tracking identifier for the given creation time.
func NewTrackingID(at time.Time) TrackingID {
	suffix := make([]byte, trackingIDSuffixLength)
	for i := range suffix {
		suffix[i] = trackingIDAlphabet[rand.IntN(len(trackingIDAlphabet))] //nolint:gosec // not security sensitive
	}

	return TrackingID{
		value: fmt.Sprintf("TRK-%s-%s", at.Format("20060102"), suffix),
	}
}

// TrackingIDFromString parses a tracking identifier from its string form.
// Returns ErrTrackingIDIsInvalid if the string does not match the canonical format.
func TrackingIDFromString(s string) (TrackingID, error) {
	if !trackingIDPattern.MatchString(s) {
		return TrackingID{}, ErrTrackingIDIsInvalid
	}
	return TrackingID{value: s}, nil
}

// String returns the canonical string form of the tracking identifier.
func (t TrackingID) String() string {
	return t.value
}

// IsEqual compares two tracking identifiers for equality.
func (t TrackingID) IsEqual(other TrackingID) bool {
	return t.value == other.value
}

// Validate checks that the tracking identifier holds a canonical value.
// The zero value fails this validation.
func (t TrackingID) Validate() error {
	if !trackingIDPattern.MatchString(t.value) {
		return ErrTrackingIDIsInvalid
	}
	return nil
}
