package geocode

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("address not found")

// Geocoder resolves coordinates to a human-readable address. Used as a
// best-effort fill for issues reported without one; failures are never
// fatal to issue intake.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (string, error)
}
