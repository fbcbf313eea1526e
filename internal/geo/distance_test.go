package geo

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceZeroForSamePoint(t *testing.T) {
	p := NewCoordinates(40.7128, -74.0060)

	d := Distance(p, p)
	require.NotNil(t, d)
	assert.InDelta(t, 0, *d, 1e-9)
}

func TestDistanceSymmetry(t *testing.T) {
	a := NewCoordinates(40.7128, -74.0060) // New York
	b := NewCoordinates(51.5074, -0.1278)  // London

	ab := Distance(a, b)
	ba := Distance(b, a)
	require.NotNil(t, ab)
	require.NotNil(t, ba)
	assert.InDelta(t, *ab, *ba, 1e-9)

	// Sanity check against the known NY-London distance.
	assert.InDelta(t, 5570, *ab, 20)
}

func TestDistanceUnknownForMissingCoordinates(t *testing.T) {
	p := NewCoordinates(40.0, -74.0)

	assert.Nil(t, Distance(nil, p))
	assert.Nil(t, Distance(p, nil))

	lat := 40.0
	incomplete := &Coordinates{Lat: &lat}
	assert.Nil(t, Distance(p, incomplete))
}

func TestCoordinatesUnmarshalBothShapes(t *testing.T) {
	var short Coordinates
	require.NoError(t, json.Unmarshal([]byte(`{"lat":40.7,"lng":-74.0}`), &short))
	require.True(t, short.Valid())
	assert.Equal(t, 40.7, *short.Lat)

	var long Coordinates
	require.NoError(t, json.Unmarshal([]byte(`{"latitude":40.7,"longitude":-74.0}`), &long))
	require.True(t, long.Valid())
	assert.Equal(t, -74.0, *long.Lng)
}

func TestFormatDistance(t *testing.T) {
	half := 0.5
	assert.Equal(t, "500 m", FormatDistance(&half))

	far := 12.34
	assert.Equal(t, "12.3 km", FormatDistance(&far))

	assert.Equal(t, "Unknown", FormatDistance(nil))
}

func TestEstimateTravelTime(t *testing.T) {
	five := 5.0
	times := EstimateTravelTime(&five)

	// 5 km walking at 5 km/h is exactly one hour.
	assert.Equal(t, "1 h 0 min", times.Walking)
	assert.Equal(t, "10 min", times.Driving)
	assert.Equal(t, "15 min", times.Transit)

	short := 0.05
	assert.Equal(t, "< 1 min", EstimateTravelTime(&short).Walking)

	unknown := EstimateTravelTime(nil)
	assert.Equal(t, "Unknown", unknown.Walking)
	assert.Equal(t, "Unknown", unknown.Driving)
	assert.Equal(t, "Unknown", unknown.Transit)
}

type spot struct {
	name   string
	coords *Coordinates
}

func TestFilterByDistance(t *testing.T) {
	origin := NewCoordinates(40.7128, -74.0060)
	spots := []spot{
		{name: "near", coords: NewCoordinates(40.7138, -74.0060)},
		{name: "far", coords: NewCoordinates(41.7128, -74.0060)},
		{name: "unknown", coords: nil},
	}

	filtered := FilterByDistance(spots, origin, func(s spot) *Coordinates { return s.coords }, 5)

	require.Len(t, filtered, 2)
	assert.Equal(t, "near", filtered[0].Item.name)
	require.NotNil(t, filtered[0].Distance)
	assert.Less(t, *filtered[0].Distance, 5.0)

	// An item without coordinates always survives the filter.
	assert.Equal(t, "unknown", filtered[1].Item.name)
	assert.Nil(t, filtered[1].Distance)
}

func TestFilterByDistanceNoLimit(t *testing.T) {
	origin := NewCoordinates(40.7128, -74.0060)
	spots := []spot{
		{name: "far", coords: NewCoordinates(50.0, -74.0)},
	}

	// A non-positive limit disables filtering but distances are still
	// annotated.
	all := FilterByDistance(spots, origin, func(s spot) *Coordinates { return s.coords }, 0)
	require.Len(t, all, 1)
	require.NotNil(t, all[0].Distance)
	assert.Greater(t, *all[0].Distance, 100.0)
}

func TestFilterByDistanceDoesNotMutateInput(t *testing.T) {
	origin := NewCoordinates(40.7128, -74.0060)
	coords := NewCoordinates(40.72, -74.01)
	spots := []spot{{name: "a", coords: coords}}

	FilterByDistance(spots, origin, func(s spot) *Coordinates { return s.coords }, 1)

	assert.Equal(t, 40.72, *spots[0].coords.Lat)
	assert.False(t, math.IsNaN(*spots[0].coords.Lng))
}
