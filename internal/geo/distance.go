// internal/geo/distance.go
// Haversine distance and travel-time helpers for location features

package geo

import (
	"encoding/json"
	"fmt"
	"math"
)

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

// Average speeds (km/h) used for travel-time estimates.
const (
	walkingSpeedKmh = 5.0
	drivingSpeedKmh = 30.0
	transitSpeedKmh = 20.0
)

// Coordinates is a latitude/longitude pair. Components are pointers so an
// incomplete pair can be represented; Distance treats it as unknown rather
// than failing. JSON input is accepted in both the {lat,lng} and
// {latitude,longitude} namings, output always uses {lat,lng}.
type Coordinates struct {
	Lat *float64 `json:"lat,omitempty"`
	Lng *float64 `json:"lng,omitempty"`
}

// NewCoordinates builds a complete coordinate pair.
func NewCoordinates(lat, lng float64) *Coordinates {
	return &Coordinates{Lat: &lat, Lng: &lng}
}

// Valid reports whether both components are present.
func (c *Coordinates) Valid() bool {
	return c != nil && c.Lat != nil && c.Lng != nil
}

func (c *Coordinates) UnmarshalJSON(data []byte) error {
	var raw struct {
		Lat       *float64 `json:"lat"`
		Lng       *float64 `json:"lng"`
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	// The long-form keys win when both namings are present.
	c.Lat = raw.Lat
	if raw.Latitude != nil {
		c.Lat = raw.Latitude
	}
	c.Lng = raw.Lng
	if raw.Longitude != nil {
		c.Lng = raw.Longitude
	}
	return nil
}

// Distance returns the great-circle distance between two points in
// kilometers using the haversine formula. A nil result means the distance
// is unknown because one of the pairs is missing or incomplete; it is a
// valid answer, not an error.
func Distance(a, b *Coordinates) *float64 {
	if !a.Valid() || !b.Valid() {
		return nil
	}

	lat1, lng1 := *a.Lat, *a.Lng
	lat2, lng2 := *b.Lat, *b.Lng

	dLat := deg2rad(lat2 - lat1)
	dLng := deg2rad(lng2 - lng1)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(deg2rad(lat1))*math.Cos(deg2rad(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	d := earthRadiusKm * c

	return &d
}

func deg2rad(deg float64) float64 {
	return deg * (math.Pi / 180)
}

// FormatDistance renders a distance for display: "Unknown" for a nil
// distance, meters below one kilometer, otherwise kilometers with one
// decimal place.
func FormatDistance(km *float64) string {
	if km == nil {
		return "Unknown"
	}

	if *km < 1 {
		return fmt.Sprintf("%d m", int(math.Round(*km*1000)))
	}

	return fmt.Sprintf("%.1f km", *km)
}

// TravelTimes holds formatted travel-time estimates per transport mode.
type TravelTimes struct {
	Walking string `json:"walking"`
	Driving string `json:"driving"`
	Transit string `json:"transit"`
}

// EstimateTravelTime converts a distance into rough travel times assuming
// constant city-average speeds.
func EstimateTravelTime(km *float64) TravelTimes {
	if km == nil {
		return TravelTimes{Walking: "Unknown", Driving: "Unknown", Transit: "Unknown"}
	}

	return TravelTimes{
		Walking: formatMinutes(*km / walkingSpeedKmh * 60),
		Driving: formatMinutes(*km / drivingSpeedKmh * 60),
		Transit: formatMinutes(*km / transitSpeedKmh * 60),
	}
}

func formatMinutes(minutes float64) string {
	if minutes < 1 {
		return "< 1 min"
	}

	if minutes < 60 {
		return fmt.Sprintf("%d min", int(math.Round(minutes)))
	}

	hours := int(minutes / 60)
	mins := int(math.Round(math.Mod(minutes, 60)))
	return fmt.Sprintf("%d h %d min", hours, mins)
}

// Annotated pairs an item with its computed distance from an origin.
// Distance is nil when the item has no usable coordinates.
type Annotated[T any] struct {
	Item     T
	Distance *float64
}

// FilterByDistance computes the distance from origin to every item and
// drops items farther than maxKm. It never mutates the input slice.
// Items whose coordinates are missing pass the filter unconditionally
// (unknown distance is not grounds for exclusion), and maxKm <= 0 disables
// filtering entirely while still annotating distances.
func FilterByDistance[T any](items []T, origin *Coordinates, coords func(T) *Coordinates, maxKm float64) []Annotated[T] {
	if items == nil {
		return nil
	}

	shouldFilter := maxKm > 0

	result := make([]Annotated[T], 0, len(items))
	for _, item := range items {
		d := Distance(origin, coords(item))

		if shouldFilter && d != nil && *d > maxKm {
			continue
		}

		result = append(result, Annotated[T]{Item: item, Distance: d})
	}

	return result
}
