// internal/users/dto.go
package users

// DTOs for API requests/responses

// UpdatePreferencesDTO carries the nested preference shape. Category and
// setting names are lowercased before storage so scoring comparisons
// stay consistent.
type UpdatePreferencesDTO struct {
	Categories []string `json:"categories" validate:"omitempty,max=14,dive,min=1,max=50"`
	Settings   []string `json:"settings" validate:"omitempty,max=6,dive,min=1,max=50"`
	PriceLevel []int    `json:"price_level" validate:"omitempty,len=2,dive,min=1,max=5"`
	Location   string   `json:"location" validate:"omitempty,max=100"`
}

// UpdateLocationDTO carries a raw coordinate update from the client's
// geolocation provider.
type UpdateLocationDTO struct {
	Lat float64 `json:"lat" validate:"required,latitude"`
	Lng float64 `json:"lng" validate:"required,longitude"`
}
