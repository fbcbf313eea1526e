// internal/dateideas/dto.go
package dateideas

// DTOs for API requests/responses

type CreateDateIdeaDTO struct {
	Title       string   `json:"title" validate:"required,min=3,max=120"`
	Description string   `json:"description" validate:"omitempty,max=2000"`
	Categories  []string `json:"categories" validate:"required,min=1,max=14,dive,min=1,max=50"`
	Setting     string   `json:"setting" validate:"omitempty,max=50"`
	PriceLevel  int      `json:"price_level" validate:"required,min=1,max=5"`
	Location    string   `json:"location" validate:"omitempty,max=100"`
	Duration    string   `json:"duration" validate:"omitempty,max=50"`
	ImageURL    string   `json:"image_url" validate:"omitempty,url,max=500"`
	Lat         *float64 `json:"lat" validate:"omitempty,latitude"`
	Lng         *float64 `json:"lng" validate:"omitempty,longitude"`
}

type RateDateIdeaDTO struct {
	Rating string `json:"rating" validate:"required,oneof=like dislike"`
}
