package listing

const dateLayout = "2006-01-02"

type CreateListingRequest struct {
	Title          string  `json:"title" binding:"required"`
	Description    string  `json:"description"`
	Location       string  `json:"location" binding:"required"`
	City           string  `json:"city"`
	Rooms          float64 `json:"rooms" binding:"gte=0"`
	PropertyType   string  `json:"property_type" binding:"required,oneof=apartment house studio"`
	Price          float64 `json:"price" binding:"gte=0"`
	AvailableFrom  *string `json:"available_from"`
	AvailableUntil *string `json:"available_until"`
}

type UpdateListingRequest struct {
	Title          *string  `json:"title"`
	Description    *string  `json:"description"`
	Location       *string  `json:"location"`
	City           *string  `json:"city"`
	Rooms          *float64 `json:"rooms" binding:"omitempty,gte=0"`
	PropertyType   *string  `json:"property_type" binding:"omitempty,oneof=apartment house studio"`
	Price          *float64 `json:"price" binding:"omitempty,gte=0"`
	AvailableFrom  *string  `json:"available_from"`
	AvailableUntil *string  `json:"available_until"`
	IsActive       *bool    `json:"is_active"`
}

// SearchParams mirrors the supported query parameters of listing search.
type SearchParams struct {
	My           bool
	Title        *string
	Description  *string
	Location     *string
	City         *string
	PriceMin     *float64
	PriceMax     *float64
	RoomsMin     *float64
	RoomsMax     *float64
	PropertyType *string
}

func (p SearchParams) hasFilters() bool {
	return p.Title != nil || p.Description != nil || p.Location != nil || p.City != nil ||
		p.PriceMin != nil || p.PriceMax != nil || p.RoomsMin != nil || p.RoomsMax != nil ||
		p.PropertyType != nil
}
