package domain

import "time"

// SearchQuery is an audit row of listing-search parameters. OwnerID is nil for
// anonymous searches.
type SearchQuery struct {
	ID           int64     `json:"id"`
	OwnerID      *int64    `json:"owner_id,omitempty" gorm:"index:idx_search_queries_owner"`
	Title        *string   `json:"title,omitempty"`
	Description  *string   `json:"description,omitempty"`
	Location     *string   `json:"location,omitempty"`
	City         *string   `json:"city,omitempty"`
	RoomsMin     *float64  `json:"rooms_min,omitempty"`
	RoomsMax     *float64  `json:"rooms_max,omitempty"`
	PropertyType *string   `json:"property_type,omitempty"`
	PriceMin     *float64  `json:"price_min,omitempty"`
	PriceMax     *float64  `json:"price_max,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
