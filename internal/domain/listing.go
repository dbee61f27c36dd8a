package domain

import "time"

type PropertyType string

const (
	PropertyApartment PropertyType = "apartment"
	PropertyHouse     PropertyType = "house"
	PropertyStudio    PropertyType = "studio"
)

type Listing struct {
	ID             int64        `json:"id"`
	OwnerID        int64        `json:"owner_id" gorm:"index:idx_listings_owner"`
	Title          string       `json:"title" gorm:"index" validate:"required"`
	Description    string       `json:"description" gorm:"type:text"`
	Location       string       `json:"location"`
	City           string       `json:"city"`
	Rooms          float64      `json:"rooms"`
	PropertyType   PropertyType `json:"property_type"`
	Price          float64      `json:"price" gorm:"type:numeric(10,2)"`
	AvailableFrom  *time.Time   `json:"available_from,omitempty" gorm:"type:date"`
	AvailableUntil *time.Time   `json:"available_until,omitempty" gorm:"type:date"`
	AvgRating      int          `json:"avg_rating"`
	IsActive       bool         `json:"is_active"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}
