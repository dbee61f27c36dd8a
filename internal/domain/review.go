package domain

import "time"

type Review struct {
	ID        int64     `json:"id"`
	ListingID int64     `json:"listing_id" gorm:"index:idx_reviews_listing"`
	UserID    int64     `json:"user_id"`
	Rating    int       `json:"rating" validate:"gte=1,lte=5"`
	Comment   string    `json:"comment,omitempty" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
