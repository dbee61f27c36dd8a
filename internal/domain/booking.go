package domain

import "time"

// Booking reserves a listing for a half-open date range [StartDate, EndDate).
// IsConfirmed is flipped by the listing owner, IsCanceled by the renter;
// canceled bookings do not count against availability.
type Booking struct {
	ID          int64     `json:"id"`
	ListingID   int64     `json:"listing_id" gorm:"index:idx_bookings_listing"`
	RenterID    int64     `json:"renter_id" gorm:"index:idx_bookings_renter"`
	StartDate   time.Time `json:"start_date" gorm:"type:date"`
	EndDate     time.Time `json:"end_date" gorm:"type:date"`
	IsConfirmed bool      `json:"is_confirmed"`
	IsCanceled  bool      `json:"is_canceled"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
