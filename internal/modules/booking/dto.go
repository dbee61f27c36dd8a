package booking

import (
	"time"

	"renthub/internal/domain"
)

const dateLayout = "2006-01-02"

type CreateBookingRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

// UpdateBookingRequest covers both partial-update paths. Pointer fields record
// presence: a field the actor's policy does not allow is rejected when present,
// regardless of value. listing_id and renter_id are immutable references and
// are never in any policy's allowed set.
type UpdateBookingRequest struct {
	ListingID   *int64  `json:"listing_id"`
	RenterID    *int64  `json:"renter_id"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	IsConfirmed *bool   `json:"is_confirmed"`
	IsCanceled  *bool   `json:"is_canceled"`
}

func (r UpdateBookingRequest) presentFields() []string {
	var out []string
	if r.ListingID != nil {
		out = append(out, "listing_id")
	}
	if r.RenterID != nil {
		out = append(out, "renter_id")
	}
	if r.StartDate != nil {
		out = append(out, "start_date")
	}
	if r.EndDate != nil {
		out = append(out, "end_date")
	}
	if r.IsConfirmed != nil {
		out = append(out, "is_confirmed")
	}
	if r.IsCanceled != nil {
		out = append(out, "is_canceled")
	}
	return out
}

// LandlordBookingView is the full serialization the listing owner sees.
type LandlordBookingView struct {
	ID          int64     `json:"id"`
	ListingID   int64     `json:"listing_id"`
	RenterID    int64     `json:"renter_id"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	IsConfirmed bool      `json:"is_confirmed"`
	IsCanceled  bool      `json:"is_canceled"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RenterBookingView is the restricted serialization renters see of their own
// bookings.
type RenterBookingView struct {
	ID          int64  `json:"id"`
	ListingID   int64  `json:"listing_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	IsConfirmed bool   `json:"is_confirmed"`
	IsCanceled  bool   `json:"is_canceled"`
}

func landlordView(b *domain.Booking) LandlordBookingView {
	return LandlordBookingView{
		ID:          b.ID,
		ListingID:   b.ListingID,
		RenterID:    b.RenterID,
		StartDate:   b.StartDate.Format(dateLayout),
		EndDate:     b.EndDate.Format(dateLayout),
		IsConfirmed: b.IsConfirmed,
		IsCanceled:  b.IsCanceled,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func renterView(b *domain.Booking) RenterBookingView {
	return RenterBookingView{
		ID:          b.ID,
		ListingID:   b.ListingID,
		StartDate:   b.StartDate.Format(dateLayout),
		EndDate:     b.EndDate.Format(dateLayout),
		IsConfirmed: b.IsConfirmed,
		IsCanceled:  b.IsCanceled,
	}
}

func viewFor(b *domain.Booking, landlord bool) any {
	if landlord {
		return landlordView(b)
	}
	return renterView(b)
}

func viewsFor(bs []domain.Booking, landlord bool) []any {
	out := make([]any, 0, len(bs))
	for i := range bs {
		out = append(out, viewFor(&bs[i], landlord))
	}
	return out
}
