package booking

import (
	"context"
	"time"

	"renthub/internal/domain"
)

// BookingRepository defines the storage operations the booking service needs.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByListing(ctx context.Context, listingID int64) ([]domain.Booking, error)
	ListByListingAndRenter(ctx context.Context, listingID, renterID int64) ([]domain.Booking, error)
	FindOverlapping(ctx context.Context, listingID int64, start, end time.Time, excludeID int64) ([]domain.Booking, error)
	Update(ctx context.Context, b *domain.Booking) error
	Delete(ctx context.Context, id int64) error
}

// ListingReader resolves listing ownership.
type ListingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Listing, error)
}

// NotificationSender publishes booking lifecycle events. May be nil-backed;
// the service never fails a request over a notification.
type NotificationSender interface {
	NotifyBookingCreated(ctx context.Context, b *domain.Booking, listingOwnerID int64) error
	NotifyBookingConfirmed(ctx context.Context, b *domain.Booking) error
	NotifyBookingCanceled(ctx context.Context, b *domain.Booking) error
}
