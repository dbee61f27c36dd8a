package review

import (
	"context"

	"renthub/internal/domain"
)

type ReviewRepository interface {
	Create(ctx context.Context, rv *domain.Review) error
	ListByListing(ctx context.Context, listingID int64) ([]domain.Review, error)
}

// ListingGate verifies the reviewed listing exists.
type ListingGate interface {
	GetByID(ctx context.Context, id int64) (*domain.Listing, error)
}
