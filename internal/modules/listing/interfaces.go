package listing

import (
	"context"

	"renthub/internal/domain"
	"renthub/internal/repository"
)

type ListingRepository interface {
	Create(ctx context.Context, l *domain.Listing) error
	GetByID(ctx context.Context, id int64) (*domain.Listing, error)
	Update(ctx context.Context, l *domain.Listing) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, f repository.ListingFilter) ([]domain.Listing, error)
}

// SearchQueryRecorder persists the search audit trail.
type SearchQueryRecorder interface {
	Create(ctx context.Context, q *domain.SearchQuery) error
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.SearchQuery, error)
}
