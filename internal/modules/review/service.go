package review

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"renthub/internal/domain"
)

type Service struct {
	reviews  ReviewRepository
	listings ListingGate
}

func NewService(reviews ReviewRepository, listings ListingGate) *Service {
	return &Service{reviews: reviews, listings: listings}
}

func (s *Service) Create(ctx context.Context, userID, listingID int64, req CreateReviewRequest) (*domain.Review, error) {
	if userID <= 0 || listingID <= 0 || req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRequest
	}

	if _, err := s.listings.GetByID(ctx, listingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}

	rv := &domain.Review{
		ListingID: listingID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *Service) ListByListing(ctx context.Context, listingID int64) ([]domain.Review, error) {
	if listingID <= 0 {
		return nil, ErrInvalidRequest
	}
	if _, err := s.listings.GetByID(ctx, listingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return s.reviews.ListByListing(ctx, listingID)
}
