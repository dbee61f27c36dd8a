package listing

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"renthub/internal/domain"
	"renthub/internal/repository"
)

type Service struct {
	listings ListingRepository
	searches SearchQueryRecorder
	log      *zap.Logger
}

func NewService(listings ListingRepository, searches SearchQueryRecorder, log *zap.Logger) *Service {
	return &Service{
		listings: listings,
		searches: searches,
		log:      log,
	}
}

func (s *Service) Create(ctx context.Context, ownerID int64, req CreateListingRequest) (*domain.Listing, error) {
	from, err := parseOptionalDate(req.AvailableFrom)
	if err != nil {
		return nil, ErrInvalidDate
	}
	until, err := parseOptionalDate(req.AvailableUntil)
	if err != nil {
		return nil, ErrInvalidDate
	}

	l := &domain.Listing{
		OwnerID:        ownerID,
		Title:          req.Title,
		Description:    req.Description,
		Location:       req.Location,
		City:           req.City,
		Rooms:          req.Rooms,
		PropertyType:   domain.PropertyType(req.PropertyType),
		Price:          req.Price,
		AvailableFrom:  from,
		AvailableUntil: until,
		IsActive:       true,
	}
	if err := s.listings.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Listing, error) {
	l, err := s.listings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return l, nil
}

// Update applies a partial update. Only the owner may edit, and ownership
// itself is immutable: the request carries no owner field.
func (s *Service) Update(ctx context.Context, userID, id int64, req UpdateListingRequest) (*domain.Listing, error) {
	l, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.OwnerID != userID {
		return nil, ErrForbidden
	}

	if req.Title != nil {
		l.Title = *req.Title
	}
	if req.Description != nil {
		l.Description = *req.Description
	}
	if req.Location != nil {
		l.Location = *req.Location
	}
	if req.City != nil {
		l.City = *req.City
	}
	if req.Rooms != nil {
		l.Rooms = *req.Rooms
	}
	if req.PropertyType != nil {
		l.PropertyType = domain.PropertyType(*req.PropertyType)
	}
	if req.Price != nil {
		l.Price = *req.Price
	}
	if req.AvailableFrom != nil {
		from, err := parseOptionalDate(req.AvailableFrom)
		if err != nil {
			return nil, ErrInvalidDate
		}
		l.AvailableFrom = from
	}
	if req.AvailableUntil != nil {
		until, err := parseOptionalDate(req.AvailableUntil)
		if err != nil {
			return nil, ErrInvalidDate
		}
		l.AvailableUntil = until
	}
	if req.IsActive != nil {
		l.IsActive = *req.IsActive
	}

	if err := s.listings.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	l, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if l.OwnerID != userID {
		return ErrForbidden
	}
	return s.listings.Delete(ctx, id)
}

// Search runs a filtered listing query. my=true restricts to the actor's own
// listings (inactive included); public searches only see active listings.
// Any filter present is recorded as a SearchQuery audit row, attributed to the
// actor or anonymous; a failed audit write never fails the search.
func (s *Service) Search(ctx context.Context, actorID *int64, p SearchParams) ([]domain.Listing, error) {
	f := repository.ListingFilter{
		Title:        p.Title,
		Description:  p.Description,
		Location:     p.Location,
		City:         p.City,
		PriceMin:     p.PriceMin,
		PriceMax:     p.PriceMax,
		RoomsMin:     p.RoomsMin,
		RoomsMax:     p.RoomsMax,
		PropertyType: p.PropertyType,
	}
	if p.My && actorID != nil {
		f.OwnerID = actorID
	} else {
		f.OnlyActive = true
	}

	rows, err := s.listings.Search(ctx, f)
	if err != nil {
		return nil, err
	}

	if p.hasFilters() {
		q := &domain.SearchQuery{
			OwnerID:      actorID,
			Title:        p.Title,
			Description:  p.Description,
			Location:     p.Location,
			City:         p.City,
			RoomsMin:     p.RoomsMin,
			RoomsMax:     p.RoomsMax,
			PropertyType: p.PropertyType,
			PriceMin:     p.PriceMin,
			PriceMax:     p.PriceMax,
		}
		if err := s.searches.Create(ctx, q); err != nil {
			s.log.Warn("search query audit write failed", zap.Error(err))
		}
	}

	return rows, nil
}

func (s *Service) SearchHistory(ctx context.Context, userID int64) ([]domain.SearchQuery, error) {
	return s.searches.ListByOwner(ctx, userID)
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, err
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d, nil
}
