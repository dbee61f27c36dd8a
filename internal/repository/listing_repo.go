package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"renthub/internal/domain"
)

// ListingFilter carries the optional search parameters of a listing query.
// Nil fields are not applied. Substring matches are case-insensitive.
type ListingFilter struct {
	OwnerID      *int64
	OnlyActive   bool
	Title        *string
	Description  *string
	Location     *string
	City         *string
	PriceMin     *float64
	PriceMax     *float64
	RoomsMin     *float64
	RoomsMax     *float64
	PropertyType *string
}

type ListingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

func (r *ListingRepository) Create(ctx context.Context, l *domain.Listing) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *ListingRepository) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	var l domain.Listing
	if err := r.db.WithContext(ctx).First(&l, id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *ListingRepository) Update(ctx context.Context, l *domain.Listing) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *ListingRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Listing{}, id).Error
}

func (r *ListingRepository) Search(ctx context.Context, f ListingFilter) ([]domain.Listing, error) {
	q := r.db.WithContext(ctx).Model(&domain.Listing{})

	if f.OwnerID != nil {
		q = q.Where("owner_id = ?", *f.OwnerID)
	}
	if f.OnlyActive {
		q = q.Where("is_active = ?", true)
	}
	if f.Title != nil {
		q = q.Where("LOWER(title) LIKE ?", like(*f.Title))
	}
	if f.Description != nil {
		q = q.Where("LOWER(description) LIKE ?", like(*f.Description))
	}
	if f.Location != nil {
		q = q.Where("LOWER(location) LIKE ?", like(*f.Location))
	}
	if f.City != nil {
		q = q.Where("LOWER(city) LIKE ?", like(*f.City))
	}
	if f.PriceMin != nil {
		q = q.Where("price >= ?", *f.PriceMin)
	}
	if f.PriceMax != nil {
		q = q.Where("price <= ?", *f.PriceMax)
	}
	if f.RoomsMin != nil {
		q = q.Where("rooms >= ?", *f.RoomsMin)
	}
	if f.RoomsMax != nil {
		q = q.Where("rooms <= ?", *f.RoomsMax)
	}
	if f.PropertyType != nil {
		q = q.Where("property_type = ?", *f.PropertyType)
	}

	var out []domain.Listing
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func like(s string) string {
	return "%" + strings.ToLower(s) + "%"
}
