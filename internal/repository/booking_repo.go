package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"renthub/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) ListByListing(ctx context.Context, listingID int64) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Order("start_date").
		Find(&out).Error
	return out, err
}

func (r *BookingRepository) ListByListingAndRenter(ctx context.Context, listingID, renterID int64) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Where("listing_id = ? AND renter_id = ?", listingID, renterID).
		Order("start_date").
		Find(&out).Error
	return out, err
}

// FindOverlapping returns the non-canceled bookings of a listing whose
// [start_date, end_date) interval intersects [start, end). excludeID skips the
// booking being re-validated so an update never conflicts with itself.
func (r *BookingRepository) FindOverlapping(ctx context.Context, listingID int64, start, end time.Time, excludeID int64) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx).
		Where("listing_id = ? AND is_canceled = ? AND start_date < ? AND end_date > ?",
			listingID, false, end, start)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var out []domain.Booking
	if err := q.Order("start_date").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Booking{}, id).Error
}
