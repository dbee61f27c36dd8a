package booking

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"renthub/internal/domain"
)

// Service orchestrates booking creation, listing, partial update and deletion,
// selecting behavior from the actor's ownership verdict.
type Service struct {
	bookings BookingRepository
	listings ListingReader
	notifs   NotificationSender
}

func NewService(bookings BookingRepository, listings ListingReader, notifs NotificationSender) *Service {
	return &Service{
		bookings: bookings,
		listings: listings,
		notifs:   notifs,
	}
}

// IsListingOwner reports whether userID owns the listing. A missing listing is
// ErrListingNotFound, never a false verdict.
func (s *Service) IsListingOwner(ctx context.Context, userID, listingID int64) (bool, error) {
	l, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrListingNotFound
		}
		return false, err
	}
	return l.OwnerID == userID, nil
}

// IsBookingOwner reports whether userID created the booking.
func (s *Service) IsBookingOwner(ctx context.Context, userID, bookingID int64) (bool, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}
	return b.RenterID == userID, nil
}

// FindOverlaps returns the non-canceled bookings of the listing intersecting
// [start, end) under half-open semantics, excluding excludeID when re-checking
// an update against the booking's own row.
func (s *Service) FindOverlaps(ctx context.Context, listingID int64, start, end time.Time, excludeID int64) ([]domain.Booking, error) {
	return s.bookings.FindOverlapping(ctx, listingID, start, end, excludeID)
}

// List returns the bookings visible to the actor for one listing: every
// booking for the listing owner, only the actor's own rows for anyone else.
// The second return value reports whether the landlord view applies.
func (s *Service) List(ctx context.Context, userID, listingID int64) ([]domain.Booking, bool, error) {
	owner, err := s.IsListingOwner(ctx, userID, listingID)
	if err != nil {
		return nil, false, err
	}

	if owner {
		rows, err := s.bookings.ListByListing(ctx, listingID)
		return rows, true, err
	}

	rows, err := s.bookings.ListByListingAndRenter(ctx, listingID, userID)
	return rows, false, err
}

// Get returns one booking when the actor is the listing owner or the booking
// owner. Anyone else gets ErrNotFound: other renters' bookings are hidden, not
// forbidden.
func (s *Service) Get(ctx context.Context, userID, listingID, bookingID int64) (*domain.Booking, bool, error) {
	owner, err := s.IsListingOwner(ctx, userID, listingID)
	if err != nil {
		return nil, false, err
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrNotFound
		}
		return nil, false, err
	}
	if b.ListingID != listingID {
		return nil, false, ErrNotFound
	}

	if owner {
		return b, true, nil
	}
	if b.RenterID == userID {
		return b, false, nil
	}
	return nil, false, ErrNotFound
}

// Create books the listing for [start, end). The listing owner may never book
// their own listing; the range must be valid, start today or later, and not
// intersect any non-canceled booking of the listing.
func (s *Service) Create(ctx context.Context, userID, listingID int64, req CreateBookingRequest) (*domain.Booking, error) {
	owner, err := s.IsListingOwner(ctx, userID, listingID)
	if err != nil {
		return nil, err
	}
	if owner {
		return nil, ErrOwnListing
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	if err := validateRange(start, end, true); err != nil {
		return nil, err
	}

	overlaps, err := s.bookings.FindOverlapping(ctx, listingID, start, end, 0)
	if err != nil {
		return nil, err
	}
	if len(overlaps) > 0 {
		return nil, ErrConflict
	}

	b := &domain.Booking{
		ListingID: listingID,
		RenterID:  userID,
		StartDate: start,
		EndDate:   end,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		if isOverlapConstraint(err) {
			return nil, ErrConflict
		}
		return nil, err
	}

	if s.notifs != nil {
		if l, lerr := s.listings.GetByID(ctx, listingID); lerr == nil {
			_ = s.notifs.NotifyBookingCreated(ctx, b, l.OwnerID)
		}
	}
	return b, nil
}

// Update is the role-adaptive partial update. Listing owners may set exactly
// is_confirmed; the booking owner may move the dates or flip is_canceled, with
// the overlap invariant re-checked (excluding the booking's own row) whenever
// the active interval changes.
func (s *Service) Update(ctx context.Context, userID, listingID, bookingID int64, req UpdateBookingRequest) (*domain.Booking, bool, error) {
	b, landlord, err := s.Get(ctx, userID, listingID, bookingID)
	if err != nil {
		return nil, false, err
	}

	present := req.presentFields()

	if landlord {
		if len(landlordPolicy.disallowed(present)) > 0 || req.IsConfirmed == nil {
			return nil, false, ErrOnlyConfirmEditable
		}
		b.IsConfirmed = *req.IsConfirmed
	} else {
		if len(renterPolicy.disallowed(present)) > 0 {
			return nil, false, ErrFieldNotAllowed
		}

		start, end := b.StartDate, b.EndDate
		datesChanged := false
		if req.StartDate != nil {
			if start, err = parseDate(*req.StartDate); err != nil {
				return nil, false, ErrInvalidDate
			}
			datesChanged = true
		}
		if req.EndDate != nil {
			if end, err = parseDate(*req.EndDate); err != nil {
				return nil, false, ErrInvalidDate
			}
			datesChanged = true
		}

		// un-canceling puts the interval back into the active set
		reactivated := req.IsCanceled != nil && !*req.IsCanceled && b.IsCanceled

		if datesChanged || reactivated {
			if err := validateRange(start, end, false); err != nil {
				return nil, false, err
			}
			overlaps, err := s.bookings.FindOverlapping(ctx, listingID, start, end, b.ID)
			if err != nil {
				return nil, false, err
			}
			if len(overlaps) > 0 {
				return nil, false, ErrConflict
			}
		}

		b.StartDate, b.EndDate = start, end
		if req.IsCanceled != nil {
			b.IsCanceled = *req.IsCanceled
		}
	}

	if err := s.bookings.Update(ctx, b); err != nil {
		if isOverlapConstraint(err) {
			return nil, false, ErrConflict
		}
		return nil, false, err
	}

	if s.notifs != nil {
		if landlord && b.IsConfirmed {
			_ = s.notifs.NotifyBookingConfirmed(ctx, b)
		}
		if !landlord && req.IsCanceled != nil && *req.IsCanceled {
			_ = s.notifs.NotifyBookingCanceled(ctx, b)
		}
	}
	return b, landlord, nil
}

// Delete removes a booking. Only the booking's owner may delete it; the
// listing owner (or anyone else) gets ErrDeleteForbidden.
func (s *Service) Delete(ctx context.Context, userID, listingID, bookingID int64) error {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if b.ListingID != listingID {
		return ErrNotFound
	}
	if b.RenterID != userID {
		return ErrDeleteForbidden
	}
	return s.bookings.Delete(ctx, bookingID)
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// validateRange enforces start < end, and start >= today when checkPast is
// set. PastDate fires only at creation; range validity re-fires on every
// mutation that touches a date.
func validateRange(start, end time.Time, checkPast bool) error {
	if !start.Before(end) {
		return ErrInvalidRange
	}
	if checkPast {
		now := time.Now().UTC()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		if start.Before(today) {
			return ErrPastDate
		}
	}
	return nil
}

// isOverlapConstraint recognizes the postgres exclusion constraint that backs
// the overlap invariant under concurrent writes.
func isOverlapConstraint(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23P01" && pgErr.ConstraintName == "bookings_no_overlap"
	}
	return false
}
