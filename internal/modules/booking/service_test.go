package booking

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"renthub/internal/domain"
)

// Mock repositories
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if b != nil {
		b.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByListing(ctx context.Context, listingID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByListingAndRenter(ctx context.Context, listingID, renterID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, listingID, renterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindOverlapping(ctx context.Context, listingID int64, start, end time.Time, excludeID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, listingID, start, end, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockListingReader struct {
	mock.Mock
}

func (m *MockListingReader) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) NotifyBookingCreated(ctx context.Context, b *domain.Booking, listingOwnerID int64) error {
	args := m.Called(ctx, b, listingOwnerID)
	return args.Error(0)
}

func (m *MockNotificationSender) NotifyBookingConfirmed(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockNotificationSender) NotifyBookingCanceled(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func day(y int, mo time.Month, d int) time.Time {
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

const (
	ownerID   = int64(1)
	renterID  = int64(2)
	otherID   = int64(3)
	listingID = int64(10)
)

func listing() *domain.Listing {
	return &domain.Listing{ID: listingID, OwnerID: ownerID, Title: "Test flat", IsActive: true}
}

func TestService_Create_Success(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockListings := new(MockListingReader)
	mockNotifs := new(MockNotificationSender)

	mockListings.On("GetByID", mock.Anything, listingID).Return(listing(), nil)

	start := day(2027, 6, 1)
	end := day(2027, 6, 10)
	mockBookings.On("FindOverlapping", mock.Anything, listingID, start, end, int64(0)).
		Return([]domain.Booking{}, nil)
	mockBookings.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockNotifs.On("NotifyBookingCreated", mock.Anything, mock.Anything, ownerID).Return(nil)

	service := NewService(mockBookings, mockListings, mockNotifs)

	b, err := service.Create(context.Background(), renterID, listingID, CreateBookingRequest{
		StartDate: "2027-06-01",
		EndDate:   "2027-06-10",
	})

	assert.NoError(t, err)
	assert.NotNil(t, b)
	assert.Equal(t, renterID, b.RenterID)
	assert.Equal(t, start, b.StartDate)
	assert.False(t, b.IsConfirmed)
	mockNotifs.AssertCalled(t, "NotifyBookingCreated", mock.Anything, mock.Anything, ownerID)
}

func TestService_Create_OwnListing(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockListings := new(MockListingReader)
	mockListings.On("GetByID", mock.Anything, listingID).Return(listing(), nil)

	service := NewService(mockBookings, mockListings, nil)

	_, err := service.Create(context.Background(), ownerID, listingID, CreateBookingRequest{
		StartDate: "2027-06-01",
		EndDate:   "2027-06-10",
	})

	assert.ErrorIs(t, err, ErrOwnListing)
	mockBookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Create_ListingMissing(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockListings := new(MockListingReader)
	mockListings.On("GetByID", mock.Anything, listingID).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(mockBookings, mockListings, nil)

	_, err := service.Create(context.Background(), renterID, listingID, CreateBookingRequest{
		StartDate: "2027-06-01",
		EndDate:   "2027-06-10",
	})

	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestService_Create_Conflict(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockListings := new(MockListingReader)
	mockListings.On("GetByID", mock.Anything, listingID).Return(listing(), nil)

	existing := domain.Booking{ID: 50, ListingID: listingID, RenterID: otherID,
		StartDate: day(2027, 6, 5), EndDate: day(2027, 6, 15)}
	mockBookings.On("FindOverlapping", mock.Anything, listingID, mock.Anything, mock.Anything, int64(0)).
		Return([]domain.Booking{existing}, nil)

	service := NewService(mockBookings, mockListings, nil)

	_, err := service.Create(context.Background(), renterID, listingID, CreateBookingRequest{
		StartDate: "2027-06-01",
		EndDate:   "2027-06-10",
	})

	assert.ErrorIs(t, err, ErrConflict)
	mockBookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Create_ConstraintRace(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockListings := new(MockListingReader)
	mockListings.On("GetByID", mock.Anything, listingID).Return(listing(), nil)

	mockBookings.On("FindOverlapping", mock.Anything, listingID, mock.Anything, mock.Anything, int64(0)).
		Return([]domain.Booking{}, nil)
	// the concurrent writer won; insert fails on the exclusion constraint
	mockBookings.On("Create", mock.Anything, mock.Anything).
		Return(&pgconn.PgError{Code: "23P01", ConstraintName: "bookings_no_overlap"})

	service := NewService(mockBookings, mockListings, nil)

	_, err := service.Create(context.Background(), renterID, listingID, CreateBookingRequest{
		StartDate: "2027-06-01",
		EndDate:   "2027-06-10",
	})

	assert.ErrorIs(t, err, ErrConflict)
}

func TestService_Create_InvalidRange(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockListings := new(MockListingReader)
	mockListings.On("GetByID", mock.Anything, listingID).Return(listing(), nil)

	service := NewService(mockBookings, mockListings, nil)

	for _, tc := range []struct {
		start, end string
	}{
		{"2027-06-10", "2027-06-01"}, // reversed
		{"2027-06-10", "2027-06-10"}, // zero nights
	} {
		_, err := service.Create(context.Background(), renterID, listingID, CreateBookingRequest{
			StartDate: tc.start,
			EndDate:   tc.end,
		})
		assert.ErrorIs(t, err, ErrInvalidRange)
	}
}

func TestService_Create_PastDate(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockListings := new(MockListingReader)
	mockListings.On("GetByID", mock.Anything, listingID).Return(listing(), nil)

	service := NewService(mockBookings, mockListings, nil)

	_, err := service.Create(context.Background(), renterID, listingID, CreateBookingRequest{
		StartDate: "2020-01-01",
		EndDate:   "2020-01-05",
	})

	assert.ErrorIs(t, err, ErrPastDate)
}

func TestService_Create_MalformedDate(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockListings := new(MockListingReader)
	mockListings.On("GetByID", mock.Anything, listingID).Return(listing(), nil)

	service := NewService(mockBookings, mockListings, nil)

	_, err := service.Create(context.Background(), renterID, listingID, CreateBookingRequest{
		StartDate: "01.06.2027",
		EndDate:   "2027-06-10",
	})

	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestService_List_LandlordSeesAll(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockListings := new(MockListingReader)
	mockListings.On("GetByID", mock.Anything, listingID).Return(listing(), nil)

	all := []domain.Booking{
		{ID: 1, ListingID: listingID, RenterID: renterID},
		{ID: 2, ListingID: listingID, RenterID: otherID},
	}
	mockBookings.On("ListByListing", mock.Anything, listingID).Return(all, nil)

	service := NewService(mockBookings, mockListings, nil)

	rows, landlord, err := service.List(context.Background(), ownerID, listingID)

	assert.NoError(t, err)
	assert.True(t, landlord)
	assert.Len(t, rows, 2)
	mockBookings.AssertNotCalled(t, "ListByListingAndRenter", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_List_RenterSeesOnlyOwn(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockListings := new(MockListingReader)
	mockListings.On("GetByID", mock.Anything, listingID).Return(listing(), nil)

	own := []domain.Booking{{ID: 1, ListingID: listingID, RenterID: renterID}}
	mockBookings.On("ListByListingAndRenter", mock.Anything, listingID, renterID).Return(own, nil)

	service := NewService(mockBookings, mockListings, nil)

	rows, landlord, err := service.List(context.Background(), renterID, listingID)

	assert.NoError(t, err)
	assert.False(t, landlord)
	assert.Len(t, rows, 1)
	assert.Equal(t, renterID, rows[0].RenterID)
}

func TestService_Get_HidesForeignBooking(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockListings := new(MockListingReader)
	mockListings.On("GetByID", mock.Anything, listingID).Return(listing(), nil)

	b := &domain.Booking{ID: 7, ListingID: listingID, RenterID: renterID}
	mockBookings.On("GetByID", mock.Anything, int64(7)).Return(b, nil)

	service := NewService(mockBookings, mockListings, nil)

	// another renter gets not-found, not forbidden
	_, _, err := service.Get(context.Background(), otherID, listingID, 7)
	assert.ErrorIs(t, err, ErrNotFound)

	// the booking owner sees it
	got, landlord, err := service.Get(context.Background(), renterID, listingID, 7)
	assert.NoError(t, err)
	assert.False(t, landlord)
	assert.Equal(t, int64(7), got.ID)

	// the listing owner sees it too
	_, landlord, err = service.Get(context.Background(), ownerID, listingID, 7)
	assert.NoError(t, err)
	assert.True(t, landlord)
}

func TestService_Get_WrongListingPath(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockListings := new(MockListingReader)
	mockListings.On("GetByID", mock.Anything, int64(11)).
		Return(&domain.Listing{ID: 11, OwnerID: otherID}, nil)

	b := &domain.Booking{ID: 7, ListingID: listingID, RenterID: renterID}
	mockBookings.On("GetByID", mock.Anything, int64(7)).Return(b, nil)

	service := NewService(mockBookings, mockListings, nil)

	_, _, err := service.Get(context.Background(), renterID, 11, 7)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Update_LandlordConfirm(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockListings := new(MockListingReader)
	mockNotifs := new(MockNotificationSender)
	mockListings.On("GetByID", mock.Anything, listingID).Return(listing(), nil)

	b := &domain.Booking{ID: 7, ListingID: listingID, RenterID: renterID,
		StartDate: day(2027, 6, 1), EndDate: day(2027, 6, 10)}
	mockBookings.On("GetByID", mock.Anything, int64(7)).Return(b, nil)
	mockBookings.On("Update", mock.Anything, mock.Anything).Return(nil)
	mockNotifs.On("NotifyBookingConfirmed", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockBookings, mockListings, mockNotifs)

	updated, landlord, err := service.Update(context.Background(), ownerID, listingID, 7,
		UpdateBookingRequest{IsConfirmed: ptr(true)})

	assert.NoError(t, err)
	assert.True(t, landlord)
	assert.True(t, updated.IsConfirmed)
	mockNotifs.AssertCalled(t, "NotifyBookingConfirmed", mock.Anything, mock.Anything)
}

func TestService_Update_LandlordCannotMoveDates(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockListings := new(MockListingReader)
	mockListings.On("GetByID", mock.Anything, listingID).Return(listing(), nil)

	b := &domain.Booking{ID: 7, ListingID: listingID, RenterID: renterID,
		StartDate: day(2027, 6, 1), EndDate: day(2027, 6, 10)}
	mockBookings.On("GetByID", mock.Anything, int64(7)).Return(b, nil)

	service := NewService(mockBookings, mockListings, nil)

	_, _, err := service.Update(context.Background(), ownerID, listingID, 7,
		UpdateBookingRequest{IsConfirmed: ptr(true), StartDate: ptr("2027-07-01")})
	assert.ErrorIs(t, err, ErrOnlyConfirmEditable)

	// an empty landlord patch is rejected too
	_, _, err = service.Update(context.Background(), ownerID, listingID, 7, UpdateBookingRequest{})
	assert.ErrorIs(t, err, ErrOnlyConfirmEditable)

	mockBookings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestService_Update_RenterCannotConfirm(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockListings := new(MockListingReader)
	mockListings.On("GetByID", mock.Anything, listingID).Return(listing(), nil)

	b := &domain.Booking{ID: 7, ListingID: listingID, RenterID: renterID,
		StartDate: day(2027, 6, 1), EndDate: day(2027, 6, 10)}
	mockBookings.On("GetByID", mock.Anything, int64(7)).Return(b, nil)

	service := NewService(mockBookings, mockListings, nil)

	_, _, err := service.Update(context.Background(), renterID, listingID, 7,
		UpdateBookingRequest{IsConfirmed: ptr(true)})

	assert.ErrorIs(t, err, ErrFieldNotAllowed)
	mockBookings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestService_Update_RenterCannotReassign(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockListings := new(MockListingReader)
	mockListings.On("GetByID", mock.Anything, listingID).Return(listing(), nil)

	b := &domain.Booking{ID: 7, ListingID: listingID, RenterID: renterID,
		StartDate: day(2027, 6, 1), EndDate: day(2027, 6, 10)}
	mockBookings.On("GetByID", mock.Anything, int64(7)).Return(b, nil)

	service := NewService(mockBookings, mockListings, nil)

	_, _, err := service.Update(context.Background(), renterID, listingID, 7,
		UpdateBookingRequest{RenterID: ptr(otherID)})

	assert.ErrorIs(t, err, ErrFieldNotAllowed)
}

func TestService_Update_RenterMovesDates(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockListings := new(MockListingReader)
	mockListings.On("GetByID", mock.Anything, listingID).Return(listing(), nil)

	b := &domain.Booking{ID: 7, ListingID: listingID, RenterID: renterID,
		StartDate: day(2027, 6, 1), EndDate: day(2027, 6, 10)}
	mockBookings.On("GetByID", mock.Anything, int64(7)).Return(b, nil)

	newStart := day(2027, 7, 1)
	newEnd := day(2027, 7, 10)
	// re-check must exclude the booking's own row
	mockBookings.On("FindOverlapping", mock.Anything, listingID, newStart, newEnd, int64(7)).
		Return([]domain.Booking{}, nil)
	mockBookings.On("Update", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockBookings, mockListings, nil)

	updated, landlord, err := service.Update(context.Background(), renterID, listingID, 7,
		UpdateBookingRequest{StartDate: ptr("2027-07-01"), EndDate: ptr("2027-07-10")})

	assert.NoError(t, err)
	assert.False(t, landlord)
	assert.Equal(t, newStart, updated.StartDate)
	assert.Equal(t, newEnd, updated.EndDate)
}

func TestService_Update_RenterMoveConflicts(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockListings := new(MockListingReader)
	mockListings.On("GetByID", mock.Anything, listingID).Return(listing(), nil)

	b := &domain.Booking{ID: 7, ListingID: listingID, RenterID: renterID,
		StartDate: day(2027, 6, 1), EndDate: day(2027, 6, 10)}
	mockBookings.On("GetByID", mock.Anything, int64(7)).Return(b, nil)

	occupied := domain.Booking{ID: 8, ListingID: listingID, RenterID: otherID,
		StartDate: day(2027, 7, 5), EndDate: day(2027, 7, 15)}
	mockBookings.On("FindOverlapping", mock.Anything, listingID, mock.Anything, mock.Anything, int64(7)).
		Return([]domain.Booking{occupied}, nil)

	service := NewService(mockBookings, mockListings, nil)

	_, _, err := service.Update(context.Background(), renterID, listingID, 7,
		UpdateBookingRequest{StartDate: ptr("2027-07-01"), EndDate: ptr("2027-07-10")})

	assert.ErrorIs(t, err, ErrConflict)
	mockBookings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestService_Update_RenterCancel(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockListings := new(MockListingReader)
	mockNotifs := new(MockNotificationSender)
	mockListings.On("GetByID", mock.Anything, listingID).Return(listing(), nil)

	b := &domain.Booking{ID: 7, ListingID: listingID, RenterID: renterID,
		StartDate: day(2027, 6, 1), EndDate: day(2027, 6, 10)}
	mockBookings.On("GetByID", mock.Anything, int64(7)).Return(b, nil)
	mockBookings.On("Update", mock.Anything, mock.Anything).Return(nil)
	mockNotifs.On("NotifyBookingCanceled", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockBookings, mockListings, mockNotifs)

	updated, _, err := service.Update(context.Background(), renterID, listingID, 7,
		UpdateBookingRequest{IsCanceled: ptr(true)})

	assert.NoError(t, err)
	assert.True(t, updated.IsCanceled)
	// canceling without moving dates needs no overlap re-check
	mockBookings.AssertNotCalled(t, "FindOverlapping",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockNotifs.AssertCalled(t, "NotifyBookingCanceled", mock.Anything, mock.Anything)
}

func TestService_Update_UncancelRechecksOverlap(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockListings := new(MockListingReader)
	mockListings.On("GetByID", mock.Anything, listingID).Return(listing(), nil)

	b := &domain.Booking{ID: 7, ListingID: listingID, RenterID: renterID,
		StartDate: day(2027, 6, 1), EndDate: day(2027, 6, 10), IsCanceled: true}
	mockBookings.On("GetByID", mock.Anything, int64(7)).Return(b, nil)

	// someone took the slot while this booking sat canceled
	taken := domain.Booking{ID: 9, ListingID: listingID, RenterID: otherID,
		StartDate: day(2027, 6, 5), EndDate: day(2027, 6, 8)}
	mockBookings.On("FindOverlapping", mock.Anything, listingID, b.StartDate, b.EndDate, int64(7)).
		Return([]domain.Booking{taken}, nil)

	service := NewService(mockBookings, mockListings, nil)

	_, _, err := service.Update(context.Background(), renterID, listingID, 7,
		UpdateBookingRequest{IsCanceled: ptr(false)})

	assert.ErrorIs(t, err, ErrConflict)
	mockBookings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestService_Delete_OnlyBookingOwner(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockListings := new(MockListingReader)

	b := &domain.Booking{ID: 7, ListingID: listingID, RenterID: renterID}
	mockBookings.On("GetByID", mock.Anything, int64(7)).Return(b, nil)
	mockBookings.On("Delete", mock.Anything, int64(7)).Return(nil)

	service := NewService(mockBookings, mockListings, nil)

	// the listing owner may not delete a renter's booking
	err := service.Delete(context.Background(), ownerID, listingID, 7)
	assert.ErrorIs(t, err, ErrDeleteForbidden)

	err = service.Delete(context.Background(), renterID, listingID, 7)
	assert.NoError(t, err)
	mockBookings.AssertCalled(t, "Delete", mock.Anything, int64(7))
}

func TestService_Delete_MissingBooking(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockListings := new(MockListingReader)
	mockBookings.On("GetByID", mock.Anything, int64(7)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(mockBookings, mockListings, nil)

	err := service.Delete(context.Background(), renterID, listingID, 7)
	assert.ErrorIs(t, err, ErrNotFound)
}
