package listing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"renthub/internal/domain"
	"renthub/internal/repository"
)

type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) Create(ctx context.Context, l *domain.Listing) error {
	args := m.Called(ctx, l)
	if l != nil {
		l.ID = 42 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockListingRepository) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockListingRepository) Update(ctx context.Context, l *domain.Listing) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockListingRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockListingRepository) Search(ctx context.Context, f repository.ListingFilter) ([]domain.Listing, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Listing), args.Error(1)
}

type MockSearchQueryRecorder struct {
	mock.Mock
}

func (m *MockSearchQueryRecorder) Create(ctx context.Context, q *domain.SearchQuery) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockSearchQueryRecorder) ListByOwner(ctx context.Context, ownerID int64) ([]domain.SearchQuery, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SearchQuery), args.Error(1)
}

func ptr[T any](v T) *T { return &v }

func TestService_Create(t *testing.T) {
	mockListings := new(MockListingRepository)
	mockSearches := new(MockSearchQueryRecorder)
	mockListings.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockListings, mockSearches, zap.NewNop())

	l, err := service.Create(context.Background(), 1, CreateListingRequest{
		Title:        "Flat near the park",
		Location:     "Abay Ave 45",
		City:         "Almaty",
		Rooms:        2,
		PropertyType: "apartment",
		Price:        250000,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), l.OwnerID)
	assert.True(t, l.IsActive)
	assert.Equal(t, domain.PropertyApartment, l.PropertyType)
}

func TestService_Create_BadAvailabilityDate(t *testing.T) {
	mockListings := new(MockListingRepository)
	mockSearches := new(MockSearchQueryRecorder)

	service := NewService(mockListings, mockSearches, zap.NewNop())

	_, err := service.Create(context.Background(), 1, CreateListingRequest{
		Title:         "Flat",
		Location:      "Somewhere",
		PropertyType:  "apartment",
		AvailableFrom: ptr("not-a-date"),
	})

	assert.ErrorIs(t, err, ErrInvalidDate)
	mockListings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Update_OwnerOnly(t *testing.T) {
	mockListings := new(MockListingRepository)
	mockSearches := new(MockSearchQueryRecorder)

	l := &domain.Listing{ID: 42, OwnerID: 1, Title: "Old title", Price: 100000, IsActive: true}
	mockListings.On("GetByID", mock.Anything, int64(42)).Return(l, nil)
	mockListings.On("Update", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockListings, mockSearches, zap.NewNop())

	// non-owner is rejected
	_, err := service.Update(context.Background(), 2, 42, UpdateListingRequest{Title: ptr("Hijacked")})
	assert.ErrorIs(t, err, ErrForbidden)
	mockListings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)

	// owner patch touches only present fields
	updated, err := service.Update(context.Background(), 1, 42, UpdateListingRequest{
		Title: ptr("New title"),
		Price: ptr(120000.0),
	})
	assert.NoError(t, err)
	assert.Equal(t, "New title", updated.Title)
	assert.Equal(t, 120000.0, updated.Price)
	assert.True(t, updated.IsActive)
}

func TestService_Update_NotFound(t *testing.T) {
	mockListings := new(MockListingRepository)
	mockSearches := new(MockSearchQueryRecorder)
	mockListings.On("GetByID", mock.Anything, int64(42)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(mockListings, mockSearches, zap.NewNop())

	_, err := service.Update(context.Background(), 1, 42, UpdateListingRequest{Title: ptr("x")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Delete_OwnerOnly(t *testing.T) {
	mockListings := new(MockListingRepository)
	mockSearches := new(MockSearchQueryRecorder)

	l := &domain.Listing{ID: 42, OwnerID: 1}
	mockListings.On("GetByID", mock.Anything, int64(42)).Return(l, nil)
	mockListings.On("Delete", mock.Anything, int64(42)).Return(nil)

	service := NewService(mockListings, mockSearches, zap.NewNop())

	assert.ErrorIs(t, service.Delete(context.Background(), 2, 42), ErrForbidden)
	assert.NoError(t, service.Delete(context.Background(), 1, 42))
}

func TestService_Search_PublicSeesOnlyActive(t *testing.T) {
	mockListings := new(MockListingRepository)
	mockSearches := new(MockSearchQueryRecorder)

	mockListings.On("Search", mock.Anything, mock.MatchedBy(func(f repository.ListingFilter) bool {
		return f.OnlyActive && f.OwnerID == nil
	})).Return([]domain.Listing{{ID: 1, IsActive: true}}, nil)

	service := NewService(mockListings, mockSearches, zap.NewNop())

	rows, err := service.Search(context.Background(), nil, SearchParams{})

	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	// no filters, nothing to audit
	mockSearches.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Search_MyIncludesInactive(t *testing.T) {
	mockListings := new(MockListingRepository)
	mockSearches := new(MockSearchQueryRecorder)

	actor := int64(1)
	mockListings.On("Search", mock.Anything, mock.MatchedBy(func(f repository.ListingFilter) bool {
		return !f.OnlyActive && f.OwnerID != nil && *f.OwnerID == actor
	})).Return([]domain.Listing{{ID: 1, OwnerID: actor}, {ID: 2, OwnerID: actor, IsActive: false}}, nil)

	service := NewService(mockListings, mockSearches, zap.NewNop())

	rows, err := service.Search(context.Background(), &actor, SearchParams{My: true})

	assert.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestService_Search_RecordsAuditRow(t *testing.T) {
	mockListings := new(MockListingRepository)
	mockSearches := new(MockSearchQueryRecorder)

	actor := int64(1)
	city := "Almaty"
	mockListings.On("Search", mock.Anything, mock.Anything).Return([]domain.Listing{}, nil)
	mockSearches.On("Create", mock.Anything, mock.MatchedBy(func(q *domain.SearchQuery) bool {
		return q.OwnerID != nil && *q.OwnerID == actor && q.City != nil && *q.City == city
	})).Return(nil)

	service := NewService(mockListings, mockSearches, zap.NewNop())

	_, err := service.Search(context.Background(), &actor, SearchParams{City: &city})

	assert.NoError(t, err)
	mockSearches.AssertExpectations(t)
}

func TestService_Search_AuditFailureIsSwallowed(t *testing.T) {
	mockListings := new(MockListingRepository)
	mockSearches := new(MockSearchQueryRecorder)

	city := "Almaty"
	mockListings.On("Search", mock.Anything, mock.Anything).Return([]domain.Listing{{ID: 1}}, nil)
	mockSearches.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

	service := NewService(mockListings, mockSearches, zap.NewNop())

	rows, err := service.Search(context.Background(), nil, SearchParams{City: &city})

	assert.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestService_SearchHistory(t *testing.T) {
	mockListings := new(MockListingRepository)
	mockSearches := new(MockSearchQueryRecorder)

	owner := int64(1)
	mockSearches.On("ListByOwner", mock.Anything, owner).
		Return([]domain.SearchQuery{{ID: 5, OwnerID: &owner}}, nil)

	service := NewService(mockListings, mockSearches, zap.NewNop())

	rows, err := service.SearchHistory(context.Background(), owner)

	assert.NoError(t, err)
	assert.Len(t, rows, 1)
}
