package repository

import (
	"context"

	"gorm.io/gorm"

	"renthub/internal/domain"
)

type SearchQueryRepository struct {
	db *gorm.DB
}

func NewSearchQueryRepository(db *gorm.DB) *SearchQueryRepository {
	return &SearchQueryRepository{db: db}
}

func (r *SearchQueryRepository) Create(ctx context.Context, q *domain.SearchQuery) error {
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *SearchQueryRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.SearchQuery, error) {
	var out []domain.SearchQuery
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}
