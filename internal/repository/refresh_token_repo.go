package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"renthub/internal/domain"
)

type RefreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, t *domain.RefreshToken) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *RefreshTokenRepository) GetByHash(ctx context.Context, hash string) (*domain.RefreshToken, error) {
	var t domain.RefreshToken
	if err := r.db.WithContext(ctx).Where("token_hash = ?", hash).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// Rotate marks the current token used+revoked and inserts its replacement in
// one transaction, locking the row so a concurrently replayed token loses.
func (r *RefreshTokenRepository) Rotate(ctx context.Context, currentID int64, next *domain.RefreshToken) error {
	now := time.Now()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current domain.RefreshToken
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&current, currentID).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.RefreshToken{}).Where("id = ?", currentID).Updates(map[string]any{
			"used_at":    now,
			"revoked_at": now,
		}).Error; err != nil {
			return err
		}
		return tx.Create(next).Error
	})
}

func (r *RefreshTokenRepository) Revoke(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&domain.RefreshToken{}).Where("id = ?", id).Updates(map[string]any{
		"revoked_at": time.Now(),
	}).Error
}
