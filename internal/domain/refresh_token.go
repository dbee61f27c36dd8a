package domain

import "time"

type RefreshToken struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id" gorm:"index"`
	TokenHash string     `json:"-" gorm:"uniqueIndex"`
	JTI       string     `json:"-" gorm:"column:jti"`
	ExpiresAt time.Time  `json:"expires_at"`
	UsedAt    *time.Time `json:"-"`
	RevokedAt *time.Time `json:"-"`
	CreatedAt time.Time  `json:"created_at"`
}
