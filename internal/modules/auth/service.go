package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"renthub/internal/domain"
)

type jwtService interface {
	GenerateToken(userID int64, isLandlord bool) (string, error)
}

type Service struct {
	users      UserRepository
	tokens     RefreshTokenRepository
	jwt        jwtService
	refreshTTL time.Duration
}

type LoginResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

type RefreshResult struct {
	AccessToken  string
	RefreshToken string
}

func NewService(users UserRepository, tokens RefreshTokenRepository, jwt jwtService, refreshTTL time.Duration) *Service {
	return &Service{
		users:      users,
		tokens:     tokens,
		jwt:        jwt,
		refreshTTL: refreshTTL,
	}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Phone:        req.Phone,
		IsLandlord:   req.IsLandlord,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.jwt.GenerateToken(user.ID, user.IsLandlord)
	if err != nil {
		return nil, err
	}

	raw, row, err := s.newRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Create(ctx, row); err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &LoginResult{User: user, AccessToken: accessToken, RefreshToken: raw}, nil
}

// RefreshSession rotates a refresh token: the presented token is retired and a
// replacement issued together with a fresh access token. Expired, revoked or
// already-used tokens are all ErrInvalidRefreshToken.
func (s *Service) RefreshSession(ctx context.Context, refreshRaw string) (*RefreshResult, error) {
	current, err := s.tokens.GetByHash(ctx, hashToken(refreshRaw))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	now := time.Now()
	if !current.ExpiresAt.After(now) || current.UsedAt != nil || current.RevokedAt != nil {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.users.GetByID(ctx, current.UserID)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.jwt.GenerateToken(user.ID, user.IsLandlord)
	if err != nil {
		return nil, err
	}

	raw, next, err := s.newRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Rotate(ctx, current.ID, next); err != nil {
		return nil, err
	}

	return &RefreshResult{AccessToken: accessToken, RefreshToken: raw}, nil
}

// Logout revokes the refresh token. Unknown tokens are a no-op: logout always
// succeeds.
func (s *Service) Logout(ctx context.Context, refreshRaw string) error {
	if refreshRaw == "" {
		return nil
	}
	token, err := s.tokens.GetByHash(ctx, hashToken(refreshRaw))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return s.tokens.Revoke(ctx, token.ID)
}

func (s *Service) GetCurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *Service) newRefreshToken(userID int64) (string, *domain.RefreshToken, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", nil, err
	}
	raw := hex.EncodeToString(buf)

	return raw, &domain.RefreshToken{
		UserID:    userID,
		TokenHash: hashToken(raw),
		JTI:       uuid.NewString(),
		ExpiresAt: time.Now().Add(s.refreshTTL),
	}, nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
