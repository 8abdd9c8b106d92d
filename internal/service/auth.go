package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ovchar/wa_storefront/internal/models"
	"github.com/ovchar/wa_storefront/internal/repo"
	"github.com/ovchar/wa_storefront/pkg/hash"
	authmw "github.com/ovchar/wa_storefront/pkg/middleware/auth"
	"github.com/ovchar/wa_storefront/pkg/tokens"
)

const (
	accessTTL  = 15 * time.Minute
	refreshTTL = 7 * 24 * time.Hour
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService is the identity provider behind the session gate: it
// authenticates credentials and validates/rotates issued sessions.
type AuthService struct {
	Repo          *repo.GormRepo
	JWTSecret     []byte
	RefreshSecret []byte
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, *authmw.RotatedPair, error) {
	if username == "" || password == "" {
		return nil, nil, fmt.Errorf("%w: username and password required", ErrValidation)
	}

	user, err := s.Repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issuePair(ctx, user.ID, user.Role)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Logout revokes the presented refresh token. An unparsable token is
// treated as already dead.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := tokens.RefreshClaimsFromToken(refreshToken, s.RefreshSecret)
	if err != nil || claims == nil {
		return nil
	}
	return s.Repo.RevokeRefreshToken(ctx, claims.ID)
}

// Rotate implements the session gate's Refresher: it checks the stored
// token, revokes it and issues a fresh pair.
func (s *AuthService) Rotate(ctx context.Context, refreshToken string) (*authmw.RotatedPair, error) {
	claims, err := tokens.RefreshClaimsFromToken(refreshToken, s.RefreshSecret)
	if err != nil || claims == nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	stored, err := s.Repo.GetRefreshToken(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("refresh token not found: %w", err)
	}
	if stored.Revoked {
		return nil, errors.New("refresh token revoked")
	}
	if time.Now().After(stored.ExpiresAt) {
		return nil, errors.New("refresh token expired")
	}

	user, err := s.Repo.GetUser(ctx, stored.UserID)
	if err != nil {
		return nil, fmt.Errorf("session user lookup: %w", err)
	}

	if err := s.Repo.RevokeRefreshToken(ctx, claims.ID); err != nil {
		return nil, err
	}
	return s.issuePair(ctx, user.ID, user.Role)
}

func (s *AuthService) CurrentUser(ctx context.Context, userID uint) (*models.User, error) {
	return s.Repo.GetUser(ctx, userID)
}

// SeedAdmin makes sure the configured admin account exists.
func (s *AuthService) SeedAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}

	_, err := s.Repo.GetUserByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return err
	}
	return s.Repo.CreateUser(ctx, &models.User{
		Username:     username,
		PasswordHash: pwHash,
		Role:         "admin",
	})
}

func (s *AuthService) issuePair(ctx context.Context, userID uint, role string) (*authmw.RotatedPair, error) {
	now := time.Now().UTC()
	accessExp := now.Add(accessTTL)
	refreshExp := now.Add(refreshTTL)

	access, err := tokens.NewAccessToken(userID, role, s.JWTSecret, accessExp)
	if err != nil {
		return nil, err
	}
	refresh, jti, err := tokens.NewRefreshToken(userID, s.RefreshSecret, refreshExp)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.SaveRefreshToken(ctx, jti, userID, refreshExp); err != nil {
		return nil, err
	}

	return &authmw.RotatedPair{
		AccessToken:  access,
		RefreshToken: refresh,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
	}, nil
}
