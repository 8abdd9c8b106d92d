package repo

import (
	"context"
	"time"

	"github.com/ovchar/wa_storefront/internal/models"
)

func (r *GormRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user := models.User{}
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user := models.User{}
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) CreateUser(ctx context.Context, user *models.User) error {
	return r.DB.WithContext(ctx).Create(user).Error
}

// Refresh tokens are stored by JTI so a stolen cookie can be revoked
// without keeping the raw token around.

func (r *GormRepo) SaveRefreshToken(ctx context.Context, jti string, userID uint, expiresAt time.Time) error {
	token := models.RefreshToken{
		Token:     jti,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}
	return r.DB.WithContext(ctx).Create(&token).Error
}

func (r *GormRepo) GetRefreshToken(ctx context.Context, jti string) (*models.RefreshToken, error) {
	token := models.RefreshToken{}
	if err := r.DB.WithContext(ctx).Where("token = ?", jti).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *GormRepo) RevokeRefreshToken(ctx context.Context, jti string) error {
	return r.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token = ?", jti).
		Update("revoked", true).Error
}
