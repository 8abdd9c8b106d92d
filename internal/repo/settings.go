package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ovchar/wa_storefront/internal/models"
	"github.com/ovchar/wa_storefront/internal/transport"
)

func (r *GormRepo) GetSetting(ctx context.Context) (*models.Setting, error) {
	setting := models.Setting{}
	if err := r.DB.WithContext(ctx).First(&setting).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

// SeedSetting creates the singleton row once; later boots leave it alone.
func (r *GormRepo) SeedSetting(ctx context.Context, defaults models.Setting) error {
	err := r.DB.WithContext(ctx).First(&models.Setting{}).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.DB.WithContext(ctx).Create(&defaults).Error
}

func (r *GormRepo) UpdateSetting(ctx context.Context, req transport.PatchSettingRequest) (*models.Setting, error) {
	var setting models.Setting
	if err := r.DB.WithContext(ctx).First(&setting).Error; err != nil {
		return nil, err
	}

	if req.SiteName != nil {
		setting.SiteName = *req.SiteName
	}
	if req.SiteEmail != nil {
		setting.SiteEmail = *req.SiteEmail
	}
	if req.Currency != nil {
		setting.Currency = *req.Currency
	}
	if req.ContactNumber != nil {
		setting.ContactNumber = *req.ContactNumber
	}
	if req.WhatsappNumber != nil {
		setting.WhatsappNumber = *req.WhatsappNumber
	}

	if err := r.DB.WithContext(ctx).Save(&setting).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}
