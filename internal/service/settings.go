package service

import (
	"context"

	"github.com/ovchar/wa_storefront/internal/models"
	"github.com/ovchar/wa_storefront/internal/repo"
	"github.com/ovchar/wa_storefront/internal/transport"
)

type SettingsService struct {
	Repo *repo.GormRepo
}

func (s *SettingsService) Get(ctx context.Context) (*models.Setting, error) {
	return s.Repo.GetSetting(ctx)
}

func (s *SettingsService) Update(ctx context.Context, req transport.PatchSettingRequest) (*models.Setting, error) {
	return s.Repo.UpdateSetting(ctx, req)
}
