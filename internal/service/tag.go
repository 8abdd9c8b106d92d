package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ovchar/wa_storefront/internal/models"
	"github.com/ovchar/wa_storefront/internal/repo"
	"github.com/ovchar/wa_storefront/internal/transport"
	"github.com/ovchar/wa_storefront/internal/util"
)

type TagService struct {
	Repo *repo.GormRepo
}

func (s *TagService) GetTags(ctx context.Context) ([]models.Tag, error) {
	return s.Repo.GetTags(ctx)
}

func (s *TagService) CreateTag(ctx context.Context, req transport.CreateTagRequest) (*models.Tag, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	slug := req.Slug
	if slug == "" {
		slug = util.Slugify(req.Name)
	}

	tag, err := s.Repo.CreateTag(ctx, &models.Tag{Name: req.Name, Slug: slug})
	if errors.Is(err, repo.ErrDuplicate) {
		return nil, fmt.Errorf("%w: tag name or slug already exists", ErrConflict)
	}
	return tag, err
}

func (s *TagService) PatchTag(ctx context.Context, req transport.PatchTagRequest, id uint) (*models.Tag, error) {
	if req.Name != nil && *req.Name == "" {
		return nil, fmt.Errorf("%w: name must not be empty", ErrValidation)
	}
	if req.Slug != nil && *req.Slug == "" {
		return nil, fmt.Errorf("%w: slug must not be empty", ErrValidation)
	}

	tag, err := s.Repo.PatchTag(ctx, req, id)
	if errors.Is(err, repo.ErrDuplicate) {
		return nil, fmt.Errorf("%w: tag name or slug already exists", ErrConflict)
	}
	return tag, err
}

func (s *TagService) DeleteTag(ctx context.Context, id uint) error {
	return s.Repo.DeleteTag(ctx, id)
}
