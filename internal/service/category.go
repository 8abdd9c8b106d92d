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

type CategoryService struct {
	Repo *repo.GormRepo
}

func (s *CategoryService) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	return s.Repo.GetCategory(ctx, id)
}

func (s *CategoryService) GetCategories(ctx context.Context) ([]models.Category, error) {
	return s.Repo.GetCategories(ctx)
}

func (s *CategoryService) CreateCategory(ctx context.Context, req transport.CreateCategoryRequest) (*models.Category, error) {
	if len(req.Name) < minNameLen {
		return nil, fmt.Errorf("%w: name must be at least %d characters", ErrValidation, minNameLen)
	}
	if len(req.Tags) > 0 {
		ok, err := s.Repo.TagsExist(ctx, req.Tags)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: unknown tag id", ErrValidation)
		}
	}

	slug := req.Slug
	if slug == "" {
		slug = util.Slugify(req.Name)
	}

	cat := &models.Category{Name: req.Name, Slug: slug}
	created, err := s.Repo.CreateCategory(ctx, cat, req.Tags)
	if errors.Is(err, repo.ErrDuplicate) {
		return nil, fmt.Errorf("%w: slug %q is already taken", ErrConflict, slug)
	}
	return created, err
}

func (s *CategoryService) PatchCategory(ctx context.Context, req transport.PatchCategoryRequest, id uint) (*models.Category, error) {
	if req.Name != nil && len(*req.Name) < minNameLen {
		return nil, fmt.Errorf("%w: name must be at least %d characters", ErrValidation, minNameLen)
	}
	if req.Slug != nil && *req.Slug == "" {
		return nil, fmt.Errorf("%w: slug must not be empty", ErrValidation)
	}
	if req.Tags != nil && len(*req.Tags) > 0 {
		ok, err := s.Repo.TagsExist(ctx, *req.Tags)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: unknown tag id", ErrValidation)
		}
	}

	updated, err := s.Repo.PatchCategory(ctx, req, id)
	if errors.Is(err, repo.ErrDuplicate) {
		return nil, fmt.Errorf("%w: slug is already taken", ErrConflict)
	}
	return updated, err
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id uint) error {
	err := s.Repo.DeleteCategory(ctx, id)
	if errors.Is(err, repo.ErrCategoryInUse) {
		return fmt.Errorf("%w: category still has products", ErrConflict)
	}
	return err
}
