package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ovchar/wa_storefront/internal/models"
	"github.com/ovchar/wa_storefront/internal/repo"
	"github.com/ovchar/wa_storefront/internal/storage"
	"github.com/ovchar/wa_storefront/internal/transport"
)

const minNameLen = 2

type CatalogService struct {
	Repo   *repo.GormRepo
	Images storage.ImageStore
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	return s.Repo.GetProduct(ctx, id)
}

func (s *CatalogService) GetProducts(ctx context.Context) ([]models.Product, error) {
	return s.Repo.GetProducts(ctx)
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	if len(req.Name) < minNameLen {
		return nil, fmt.Errorf("%w: name must be at least %d characters", ErrValidation, minNameLen)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	if req.StockQuantity < 0 {
		return nil, fmt.Errorf("%w: stock_quantity must be >= 0", ErrValidation)
	}
	if err := s.checkReferences(ctx, req.CategoryID, req.Tags); err != nil {
		return nil, err
	}

	imageURL, err := s.uploadImage(ctx, req.ImageData)
	if err != nil {
		return nil, err
	}

	prod := &models.Product{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		CategoryID:    req.CategoryID,
		ImageURL:      imageURL,
	}
	return s.Repo.CreateProduct(ctx, prod, req.Tags)
}

func (s *CatalogService) PatchProduct(ctx context.Context, req transport.PatchProductRequest, id uint) (*models.Product, error) {
	if req.Name != nil && len(*req.Name) < minNameLen {
		return nil, fmt.Errorf("%w: name must be at least %d characters", ErrValidation, minNameLen)
	}
	if req.Price != nil && *req.Price < 0 {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	if req.StockQuantity != nil && *req.StockQuantity < 0 {
		return nil, fmt.Errorf("%w: stock_quantity must be >= 0", ErrValidation)
	}

	var tags []uint
	if req.Tags != nil {
		tags = *req.Tags
	}
	if err := s.checkReferences(ctx, req.CategoryID, tags); err != nil {
		return nil, err
	}

	var imageURL string
	if req.ImageData != nil {
		url, err := s.uploadImage(ctx, *req.ImageData)
		if err != nil {
			return nil, err
		}
		imageURL = url
	}

	return s.Repo.PatchProduct(ctx, req, id, imageURL)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	return s.Repo.DeleteProduct(ctx, id)
}

// checkReferences validates the weak references before any write: an
// unknown category or tag rejects the request instead of persisting a
// dangling link.
func (s *CatalogService) checkReferences(ctx context.Context, categoryID *uint, tags []uint) error {
	if categoryID != nil {
		exists, err := s.Repo.CategoryExists(ctx, *categoryID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: category %d does not exist", ErrValidation, *categoryID)
		}
	}
	if len(tags) > 0 {
		ok, err := s.Repo.TagsExist(ctx, tags)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: unknown tag id", ErrValidation)
		}
	}
	return nil
}

func (s *CatalogService) uploadImage(ctx context.Context, imageData string) (string, error) {
	if imageData == "" {
		return "", nil
	}
	if s.Images == nil {
		return "", fmt.Errorf("%w: image upload is not configured", ErrValidation)
	}

	contentType, data, err := storage.DecodeDataURL(imageData)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrValidation, err)
	}
	url, err := s.Images.Put(ctx, storage.ImageKey(contentType), contentType, data)
	if err != nil {
		return "", err
	}
	return url, nil
}

// IsMissing reports whether err means "row not found" regardless of
// which layer produced it.
func IsMissing(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}
