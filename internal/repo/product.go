package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ovchar/wa_storefront/internal/models"
	"github.com/ovchar/wa_storefront/internal/transport"
)

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product := models.Product{}
	if err := r.DB.WithContext(ctx).
		Preload("Category").
		Preload("Category.Tags").
		Preload("Tags").
		First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) GetProducts(ctx context.Context) ([]models.Product, error) {
	var items []models.Product
	if err := r.DB.WithContext(ctx).
		Preload("Category").
		Preload("Tags").
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CreateProduct inserts the product and its tag links in one transaction.
// The stored tag set is the union of the explicit tags and the tags
// currently attached to the product's category.
func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product, tagIDs []uint) (*models.Product, error) {
	txErr := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Category").Create(prod).Error; err != nil {
			return err
		}
		return linkProductTags(tx, prod.ID, tagIDs, prod.CategoryID)
	})
	if txErr != nil {
		return nil, txErr
	}
	return r.GetProduct(ctx, prod.ID)
}

func (r *GormRepo) PatchProduct(ctx context.Context, req transport.PatchProductRequest, id uint, imageURL string) (*models.Product, error) {
	txErr := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prod models.Product
		if err := tx.First(&prod, id).Error; err != nil {
			return err
		}

		if req.Name != nil {
			prod.Name = *req.Name
		}
		if req.Description != nil {
			prod.Description = *req.Description
		}
		if req.Price != nil {
			prod.Price = *req.Price
		}
		if req.StockQuantity != nil {
			prod.StockQuantity = *req.StockQuantity
		}
		if req.CategoryID != nil {
			prod.CategoryID = req.CategoryID
		}
		if imageURL != "" {
			prod.ImageURL = imageURL
		}

		if err := tx.Omit("Tags", "Category").Save(&prod).Error; err != nil {
			return err
		}

		if req.Tags != nil {
			if err := tx.Where("product_id = ?", prod.ID).
				Delete(&models.ProductTag{}).Error; err != nil {
				return err
			}
			return linkProductTags(tx, prod.ID, *req.Tags, prod.CategoryID)
		}
		if req.CategoryID != nil {
			// Category changed without an explicit tag list: only the
			// inherited links are unioned in, existing links stay.
			return linkProductTags(tx, prod.ID, nil, prod.CategoryID)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return r.GetProduct(ctx, id)
}

// DeleteProduct removes the tag links first, then the row.
func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).
			Delete(&models.ProductTag{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Product{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *GormRepo) CategoryExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.Category{}).
		Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// linkProductTags inserts the explicit links plus the inherited category
// links; duplicate pairs are no-ops.
func linkProductTags(tx *gorm.DB, productID uint, tagIDs []uint, categoryID *uint) error {
	ids := append([]uint(nil), tagIDs...)

	if categoryID != nil {
		var inherited []models.CategoryTag
		if err := tx.Where("category_id = ?", *categoryID).
			Find(&inherited).Error; err != nil {
			return err
		}
		for _, link := range inherited {
			ids = append(ids, link.TagID)
		}
	}

	if len(ids) == 0 {
		return nil
	}

	links := make([]models.ProductTag, 0, len(ids))
	seen := make(map[uint]struct{}, len(ids))
	for _, tagID := range ids {
		if _, ok := seen[tagID]; ok {
			continue
		}
		seen[tagID] = struct{}{}
		links = append(links, models.ProductTag{ProductID: productID, TagID: tagID})
	}

	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
}
