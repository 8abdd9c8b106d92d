package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ovchar/wa_storefront/internal/models"
	"github.com/ovchar/wa_storefront/internal/transport"
)

func (r *GormRepo) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	cat := models.Category{}
	if err := r.DB.WithContext(ctx).Preload("Tags").First(&cat, id).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *GormRepo) GetCategories(ctx context.Context) ([]models.Category, error) {
	var items []models.Category
	if err := r.DB.WithContext(ctx).Preload("Tags").Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateCategory(ctx context.Context, cat *models.Category, tagIDs []uint) (*models.Category, error) {
	txErr := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if dup, err := slugTaken(tx, cat.Slug, 0); err != nil {
			return err
		} else if dup {
			return ErrDuplicate
		}
		if err := tx.Omit("Tags").Create(cat).Error; err != nil {
			return err
		}
		return replaceCategoryTags(tx, cat.ID, tagIDs)
	})
	if txErr != nil {
		return nil, txErr
	}
	return r.GetCategory(ctx, cat.ID)
}

func (r *GormRepo) PatchCategory(ctx context.Context, req transport.PatchCategoryRequest, id uint) (*models.Category, error) {
	txErr := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cat models.Category
		if err := tx.First(&cat, id).Error; err != nil {
			return err
		}

		if req.Name != nil {
			cat.Name = *req.Name
		}
		if req.Slug != nil {
			cat.Slug = *req.Slug
		}
		if dup, err := slugTaken(tx, cat.Slug, cat.ID); err != nil {
			return err
		} else if dup {
			return ErrDuplicate
		}
		if err := tx.Omit("Tags").Save(&cat).Error; err != nil {
			return err
		}

		if req.Tags != nil {
			return replaceCategoryTags(tx, cat.ID, *req.Tags)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return r.GetCategory(ctx, id)
}

// DeleteCategory refuses to remove a category that still has products.
// The successful path removes the category's tag links; product tags
// inherited from the category stay where they are.
func (r *GormRepo) DeleteCategory(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var products int64
		if err := tx.Model(&models.Product{}).
			Where("category_id = ?", id).Count(&products).Error; err != nil {
			return err
		}
		if products > 0 {
			return ErrCategoryInUse
		}

		if err := tx.Where("category_id = ?", id).
			Delete(&models.CategoryTag{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Category{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func slugTaken(tx *gorm.DB, slug string, excludeID uint) (bool, error) {
	var count int64
	q := tx.Model(&models.Category{}).Where("slug = ?", slug)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// replaceCategoryTags swaps the category's tag set and propagates every
// newly added tag onto the category's products. Removed tags are only
// detached from the category; links already inherited by products are
// kept (one-directional propagation).
func replaceCategoryTags(tx *gorm.DB, categoryID uint, tagIDs []uint) error {
	var existing []models.CategoryTag
	if err := tx.Where("category_id = ?", categoryID).Find(&existing).Error; err != nil {
		return err
	}
	had := make(map[uint]struct{}, len(existing))
	for _, link := range existing {
		had[link.TagID] = struct{}{}
	}

	if err := tx.Where("category_id = ?", categoryID).
		Delete(&models.CategoryTag{}).Error; err != nil {
		return err
	}

	var added []uint
	links := make([]models.CategoryTag, 0, len(tagIDs))
	seen := make(map[uint]struct{}, len(tagIDs))
	for _, tagID := range tagIDs {
		if _, ok := seen[tagID]; ok {
			continue
		}
		seen[tagID] = struct{}{}
		links = append(links, models.CategoryTag{CategoryID: categoryID, TagID: tagID})
		if _, ok := had[tagID]; !ok {
			added = append(added, tagID)
		}
	}
	if len(links) > 0 {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error; err != nil {
			return err
		}
	}

	if len(added) == 0 {
		return nil
	}

	var productIDs []uint
	if err := tx.Model(&models.Product{}).
		Where("category_id = ?", categoryID).
		Pluck("id", &productIDs).Error; err != nil {
		return err
	}
	if len(productIDs) == 0 {
		return nil
	}

	inherited := make([]models.ProductTag, 0, len(productIDs)*len(added))
	for _, productID := range productIDs {
		for _, tagID := range added {
			inherited = append(inherited, models.ProductTag{ProductID: productID, TagID: tagID})
		}
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&inherited).Error
}
