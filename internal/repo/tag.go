package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/ovchar/wa_storefront/internal/models"
	"github.com/ovchar/wa_storefront/internal/transport"
)

func (r *GormRepo) GetTags(ctx context.Context) ([]models.Tag, error) {
	var items []models.Tag
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateTag(ctx context.Context, tag *models.Tag) (*models.Tag, error) {
	txErr := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if dup, err := tagTaken(tx, tag.Name, tag.Slug, 0); err != nil {
			return err
		} else if dup {
			return ErrDuplicate
		}
		return tx.Create(tag).Error
	})
	if txErr != nil {
		return nil, txErr
	}
	return tag, nil
}

func (r *GormRepo) PatchTag(ctx context.Context, req transport.PatchTagRequest, id uint) (*models.Tag, error) {
	var tag models.Tag
	txErr := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&tag, id).Error; err != nil {
			return err
		}
		if req.Name != nil {
			tag.Name = *req.Name
		}
		if req.Slug != nil {
			tag.Slug = *req.Slug
		}
		if dup, err := tagTaken(tx, tag.Name, tag.Slug, tag.ID); err != nil {
			return err
		} else if dup {
			return ErrDuplicate
		}
		return tx.Save(&tag).Error
	})
	if txErr != nil {
		return nil, txErr
	}
	return &tag, nil
}

// DeleteTag removes the tag and every product/category link pointing at it.
func (r *GormRepo) DeleteTag(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&models.ProductTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tag_id = ?", id).Delete(&models.CategoryTag{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Tag{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *GormRepo) TagsExist(ctx context.Context, ids []uint) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}
	seen := make(map[uint]struct{}, len(ids))
	unique := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.Tag{}).
		Where("id IN ?", unique).Count(&count).Error; err != nil {
		return false, err
	}
	return count == int64(len(unique)), nil
}

func tagTaken(tx *gorm.DB, name, slug string, excludeID uint) (bool, error) {
	var count int64
	q := tx.Model(&models.Tag{}).Where("name = ? OR slug = ?", name, slug)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
