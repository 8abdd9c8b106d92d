package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/ovchar/wa_storefront/internal/models"
)

// CreateOrder persists the order, its items and the stock decrements in
// a single transaction. Any missing product or exhausted stock rolls the
// whole order back.
func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	txErr := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		for _, item := range order.Items {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock_quantity >= ?", item.ProductID, item.Quantity).
				UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				var count int64
				if err := tx.Model(&models.Product{}).
					Where("id = ?", item.ProductID).Count(&count).Error; err != nil {
					return err
				}
				if count == 0 {
					return ErrProductMissing
				}
				return ErrInsufficientStock
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return order, nil
}

func (r *GormRepo) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	order := models.Order{}
	if err := r.DB.WithContext(ctx).Preload("Items").First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, offset, limit int) (int64, []models.Order, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Order{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var orders []models.Order
	if err := r.DB.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&orders).Error; err != nil {
		return 0, nil, err
	}
	return total, orders, nil
}

func (r *GormRepo) UpdateOrderStatus(ctx context.Context, id uint, status string) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").First(&order, id).Error; err != nil {
		return nil, err
	}
	order.Status = status
	if err := r.DB.WithContext(ctx).Omit("Items").Save(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// DeleteOrder removes the items and the order together so a failure
// cannot leave orphaned items behind.
func (r *GormRepo) DeleteOrder(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Order{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
