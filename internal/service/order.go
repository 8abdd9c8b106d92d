package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ovchar/wa_storefront/internal/models"
	"github.com/ovchar/wa_storefront/internal/repo"
	"github.com/ovchar/wa_storefront/internal/transport"
)

type OrderService struct {
	Repo *repo.GormRepo
}

// CreateOrder validates the submission, snapshots the item prices and
// hands the whole order to the ledger as one transactional write.
func (s *OrderService) CreateOrder(ctx context.Context, req transport.CreateOrderRequest) (*models.Order, error) {
	if req.CustomerWhatsapp == "" {
		return nil, fmt.Errorf("%w: customer_whatsapp required", ErrValidation)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: items required", ErrValidation)
	}

	var total float64
	items := make([]models.OrderItem, 0, len(req.Items))
	for i := range req.Items {
		if req.Items[i].ProductID == 0 {
			return nil, fmt.Errorf("%w: product_id required", ErrValidation)
		}
		if req.Items[i].Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be >= 1", ErrValidation)
		}
		if req.Items[i].Price < 0 {
			return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
		}

		lineTotal := float64(req.Items[i].Quantity) * req.Items[i].Price
		total += lineTotal
		items = append(items, models.OrderItem{
			ProductID: req.Items[i].ProductID,
			Quantity:  req.Items[i].Quantity,
			Price:     req.Items[i].Price,
		})
	}

	order := &models.Order{
		CustomerWhatsapp: req.CustomerWhatsapp,
		Status:           models.OrderStatusNew,
		Total:            total,
		Items:            items,
	}

	created, err := s.Repo.CreateOrder(ctx, order)
	switch {
	case errors.Is(err, repo.ErrProductMissing):
		return nil, fmt.Errorf("%w: ordered product does not exist", ErrNotFound)
	case errors.Is(err, repo.ErrInsufficientStock):
		return nil, fmt.Errorf("%w: insufficient stock", ErrConflict)
	}
	return created, err
}

func (s *OrderService) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	return s.Repo.GetOrder(ctx, id)
}

func (s *OrderService) ListOrders(ctx context.Context, offset, limit int) (int64, []models.Order, error) {
	return s.Repo.ListOrders(ctx, offset, limit)
}

// UpdateOrderStatus persists any non-empty status string; the recognized
// values are only a UI convention, the ledger does not police them.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id uint, status string) (*models.Order, error) {
	if status == "" {
		return nil, fmt.Errorf("%w: status required", ErrValidation)
	}
	return s.Repo.UpdateOrderStatus(ctx, id, status)
}

func (s *OrderService) DeleteOrder(ctx context.Context, id uint) error {
	return s.Repo.DeleteOrder(ctx, id)
}
