package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/ovchar/wa_storefront/internal/events"
	"github.com/ovchar/wa_storefront/internal/service"
	"github.com/ovchar/wa_storefront/internal/transport"
	"github.com/ovchar/wa_storefront/internal/util"
	"github.com/ovchar/wa_storefront/pkg/logging"
)

type OrderHTTP struct {
	Svc      *service.OrderService
	Producer *events.Producer
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create_order")

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.CreateOrder(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_order_error", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("create_order_error", "status", 404, "reason", "product not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		if errors.Is(err, service.ErrConflict) {
			l.Warn("create_order_error", "status", 409, "reason", "insufficient stock", "error", err)
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		l.Error("create_order_error", "status", 500, "reason", "cannot create order", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create order")
	}

	publish(c, h.Producer, events.TopicOrders, fmt.Sprint(order.ID), map[string]any{
		"type":    "order_created",
		"orderID": order.ID,
		"total":   order.Total,
	})

	l.Info("create_order_success", "order_id", order.ID)
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_order")

	id, err := parseID(c)
	if err != nil {
		l.Warn("get_order_error", "status", 400, "reason", "invalid id", "error", err)
		return err
	}

	order, err := h.Svc.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("get_order_error", "status", 404, "reason", "order not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		l.Error("get_order_error", "status", 500, "reason", "cannot get order", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get order")
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) GetOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_orders")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, orders, err := h.Svc.ListOrders(ctx, offset, limit)
	if err != nil {
		l.Error("get_orders_error", "status", 500, "reason", "cannot list orders", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list orders")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": orders,
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	})
}

func (h *OrderHTTP) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	id, err := parseID(c)
	if err != nil {
		l.Warn("order_status_error", "status", 400, "reason", "invalid id", "error", err)
		return err
	}

	var req transport.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("order_status_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.UpdateOrderStatus(ctx, id, req.Status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("order_status_error", "status", 404, "reason", "order not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		if errors.Is(err, service.ErrValidation) {
			l.Warn("order_status_error", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("order_status_error", "status", 500, "reason", "cannot update order", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update order")
	}

	publish(c, h.Producer, events.TopicOrders, fmt.Sprint(order.ID), map[string]any{
		"type":    "order_status_changed",
		"orderID": order.ID,
		"status":  order.Status,
	})

	l.Info("update_order_status_success", "order_id", order.ID, "order_status", order.Status)
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) DeleteOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.delete_order")

	id, err := parseID(c)
	if err != nil {
		l.Warn("order_delete_error", "status", 400, "reason", "invalid id", "error", err)
		return err
	}

	if err := h.Svc.DeleteOrder(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("order_delete_error", "status", 404, "reason", "order not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		l.Error("order_delete_error", "status", 500, "reason", "cannot delete order", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete order")
	}

	l.Info("delete_order_success", "order_id", id)
	return c.NoContent(http.StatusNoContent)
}
