package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/ovchar/wa_storefront/internal/events"
	"github.com/ovchar/wa_storefront/internal/search"
	"github.com/ovchar/wa_storefront/internal/service"
	"github.com/ovchar/wa_storefront/internal/transport"
	"github.com/ovchar/wa_storefront/pkg/logging"
)

type ProductHTTP struct {
	Svc      *service.CatalogService
	Producer *events.Producer
	Indexer  *search.Indexer
}

func (h *ProductHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, err := parseID(c)
	if err != nil {
		l.Warn("get_product_failed", "status", 400, "reason", "invalid id", "error", err)
		return err
	}

	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("get_product_failed", "status", 404, "reason", "product not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("get_product_failed", "status", 500, "reason", "cannot get product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get product")
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	items, err := h.Svc.GetProducts(ctx)
	if err != nil {
		l.Error("get_products_error", "status", 500, "reason", "cannot list products", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list products")
	}

	return c.JSON(http.StatusOK, items)
}

func (h *ProductHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_product")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_create_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	prod, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("product_create_error", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("product_create_error", "status", 500, "reason", "cannot add product to db", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot add product to db")
	}

	if err := h.Indexer.IndexProduct(ctx, prod); err != nil {
		l.Error("product_index_failed", "product_id", prod.ID, "error", err)
	}
	publish(c, h.Producer, events.TopicCatalog, fmt.Sprint(prod.ID), map[string]any{
		"type":      "product_created",
		"productID": prod.ID,
		"name":      prod.Name,
	})

	l.Info("create_product_success", "product_id", prod.ID)
	return c.JSON(http.StatusCreated, prod)
}

func (h *ProductHTTP) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.patch_product")

	id, err := parseID(c)
	if err != nil {
		l.Warn("product_patch_error", "status", 400, "reason", "invalid id", "error", err)
		return err
	}

	var req transport.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_patch_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	prod, err := h.Svc.PatchProduct(ctx, req, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("product_patch_error", "status", 404, "reason", "product not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		if errors.Is(err, service.ErrValidation) {
			l.Warn("product_patch_error", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("product_patch_error", "status", 500, "reason", "cannot update product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update product")
	}

	if err := h.Indexer.IndexProduct(ctx, prod); err != nil {
		l.Error("product_index_failed", "product_id", prod.ID, "error", err)
	}
	publish(c, h.Producer, events.TopicCatalog, fmt.Sprint(prod.ID), map[string]any{
		"type":      "product_updated",
		"productID": prod.ID,
		"name":      prod.Name,
	})

	l.Info("patch_product_success", "product_id", prod.ID)
	return c.JSON(http.StatusOK, prod)
}

func (h *ProductHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete_product")

	id, err := parseID(c)
	if err != nil {
		l.Warn("product_delete_error", "status", 400, "reason", "invalid id", "error", err)
		return err
	}

	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("product_delete_error", "status", 404, "reason", "product not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("product_delete_error", "status", 500, "reason", "cannot delete product from db", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete product from db")
	}

	if err := h.Indexer.DeleteProduct(ctx, id); err != nil {
		l.Error("product_index_failed", "product_id", id, "error", err)
	}
	publish(c, h.Producer, events.TopicCatalog, fmt.Sprint(id), map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})

	l.Info("delete_product_success", "product_id", id)
	return c.NoContent(http.StatusNoContent)
}
