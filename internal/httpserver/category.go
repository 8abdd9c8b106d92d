package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/ovchar/wa_storefront/internal/service"
	"github.com/ovchar/wa_storefront/internal/transport"
	"github.com/ovchar/wa_storefront/pkg/logging"
)

type CategoryHTTP struct {
	Svc *service.CategoryService
}

func (h *CategoryHTTP) GetCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.get_category")

	id, err := parseID(c)
	if err != nil {
		l.Warn("get_category_failed", "status", 400, "reason", "invalid id", "error", err)
		return err
	}

	cat, err := h.Svc.GetCategory(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("get_category_failed", "status", 404, "reason", "category not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "category not found")
		}
		l.Error("get_category_failed", "status", 500, "reason", "cannot get category", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get category")
	}

	return c.JSON(http.StatusOK, cat)
}

func (h *CategoryHTTP) GetCategories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.get_categories")

	items, err := h.Svc.GetCategories(ctx)
	if err != nil {
		l.Error("get_categories_error", "status", 500, "reason", "cannot list categories", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list categories")
	}

	return c.JSON(http.StatusOK, items)
}

func (h *CategoryHTTP) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.create_category")

	var req transport.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("category_create_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	cat, err := h.Svc.CreateCategory(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("category_create_error", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if errors.Is(err, service.ErrConflict) {
			l.Warn("category_create_error", "status", 409, "reason", "slug taken", "error", err)
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		l.Error("category_create_error", "status", 500, "reason", "cannot add category to db", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot add category to db")
	}

	l.Info("create_category_success", "category_id", cat.ID)
	return c.JSON(http.StatusCreated, cat)
}

func (h *CategoryHTTP) PatchCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.patch_category")

	id, err := parseID(c)
	if err != nil {
		l.Warn("category_patch_error", "status", 400, "reason", "invalid id", "error", err)
		return err
	}

	var req transport.PatchCategoryRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("category_patch_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	cat, err := h.Svc.PatchCategory(ctx, req, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("category_patch_error", "status", 404, "reason", "category not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "category not found")
		}
		if errors.Is(err, service.ErrValidation) {
			l.Warn("category_patch_error", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if errors.Is(err, service.ErrConflict) {
			l.Warn("category_patch_error", "status", 409, "reason", "slug taken", "error", err)
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		l.Error("category_patch_error", "status", 500, "reason", "cannot update category", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update category")
	}

	l.Info("patch_category_success", "category_id", cat.ID)
	return c.JSON(http.StatusOK, cat)
}

func (h *CategoryHTTP) DeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.delete_category")

	id, err := parseID(c)
	if err != nil {
		l.Warn("category_delete_error", "status", 400, "reason", "invalid id", "error", err)
		return err
	}

	if err := h.Svc.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("category_delete_error", "status", 404, "reason", "category not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "category not found")
		}
		if errors.Is(err, service.ErrConflict) {
			l.Warn("category_delete_error", "status", 409, "reason", "category has products", "error", err)
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		l.Error("category_delete_error", "status", 500, "reason", "cannot delete category", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete category")
	}

	l.Info("delete_category_success", "category_id", id)
	return c.NoContent(http.StatusNoContent)
}
