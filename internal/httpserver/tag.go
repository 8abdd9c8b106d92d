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

type TagHTTP struct {
	Svc *service.TagService
}

func (h *TagHTTP) GetTags(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "tag.get_tags")

	items, err := h.Svc.GetTags(ctx)
	if err != nil {
		l.Error("get_tags_error", "status", 500, "reason", "cannot list tags", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list tags")
	}

	return c.JSON(http.StatusOK, items)
}

func (h *TagHTTP) CreateTag(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "tag.create_tag")

	var req transport.CreateTagRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("tag_create_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	tag, err := h.Svc.CreateTag(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("tag_create_error", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if errors.Is(err, service.ErrConflict) {
			l.Warn("tag_create_error", "status", 409, "reason", "duplicate tag", "error", err)
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		l.Error("tag_create_error", "status", 500, "reason", "cannot add tag to db", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot add tag to db")
	}

	l.Info("create_tag_success", "tag_id", tag.ID)
	return c.JSON(http.StatusCreated, tag)
}

func (h *TagHTTP) PatchTag(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "tag.patch_tag")

	id, err := parseID(c)
	if err != nil {
		l.Warn("tag_patch_error", "status", 400, "reason", "invalid id", "error", err)
		return err
	}

	var req transport.PatchTagRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("tag_patch_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	tag, err := h.Svc.PatchTag(ctx, req, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("tag_patch_error", "status", 404, "reason", "tag not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "tag not found")
		}
		if errors.Is(err, service.ErrValidation) {
			l.Warn("tag_patch_error", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if errors.Is(err, service.ErrConflict) {
			l.Warn("tag_patch_error", "status", 409, "reason", "duplicate tag", "error", err)
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		l.Error("tag_patch_error", "status", 500, "reason", "cannot update tag", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update tag")
	}

	l.Info("patch_tag_success", "tag_id", tag.ID)
	return c.JSON(http.StatusOK, tag)
}

func (h *TagHTTP) DeleteTag(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "tag.delete_tag")

	id, err := parseID(c)
	if err != nil {
		l.Warn("tag_delete_error", "status", 400, "reason", "invalid id", "error", err)
		return err
	}

	if err := h.Svc.DeleteTag(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("tag_delete_error", "status", 404, "reason", "tag not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "tag not found")
		}
		l.Error("tag_delete_error", "status", 500, "reason", "cannot delete tag", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete tag")
	}

	l.Info("delete_tag_success", "tag_id", id)
	return c.NoContent(http.StatusNoContent)
}
