package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ovchar/wa_storefront/internal/service"
	"github.com/ovchar/wa_storefront/internal/transport"
	"github.com/ovchar/wa_storefront/pkg/logging"
)

type SettingsHTTP struct {
	Svc *service.SettingsService
}

func (h *SettingsHTTP) GetSettings(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "settings.get_settings")

	setting, err := h.Svc.Get(ctx)
	if err != nil {
		l.Error("get_settings_error", "status", 500, "reason", "cannot load settings", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load settings")
	}

	return c.JSON(http.StatusOK, setting)
}

func (h *SettingsHTTP) PatchSettings(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "settings.patch_settings")

	var req transport.PatchSettingRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("settings_patch_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	setting, err := h.Svc.Update(ctx, req)
	if err != nil {
		l.Error("settings_patch_error", "status", 500, "reason", "cannot update settings", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update settings")
	}

	l.Info("patch_settings_success")
	return c.JSON(http.StatusOK, setting)
}
