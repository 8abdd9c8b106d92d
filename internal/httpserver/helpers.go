package httpserver

import (
	"context"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ovchar/wa_storefront/internal/events"
	"github.com/ovchar/wa_storefront/pkg/logging"
)

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(400, "id is not a positive integer")
	}
	return uint(id), nil
}

// publish sends a domain event best-effort: a broker failure is logged
// and never fails the request.
func publish(c echo.Context, p *events.Producer, topic, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("event_publish_failed", "topic", topic, "error", err)
	}
}
