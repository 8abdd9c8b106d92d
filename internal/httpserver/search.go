package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ovchar/wa_storefront/internal/search"
	"github.com/ovchar/wa_storefront/internal/util"
	"github.com/ovchar/wa_storefront/pkg/logging"
)

type SearchHTTP struct {
	Indexer *search.Indexer
}

func (h *SearchHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search_products")

	if h.Indexer == nil {
		l.Warn("search_products_error", "status", 503, "reason", "search not configured")
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search is not configured")
	}

	q := c.QueryParam("q")
	if q == "" {
		l.Warn("search_products_error", "status", 400, "reason", "missing query")
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter q is required")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, limit := util.Calculate(page, size)

	total, products, err := h.Indexer.Search(ctx, q, from, limit)
	if err != nil {
		l.Error("search_products_error", "status", 500, "reason", "search failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "search failed")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"total":    total,
		"products": products,
	})
}
