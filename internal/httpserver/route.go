package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/ovchar/wa_storefront/pkg/middleware/auth"
)

type Deps struct {
	Products   *ProductHTTP
	Categories *CategoryHTTP
	Tags       *TagHTTP
	Orders     *OrderHTTP
	Settings   *SettingsHTTP
	Auth       *AuthHTTP
	Search     *SearchHTTP
	Gate       *authmw.SessionGate
}

// Register wires the full HTTP surface. Reads on the catalog, tags and
// settings stay public for the storefront; every mutation and the order
// listing go through the session gate.
func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	gate := d.Gate.RequireSession

	api := e.Group("/api")

	api.POST("/login", d.Auth.Login)
	api.POST("/logout", d.Auth.Logout)
	api.GET("/user", d.Auth.CurrentUser, gate)

	products := api.Group("/products")
	products.GET("", d.Products.GetProducts)
	products.GET("/search", d.Search.SearchProducts)
	products.GET("/:id", d.Products.GetProduct)
	products.POST("", d.Products.CreateProduct, gate)
	products.PATCH("/:id", d.Products.PatchProduct, gate)
	products.DELETE("/:id", d.Products.DeleteProduct, gate)

	categories := api.Group("/categories")
	categories.GET("", d.Categories.GetCategories)
	categories.GET("/:id", d.Categories.GetCategory)
	categories.POST("", d.Categories.CreateCategory, gate)
	categories.PATCH("/:id", d.Categories.PatchCategory, gate)
	categories.DELETE("/:id", d.Categories.DeleteCategory, gate)

	tags := api.Group("/tags")
	tags.GET("", d.Tags.GetTags)
	tags.POST("", d.Tags.CreateTag, gate)
	tags.PATCH("/:id", d.Tags.PatchTag, gate)
	tags.DELETE("/:id", d.Tags.DeleteTag, gate)

	orders := api.Group("/orders")
	orders.POST("", d.Orders.CreateOrder)
	orders.GET("", d.Orders.GetOrders, gate)
	orders.GET("/:id", d.Orders.GetOrder, gate)
	orders.PATCH("/:id/status", d.Orders.UpdateOrderStatus, gate)
	orders.DELETE("/:id", d.Orders.DeleteOrder, gate)

	settings := api.Group("/settings")
	settings.GET("", d.Settings.GetSettings)
	settings.PATCH("", d.Settings.PatchSettings, gate)
}
