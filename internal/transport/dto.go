package transport

type CreateProductRequest struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
	CategoryID    *uint   `json:"category_id"`
	Tags          []uint  `json:"tags"`
	ImageData     string  `json:"image_data"`
}

type PatchProductRequest struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price"`
	StockQuantity *int     `json:"stock_quantity"`
	CategoryID    *uint    `json:"category_id"`
	Tags          *[]uint  `json:"tags"`
	ImageData     *string  `json:"image_data"`
}

type CreateCategoryRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
	Tags []uint `json:"tags"`
}

type PatchCategoryRequest struct {
	Name *string `json:"name"`
	Slug *string `json:"slug"`
	Tags *[]uint `json:"tags"`
}

type CreateTagRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type PatchTagRequest struct {
	Name *string `json:"name"`
	Slug *string `json:"slug"`
}

type CreateOrderItem struct {
	ProductID uint    `json:"product_id"`
	Quantity  uint    `json:"quantity"`
	Price     float64 `json:"price"`
}

type CreateOrderRequest struct {
	CustomerWhatsapp string            `json:"customer_whatsapp"`
	Items            []CreateOrderItem `json:"items"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

type PatchSettingRequest struct {
	SiteName       *string `json:"site_name"`
	SiteEmail      *string `json:"site_email"`
	Currency       *string `json:"currency"`
	ContactNumber  *string `json:"contact_number"`
	WhatsappNumber *string `json:"whatsapp_number"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
