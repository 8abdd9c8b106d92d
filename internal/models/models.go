package models

import "time"

const (
	OrderStatusNew        = "New"
	OrderStatusProcessing = "Processing"
	OrderStatusCompleted  = "Completed"
)

type Product struct {
	ID            uint      `gorm:"primaryKey;autoIncrement"       json:"id"`
	Name          string    `gorm:"not null"                       json:"name"`
	Description   string    `json:"description"`
	Price         float64   `gorm:"not null;check:price >= 0"      json:"price"`
	StockQuantity int       `gorm:"not null;default:0"             json:"stock_quantity"`
	CategoryID    *uint     `gorm:"index"                          json:"category_id"`
	Category      *Category `gorm:"foreignKey:CategoryID"          json:"category,omitempty"`
	ImageURL      string    `json:"image_url"`
	Tags          []Tag     `gorm:"many2many:product_tags"         json:"tags"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Category struct {
	ID   uint   `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name string `gorm:"not null"                  json:"name"`
	Slug string `gorm:"uniqueIndex;not null"      json:"slug"`
	Tags []Tag  `gorm:"many2many:category_tags"   json:"tags"`
}

type Tag struct {
	ID   uint   `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name string `gorm:"uniqueIndex;not null"      json:"name"`
	Slug string `gorm:"uniqueIndex;not null"      json:"slug"`
}

// ProductTag and CategoryTag map onto the same join tables as the
// many2many relations above; the resolver manipulates links directly.
type ProductTag struct {
	ProductID uint `gorm:"primaryKey" json:"product_id"`
	TagID     uint `gorm:"primaryKey" json:"tag_id"`
}

type CategoryTag struct {
	CategoryID uint `gorm:"primaryKey" json:"category_id"`
	TagID      uint `gorm:"primaryKey" json:"tag_id"`
}

type Order struct {
	ID               uint        `gorm:"primaryKey;autoIncrement"  json:"id"`
	CustomerWhatsapp string      `gorm:"not null"                  json:"customer_whatsapp"`
	Status           string      `gorm:"not null"                  json:"status"`
	Total            float64     `gorm:"not null"                  json:"total"`
	Items            []OrderItem `gorm:"foreignKey:OrderID"        json:"items"`
	CreatedAt        time.Time   `json:"created_at"`
}

type OrderItem struct {
	ID        uint    `gorm:"primaryKey;autoIncrement"    json:"id"`
	OrderID   uint    `gorm:"index;not null"              json:"order_id"`
	ProductID uint    `gorm:"not null"                    json:"product_id"`
	Quantity  uint    `gorm:"default:1;check:quantity>0"  json:"quantity"`
	Price     float64 `gorm:"not null"                    json:"price"`
}

type Setting struct {
	ID             uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	SiteName       string `json:"site_name"`
	SiteEmail      string `json:"site_email"`
	Currency       string `json:"currency"`
	ContactNumber  string `json:"contact_number"`
	WhatsappNumber string `json:"whatsapp_number"`
}

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"unique;not null"          json:"username"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null;default:admin"   json:"role"`
}

type RefreshToken struct {
	ID        uint      `gorm:"primaryKey"      json:"id"`
	Token     string    `gorm:"unique;not null" json:"token"`
	UserID    uint      `gorm:"index;not null"  json:"user_id"`
	ExpiresAt time.Time `gorm:"not null"        json:"expires_at"`
	Revoked   bool      `gorm:"default:false"   json:"revoked"`
}

// All persistent types, in migration order.
func All() []any {
	return []any{
		&Tag{},
		&Category{},
		&CategoryTag{},
		&Product{},
		&ProductTag{},
		&Order{},
		&OrderItem{},
		&Setting{},
		&User{},
		&RefreshToken{},
	}
}
