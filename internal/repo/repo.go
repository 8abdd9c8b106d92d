package repo

import (
	"errors"

	"gorm.io/gorm"
)

// Errors surfaced by multi-step repository operations so the service
// layer can map them onto its own taxonomy.
var (
	ErrCategoryInUse     = errors.New("category has products")
	ErrProductMissing    = errors.New("referenced product does not exist")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrDuplicate         = errors.New("duplicate value")
)

type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}
