package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ovchar/wa_storefront/internal/models"
	"github.com/ovchar/wa_storefront/internal/repo"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to connect to in-memory db")

	// A single connection keeps the in-memory database alive across
	// the pooled transactions.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.All()...), "failed to migrate tables")
	return repo.New(db)
}

func createTag(t *testing.T, r *repo.GormRepo, name, slug string) models.Tag {
	t.Helper()
	tag := models.Tag{Name: name, Slug: slug}
	require.NoError(t, r.DB.Create(&tag).Error)
	return tag
}

func createCategory(t *testing.T, r *repo.GormRepo, name, slug string, tagIDs ...uint) models.Category {
	t.Helper()
	cat := models.Category{Name: name, Slug: slug}
	require.NoError(t, r.DB.Create(&cat).Error)
	for _, id := range tagIDs {
		require.NoError(t, r.DB.Create(&models.CategoryTag{CategoryID: cat.ID, TagID: id}).Error)
	}
	return cat
}

func createProduct(t *testing.T, r *repo.GormRepo, name string, price float64, stock int, categoryID *uint) models.Product {
	t.Helper()
	prod := models.Product{Name: name, Price: price, StockQuantity: stock, CategoryID: categoryID}
	require.NoError(t, r.DB.Create(&prod).Error)
	return prod
}

func productTagIDs(t *testing.T, r *repo.GormRepo, productID uint) []uint {
	t.Helper()
	var ids []uint
	require.NoError(t, r.DB.Model(&models.ProductTag{}).
		Where("product_id = ?", productID).
		Order("tag_id ASC").
		Pluck("tag_id", &ids).Error)
	return ids
}

func stockOf(t *testing.T, r *repo.GormRepo, productID uint) int {
	t.Helper()
	var prod models.Product
	require.NoError(t, r.DB.First(&prod, productID).Error)
	return prod.StockQuantity
}

func ptr[T any](v T) *T { return &v }

var testCtx = context.Background()
