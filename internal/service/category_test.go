package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ovchar/wa_storefront/internal/models"
	"github.com/ovchar/wa_storefront/internal/transport"
)

func TestCreateCategory_AutoSlug(t *testing.T) {
	r := newTestRepo(t)
	svc := &CategoryService{Repo: r}

	cat, err := svc.CreateCategory(testCtx, transport.CreateCategoryRequest{Name: "Running Shoes"})
	require.NoError(t, err)
	assert.Equal(t, "running-shoes", cat.Slug)
}

func TestCreateCategory_SlugConflict(t *testing.T) {
	r := newTestRepo(t)
	svc := &CategoryService{Repo: r}

	_, err := svc.CreateCategory(testCtx, transport.CreateCategoryRequest{Name: "Shoes", Slug: "shoes"})
	require.NoError(t, err)

	_, err = svc.CreateCategory(testCtx, transport.CreateCategoryRequest{Name: "Footwear", Slug: "shoes"})
	require.ErrorIs(t, err, ErrConflict)
}

func TestCreateCategory_Validation(t *testing.T) {
	r := newTestRepo(t)
	svc := &CategoryService{Repo: r}

	_, err := svc.CreateCategory(testCtx, transport.CreateCategoryRequest{Name: "x"})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateCategory(testCtx, transport.CreateCategoryRequest{Name: "Shoes", Tags: []uint{99}})
	require.ErrorIs(t, err, ErrValidation)
}

func TestCreateCategory_AttachesTags(t *testing.T) {
	r := newTestRepo(t)
	svc := &CategoryService{Repo: r}

	sale := createTag(t, r, "Sale", "sale")
	cat, err := svc.CreateCategory(testCtx, transport.CreateCategoryRequest{
		Name: "Shoes",
		Tags: []uint{sale.ID},
	})
	require.NoError(t, err)
	require.Len(t, cat.Tags, 1)
	assert.Equal(t, "Sale", cat.Tags[0].Name)
}

func TestPatchCategory_AddedTagPropagatesToProducts(t *testing.T) {
	r := newTestRepo(t)
	svc := &CategoryService{Repo: r}

	shoes := createCategory(t, r, "Shoes", "shoes")
	prodA := createProduct(t, r, "Sneaker", 50, 10, &shoes.ID)
	prodB := createProduct(t, r, "Boot", 80, 5, &shoes.ID)
	other := createProduct(t, r, "Hat", 15, 3, nil)

	sale := createTag(t, r, "Sale", "sale")

	_, err := svc.PatchCategory(testCtx, transport.PatchCategoryRequest{
		Tags: ptr([]uint{sale.ID}),
	}, shoes.ID)
	require.NoError(t, err)

	assert.Equal(t, []uint{sale.ID}, productTagIDs(t, r, prodA.ID))
	assert.Equal(t, []uint{sale.ID}, productTagIDs(t, r, prodB.ID))
	assert.Empty(t, productTagIDs(t, r, other.ID))
}

func TestPatchCategory_RemovedTagStaysOnProducts(t *testing.T) {
	r := newTestRepo(t)
	svc := &CategoryService{Repo: r}

	sale := createTag(t, r, "Sale", "sale")
	summer := createTag(t, r, "Summer", "summer")
	shoes := createCategory(t, r, "Shoes", "shoes", sale.ID)
	catalog := &CatalogService{Repo: r}

	prod, err := catalog.CreateProduct(testCtx, transport.CreateProductRequest{
		Name:       "Sneaker",
		Price:      50,
		CategoryID: &shoes.ID,
	})
	require.NoError(t, err)
	require.Equal(t, []uint{sale.ID}, productTagIDs(t, r, prod.ID))

	// Swap the category's tags entirely.
	_, err = svc.PatchCategory(testCtx, transport.PatchCategoryRequest{
		Tags: ptr([]uint{summer.ID}),
	}, shoes.ID)
	require.NoError(t, err)

	// The category now carries only Summer, but the product keeps the
	// previously inherited Sale link.
	var catLinks []models.CategoryTag
	require.NoError(t, r.DB.Where("category_id = ?", shoes.ID).Find(&catLinks).Error)
	require.Len(t, catLinks, 1)
	assert.Equal(t, summer.ID, catLinks[0].TagID)

	assert.ElementsMatch(t, []uint{sale.ID, summer.ID}, productTagIDs(t, r, prod.ID))
}

func TestPatchCategory_SlugConflictAndNotFound(t *testing.T) {
	r := newTestRepo(t)
	svc := &CategoryService{Repo: r}

	_, err := svc.CreateCategory(testCtx, transport.CreateCategoryRequest{Name: "Shoes", Slug: "shoes"})
	require.NoError(t, err)
	hats, err := svc.CreateCategory(testCtx, transport.CreateCategoryRequest{Name: "Hats", Slug: "hats"})
	require.NoError(t, err)

	_, err = svc.PatchCategory(testCtx, transport.PatchCategoryRequest{Slug: ptr("shoes")}, hats.ID)
	require.ErrorIs(t, err, ErrConflict)

	_, err = svc.PatchCategory(testCtx, transport.PatchCategoryRequest{Name: ptr("Ghost")}, 9999)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteCategory_RefusedWhileInUse(t *testing.T) {
	r := newTestRepo(t)
	svc := &CategoryService{Repo: r}

	shoes := createCategory(t, r, "Shoes", "shoes")
	createProduct(t, r, "Sneaker", 50, 10, &shoes.ID)

	err := svc.DeleteCategory(testCtx, shoes.ID)
	require.ErrorIs(t, err, ErrConflict)

	var count int64
	require.NoError(t, r.DB.Model(&models.Category{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestDeleteCategory_RemovesTagLinks(t *testing.T) {
	r := newTestRepo(t)
	svc := &CategoryService{Repo: r}

	sale := createTag(t, r, "Sale", "sale")
	shoes := createCategory(t, r, "Shoes", "shoes", sale.ID)

	require.NoError(t, svc.DeleteCategory(testCtx, shoes.ID))

	var links int64
	require.NoError(t, r.DB.Model(&models.CategoryTag{}).Where("category_id = ?", shoes.ID).Count(&links).Error)
	assert.Zero(t, links)

	require.ErrorIs(t, svc.DeleteCategory(testCtx, shoes.ID), gorm.ErrRecordNotFound)
}
