package service

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ovchar/wa_storefront/internal/models"
	"github.com/ovchar/wa_storefront/internal/transport"
)

type fakeImageStore struct {
	lastKey         string
	lastContentType string
	lastData        []byte
}

func (f *fakeImageStore) Put(_ context.Context, key, contentType string, data []byte) (string, error) {
	f.lastKey = key
	f.lastContentType = contentType
	f.lastData = data
	return "https://img.test/" + key, nil
}

func TestCreateProduct_InheritsCategoryTags(t *testing.T) {
	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}

	sale := createTag(t, r, "Sale", "sale")
	summer := createTag(t, r, "Summer", "summer")
	shoes := createCategory(t, r, "Shoes", "shoes", sale.ID, summer.ID)

	extra := createTag(t, r, "New", "new")

	prod, err := svc.CreateProduct(testCtx, transport.CreateProductRequest{
		Name:          "Sneaker",
		Price:         50,
		StockQuantity: 10,
		CategoryID:    &shoes.ID,
		Tags:          []uint{extra.ID},
	})
	require.NoError(t, err)

	// Explicit tag plus both category tags, no duplicates.
	assert.ElementsMatch(t, []uint{sale.ID, summer.ID, extra.ID}, productTagIDs(t, r, prod.ID))
}

func TestCreateProduct_DeduplicatesExplicitAndInheritedTags(t *testing.T) {
	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}

	sale := createTag(t, r, "Sale", "sale")
	shoes := createCategory(t, r, "Shoes", "shoes", sale.ID)

	prod, err := svc.CreateProduct(testCtx, transport.CreateProductRequest{
		Name:          "Sneaker",
		Price:         50,
		StockQuantity: 10,
		CategoryID:    &shoes.ID,
		Tags:          []uint{sale.ID},
	})
	require.NoError(t, err)

	assert.Equal(t, []uint{sale.ID}, productTagIDs(t, r, prod.ID))
}

func TestCreateProduct_Validation(t *testing.T) {
	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}

	tests := []struct {
		name string
		req  transport.CreateProductRequest
	}{
		{name: "short name", req: transport.CreateProductRequest{Name: "x", Price: 1}},
		{name: "negative price", req: transport.CreateProductRequest{Name: "Sneaker", Price: -1}},
		{name: "negative stock", req: transport.CreateProductRequest{Name: "Sneaker", Price: 1, StockQuantity: -1}},
		{name: "unknown category", req: transport.CreateProductRequest{Name: "Sneaker", Price: 1, CategoryID: ptr(uint(99))}},
		{name: "unknown tag", req: transport.CreateProductRequest{Name: "Sneaker", Price: 1, Tags: []uint{99}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateProduct(testCtx, tt.req)
			require.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestPatchProduct_ReplacesTagsAndKeepsInheritance(t *testing.T) {
	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}

	sale := createTag(t, r, "Sale", "sale")
	shoes := createCategory(t, r, "Shoes", "shoes", sale.ID)
	old := createTag(t, r, "Old", "old")
	fresh := createTag(t, r, "Fresh", "fresh")

	prod, err := svc.CreateProduct(testCtx, transport.CreateProductRequest{
		Name:          "Sneaker",
		Price:         50,
		StockQuantity: 10,
		CategoryID:    &shoes.ID,
		Tags:          []uint{old.ID},
	})
	require.NoError(t, err)
	require.ElementsMatch(t, []uint{sale.ID, old.ID}, productTagIDs(t, r, prod.ID))

	_, err = svc.PatchProduct(testCtx, transport.PatchProductRequest{Tags: ptr([]uint{fresh.ID})}, prod.ID)
	require.NoError(t, err)

	// The new explicit set replaces the old one; category tags are
	// re-applied on top.
	assert.ElementsMatch(t, []uint{sale.ID, fresh.ID}, productTagIDs(t, r, prod.ID))
}

func TestPatchProduct_MovingCategoryAddsItsTags(t *testing.T) {
	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}

	sale := createTag(t, r, "Sale", "sale")
	summer := createTag(t, r, "Summer", "summer")
	shoes := createCategory(t, r, "Shoes", "shoes", sale.ID)
	sandals := createCategory(t, r, "Sandals", "sandals", summer.ID)

	prod, err := svc.CreateProduct(testCtx, transport.CreateProductRequest{
		Name:          "Sneaker",
		Price:         50,
		StockQuantity: 10,
		CategoryID:    &shoes.ID,
	})
	require.NoError(t, err)
	require.Equal(t, []uint{sale.ID}, productTagIDs(t, r, prod.ID))

	_, err = svc.PatchProduct(testCtx, transport.PatchProductRequest{CategoryID: &sandals.ID}, prod.ID)
	require.NoError(t, err)

	// Tags from the old category stay; the new category's tags are added.
	assert.ElementsMatch(t, []uint{sale.ID, summer.ID}, productTagIDs(t, r, prod.ID))
}

func TestPatchProduct_FieldUpdatesAndNotFound(t *testing.T) {
	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}

	prod := createProduct(t, r, "Sneaker", 50, 10, nil)

	updated, err := svc.PatchProduct(testCtx, transport.PatchProductRequest{
		Name:          ptr("Runner"),
		Price:         ptr(60.0),
		StockQuantity: ptr(4),
	}, prod.ID)
	require.NoError(t, err)
	assert.Equal(t, "Runner", updated.Name)
	assert.EqualValues(t, 60, updated.Price)
	assert.Equal(t, 4, updated.StockQuantity)

	_, err = svc.PatchProduct(testCtx, transport.PatchProductRequest{Name: ptr("Ghost")}, 9999)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteProduct_RemovesTagLinks(t *testing.T) {
	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}

	sale := createTag(t, r, "Sale", "sale")
	prod, err := svc.CreateProduct(testCtx, transport.CreateProductRequest{
		Name:  "Sneaker",
		Price: 50,
		Tags:  []uint{sale.ID},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(testCtx, prod.ID))

	var links int64
	require.NoError(t, r.DB.Model(&models.ProductTag{}).Where("product_id = ?", prod.ID).Count(&links).Error)
	assert.Zero(t, links)

	require.ErrorIs(t, svc.DeleteProduct(testCtx, prod.ID), gorm.ErrRecordNotFound)
}

func TestGetProduct_PreloadsRelations(t *testing.T) {
	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}

	sale := createTag(t, r, "Sale", "sale")
	shoes := createCategory(t, r, "Shoes", "shoes", sale.ID)

	created, err := svc.CreateProduct(testCtx, transport.CreateProductRequest{
		Name:       "Sneaker",
		Price:      50,
		CategoryID: &shoes.ID,
	})
	require.NoError(t, err)

	got, err := svc.GetProduct(testCtx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Category)
	assert.Equal(t, "Shoes", got.Category.Name)
	require.Len(t, got.Tags, 1)
	assert.Equal(t, "Sale", got.Tags[0].Name)
}

func TestCreateProduct_UploadsImage(t *testing.T) {
	r := newTestRepo(t)
	store := &fakeImageStore{}
	svc := &CatalogService{Repo: r, Images: store}

	payload := []byte{0x89, 0x50, 0x4e, 0x47}
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)

	prod, err := svc.CreateProduct(testCtx, transport.CreateProductRequest{
		Name:      "Sneaker",
		Price:     50,
		ImageData: dataURL,
	})
	require.NoError(t, err)

	assert.Equal(t, "image/png", store.lastContentType)
	assert.Equal(t, payload, store.lastData)
	assert.True(t, strings.HasPrefix(prod.ImageURL, "https://img.test/products/"))
	assert.True(t, strings.HasSuffix(prod.ImageURL, ".png"))
}

func TestCreateProduct_ImageErrors(t *testing.T) {
	r := newTestRepo(t)

	// Upload requested but no store configured.
	svc := &CatalogService{Repo: r}
	_, err := svc.CreateProduct(testCtx, transport.CreateProductRequest{
		Name:      "Sneaker",
		Price:     50,
		ImageData: "data:image/png;base64,aGk=",
	})
	require.ErrorIs(t, err, ErrValidation)

	// Malformed payload.
	svc = &CatalogService{Repo: r, Images: &fakeImageStore{}}
	_, err = svc.CreateProduct(testCtx, transport.CreateProductRequest{
		Name:      "Sneaker",
		Price:     50,
		ImageData: "not-a-data-url",
	})
	require.ErrorIs(t, err, ErrValidation)
}
