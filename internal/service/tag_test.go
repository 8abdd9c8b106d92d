package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovchar/wa_storefront/internal/models"
	"github.com/ovchar/wa_storefront/internal/transport"
)

func TestCreateTag(t *testing.T) {
	r := newTestRepo(t)
	svc := &TagService{Repo: r}

	tag, err := svc.CreateTag(testCtx, transport.CreateTagRequest{Name: "New Arrival"})
	require.NoError(t, err)
	assert.Equal(t, "New Arrival", tag.Name)
	assert.Equal(t, "new-arrival", tag.Slug)

	_, err = svc.CreateTag(testCtx, transport.CreateTagRequest{})
	require.ErrorIs(t, err, ErrValidation)
}

func TestCreateTag_Duplicates(t *testing.T) {
	r := newTestRepo(t)
	svc := &TagService{Repo: r}

	_, err := svc.CreateTag(testCtx, transport.CreateTagRequest{Name: "Sale", Slug: "sale"})
	require.NoError(t, err)

	// Same name, different slug.
	_, err = svc.CreateTag(testCtx, transport.CreateTagRequest{Name: "Sale", Slug: "sale-2"})
	require.ErrorIs(t, err, ErrConflict)

	// Same slug, different name.
	_, err = svc.CreateTag(testCtx, transport.CreateTagRequest{Name: "Clearance", Slug: "sale"})
	require.ErrorIs(t, err, ErrConflict)
}

func TestPatchTag(t *testing.T) {
	r := newTestRepo(t)
	svc := &TagService{Repo: r}

	sale := createTag(t, r, "Sale", "sale")
	createTag(t, r, "Summer", "summer")

	updated, err := svc.PatchTag(testCtx, transport.PatchTagRequest{Name: ptr("Discount")}, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, "Discount", updated.Name)
	assert.Equal(t, "sale", updated.Slug)

	// Colliding with another tag's slug.
	_, err = svc.PatchTag(testCtx, transport.PatchTagRequest{Slug: ptr("summer")}, sale.ID)
	require.ErrorIs(t, err, ErrConflict)

	_, err = svc.PatchTag(testCtx, transport.PatchTagRequest{Name: ptr("")}, sale.ID)
	require.ErrorIs(t, err, ErrValidation)
}

func TestDeleteTag_RemovesAllLinks(t *testing.T) {
	r := newTestRepo(t)
	svc := &TagService{Repo: r}

	sale := createTag(t, r, "Sale", "sale")
	shoes := createCategory(t, r, "Shoes", "shoes", sale.ID)
	prod := createProduct(t, r, "Sneaker", 50, 10, &shoes.ID)
	require.NoError(t, r.DB.Create(&models.ProductTag{ProductID: prod.ID, TagID: sale.ID}).Error)

	require.NoError(t, svc.DeleteTag(testCtx, sale.ID))

	var productLinks, categoryLinks int64
	require.NoError(t, r.DB.Model(&models.ProductTag{}).Where("tag_id = ?", sale.ID).Count(&productLinks).Error)
	require.NoError(t, r.DB.Model(&models.CategoryTag{}).Where("tag_id = ?", sale.ID).Count(&categoryLinks).Error)
	assert.Zero(t, productLinks)
	assert.Zero(t, categoryLinks)

	require.Error(t, svc.DeleteTag(testCtx, sale.ID))
}

func TestGetTags(t *testing.T) {
	r := newTestRepo(t)
	svc := &TagService{Repo: r}

	createTag(t, r, "Sale", "sale")
	createTag(t, r, "Summer", "summer")

	tags, err := svc.GetTags(testCtx)
	require.NoError(t, err)
	require.Len(t, tags, 2)
}
