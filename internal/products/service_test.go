package products

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/jordanvega/seoforge-backend/pkg/errors"
	"github.com/jordanvega/seoforge-backend/pkg/shopify"
)

type fakeAdmin struct {
	product *shopify.Product
	page    *shopify.ProductPage
	err     error

	seenShop  string
	seenID    string
	seenFirst int
	seenAfter string
}

func (f *fakeAdmin) GetProduct(ctx context.Context, shop, productID string) (*shopify.Product, error) {
	f.seenShop = shop
	f.seenID = productID
	return f.product, f.err
}

func (f *fakeAdmin) ListProducts(ctx context.Context, shop string, first int, after string) (*shopify.ProductPage, error) {
	f.seenShop = shop
	f.seenFirst = first
	f.seenAfter = after
	return f.page, f.err
}

func TestListProducts(t *testing.T) {
	admin := &fakeAdmin{page: &shopify.ProductPage{
		Products: []shopify.Product{
			{ID: "gid://shopify/Product/1", Title: "One", Variants: []shopify.Variant{{ID: "gid://shopify/ProductVariant/1", Price: "9.99"}}},
			{ID: "gid://shopify/Product/2", Title: "Two"},
		},
		EndCursor:   "c2",
		HasNextPage: true,
	}}
	svc, err := NewService(admin)
	require.NoError(t, err)

	list, err := svc.ListProducts(context.Background(), "demo.myshopify.com", 25, "c0")
	require.NoError(t, err)

	assert.Equal(t, "demo.myshopify.com", admin.seenShop)
	assert.Equal(t, 25, admin.seenFirst)
	assert.Equal(t, "c0", admin.seenAfter)

	require.Len(t, list.Products, 2)
	assert.Equal(t, "One", list.Products[0].Title)
	require.Len(t, list.Products[0].Variants, 1)
	assert.Equal(t, "9.99", list.Products[0].Variants[0].Price)
	assert.True(t, list.HasNextPage)
	assert.Equal(t, "c2", list.EndCursor)
}

func TestListProducts_RequiresShop(t *testing.T) {
	svc, err := NewService(&fakeAdmin{})
	require.NoError(t, err)

	_, err = svc.ListProducts(context.Background(), "  ", 25, "")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestListProducts_DependencyError(t *testing.T) {
	svc, err := NewService(&fakeAdmin{err: errors.New("throttled")})
	require.NoError(t, err)

	_, err = svc.ListProducts(context.Background(), "demo.myshopify.com", 25, "")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeDependency, pkgerrors.As(err).Code())
}

func TestGetProduct(t *testing.T) {
	admin := &fakeAdmin{product: &shopify.Product{
		ID:    "gid://shopify/Product/1",
		Title: "Ceramic Mug",
		Images: []shopify.Image{
			{URL: "https://cdn.shopify.com/a.jpg", AltText: "front"},
		},
	}}
	svc, err := NewService(admin)
	require.NoError(t, err)

	dto, err := svc.GetProduct(context.Background(), "demo.myshopify.com", "gid://shopify/Product/1")
	require.NoError(t, err)
	assert.Equal(t, "Ceramic Mug", dto.Title)
	require.Len(t, dto.Images, 1)
	assert.Equal(t, "front", dto.Images[0].AltText)
}

func TestGetProduct_RejectsNonGID(t *testing.T) {
	svc, err := NewService(&fakeAdmin{})
	require.NoError(t, err)

	_, err = svc.GetProduct(context.Background(), "demo.myshopify.com", "12345")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestGetProduct_NotFound(t *testing.T) {
	svc, err := NewService(&fakeAdmin{})
	require.NoError(t, err)

	_, err = svc.GetProduct(context.Background(), "demo.myshopify.com", "gid://shopify/Product/404")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
