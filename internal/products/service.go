package products

import (
	"context"
	"fmt"
	"strings"

	pkgerrors "github.com/jordanvega/seoforge-backend/pkg/errors"
	"github.com/jordanvega/seoforge-backend/pkg/shopify"
)

const productGIDPrefix = "gid://"

// Service exposes the product picker operations backed by the Shopify
// Admin API.
type Service interface {
	ListProducts(ctx context.Context, shop string, first int, after string) (*ProductListDTO, error)
	GetProduct(ctx context.Context, shop, productID string) (*ProductDTO, error)
}

type adminClient interface {
	GetProduct(ctx context.Context, shop, productID string) (*shopify.Product, error)
	ListProducts(ctx context.Context, shop string, first int, after string) (*shopify.ProductPage, error)
}

type service struct {
	admin adminClient
}

// NewService constructs a product picker service.
func NewService(admin adminClient) (Service, error) {
	if admin == nil {
		return nil, fmt.Errorf("shopify admin client required")
	}
	return &service{admin: admin}, nil
}

// ListProducts returns one page of the shop's products for the picker.
func (s *service) ListProducts(ctx context.Context, shop string, first int, after string) (*ProductListDTO, error) {
	shop = strings.TrimSpace(shop)
	if shop == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop is required")
	}

	page, err := s.admin.ListProducts(ctx, shop, first, after)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to list products from Shopify")
	}

	list := &ProductListDTO{
		EndCursor:   page.EndCursor,
		HasNextPage: page.HasNextPage,
		Products:    make([]ProductDTO, 0, len(page.Products)),
	}
	for i := range page.Products {
		list.Products = append(list.Products, *toProductDTO(&page.Products[i]))
	}
	return list, nil
}

// GetProduct returns one product by its admin GID.
func (s *service) GetProduct(ctx context.Context, shop, productID string) (*ProductDTO, error) {
	shop = strings.TrimSpace(shop)
	productID = strings.TrimSpace(productID)

	if shop == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop is required")
	}
	if !strings.HasPrefix(productID, productGIDPrefix) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "productId must be a Shopify product GID")
	}

	product, err := s.admin.GetProduct(ctx, shop, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load product from Shopify")
	}
	if product == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return toProductDTO(product), nil
}
