package products

import "github.com/jordanvega/seoforge-backend/pkg/shopify"

// ImageDTO is one product image in API responses.
type ImageDTO struct {
	URL     string `json:"url"`
	AltText string `json:"altText,omitempty"`
}

// VariantDTO is one purchasable variant in API responses.
type VariantDTO struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Price string `json:"price"`
	SKU   string `json:"sku,omitempty"`
}

// ProductDTO is the picker's view of a product.
type ProductDTO struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Vendor      string       `json:"vendor"`
	ProductType string       `json:"productType"`
	Tags        []string     `json:"tags"`
	Images      []ImageDTO   `json:"images"`
	Variants    []VariantDTO `json:"variants"`
}

// ProductListDTO is one page of the picker listing.
type ProductListDTO struct {
	Products    []ProductDTO `json:"products"`
	EndCursor   string       `json:"endCursor,omitempty"`
	HasNextPage bool         `json:"hasNextPage"`
}

func toProductDTO(product *shopify.Product) *ProductDTO {
	dto := &ProductDTO{
		ID:          product.ID,
		Title:       product.Title,
		Description: product.Description,
		Vendor:      product.Vendor,
		ProductType: product.ProductType,
		Tags:        product.Tags,
	}
	for _, img := range product.Images {
		dto.Images = append(dto.Images, ImageDTO{URL: img.URL, AltText: img.AltText})
	}
	for _, v := range product.Variants {
		dto.Variants = append(dto.Variants, VariantDTO{ID: v.ID, Title: v.Title, Price: v.Price, SKU: v.SKU})
	}
	return dto
}
