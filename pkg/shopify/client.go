package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jordanvega/seoforge-backend/pkg/config"
)

var (
	errShopRequired  = errors.New("shop domain is required")
	errTokenRequired = errors.New("admin access token is required")
)

// Client issues Admin GraphQL queries against a Shopify store.
type Client struct {
	httpClient *http.Client
	apiVersion string
	// resolveToken maps a shop domain to its admin access token. The
	// default resolver returns the configured token for every shop.
	resolveToken TokenResolver
}

// TokenResolver returns the admin access token for a shop domain.
type TokenResolver func(ctx context.Context, shop string) (string, error)

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTokenResolver overrides per-shop token lookup.
func WithTokenResolver(resolver TokenResolver) Option {
	return func(c *Client) {
		if resolver != nil {
			c.resolveToken = resolver
		}
	}
}

// NewClient builds the Shopify Admin client from configuration.
func NewClient(cfg config.ShopifyConfig, opts ...Option) *Client {
	client := &Client{
		apiVersion: cfg.APIVersion,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	if client.apiVersion == "" {
		client.apiVersion = "2024-07"
	}

	staticToken := strings.TrimSpace(cfg.AdminToken)
	client.resolveToken = func(ctx context.Context, shop string) (string, error) {
		if staticToken == "" {
			return "", errTokenRequired
		}
		return staticToken, nil
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client
}

// Image is a product image as returned by the Admin API.
type Image struct {
	URL     string
	AltText string
}

// Variant is a purchasable product variant.
type Variant struct {
	ID    string
	Title string
	Price string
	SKU   string
}

// Product is the subset of a Shopify product the content pipeline reads.
type Product struct {
	ID              string
	Title           string
	Description     string
	DescriptionHTML string
	Vendor          string
	ProductType     string
	Tags            []string
	Images          []Image
	Variants        []Variant
}

// ProductPage is one page of a product listing.
type ProductPage struct {
	Products    []Product
	EndCursor   string
	HasNextPage bool
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

const productFields = `
id
title
description
descriptionHtml
vendor
productType
tags
images(first: 5) {
  edges {
    node {
      url
      altText
    }
  }
}
variants(first: 10) {
  edges {
    node {
      id
      title
      price
      sku
    }
  }
}`

const getProductQuery = `query GetProduct($id: ID!) {
  product(id: $id) {` + productFields + `
  }
}`

const listProductsQuery = `query ListProducts($first: Int!, $after: String) {
  products(first: $first, after: $after, sortKey: ID) {
    edges {
      cursor
      node {` + productFields + `
      }
    }
    pageInfo {
      hasNextPage
      endCursor
    }
  }
}`

type productNode struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	DescriptionHTML string   `json:"descriptionHtml"`
	Vendor          string   `json:"vendor"`
	ProductType     string   `json:"productType"`
	Tags            []string `json:"tags"`
	Images          struct {
		Edges []struct {
			Node struct {
				URL     string  `json:"url"`
				AltText *string `json:"altText"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"images"`
	Variants struct {
		Edges []struct {
			Node struct {
				ID    string `json:"id"`
				Title string `json:"title"`
				Price string `json:"price"`
				SKU   string `json:"sku"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"variants"`
}

func (n productNode) toProduct() Product {
	p := Product{
		ID:              n.ID,
		Title:           n.Title,
		Description:     n.Description,
		DescriptionHTML: n.DescriptionHTML,
		Vendor:          n.Vendor,
		ProductType:     n.ProductType,
		Tags:            n.Tags,
	}
	for _, edge := range n.Images.Edges {
		img := Image{URL: edge.Node.URL}
		if edge.Node.AltText != nil {
			img.AltText = strings.TrimSpace(*edge.Node.AltText)
		}
		p.Images = append(p.Images, img)
	}
	for _, edge := range n.Variants.Edges {
		p.Variants = append(p.Variants, Variant{
			ID:    edge.Node.ID,
			Title: edge.Node.Title,
			Price: edge.Node.Price,
			SKU:   edge.Node.SKU,
		})
	}
	return p
}

// GetProduct fetches one product by its admin GID.
func (c *Client) GetProduct(ctx context.Context, shop, productID string) (*Product, error) {
	req := graphQLRequest{
		Query:     getProductQuery,
		Variables: map[string]any{"id": productID},
	}

	var decoded struct {
		Product *productNode `json:"product"`
	}
	if err := c.do(ctx, shop, req, &decoded); err != nil {
		return nil, err
	}
	if decoded.Product == nil {
		return nil, nil
	}

	product := decoded.Product.toProduct()
	return &product, nil
}

// ListProducts fetches one page of products sorted by ID.
func (c *Client) ListProducts(ctx context.Context, shop string, first int, after string) (*ProductPage, error) {
	if first <= 0 {
		first = 25
	}
	variables := map[string]any{"first": first}
	if after != "" {
		variables["after"] = after
	}

	req := graphQLRequest{
		Query:     listProductsQuery,
		Variables: variables,
	}

	var decoded struct {
		Products struct {
			Edges []struct {
				Cursor string      `json:"cursor"`
				Node   productNode `json:"node"`
			} `json:"edges"`
			PageInfo struct {
				HasNextPage bool   `json:"hasNextPage"`
				EndCursor   string `json:"endCursor"`
			} `json:"pageInfo"`
		} `json:"products"`
	}
	if err := c.do(ctx, shop, req, &decoded); err != nil {
		return nil, err
	}

	page := &ProductPage{
		EndCursor:   decoded.Products.PageInfo.EndCursor,
		HasNextPage: decoded.Products.PageInfo.HasNextPage,
	}
	for _, edge := range decoded.Products.Edges {
		page.Products = append(page.Products, edge.Node.toProduct())
	}
	return page, nil
}

func (c *Client) graphqlURL(shop string) string {
	return fmt.Sprintf("https://%s/admin/api/%s/graphql.json", shop, c.apiVersion)
}

func (c *Client) do(ctx context.Context, shop string, body graphQLRequest, out any) error {
	shop = strings.TrimSpace(shop)
	if shop == "" {
		return errShopRequired
	}

	token, err := c.resolveToken(ctx, shop)
	if err != nil {
		return fmt.Errorf("resolve token for %s: %w", shop, err)
	}

	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.graphqlURL(shop), bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("graphql request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("shopify graphql status %d", resp.StatusCode)
	}

	var decoded struct {
		Data   json.RawMessage `json:"data"`
		Errors []graphQLError  `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if len(decoded.Errors) > 0 {
		messages := make([]string, 0, len(decoded.Errors))
		for _, e := range decoded.Errors {
			messages = append(messages, e.Message)
		}
		return fmt.Errorf("shopify graphql errors: %s", strings.Join(messages, "; "))
	}

	if out != nil && len(decoded.Data) > 0 {
		if err := json.Unmarshal(decoded.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}
	return nil
}
