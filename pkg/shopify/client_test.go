package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordanvega/seoforge-backend/pkg/config"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}

func newTestClient(t *testing.T, rt roundTripFunc) *Client {
	t.Helper()
	return NewClient(
		config.ShopifyConfig{APIVersion: "2024-07", AdminToken: "shpat_test"},
		WithHTTPClient(&http.Client{Transport: rt}),
	)
}

func TestGetProduct(t *testing.T) {
	var captured *http.Request
	var body graphQLRequest

	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		captured = r
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		return jsonResponse(http.StatusOK, `{
			"data": {
				"product": {
					"id": "gid://shopify/Product/123",
					"title": "Ceramic Mug",
					"description": "A mug.",
					"descriptionHtml": "<p>A mug.</p>",
					"vendor": "Mugs Co",
					"productType": "Drinkware",
					"tags": ["mug", "ceramic"],
					"images": {"edges": [
						{"node": {"url": "https://cdn.shopify.com/a.jpg", "altText": " front view "}},
						{"node": {"url": "https://cdn.shopify.com/b.jpg", "altText": null}}
					]},
					"variants": {"edges": [
						{"node": {"id": "gid://shopify/ProductVariant/1", "title": "Blue", "price": "19.99", "sku": "MUG-B"}}
					]}
				}
			}
		}`), nil
	})

	product, err := client.GetProduct(context.Background(), "demo.myshopify.com", "gid://shopify/Product/123")
	require.NoError(t, err)
	require.NotNil(t, product)

	assert.Equal(t, "https://demo.myshopify.com/admin/api/2024-07/graphql.json", captured.URL.String())
	assert.Equal(t, "shpat_test", captured.Header.Get("X-Shopify-Access-Token"))
	assert.Equal(t, "gid://shopify/Product/123", body.Variables["id"])

	assert.Equal(t, "Ceramic Mug", product.Title)
	assert.Equal(t, []string{"mug", "ceramic"}, product.Tags)
	require.Len(t, product.Images, 2)
	assert.Equal(t, "front view", product.Images[0].AltText)
	assert.Empty(t, product.Images[1].AltText)
	require.Len(t, product.Variants, 1)
	assert.Equal(t, "19.99", product.Variants[0].Price)
}

func TestGetProduct_NotFound(t *testing.T) {
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"data": {"product": null}}`), nil
	})

	product, err := client.GetProduct(context.Background(), "demo.myshopify.com", "gid://shopify/Product/404")
	require.NoError(t, err)
	assert.Nil(t, product)
}

func TestGetProduct_GraphQLErrors(t *testing.T) {
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"errors": [{"message": "Invalid ID"}, {"message": "Throttled"}]}`), nil
	})

	_, err := client.GetProduct(context.Background(), "demo.myshopify.com", "bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid ID; Throttled")
}

func TestGetProduct_HTTPError(t *testing.T) {
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusUnauthorized, `{}`), nil
	})

	_, err := client.GetProduct(context.Background(), "demo.myshopify.com", "gid://shopify/Product/1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestListProducts(t *testing.T) {
	var body graphQLRequest
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		return jsonResponse(http.StatusOK, `{
			"data": {
				"products": {
					"edges": [
						{"cursor": "c1", "node": {"id": "gid://shopify/Product/1", "title": "One"}},
						{"cursor": "c2", "node": {"id": "gid://shopify/Product/2", "title": "Two"}}
					],
					"pageInfo": {"hasNextPage": true, "endCursor": "c2"}
				}
			}
		}`), nil
	})

	page, err := client.ListProducts(context.Background(), "demo.myshopify.com", 2, "c0")
	require.NoError(t, err)

	assert.Equal(t, float64(2), body.Variables["first"])
	assert.Equal(t, "c0", body.Variables["after"])

	require.Len(t, page.Products, 2)
	assert.Equal(t, "One", page.Products[0].Title)
	assert.True(t, page.HasNextPage)
	assert.Equal(t, "c2", page.EndCursor)
}

func TestDo_RequiresShop(t *testing.T) {
	client := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		t.Fatal("no request expected")
		return nil, nil
	})

	_, err := client.GetProduct(context.Background(), "  ", "gid://shopify/Product/1")
	require.Error(t, err)
}

func TestTokenResolver(t *testing.T) {
	var seenToken string
	client := NewClient(
		config.ShopifyConfig{APIVersion: "2024-07"},
		WithHTTPClient(&http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			seenToken = r.Header.Get("X-Shopify-Access-Token")
			return jsonResponse(http.StatusOK, `{"data": {"product": null}}`), nil
		})}),
		WithTokenResolver(func(ctx context.Context, shop string) (string, error) {
			assert.Equal(t, "demo.myshopify.com", shop)
			return "shpat_per_shop", nil
		}),
	)

	_, err := client.GetProduct(context.Background(), "demo.myshopify.com", "gid://shopify/Product/1")
	require.NoError(t, err)
	assert.Equal(t, "shpat_per_shop", seenToken)
}

func TestTokenResolver_DefaultRequiresToken(t *testing.T) {
	client := NewClient(config.ShopifyConfig{APIVersion: "2024-07"})

	_, err := client.GetProduct(context.Background(), "demo.myshopify.com", "gid://shopify/Product/1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "admin access token")
}
