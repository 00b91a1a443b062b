package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jordanvega/seoforge-backend/pkg/shopify"
)

func promptTestProduct() *shopify.Product {
	return &shopify.Product{
		ID:          "gid://shopify/Product/1",
		Title:       "Ceramic Mug",
		Description: "A sturdy mug.",
		Vendor:      "Mugs Co",
		ProductType: "Drinkware",
		Tags:        []string{"mug", "ceramic"},
		Variants: []shopify.Variant{
			{ID: "gid://shopify/ProductVariant/1", Title: "Blue", Price: "19.99"},
		},
	}
}

func TestBuildGenerationPrompt_Deterministic(t *testing.T) {
	product := promptTestProduct()

	first := BuildGenerationPrompt(product, "glossy blue glaze", "Blue")
	second := BuildGenerationPrompt(product, "glossy blue glaze", "Blue")

	assert.Equal(t, first, second)
}

func TestBuildGenerationPrompt_ProductFields(t *testing.T) {
	prompt := BuildGenerationPrompt(promptTestProduct(), "", "")

	assert.Contains(t, prompt, "- Title: Ceramic Mug")
	assert.Contains(t, prompt, "- Description: A sturdy mug.")
	assert.Contains(t, prompt, "- Vendor: Mugs Co")
	assert.Contains(t, prompt, "- Type: Drinkware")
	assert.Contains(t, prompt, "- Price: $19.99")
	assert.Contains(t, prompt, "- Current Tags: mug, ceramic")
}

func TestBuildGenerationPrompt_VariantAndAnalysisSections(t *testing.T) {
	product := promptTestProduct()

	bare := BuildGenerationPrompt(product, "", "")
	assert.NotContains(t, bare, "Focus on this specific variant")
	assert.NotContains(t, bare, "Image Analysis:")

	full := BuildGenerationPrompt(product, "matte finish, stamped logo", "Blue / Large")
	assert.Contains(t, full, "Focus on this specific variant: Blue / Large")
	assert.Contains(t, full, "Image Analysis: matte finish, stamped logo")
}

func TestBuildGenerationPrompt_ContainsJSONContract(t *testing.T) {
	prompt := BuildGenerationPrompt(promptTestProduct(), "", "")

	assert.Contains(t, prompt, "respond with VALID JSON only")
	assert.Contains(t, prompt, `"keyFeatures"`)
	assert.Contains(t, prompt, `"shortTailKeywords"`)
	assert.Contains(t, prompt, `"metafields"`)
	assert.Contains(t, prompt, "Create 15-20 Shopify tags")
	// The contract instructs escaped line breaks, never literal ones.
	assert.True(t, strings.Contains(prompt, `\n`))
}

func TestDisplayPrice(t *testing.T) {
	assert.Equal(t, "N/A", displayPrice(nil))
	assert.Equal(t, "N/A", displayPrice([]shopify.Variant{{Price: "  "}}))
	assert.Equal(t, "19.99", displayPrice([]shopify.Variant{{Price: "19.99"}}))
	assert.Equal(t, "20.00", displayPrice([]shopify.Variant{{Price: "20"}}))
	assert.Equal(t, "free", displayPrice([]shopify.Variant{{Price: "free"}}))
}
