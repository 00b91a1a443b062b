package content

import (
	"time"

	"github.com/jordanvega/seoforge-backend/pkg/db/models"
	"github.com/jordanvega/seoforge-backend/pkg/types"
)

// GeneratedPayload is the structured content the model must return. The
// validate tags are the schema gate for untrusted model output: a payload
// missing any section is rejected and nothing is cached.
type GeneratedPayload struct {
	Title                string             `json:"title" validate:"required"`
	ProductDescription   string             `json:"productDescription" validate:"required"`
	KeyFeatures          []types.KeyFeature `json:"keyFeatures" validate:"required,min=1,dive"`
	WhyBuy               []string           `json:"whyBuy" validate:"required,min=1,dive,required"`
	FAQs                 []types.FAQ        `json:"faqs" validate:"required,min=1,dive"`
	ImageRecommendations []string           `json:"imageRecommendations" validate:"required,min=1,dive,required"`
	ShortTailKeywords    []string           `json:"shortTailKeywords" validate:"required,min=1,dive,required"`
	LongTailKeywords     []string           `json:"longTailKeywords" validate:"required,min=1,dive,required"`
	ShopifyTags          []string           `json:"shopifyTags" validate:"required,min=1,dive,required"`
	MetaTitle            string             `json:"metaTitle" validate:"required"`
	MetaDescription      string             `json:"metaDescription" validate:"required"`
	Metafields           []types.Metafield  `json:"metafields" validate:"required,min=1,dive"`
}

// OriginalProduct is the snapshot of the source product stored alongside
// the generated content.
type OriginalProduct struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ContentDTO is the API shape of one cached generation.
type ContentDTO struct {
	Shop            string           `json:"shop"`
	ProductID       string           `json:"productId"`
	SelectedVariant string           `json:"selectedVariant,omitempty"`
	Content         GeneratedPayload `json:"content"`
	OriginalProduct OriginalProduct  `json:"originalProduct"`
	GeneratedAt     time.Time        `json:"generatedAt"`
	ExpiresAt       time.Time        `json:"expiresAt"`
}

func toDTO(record *models.GeneratedContent) *ContentDTO {
	return &ContentDTO{
		Shop:            record.Shop,
		ProductID:       record.ProductID,
		SelectedVariant: record.SelectedVariant,
		Content: GeneratedPayload{
			Title:                record.Title,
			ProductDescription:   record.ProductDescription,
			KeyFeatures:          record.KeyFeatures,
			WhyBuy:               record.WhyBuy,
			FAQs:                 record.FAQs,
			ImageRecommendations: record.ImageRecommendations,
			ShortTailKeywords:    record.ShortTailKeywords,
			LongTailKeywords:     record.LongTailKeywords,
			ShopifyTags:          record.ShopifyTags,
			MetaTitle:            record.MetaTitle,
			MetaDescription:      record.MetaDescription,
			Metafields:           record.Metafields,
		},
		OriginalProduct: OriginalProduct{
			Title:       record.OriginalTitle,
			Description: record.OriginalDescription,
		},
		GeneratedAt: record.UpdatedAt,
		ExpiresAt:   record.ExpiresAt,
	}
}
