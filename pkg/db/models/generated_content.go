package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jordanvega/seoforge-backend/pkg/types"
)

// GeneratedContent is one cached SEO copy record. The cache key is the
// (shop, product_id, selected_variant) triple; selected_variant uses the
// empty string for "no variant requested" so the unique index covers that
// case too (a NULL column would let Postgres admit duplicate rows).
type GeneratedContent struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Shop            string    `gorm:"column:shop;not null;uniqueIndex:idx_generated_contents_cache_key,priority:1"`
	ProductID       string    `gorm:"column:product_id;not null;uniqueIndex:idx_generated_contents_cache_key,priority:2"`
	SelectedVariant string    `gorm:"column:selected_variant;not null;default:'';uniqueIndex:idx_generated_contents_cache_key,priority:3"`

	Title                string            `gorm:"column:title;not null"`
	ProductDescription   string            `gorm:"column:product_description;type:text;not null"`
	KeyFeatures          []types.KeyFeature `gorm:"column:key_features;type:text;serializer:json"`
	WhyBuy               []string          `gorm:"column:why_buy;type:text;serializer:json"`
	FAQs                 []types.FAQ       `gorm:"column:faqs;type:text;serializer:json"`
	ImageRecommendations []string          `gorm:"column:image_recommendations;type:text;serializer:json"`
	ShortTailKeywords    []string          `gorm:"column:short_tail_keywords;type:text;serializer:json"`
	LongTailKeywords     []string          `gorm:"column:long_tail_keywords;type:text;serializer:json"`
	ShopifyTags          []string          `gorm:"column:shopify_tags;type:text;serializer:json"`
	MetaTitle            string            `gorm:"column:meta_title;not null"`
	MetaDescription      string            `gorm:"column:meta_description;not null"`
	Metafields           []types.Metafield `gorm:"column:metafields;type:text;serializer:json"`

	OriginalTitle       string `gorm:"column:original_title;not null"`
	OriginalDescription string `gorm:"column:original_description;type:text;not null"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null;index:idx_generated_contents_expires_at"`
}

// BeforeCreate assigns the row id so the model works on both Postgres and
// the sqlite dev driver.
func (g *GeneratedContent) BeforeCreate(_ *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// Expired reports whether the record's freshness window has passed.
func (g *GeneratedContent) Expired(now time.Time) bool {
	return now.After(g.ExpiresAt)
}
