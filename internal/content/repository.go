package content

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jordanvega/seoforge-backend/pkg/db/models"
)

// Repository persists generated content keyed by shop, product, and
// variant.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Upsert saves a generation, replacing any previous content for the same
// shop, product, and variant. Last write wins.
func (r *Repository) Upsert(ctx context.Context, record *models.GeneratedContent) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "shop"},
				{Name: "product_id"},
				{Name: "selected_variant"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"title", "product_description", "key_features", "why_buy", "faqs",
				"image_recommendations", "short_tail_keywords", "long_tail_keywords",
				"shopify_tags", "meta_title", "meta_description", "metafields",
				"original_title", "original_description", "updated_at", "expires_at",
			}),
		}).
		Create(record).Error
}

// Find loads the cached content for a cache key, expired or not. Callers
// that enforce the TTL go through FindActive.
func (r *Repository) Find(ctx context.Context, shop, productID, selectedVariant string) (*models.GeneratedContent, error) {
	var record models.GeneratedContent
	err := r.db.WithContext(ctx).
		Where("shop = ? AND product_id = ? AND selected_variant = ?", shop, productID, selectedVariant).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FindActive loads cached content and enforces the TTL. An expired row is
// deleted on the spot and reported as a miss.
func (r *Repository) FindActive(ctx context.Context, shop, productID, selectedVariant string, now time.Time) (*models.GeneratedContent, error) {
	record, err := r.Find(ctx, shop, productID, selectedVariant)
	if err != nil {
		return nil, err
	}

	if record.Expired(now) {
		if err := r.deleteByID(ctx, record.ID.String()); err != nil {
			return nil, err
		}
		return nil, gorm.ErrRecordNotFound
	}
	return record, nil
}

func (r *Repository) deleteByID(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.GeneratedContent{}).Error
}

// DeleteExpired removes up to limit rows whose TTL elapsed before now and
// reports how many were removed.
func (r *Repository) DeleteExpired(ctx context.Context, now time.Time, limit int) (int64, error) {
	if limit <= 0 {
		limit = 500
	}

	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.GeneratedContent{}).
		Where("expires_at <= ?", now).
		Order("expires_at").
		Limit(limit).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	result := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&models.GeneratedContent{})
	return result.RowsAffected, result.Error
}
