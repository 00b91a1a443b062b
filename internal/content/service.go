package content

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jordanvega/seoforge-backend/pkg/config"
	"github.com/jordanvega/seoforge-backend/pkg/db"
	"github.com/jordanvega/seoforge-backend/pkg/db/models"
	pkgerrors "github.com/jordanvega/seoforge-backend/pkg/errors"
	"github.com/jordanvega/seoforge-backend/pkg/logger"
	"github.com/jordanvega/seoforge-backend/pkg/metrics"
	"github.com/jordanvega/seoforge-backend/pkg/shopify"
)

const productGIDPrefix = "gid://"

// Service exposes the content generation and retrieval operations.
type Service interface {
	Generate(ctx context.Context, input GenerateInput) (*ContentDTO, error)
	Get(ctx context.Context, shop, productID, selectedVariant string) (*ContentDTO, error)
}

// GenerateInput is the validated request to run the pipeline.
type GenerateInput struct {
	Shop            string
	ProductID       string
	SelectedVariant string
}

type productFetcher interface {
	GetProduct(ctx context.Context, shop, productID string) (*shopify.Product, error)
}

type textGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type imageAnalyzer interface {
	Analyze(ctx context.Context, imageURLs []string) (string, error)
}

type generationLocker interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
	LockKey(scope ...string) string
}

type service struct {
	repo      *Repository
	products  productFetcher
	generator textGenerator
	analyzer  imageAnalyzer
	locker    generationLocker
	logg      *logger.Logger
	metrics   *metrics.PipelineMetrics
	cacheTTL  time.Duration
	lockTTL   time.Duration
	now       func() time.Time
}

// NewService constructs the content service.
func NewService(
	repo *Repository,
	products productFetcher,
	generator textGenerator,
	analyzer imageAnalyzer,
	locker generationLocker,
	logg *logger.Logger,
	pipelineMetrics *metrics.PipelineMetrics,
	cfg config.ContentConfig,
) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("content repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product fetcher required")
	}
	if generator == nil {
		return nil, fmt.Errorf("text generator required")
	}
	if analyzer == nil {
		return nil, fmt.Errorf("image analyzer required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}

	cacheTTL := cfg.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = 7 * 24 * time.Hour
	}
	lockTTL := cfg.GenerateLockTTL
	if lockTTL <= 0 {
		lockTTL = 2 * time.Minute
	}

	return &service{
		repo:      repo,
		products:  products,
		generator: generator,
		analyzer:  analyzer,
		locker:    locker,
		logg:      logg,
		metrics:   pipelineMetrics,
		cacheTTL:  cacheTTL,
		lockTTL:   lockTTL,
		now:       time.Now,
	}, nil
}

// Generate runs the full pipeline for one product and caches the result.
// A concurrent request for the same cache key is rejected rather than
// queued; the winner's result becomes readable once it lands.
func (s *service) Generate(ctx context.Context, input GenerateInput) (*ContentDTO, error) {
	shop := strings.TrimSpace(input.Shop)
	productID := strings.TrimSpace(input.ProductID)
	selectedVariant := strings.TrimSpace(input.SelectedVariant)

	if shop == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop is required")
	}
	if !strings.HasPrefix(productID, productGIDPrefix) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "productId must be a Shopify product GID").
			WithDetails(map[string]any{"productId": productID})
	}

	ctx = s.logg.WithShop(ctx, shop)
	ctx = s.logg.WithProductID(ctx, productID)

	release, err := s.acquireLock(ctx, shop, productID, selectedVariant)
	if err != nil {
		return nil, err
	}
	defer release()

	started := s.now()
	dto, err := s.generate(ctx, shop, productID, selectedVariant)
	s.metrics.ObserveStage("pipeline", s.now().Sub(started))
	if err != nil {
		s.metrics.IncGeneration("failure")
		s.logg.Error(ctx, "content generation failed", err)
		return nil, err
	}

	s.metrics.IncGeneration("success")
	s.logg.Info(ctx, "content generated and cached")
	return dto, nil
}

func (s *service) generate(ctx context.Context, shop, productID, selectedVariant string) (*ContentDTO, error) {
	fetchStart := s.now()
	product, err := s.products.GetProduct(ctx, shop, productID)
	s.metrics.ObserveStage("fetch_product", s.now().Sub(fetchStart))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load product from Shopify")
	}
	if product == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	galleryURLs := make([]string, 0, len(product.Images))
	for _, img := range product.Images {
		galleryURLs = append(galleryURLs, img.URL)
	}
	imageURLs := CollectImageURLs(galleryURLs, product.DescriptionHTML)
	logCtx := s.logg.WithFields(ctx, map[string]any{
		"gallery_images":     len(galleryURLs),
		"description_images": len(extractImagesFromHTML(product.DescriptionHTML)),
		"unique_images":      len(imageURLs),
	})
	s.logg.Info(logCtx, "collected product images")

	analyzeStart := s.now()
	imageAnalysis, err := s.analyzer.Analyze(ctx, imageURLs)
	s.metrics.ObserveStage("analyze_images", s.now().Sub(analyzeStart))
	if err != nil {
		return nil, err
	}

	prompt := BuildGenerationPrompt(product, imageAnalysis, selectedVariant)

	generateStart := s.now()
	rawOutput, err := s.generator.GenerateText(ctx, prompt)
	s.metrics.ObserveStage("generate_text", s.now().Sub(generateStart))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeGenerationFailed, err, "text generation failed")
	}

	payload, err := ParseGeneratedPayload(rawOutput)
	if err != nil {
		return nil, err
	}

	record := s.buildRecord(shop, productID, selectedVariant, payload, product)
	if err := s.repo.Upsert(ctx, record); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "generation already in progress for this product")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to cache generated content")
	}

	return toDTO(record), nil
}

func (s *service) buildRecord(shop, productID, selectedVariant string, payload *GeneratedPayload, product *shopify.Product) *models.GeneratedContent {
	now := s.now()
	return &models.GeneratedContent{
		ID:                   uuid.New(),
		Shop:                 shop,
		ProductID:            productID,
		SelectedVariant:      selectedVariant,
		Title:                payload.Title,
		ProductDescription:   payload.ProductDescription,
		KeyFeatures:          payload.KeyFeatures,
		WhyBuy:               payload.WhyBuy,
		FAQs:                 payload.FAQs,
		ImageRecommendations: payload.ImageRecommendations,
		ShortTailKeywords:    payload.ShortTailKeywords,
		LongTailKeywords:     payload.LongTailKeywords,
		ShopifyTags:          payload.ShopifyTags,
		MetaTitle:            payload.MetaTitle,
		MetaDescription:      payload.MetaDescription,
		Metafields:           payload.Metafields,
		OriginalTitle:        product.Title,
		OriginalDescription:  product.Description,
		CreatedAt:            now,
		UpdatedAt:            now,
		ExpiresAt:            now.Add(s.cacheTTL),
	}
}

// Get reads cached content for a cache key. Expired content is treated as
// absent.
func (s *service) Get(ctx context.Context, shop, productID, selectedVariant string) (*ContentDTO, error) {
	shop = strings.TrimSpace(shop)
	productID = strings.TrimSpace(productID)
	selectedVariant = strings.TrimSpace(selectedVariant)

	if shop == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop is required")
	}
	if productID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "productId is required")
	}

	record, err := s.repo.FindActive(ctx, shop, productID, selectedVariant, s.now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.metrics.IncCacheRead("miss")
			return nil, pkgerrors.New(pkgerrors.CodeContentNotFound, "no cached content for product")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load cached content")
	}

	s.metrics.IncCacheRead("hit")
	return toDTO(record), nil
}

func (s *service) acquireLock(ctx context.Context, shop, productID, selectedVariant string) (func(), error) {
	if s.locker == nil {
		return func() {}, nil
	}

	scope := []string{"generate", shop, productID}
	if selectedVariant != "" {
		scope = append(scope, selectedVariant)
	}
	key := s.locker.LockKey(scope...)

	acquired, err := s.locker.SetNX(ctx, key, "1", s.lockTTL)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to acquire generation lock")
	}
	if !acquired {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "content generation already in progress for this product")
	}

	return func() {
		if err := s.locker.Del(context.WithoutCancel(ctx), key); err != nil {
			s.logg.Warn(s.logg.WithField(ctx, "lock_key", key), "failed to release generation lock")
		}
	}, nil
}
