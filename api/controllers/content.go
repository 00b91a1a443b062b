package controllers

import (
	"net/http"
	"strings"

	"github.com/jordanvega/seoforge-backend/api/middleware"
	"github.com/jordanvega/seoforge-backend/api/responses"
	"github.com/jordanvega/seoforge-backend/api/validators"
	contentsvc "github.com/jordanvega/seoforge-backend/internal/content"
	pkgerrors "github.com/jordanvega/seoforge-backend/pkg/errors"
	"github.com/jordanvega/seoforge-backend/pkg/logger"
)

type generateContentRequest struct {
	ProductID       string `json:"productId" validate:"required,startswith=gid://"`
	SelectedVariant string `json:"selectedVariant,omitempty"`
}

// GenerateContent runs the generation pipeline for one product and
// returns the cached result.
func GenerateContent(svc contentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shop := middleware.ShopFromContext(r.Context())
		if shop == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "shop context missing"))
			return
		}

		var payload generateContentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Generate(r.Context(), contentsvc.GenerateInput{
			Shop:            shop,
			ProductID:       payload.ProductID,
			SelectedVariant: payload.SelectedVariant,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// GetContent reads previously generated content for a product.
func GetContent(svc contentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shop := middleware.ShopFromContext(r.Context())
		if shop == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "shop context missing"))
			return
		}

		productID, err := validators.RequireQuery(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		variant := strings.TrimSpace(r.URL.Query().Get("variant"))

		dto, err := svc.Get(r.Context(), shop, productID, variant)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}
