package controllers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/jordanvega/seoforge-backend/api/middleware"
	"github.com/jordanvega/seoforge-backend/api/responses"
	"github.com/jordanvega/seoforge-backend/api/validators"
	productsvc "github.com/jordanvega/seoforge-backend/internal/products"
	pkgerrors "github.com/jordanvega/seoforge-backend/pkg/errors"
	"github.com/jordanvega/seoforge-backend/pkg/logger"
)

// ListProducts returns one page of the shop's products for the picker.
func ListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shop := middleware.ShopFromContext(r.Context())
		if shop == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "shop context missing"))
			return
		}

		first, err := validators.ParseQueryInt(r, "first", 25, 1, 50)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		after := strings.TrimSpace(r.URL.Query().Get("after"))

		list, err := svc.ListProducts(r.Context(), shop, first, after)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// GetProduct returns one product by its URL-escaped admin GID.
func GetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shop := middleware.ShopFromContext(r.Context())
		if shop == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "shop context missing"))
			return
		}

		productID, err := url.PathUnescape(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		product, err := svc.GetProduct(r.Context(), shop, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}
