package middleware

import (
	"net/http"
	"strings"

	"github.com/jordanvega/seoforge-backend/api/responses"
	"github.com/jordanvega/seoforge-backend/pkg/config"
	pkgerrors "github.com/jordanvega/seoforge-backend/pkg/errors"
	"github.com/jordanvega/seoforge-backend/pkg/logger"
	"github.com/jordanvega/seoforge-backend/pkg/shopify"
)

const devShopHeader = "X-Shop-Domain"

// ShopAuth verifies the App Bridge session token on embedded requests and
// seeds the request context with the shop domain. Outside production a
// plain X-Shop-Domain header is accepted so the API can be exercised
// without a running storefront.
func ShopAuth(cfg *config.Config, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			shop, err := resolveShop(cfg, r)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			ctx := WithShop(r.Context(), shop)
			if logg != nil {
				ctx = logg.WithShop(ctx, shop)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolveShop(cfg *config.Config, r *http.Request) (string, error) {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw != "" {
		token := raw
		if strings.HasPrefix(strings.ToLower(token), "bearer ") {
			token = strings.TrimSpace(token[7:])
		}
		if token == "" {
			return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
		}
		shop, err := shopify.ParseSessionToken(cfg.Shopify.AppSecret, token)
		if err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid session token")
		}
		return shop, nil
	}

	if !cfg.App.IsProd() {
		if shop := strings.TrimSpace(r.Header.Get(devShopHeader)); shop != "" {
			return shop, nil
		}
	}

	return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
}
