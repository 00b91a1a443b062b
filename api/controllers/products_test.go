package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/jordanvega/seoforge-backend/api/middleware"
	productsvc "github.com/jordanvega/seoforge-backend/internal/products"
	pkgerrors "github.com/jordanvega/seoforge-backend/pkg/errors"
)

type stubProductService struct {
	listCalls int
	getCalls  int
	lastShop  string
	lastID    string
	lastFirst int
	lastAfter string
	list      *productsvc.ProductListDTO
	product   *productsvc.ProductDTO
	err       error
}

func (s *stubProductService) ListProducts(ctx context.Context, shop string, first int, after string) (*productsvc.ProductListDTO, error) {
	s.listCalls++
	s.lastShop = shop
	s.lastFirst = first
	s.lastAfter = after
	return s.list, s.err
}

func (s *stubProductService) GetProduct(ctx context.Context, shop, productID string) (*productsvc.ProductDTO, error) {
	s.getCalls++
	s.lastShop = shop
	s.lastID = productID
	return s.product, s.err
}

func TestListProducts(t *testing.T) {
	logg := testLogger()

	t.Run("missing shop", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
		rec := httptest.NewRecorder()
		ListProducts(&stubProductService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("invalid first", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products?first=oops", nil).
			WithContext(shopCtx("demo.myshopify.com"))
		rec := httptest.NewRecorder()
		ListProducts(&stubProductService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		stub := &stubProductService{list: &productsvc.ProductListDTO{HasNextPage: true}}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products?first=10&after=c1", nil).
			WithContext(shopCtx("demo.myshopify.com"))
		rec := httptest.NewRecorder()
		ListProducts(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if stub.lastShop != "demo.myshopify.com" || stub.lastFirst != 10 || stub.lastAfter != "c1" {
			t.Fatalf("unexpected args: %+v", stub)
		}
	})
}

func TestGetProductController(t *testing.T) {
	logg := testLogger()

	newRequest := func(rawID string, ctx context.Context) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+rawID, nil)
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add("id", rawID)
		ctx = context.WithValue(ctx, chi.RouteCtxKey, routeCtx)
		return req.WithContext(ctx)
	}

	t.Run("missing shop", func(t *testing.T) {
		req := newRequest("gid%3A%2F%2Fshopify%2FProduct%2F1", context.Background())
		rec := httptest.NewRecorder()
		GetProduct(&stubProductService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("unescapes product gid", func(t *testing.T) {
		stub := &stubProductService{product: &productsvc.ProductDTO{ID: "gid://shopify/Product/1"}}
		req := newRequest("gid%3A%2F%2Fshopify%2FProduct%2F1", middleware.WithShop(context.Background(), "demo.myshopify.com"))
		rec := httptest.NewRecorder()
		GetProduct(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.lastID != "gid://shopify/Product/1" {
			t.Fatalf("expected unescaped gid, got %q", stub.lastID)
		}
	})

	t.Run("not found", func(t *testing.T) {
		stub := &stubProductService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}
		req := newRequest("gid%3A%2F%2Fshopify%2FProduct%2F404", middleware.WithShop(context.Background(), "demo.myshopify.com"))
		rec := httptest.NewRecorder()
		GetProduct(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
