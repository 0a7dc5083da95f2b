package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hanbit-commerce/storefront/api/responses"
	"github.com/hanbit-commerce/storefront/api/validators"
	"github.com/hanbit-commerce/storefront/internal/catalog"
	"github.com/hanbit-commerce/storefront/internal/shop"
	pkgerrors "github.com/hanbit-commerce/storefront/pkg/errors"
	"github.com/hanbit-commerce/storefront/pkg/logger"
	"github.com/hanbit-commerce/storefront/pkg/models"
)

type discountTierPayload struct {
	Quantity int     `json:"quantity" validate:"min=1"`
	Rate     float64 `json:"rate" validate:"gte=0,lte=1"`
}

type createProductRequest struct {
	Name        string                `json:"name" validate:"required"`
	Price       int                   `json:"price" validate:"gte=0"`
	Stock       int                   `json:"stock" validate:"gte=0"`
	Discounts   []discountTierPayload `json:"discounts" validate:"dive"`
	Description string                `json:"description"`
	Recommended bool                  `json:"is_recommended"`
}

type updateProductRequest struct {
	Name        *string                `json:"name"`
	Price       *int                   `json:"price" validate:"omitempty,gte=0"`
	Stock       *int                   `json:"stock" validate:"omitempty,gte=0"`
	Discounts   *[]discountTierPayload `json:"discounts" validate:"omitempty,dive"`
	Description *string                `json:"description"`
	Recommended *bool                  `json:"is_recommended"`
}

type productListResponse struct {
	Products []models.Product `json:"products"`
}

// ListProducts returns the catalog, filtered by the optional q query param.
func ListProducts(s *shop.Shop, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shop unavailable"))
			return
		}

		term := strings.TrimSpace(r.URL.Query().Get("q"))
		responses.WriteSuccess(w, productListResponse{Products: s.Products(term)})
	}
}

// GetProduct returns a single product with its remaining stock.
func GetProduct(s *shop.Shop, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shop unavailable"))
			return
		}

		id := chi.URLParam(r, "productID")
		product, ok := s.Product(id)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}

		remaining, err := s.RemainingStock(id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"product":         product,
			"remaining_stock": remaining,
		})
	}
}

// CreateProduct adds a product to the catalog.
func CreateProduct(s *shop.Shop, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shop unavailable"))
			return
		}

		var body createProductRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product := s.AddProduct(catalog.CreateProductInput{
			Name:        body.Name,
			Price:       body.Price,
			Stock:       body.Stock,
			Discounts:   toDiscountTiers(body.Discounts),
			Description: body.Description,
			Recommended: body.Recommended,
		})
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// UpdateProduct merges the provided fields into the product. Unknown ids
// return success with no effect.
func UpdateProduct(s *shop.Shop, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shop unavailable"))
			return
		}

		var body updateProductRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := catalog.UpdateProductInput{
			Name:        body.Name,
			Price:       body.Price,
			Stock:       body.Stock,
			Description: body.Description,
			Recommended: body.Recommended,
		}
		if body.Discounts != nil {
			tiers := toDiscountTiers(*body.Discounts)
			input.Discounts = &tiers
		}

		s.UpdateProduct(chi.URLParam(r, "productID"), input)
		responses.WriteSuccess(w, map[string]string{"status": "ok"})
	}
}

// DeleteProduct removes the product from the catalog.
func DeleteProduct(s *shop.Shop, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shop unavailable"))
			return
		}

		s.DeleteProduct(chi.URLParam(r, "productID"))
		responses.WriteSuccess(w, map[string]string{"status": "ok"})
	}
}

func toDiscountTiers(payload []discountTierPayload) []models.DiscountTier {
	if payload == nil {
		return nil
	}
	tiers := make([]models.DiscountTier, len(payload))
	for i, t := range payload {
		tiers[i] = models.DiscountTier{Quantity: t.Quantity, Rate: t.Rate}
	}
	return tiers
}
