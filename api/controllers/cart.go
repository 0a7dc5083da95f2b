package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hanbit-commerce/storefront/api/responses"
	"github.com/hanbit-commerce/storefront/api/validators"
	"github.com/hanbit-commerce/storefront/internal/shop"
	pkgerrors "github.com/hanbit-commerce/storefront/pkg/errors"
	"github.com/hanbit-commerce/storefront/pkg/logger"
	"github.com/hanbit-commerce/storefront/pkg/models"
)

type addCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type applyCouponRequest struct {
	Code string `json:"code" validate:"required"`
}

type cartResponse struct {
	Items          []models.CartItem `json:"items"`
	SelectedCoupon *models.Coupon    `json:"selected_coupon,omitempty"`
	Totals         models.Totals     `json:"totals"`
}

type completeOrderResponse struct {
	OrderNumber string `json:"order_number"`
}

func cartState(s *shop.Shop) cartResponse {
	return cartResponse{
		Items:          s.CartItems(),
		SelectedCoupon: s.SelectedCoupon(),
		Totals:         s.CartTotals(),
	}
}

// GetCart returns the cart lines, the selected coupon and derived totals.
func GetCart(s *shop.Shop, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shop unavailable"))
			return
		}
		responses.WriteSuccess(w, cartState(s))
	}
}

// AddCartItem adds one unit of a product to the cart.
func AddCartItem(s *shop.Shop, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shop unavailable"))
			return
		}

		var body addCartItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := s.AddToCart(body.ProductID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cartState(s))
	}
}

// UpdateCartItem sets the quantity of a cart line. Zero or below removes it.
func UpdateCartItem(s *shop.Shop, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shop unavailable"))
			return
		}

		var body updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := s.UpdateQuantity(chi.URLParam(r, "productID"), body.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cartState(s))
	}
}

// RemoveCartItem drops a cart line. Removing an absent line succeeds.
func RemoveCartItem(s *shop.Shop, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shop unavailable"))
			return
		}

		s.RemoveFromCart(chi.URLParam(r, "productID"))
		responses.WriteSuccess(w, cartState(s))
	}
}

// ApplyCoupon applies a registered coupon code to the cart.
func ApplyCoupon(s *shop.Shop, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shop unavailable"))
			return
		}

		var body applyCouponRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := s.ApplyCoupon(body.Code); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cartState(s))
	}
}

// ClearCoupon detaches the selected coupon from the cart.
func ClearCoupon(s *shop.Shop, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shop unavailable"))
			return
		}

		s.ClearSelectedCoupon()
		responses.WriteSuccess(w, cartState(s))
	}
}

// CompleteOrder finalizes the order and empties the cart.
func CompleteOrder(s *shop.Shop, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shop unavailable"))
			return
		}

		responses.WriteSuccess(w, completeOrderResponse{OrderNumber: s.CompleteOrder()})
	}
}
