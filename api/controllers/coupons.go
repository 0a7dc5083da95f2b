package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hanbit-commerce/storefront/api/responses"
	"github.com/hanbit-commerce/storefront/api/validators"
	"github.com/hanbit-commerce/storefront/internal/coupons"
	"github.com/hanbit-commerce/storefront/internal/shop"
	"github.com/hanbit-commerce/storefront/pkg/enums"
	pkgerrors "github.com/hanbit-commerce/storefront/pkg/errors"
	"github.com/hanbit-commerce/storefront/pkg/logger"
	"github.com/hanbit-commerce/storefront/pkg/models"
)

type createCouponRequest struct {
	Name          string `json:"name" validate:"required"`
	Code          string `json:"code" validate:"required"`
	DiscountType  string `json:"discount_type" validate:"required,oneof=amount percentage"`
	DiscountValue int    `json:"discount_value" validate:"gte=0"`
}

type couponListResponse struct {
	Coupons []models.Coupon `json:"coupons"`
}

// ListCoupons returns the coupon registry.
func ListCoupons(s *shop.Shop, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shop unavailable"))
			return
		}
		responses.WriteSuccess(w, couponListResponse{Coupons: s.Coupons()})
	}
}

// CreateCoupon registers a coupon. Percentage values are capped at 100.
func CreateCoupon(s *shop.Shop, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shop unavailable"))
			return
		}

		var body createCouponRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		discountType, err := enums.ParseDiscountType(body.DiscountType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid discount type"))
			return
		}
		if discountType == enums.DiscountTypePercentage && body.DiscountValue > 100 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "percentage discount cannot exceed 100"))
			return
		}

		coupon := models.Coupon{
			Name:          body.Name,
			Code:          coupons.NormalizeCode(body.Code),
			DiscountType:  discountType,
			DiscountValue: body.DiscountValue,
		}
		if err := s.AddCoupon(coupon); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, coupon)
	}
}

// DeleteCoupon removes a coupon from the registry.
func DeleteCoupon(s *shop.Shop, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shop unavailable"))
			return
		}

		s.DeleteCoupon(chi.URLParam(r, "code"))
		responses.WriteSuccess(w, map[string]string{"status": "ok"})
	}
}
