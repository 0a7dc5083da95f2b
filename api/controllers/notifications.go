package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hanbit-commerce/storefront/api/responses"
	"github.com/hanbit-commerce/storefront/internal/shop"
	pkgerrors "github.com/hanbit-commerce/storefront/pkg/errors"
	"github.com/hanbit-commerce/storefront/pkg/logger"
	"github.com/hanbit-commerce/storefront/pkg/models"
)

type notificationListResponse struct {
	Notifications []models.Notification `json:"notifications"`
}

// ListNotifications returns the active notifications in arrival order.
func ListNotifications(s *shop.Shop, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shop unavailable"))
			return
		}
		responses.WriteSuccess(w, notificationListResponse{Notifications: s.Notifications()})
	}
}

// DismissNotification removes a notification ahead of its expiry. Dismissing
// an unknown id succeeds.
func DismissNotification(s *shop.Shop, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shop unavailable"))
			return
		}

		s.DismissNotification(chi.URLParam(r, "notificationID"))
		responses.WriteSuccess(w, map[string]string{"status": "ok"})
	}
}
