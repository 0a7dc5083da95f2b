package controllers

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/hanbit-commerce/storefront/api/responses"
	"github.com/hanbit-commerce/storefront/api/validators"
	"github.com/hanbit-commerce/storefront/pkg/auth"
	"github.com/hanbit-commerce/storefront/pkg/config"
	pkgerrors "github.com/hanbit-commerce/storefront/pkg/errors"
	"github.com/hanbit-commerce/storefront/pkg/logger"
)

type adminLoginRequest struct {
	Key string `json:"key" validate:"required"`
}

type adminLoginResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int    `json:"expiresIn"`
}

// AdminLogin exchanges the shared admin key for a bearer token.
func AdminLogin(cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body adminLoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if subtle.ConstantTimeCompare([]byte(body.Key), []byte(cfg.Admin.Key)) != 1 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid admin key"))
			return
		}

		token, err := auth.MintAdminToken(cfg.JWT, time.Now())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting token"))
			return
		}

		responses.WriteSuccess(w, adminLoginResponse{
			AccessToken: token,
			ExpiresIn:   cfg.JWT.ExpirationMinutes * 60,
		})
	}
}
