package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// AdminTokenClaims represents the typed JWT issued to the storefront admin.
type AdminTokenClaims struct {
	Admin bool `json:"admin"`
	jwt.RegisteredClaims
}
