package coupons

import (
	"fmt"
	"strings"

	"github.com/hanbit-commerce/storefront/pkg/enums"
	pkgerrors "github.com/hanbit-commerce/storefront/pkg/errors"
	"github.com/hanbit-commerce/storefront/pkg/models"
)

// NormalizeCode canonicalizes a coupon code for uniqueness checks.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

type notifier interface {
	Push(message string, severity enums.Severity)
}

// Service exposes coupon registry operations.
type Service interface {
	List() []models.Coupon
	FindByCode(code string) (models.Coupon, bool)
	Add(coupon models.Coupon) error
	Delete(code string)
	Replace(coupons []models.Coupon)
}

type service struct {
	coupons  []models.Coupon
	notifier notifier
}

// NewService constructs a registry seeded with the provided coupons.
func NewService(seed []models.Coupon, notifier notifier) (Service, error) {
	if notifier == nil {
		return nil, fmt.Errorf("notifier required")
	}
	coupons := make([]models.Coupon, len(seed))
	copy(coupons, seed)
	return &service{coupons: coupons, notifier: notifier}, nil
}

func (s *service) List() []models.Coupon {
	out := make([]models.Coupon, len(s.coupons))
	copy(out, s.coupons)
	return out
}

func (s *service) FindByCode(code string) (models.Coupon, bool) {
	normalized := NormalizeCode(code)
	for _, c := range s.coupons {
		if NormalizeCode(c.Code) == normalized {
			return c, true
		}
	}
	return models.Coupon{}, false
}

// Add appends the coupon unless its normalized code already exists.
func (s *service) Add(coupon models.Coupon) error {
	if _, exists := s.FindByCode(coupon.Code); exists {
		s.notifier.Push("A coupon with this code already exists.", enums.SeverityError)
		return pkgerrors.New(pkgerrors.CodeValidation, "coupon code already exists")
	}
	coupon.Code = NormalizeCode(coupon.Code)
	s.coupons = append(s.coupons, coupon)
	s.notifier.Push("Coupon added.", enums.SeveritySuccess)
	return nil
}

// Delete removes matching entries. The success notification fires even when
// nothing matched.
func (s *service) Delete(code string) {
	normalized := NormalizeCode(code)
	kept := s.coupons[:0]
	for _, c := range s.coupons {
		if NormalizeCode(c.Code) != normalized {
			kept = append(kept, c)
		}
	}
	s.coupons = kept
	s.notifier.Push("Coupon deleted.", enums.SeveritySuccess)
}

// Replace swaps the registry contents in. Used for rehydration; no notification.
func (s *service) Replace(coupons []models.Coupon) {
	s.coupons = make([]models.Coupon, len(coupons))
	copy(s.coupons, coupons)
}
