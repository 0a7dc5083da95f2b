package shop

import (
	"github.com/hanbit-commerce/storefront/pkg/enums"
	"github.com/hanbit-commerce/storefront/pkg/models"
)

// defaultProducts is the catalog used when no snapshot exists yet.
func defaultProducts() []models.Product {
	return []models.Product{
		{
			ID:    "p1",
			Name:  "Product 1",
			Price: 10000,
			Stock: 20,
			Discounts: []models.DiscountTier{
				{Quantity: 10, Rate: 0.1},
				{Quantity: 20, Rate: 0.2},
			},
			Description: "Top quality premium product.",
		},
		{
			ID:    "p2",
			Name:  "Product 2",
			Price: 20000,
			Stock: 20,
			Discounts: []models.DiscountTier{
				{Quantity: 10, Rate: 0.15},
			},
			Description: "A practical product with versatile features.",
			Recommended: true,
		},
		{
			ID:    "p3",
			Name:  "Product 3",
			Price: 30000,
			Stock: 20,
			Discounts: []models.DiscountTier{
				{Quantity: 10, Rate: 0.2},
				{Quantity: 30, Rate: 0.25},
			},
			Description: "High capacity and high performance.",
		},
	}
}

func defaultCoupons() []models.Coupon {
	return []models.Coupon{
		{Name: "5,000 off", Code: "AMOUNT5000", DiscountType: enums.DiscountTypeAmount, DiscountValue: 5000},
		{Name: "10% off", Code: "PERCENT10", DiscountType: enums.DiscountTypePercentage, DiscountValue: 10},
	}
}
