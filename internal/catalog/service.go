package catalog

import (
	"fmt"

	"github.com/hanbit-commerce/storefront/pkg/enums"
	"github.com/hanbit-commerce/storefront/pkg/models"
)

// RemainingStock is the product stock minus every quantity already committed
// to the cart for that product. It is never reported negative.
func RemainingStock(product models.Product, cart []models.CartItem) int {
	reserved := 0
	for _, item := range cart {
		if item.Product.ID == product.ID {
			reserved += item.Quantity
		}
	}
	remaining := product.Stock - reserved
	if remaining < 0 {
		return 0
	}
	return remaining
}

type idGenerator interface {
	NewID() string
}

type notifier interface {
	Push(message string, severity enums.Severity)
}

// Service exposes catalog management operations.
type Service interface {
	List() []models.Product
	Get(id string) (models.Product, bool)
	Add(input CreateProductInput) models.Product
	Update(id string, input UpdateProductInput)
	Delete(id string)
	Replace(products []models.Product)
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name        string
	Price       int
	Stock       int
	Discounts   []models.DiscountTier
	Description string
	Recommended bool
}

// UpdateProductInput holds optional mutation values for a product. Nil fields
// are left untouched.
type UpdateProductInput struct {
	Name        *string
	Price       *int
	Stock       *int
	Discounts   *[]models.DiscountTier
	Description *string
	Recommended *bool
}

type service struct {
	products []models.Product
	ids      idGenerator
	notifier notifier
}

// NewService constructs a catalog seeded with the provided products.
func NewService(seed []models.Product, gen idGenerator, notifier notifier) (Service, error) {
	if gen == nil {
		return nil, fmt.Errorf("id generator required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notifier required")
	}
	products := make([]models.Product, len(seed))
	copy(products, seed)
	return &service{products: products, ids: gen, notifier: notifier}, nil
}

func (s *service) List() []models.Product {
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *service) Get(id string) (models.Product, bool) {
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

func (s *service) Add(input CreateProductInput) models.Product {
	product := models.Product{
		ID:          s.ids.NewID(),
		Name:        input.Name,
		Price:       input.Price,
		Stock:       input.Stock,
		Discounts:   input.Discounts,
		Description: input.Description,
		Recommended: input.Recommended,
	}
	s.products = append(s.products, product)
	s.notifier.Push("Product added.", enums.SeveritySuccess)
	return product
}

// Update merges the provided fields into the matching product. An unknown id
// is a silent no-op.
func (s *service) Update(id string, input UpdateProductInput) {
	for i := range s.products {
		if s.products[i].ID != id {
			continue
		}
		applyUpdate(&s.products[i], input)
		s.notifier.Push("Product updated.", enums.SeveritySuccess)
		return
	}
}

// Delete removes the matching product. The success notification fires even
// when nothing matched.
func (s *service) Delete(id string) {
	kept := s.products[:0]
	for _, p := range s.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.products = kept
	s.notifier.Push("Product deleted.", enums.SeveritySuccess)
}

// Replace swaps the whole catalog in. Used for rehydration; no notification.
func (s *service) Replace(products []models.Product) {
	s.products = make([]models.Product, len(products))
	copy(s.products, products)
}

func applyUpdate(p *models.Product, input UpdateProductInput) {
	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.Price != nil {
		p.Price = *input.Price
	}
	if input.Stock != nil {
		p.Stock = *input.Stock
	}
	if input.Discounts != nil {
		p.Discounts = *input.Discounts
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	if input.Recommended != nil {
		p.Recommended = *input.Recommended
	}
}
