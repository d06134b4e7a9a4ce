package repositories

import "storefront/internal/models"

// CartRepository defines the interface for cart data access.
type CartRepository interface {
	Create(cart *models.Cart) error
	// GetByID returns the cart with its line items loaded.
	GetByID(id string) (*models.Cart, error)
	AddItem(item *models.CartItem) error
	Delete(id string) error
}
