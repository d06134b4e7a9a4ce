package repositories

import "storefront/internal/models"

// OrderRepository defines the interface for order data access.
// Orders are immutable once created, so there is no update or delete.
type OrderRepository interface {
	GetAllForUser(userID string) ([]models.Order, error)
	// GetByID is scoped to the requesting user; an order belonging to
	// someone else is reported as not found.
	GetByID(id, userID string) (*models.Order, error)
	// CreateFromCart atomically creates the order and deletes the consumed
	// cart. If the cart does not exist, neither side takes effect.
	CreateFromCart(order *models.Order, cartID string) error
}
